package repository

import (
	"context"
	"time"

	"salestrack/internal/dto"
	"salestrack/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(ctx context.Context, e *model.Expense) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Expense, error)
	// List returns expenses newest first, optionally bounded to [from, to).
	List(ctx context.Context, from, to *time.Time) ([]model.Expense, error)
	Update(ctx context.Context, e *model.Expense) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	// Aggregations for the stats/analytics endpoints. Ranges are [from, to).
	SumBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, int64, error)
	DailyTotals(ctx context.Context, from, to *time.Time) ([]dto.DailyPoint, error)
	ByCategory(ctx context.Context, from, to *time.Time, limit int) ([]dto.CategorySpendEntry, error)
	Total(ctx context.Context, from, to *time.Time) (decimal.Decimal, error)
}

type expenseRepo struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) ExpenseRepository { return &expenseRepo{db: db} }

func (r *expenseRepo) Create(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *expenseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	var e model.Expense
	err := r.db.WithContext(ctx).Preload("User").First(&e, id).Error
	return &e, err
}

func (r *expenseRepo) List(ctx context.Context, from, to *time.Time) ([]model.Expense, error) {
	var expenses []model.Expense
	q := r.db.WithContext(ctx).Model(&model.Expense{})
	if from != nil && to != nil {
		q = q.Where("expense_date >= ? AND expense_date < ?", *from, *to)
	}
	err := q.Preload("User").Order("expense_date DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) Update(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *expenseRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Expense{}, id)
	return res.RowsAffected, res.Error
}

func (r *expenseRepo) SumBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, int64, error) {
	var row struct {
		Total decimal.Decimal
		Count int64
	}
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count
		     FROM expenses WHERE expense_date >= ? AND expense_date < ?`, from, to).
		Scan(&row).Error
	return row.Total, row.Count, err
}

func (r *expenseRepo) DailyTotals(ctx context.Context, from, to *time.Time) ([]dto.DailyPoint, error) {
	var points []dto.DailyPoint
	q := `SELECT to_char(DATE(expense_date), 'YYYY-MM-DD') AS date,
	             COALESCE(SUM(amount), 0)                  AS total,
	             COUNT(*)                                  AS count
	      FROM expenses`
	args := []interface{}{}
	if from != nil && to != nil {
		q += ` WHERE expense_date >= ? AND expense_date < ?`
		args = append(args, *from, *to)
	}
	q += ` GROUP BY DATE(expense_date) ORDER BY DATE(expense_date)`
	err := r.db.WithContext(ctx).Raw(q, args...).Scan(&points).Error
	return points, err
}

func (r *expenseRepo) ByCategory(ctx context.Context, from, to *time.Time, limit int) ([]dto.CategorySpendEntry, error) {
	var entries []dto.CategorySpendEntry
	q := `SELECT category                       AS category,
	             SUM(amount)                    AS total_amount,
	             COUNT(*)                       AS count,
	             ROUND(AVG(amount), 2)          AS avg_amount
	      FROM expenses`
	args := []interface{}{}
	if from != nil && to != nil {
		q += ` WHERE expense_date >= ? AND expense_date < ?`
		args = append(args, *from, *to)
	}
	q += ` GROUP BY category ORDER BY total_amount DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	err := r.db.WithContext(ctx).Raw(q, args...).Scan(&entries).Error
	return entries, err
}

func (r *expenseRepo) Total(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	q := `SELECT COALESCE(SUM(amount), 0) FROM expenses`
	args := []interface{}{}
	if from != nil && to != nil {
		q += ` WHERE expense_date >= ? AND expense_date < ?`
		args = append(args, *from, *to)
	}
	err := r.db.WithContext(ctx).Raw(q, args...).Scan(&total).Error
	return total, err
}
