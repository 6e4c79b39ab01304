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

type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	// List returns sales newest first, optionally bounded to [from, to).
	List(ctx context.Context, from, to *time.Time, limit int) ([]model.Sale, error)
	// NextInvoiceSeq draws the next value from the sales_invoice_seq sequence
	// for atomic invoice numbering.
	NextInvoiceSeq(ctx context.Context, tx *gorm.DB) (int64, error)

	// Aggregations for the stats/analytics endpoints. Ranges are [from, to).
	SumBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, int64, error)
	DailyTotals(ctx context.Context, from, to *time.Time) ([]dto.DailyPoint, error)
	TopProducts(ctx context.Context, from, to *time.Time, limit int) ([]dto.ProductSalesEntry, error)
	RevenueByCategory(ctx context.Context, from, to *time.Time) ([]dto.CategoryRevenueEntry, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items").Preload("User").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, from, to *time.Time, limit int) ([]model.Sale, error) {
	var sales []model.Sale
	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if from != nil && to != nil {
		q = q.Where("sale_date >= ? AND sale_date < ?", *from, *to)
	}
	err := q.Preload("Items").Preload("User").
		Order("sale_date DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) NextInvoiceSeq(ctx context.Context, tx *gorm.DB) (int64, error) {
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('sales_invoice_seq')").Scan(&num).Error
	return num, err
}

func (r *saleRepo) SumBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, int64, error) {
	var row struct {
		Total decimal.Decimal
		Count int64
	}
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(total_amount), 0) AS total, COUNT(*) AS count
		     FROM sales WHERE sale_date >= ? AND sale_date < ?`, from, to).
		Scan(&row).Error
	return row.Total, row.Count, err
}

func (r *saleRepo) DailyTotals(ctx context.Context, from, to *time.Time) ([]dto.DailyPoint, error) {
	var points []dto.DailyPoint
	q := `SELECT to_char(DATE(sale_date), 'YYYY-MM-DD') AS date,
	             COALESCE(SUM(total_amount), 0)         AS total,
	             COUNT(*)                               AS count
	      FROM sales`
	args := []interface{}{}
	if from != nil && to != nil {
		q += ` WHERE sale_date >= ? AND sale_date < ?`
		args = append(args, *from, *to)
	}
	q += ` GROUP BY DATE(sale_date) ORDER BY DATE(sale_date)`
	err := r.db.WithContext(ctx).Raw(q, args...).Scan(&points).Error
	return points, err
}

func (r *saleRepo) TopProducts(ctx context.Context, from, to *time.Time, limit int) ([]dto.ProductSalesEntry, error) {
	var entries []dto.ProductSalesEntry
	q := `SELECT si.product_name                                        AS product,
	             SUM(si.quantity_sold)                                  AS quantity_sold,
	             SUM(si.quantity_sold * si.price_per_unit_at_sale)      AS revenue
	      FROM sale_items si
	      JOIN sales s ON s.id = si.sale_id`
	args := []interface{}{}
	if from != nil && to != nil {
		q += ` WHERE s.sale_date >= ? AND s.sale_date < ?`
		args = append(args, *from, *to)
	}
	q += ` GROUP BY si.product_name ORDER BY revenue DESC LIMIT ?`
	args = append(args, limit)
	err := r.db.WithContext(ctx).Raw(q, args...).Scan(&entries).Error
	return entries, err
}

func (r *saleRepo) RevenueByCategory(ctx context.Context, from, to *time.Time) ([]dto.CategoryRevenueEntry, error) {
	var entries []dto.CategoryRevenueEntry
	// LEFT JOIN: deleted products still contribute revenue under Uncategorized.
	q := `SELECT COALESCE(p.category, 'Uncategorized')                  AS category,
	             SUM(si.quantity_sold * si.price_per_unit_at_sale)      AS revenue,
	             COUNT(*)                                               AS count
	      FROM sale_items si
	      JOIN sales s ON s.id = si.sale_id
	      LEFT JOIN products p ON p.id = si.product_id`
	args := []interface{}{}
	if from != nil && to != nil {
		q += ` WHERE s.sale_date >= ? AND s.sale_date < ?`
		args = append(args, *from, *to)
	}
	q += ` GROUP BY COALESCE(p.category, 'Uncategorized') ORDER BY revenue DESC`
	err := r.db.WithContext(ctx).Raw(q, args...).Scan(&entries).Error
	return entries, err
}
