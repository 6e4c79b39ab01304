package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"salestrack/internal/dto"
	"salestrack/internal/model"
	"salestrack/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductRepo is an in-memory ProductRepository for testing.
type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func seedProduct(r *stubProductRepo, name string, price float64, stock int) *model.Product {
	p := &model.Product{
		ID:            uuid.New(),
		Name:          name,
		Price:         decimal.NewFromFloat(price),
		StockQuantity: stock,
		Category:      "General",
		CreatedAt:     time.Now(),
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return errors.New("record not found")
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.products[id]; !ok {
		return 0, nil
	}
	delete(r.products, id)
	return 1, nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	p, ok := r.products[id]
	if !ok || p.StockQuantity < qty {
		return 0, nil
	}
	p.StockQuantity -= qty
	return 1, nil
}

func (r *stubProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *stubProductRepo) CountCreatedBetween(_ context.Context, from, to time.Time) (int64, error) {
	var n int64
	for _, p := range r.products {
		if !p.CreatedAt.Before(from) && p.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubSaleRepo is an in-memory SaleRepository. Aggregations are computed over
// the stored sales so window tests exercise real date arithmetic. products is
// optional; when set, RevenueByCategory resolves categories through it the way
// the SQL LEFT JOIN does.
type stubSaleRepo struct {
	sales         map[uuid.UUID]*model.Sale
	products      *stubProductRepo
	invoiceSeq    int64
	lastListLimit int
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for i := range s.Items {
		if s.Items[i].ID == uuid.Nil {
			s.Items[i].ID = uuid.New()
		}
		s.Items[i].SaleID = s.ID
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context, from, to *time.Time, limit int) ([]model.Sale, error) {
	r.lastListLimit = limit
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		if from != nil && to != nil {
			if s.SaleDate.Before(*from) || !s.SaleDate.Before(*to) {
				continue
			}
		}
		out = append(out, *s)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *stubSaleRepo) NextInvoiceSeq(_ context.Context, _ *gorm.DB) (int64, error) {
	r.invoiceSeq++
	return r.invoiceSeq, nil
}

func (r *stubSaleRepo) SumBetween(_ context.Context, from, to time.Time) (decimal.Decimal, int64, error) {
	total := decimal.Zero
	var count int64
	for _, s := range r.sales {
		if !s.SaleDate.Before(from) && s.SaleDate.Before(to) {
			total = total.Add(s.TotalAmount)
			count++
		}
	}
	return total, count, nil
}

func (r *stubSaleRepo) DailyTotals(_ context.Context, from, to *time.Time) ([]dto.DailyPoint, error) {
	byDay := make(map[string]*dto.DailyPoint)
	for _, s := range r.sales {
		if from != nil && to != nil {
			if s.SaleDate.Before(*from) || !s.SaleDate.Before(*to) {
				continue
			}
		}
		day := s.SaleDate.Format("2006-01-02")
		pt, ok := byDay[day]
		if !ok {
			pt = &dto.DailyPoint{Date: day}
			byDay[day] = pt
		}
		pt.Total = pt.Total.Add(s.TotalAmount)
		pt.Count++
	}
	out := make([]dto.DailyPoint, 0, len(byDay))
	for _, pt := range byDay {
		out = append(out, *pt)
	}
	return out, nil
}

func (r *stubSaleRepo) TopProducts(_ context.Context, from, to *time.Time, limit int) ([]dto.ProductSalesEntry, error) {
	byName := make(map[string]*dto.ProductSalesEntry)
	for _, s := range r.sales {
		if from != nil && to != nil {
			if s.SaleDate.Before(*from) || !s.SaleDate.Before(*to) {
				continue
			}
		}
		for _, item := range s.Items {
			e, ok := byName[item.ProductName]
			if !ok {
				e = &dto.ProductSalesEntry{Product: item.ProductName}
				byName[item.ProductName] = e
			}
			e.QuantitySold += int64(item.QuantitySold)
			e.Revenue = e.Revenue.Add(item.PricePerUnitAtSale.Mul(decimal.NewFromInt(int64(item.QuantitySold))))
		}
	}
	out := make([]dto.ProductSalesEntry, 0, len(byName))
	for _, e := range byName {
		out = append(out, *e)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *stubSaleRepo) RevenueByCategory(_ context.Context, from, to *time.Time) ([]dto.CategoryRevenueEntry, error) {
	byCat := make(map[string]*dto.CategoryRevenueEntry)
	for _, s := range r.sales {
		if from != nil && to != nil {
			if s.SaleDate.Before(*from) || !s.SaleDate.Before(*to) {
				continue
			}
		}
		for _, item := range s.Items {
			// Deleted products no longer resolve a category
			category := "Uncategorized"
			if r.products != nil {
				if p, ok := r.products.products[item.ProductID]; ok {
					category = p.Category
				}
			}
			e, ok := byCat[category]
			if !ok {
				e = &dto.CategoryRevenueEntry{Category: category}
				byCat[category] = e
			}
			e.Revenue = e.Revenue.Add(item.PricePerUnitAtSale.Mul(decimal.NewFromInt(int64(item.QuantitySold))))
			e.Count++
		}
	}
	out := make([]dto.CategoryRevenueEntry, 0, len(byCat))
	for _, e := range byCat {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue.GreaterThan(out[j].Revenue) })
	return out, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// stubUserRepo is an in-memory UserRepository.
type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func seedUser(r *stubUserRepo, username, passwordHash string, role model.Role) *model.User {
	u := &model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		Active:       true,
	}
	r.users[u.ID] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return errors.New("record not found")
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("record not found")
	}
	u.Active = false
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// stubExpenseRepo is an in-memory ExpenseRepository.
type stubExpenseRepo struct {
	expenses map[uuid.UUID]*model.Expense
}

func newStubExpenseRepo() *stubExpenseRepo {
	return &stubExpenseRepo{expenses: make(map[uuid.UUID]*model.Expense)}
}

func (r *stubExpenseRepo) Create(_ context.Context, e *model.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.expenses[e.ID] = e
	return nil
}

func (r *stubExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Expense, error) {
	e, ok := r.expenses[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return e, nil
}

func (r *stubExpenseRepo) List(_ context.Context, from, to *time.Time) ([]model.Expense, error) {
	out := make([]model.Expense, 0, len(r.expenses))
	for _, e := range r.expenses {
		if from != nil && to != nil {
			if e.ExpenseDate.Before(*from) || !e.ExpenseDate.Before(*to) {
				continue
			}
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubExpenseRepo) Update(_ context.Context, e *model.Expense) error {
	if _, ok := r.expenses[e.ID]; !ok {
		return errors.New("record not found")
	}
	r.expenses[e.ID] = e
	return nil
}

func (r *stubExpenseRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.expenses[id]; !ok {
		return 0, nil
	}
	delete(r.expenses, id)
	return 1, nil
}

func (r *stubExpenseRepo) SumBetween(_ context.Context, from, to time.Time) (decimal.Decimal, int64, error) {
	total := decimal.Zero
	var count int64
	for _, e := range r.expenses {
		if !e.ExpenseDate.Before(from) && e.ExpenseDate.Before(to) {
			total = total.Add(e.Amount)
			count++
		}
	}
	return total, count, nil
}

func (r *stubExpenseRepo) DailyTotals(_ context.Context, from, to *time.Time) ([]dto.DailyPoint, error) {
	byDay := make(map[string]*dto.DailyPoint)
	for _, e := range r.expenses {
		if from != nil && to != nil {
			if e.ExpenseDate.Before(*from) || !e.ExpenseDate.Before(*to) {
				continue
			}
		}
		day := e.ExpenseDate.Format("2006-01-02")
		pt, ok := byDay[day]
		if !ok {
			pt = &dto.DailyPoint{Date: day}
			byDay[day] = pt
		}
		pt.Total = pt.Total.Add(e.Amount)
		pt.Count++
	}
	out := make([]dto.DailyPoint, 0, len(byDay))
	for _, pt := range byDay {
		out = append(out, *pt)
	}
	return out, nil
}

func (r *stubExpenseRepo) ByCategory(_ context.Context, from, to *time.Time, limit int) ([]dto.CategorySpendEntry, error) {
	byCat := make(map[string]*dto.CategorySpendEntry)
	for _, e := range r.expenses {
		if from != nil && to != nil {
			if e.ExpenseDate.Before(*from) || !e.ExpenseDate.Before(*to) {
				continue
			}
		}
		entry, ok := byCat[e.Category]
		if !ok {
			entry = &dto.CategorySpendEntry{Category: e.Category}
			byCat[e.Category] = entry
		}
		entry.TotalAmount = entry.TotalAmount.Add(e.Amount)
		entry.Count++
	}
	out := make([]dto.CategorySpendEntry, 0, len(byCat))
	for _, entry := range byCat {
		entry.AvgAmount = entry.TotalAmount.Div(decimal.NewFromInt(entry.Count)).Round(2)
		out = append(out, *entry)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *stubExpenseRepo) Total(_ context.Context, from, to *time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range r.expenses {
		if from != nil && to != nil {
			if e.ExpenseDate.Before(*from) || !e.ExpenseDate.Before(*to) {
				continue
			}
		}
		total = total.Add(e.Amount)
	}
	return total, nil
}

var _ repository.ExpenseRepository = (*stubExpenseRepo)(nil)
