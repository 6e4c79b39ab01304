package service

import (
	"context"
	"time"

	"salestrack/internal/dto"
	"salestrack/internal/repository"

	"github.com/shopspring/decimal"
)

const topEntriesLimit = 10

// ReportService serves the statistics and analytics endpoints for both the
// sales and expense subsystems. All operations are read-only; the clock is a
// field so tests can pin the period windows.
type ReportService interface {
	SalesStats(ctx context.Context, period string) (*dto.PeriodStatsResponse, error)
	SalesAnalytics(ctx context.Context, filter dto.RangeFilter) (*dto.SalesAnalyticsResponse, error)
	ProductCount(ctx context.Context) (*dto.CountResponse, error)
	ProductGrowth(ctx context.Context, period string) (*dto.PeriodStatsResponse, error)

	ExpenseStats(ctx context.Context, period string) (*dto.PeriodStatsResponse, error)
	ExpenseAnalytics(ctx context.Context, filter dto.RangeFilter) (*dto.ExpenseAnalyticsResponse, error)
	ExpenseTotal(ctx context.Context, filter dto.RangeFilter) (*dto.TotalResponse, error)
}

type reportService struct {
	sales    repository.SaleRepository
	expenses repository.ExpenseRepository
	products repository.ProductRepository
	now      func() time.Time
}

func NewReportService(
	sales repository.SaleRepository,
	expenses repository.ExpenseRepository,
	products repository.ProductRepository,
) ReportService {
	return &reportService{sales: sales, expenses: expenses, products: products, now: time.Now}
}

func (s *reportService) SalesStats(ctx context.Context, period string) (*dto.PeriodStatsResponse, error) {
	cur, prev := periodWindows(period, s.now())
	total, count, err := s.sales.SumBetween(ctx, cur.Start, cur.End)
	if err != nil {
		return nil, err
	}
	prevTotal, _, err := s.sales.SumBetween(ctx, prev.Start, prev.End)
	if err != nil {
		return nil, err
	}
	return &dto.PeriodStatsResponse{
		Total:  total,
		Count:  count,
		Growth: growthPercent(total, prevTotal),
		Period: period,
	}, nil
}

func (s *reportService) SalesAnalytics(ctx context.Context, filter dto.RangeFilter) (*dto.SalesAnalyticsResponse, error) {
	from, to, err := parseDateRange(filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	daily, err := s.sales.DailyTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.sales.TopProducts(ctx, from, to, topEntriesLimit)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.sales.RevenueByCategory(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.SalesAnalyticsResponse{
		DailySales:      daily,
		TopProducts:     topProducts,
		SalesByCategory: byCategory,
	}, nil
}

func (s *reportService) ProductCount(ctx context.Context) (*dto.CountResponse, error) {
	n, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CountResponse{Count: n}, nil
}

// ProductGrowth compares the number of products added in the current window
// against the previous one, with the same growth policy as the money stats.
func (s *reportService) ProductGrowth(ctx context.Context, period string) (*dto.PeriodStatsResponse, error) {
	cur, prev := periodWindows(period, s.now())
	curCount, err := s.products.CountCreatedBetween(ctx, cur.Start, cur.End)
	if err != nil {
		return nil, err
	}
	prevCount, err := s.products.CountCreatedBetween(ctx, prev.Start, prev.End)
	if err != nil {
		return nil, err
	}
	return &dto.PeriodStatsResponse{
		Total:  decimal.NewFromInt(curCount),
		Count:  curCount,
		Growth: growthPercent(decimal.NewFromInt(curCount), decimal.NewFromInt(prevCount)),
		Period: period,
	}, nil
}

func (s *reportService) ExpenseStats(ctx context.Context, period string) (*dto.PeriodStatsResponse, error) {
	cur, prev := periodWindows(period, s.now())
	total, count, err := s.expenses.SumBetween(ctx, cur.Start, cur.End)
	if err != nil {
		return nil, err
	}
	prevTotal, _, err := s.expenses.SumBetween(ctx, prev.Start, prev.End)
	if err != nil {
		return nil, err
	}
	return &dto.PeriodStatsResponse{
		Total:  total,
		Count:  count,
		Growth: growthPercent(total, prevTotal),
		Period: period,
	}, nil
}

func (s *reportService) ExpenseAnalytics(ctx context.Context, filter dto.RangeFilter) (*dto.ExpenseAnalyticsResponse, error) {
	from, to, err := parseDateRange(filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	daily, err := s.expenses.DailyTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.expenses.ByCategory(ctx, from, to, 0)
	if err != nil {
		return nil, err
	}
	topCategories, err := s.expenses.ByCategory(ctx, from, to, topEntriesLimit)
	if err != nil {
		return nil, err
	}
	return &dto.ExpenseAnalyticsResponse{
		DailyExpenses:      daily,
		ExpensesByCategory: byCategory,
		TopCategories:      topCategories,
	}, nil
}

func (s *reportService) ExpenseTotal(ctx context.Context, filter dto.RangeFilter) (*dto.TotalResponse, error) {
	from, to, err := parseDateRange(filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	total, err := s.expenses.Total(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.TotalResponse{Total: total}, nil
}
