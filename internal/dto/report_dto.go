package dto

import "github.com/shopspring/decimal"

// ─── Query DTOs ──────────────────────────────────────────────────────────────

// PeriodQuery selects the stats comparison window. Defaults to month.
type PeriodQuery struct {
	Period string `form:"period,default=month" validate:"oneof=week month quarter year"`
}

// RangeFilter is an optional inclusive date range (YYYY-MM-DD on both bounds).
// Records are unfiltered when both bounds are absent.
type RangeFilter struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// PeriodStatsResponse compares the current period window with the
// immediately preceding one. Growth is a percentage rounded to 2 decimals;
// when the previous total is zero it is 100 if the current total is positive,
// 0 otherwise.
type PeriodStatsResponse struct {
	Total  decimal.Decimal `json:"total"`
	Count  int64           `json:"count"`
	Growth float64         `json:"growth"`
	Period string          `json:"period"`
}

// DailyPoint is one calendar day of aggregated amounts.
type DailyPoint struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

type ProductSalesEntry struct {
	Product      string          `json:"product"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

type CategoryRevenueEntry struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
	Count    int64           `json:"count"`
}

type SalesAnalyticsResponse struct {
	DailySales      []DailyPoint           `json:"dailySales"`
	TopProducts     []ProductSalesEntry    `json:"topProducts"`
	SalesByCategory []CategoryRevenueEntry `json:"salesByCategory"`
}

type CategorySpendEntry struct {
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int64           `json:"count"`
	AvgAmount   decimal.Decimal `json:"avgAmount"`
}

type ExpenseAnalyticsResponse struct {
	DailyExpenses      []DailyPoint         `json:"dailyExpenses"`
	ExpensesByCategory []CategorySpendEntry `json:"expensesByCategory"`
	TopCategories      []CategorySpendEntry `json:"topCategories"`
}

type TotalResponse struct {
	Total decimal.Decimal `json:"total"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}
