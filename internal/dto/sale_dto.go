package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type CreateSaleRequest struct {
	Items        []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	CustomerName *string           `json:"customer_name"`
}

// SaleFilter is bound from the query string of GET /api/sales.
// StartDate/EndDate are YYYY-MM-DD, inclusive on both bounds.
type SaleFilter struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID    string          `json:"product_id"`
	Product      string          `json:"product"`
	QuantitySold int             `json:"quantity_sold"`
	PricePerUnit decimal.Decimal `json:"price_per_unit_at_sale"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	SaleDate      string             `json:"sale_date"`
	CustomerName  string             `json:"customer_name"`
	SoldBy        string             `json:"sold_by"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     string             `json:"created_at"`
}
