package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name          string          `json:"name"           validate:"required,min=1,max=120"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"          validate:"min=0"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0"`
	// Category defaults to "General" when omitted.
	Category string  `json:"category"`
	SKU      *string `json:"sku"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"           validate:"omitempty,min=1,max=120"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity" validate:"omitempty,min=0"`
	Category      *string          `json:"category"       validate:"omitempty,min=1"`
	SKU           *string          `json:"sku"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Category      string          `json:"category"`
	SKU           *string         `json:"sku"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
