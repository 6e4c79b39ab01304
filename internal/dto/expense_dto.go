package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateExpenseRequest struct {
	Category string          `json:"category" validate:"required,min=1"`
	Amount   decimal.Decimal `json:"amount"   validate:"min=0"`
	// ExpenseDate is YYYY-MM-DD or RFC 3339; defaults to now when omitted.
	ExpenseDate *string `json:"expense_date"`
	Description *string `json:"description"`
}

type UpdateExpenseRequest struct {
	Category    *string          `json:"category" validate:"omitempty,min=1"`
	Amount      *decimal.Decimal `json:"amount"`
	ExpenseDate *string          `json:"expense_date"`
	Description *string          `json:"description"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ExpenseResponse struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expense_date"`
	Description *string         `json:"description"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   string          `json:"created_at"`
}
