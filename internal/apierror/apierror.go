// Package apierror provides the error response structures for the API.
// All errors returned to clients go through this package so that the envelope
// stays consistent and internal details (stack traces, SQL errors) never leak.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Error string `json:"error"`
}

func New(msg string) *APIError {
	return &APIError{Error: msg}
}

// StockError carries the available/requested detail for insufficient-stock
// rejections on sale creation.
type StockError struct {
	Error     string `json:"error"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

func NewStock(msg string, available, requested int) *StockError {
	return &StockError{Error: msg, Available: available, Requested: requested}
}
