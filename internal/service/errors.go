package service

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups of products, sales, expenses or users that do not
// exist. Handlers map it to 404.
var ErrNotFound = errors.New("not found")

// InsufficientStockError is returned when a sale requests more units of a
// product than are available. Handlers map it to 400 with the
// available/requested detail.
type InsufficientStockError struct {
	Product   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product: %s", e.Product)
}
