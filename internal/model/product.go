package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. StockQuantity is never negative: decrements go
// through ProductRepository.DecrementStockTx which guards the update with a
// stock_quantity >= ? condition.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"index;not null"`
	Description   *string
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	Category      string          `gorm:"index;not null;default:'General'"`
	// SKU is optional but unique when present (NULLs do not collide).
	SKU       *string `gorm:"uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
