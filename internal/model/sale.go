package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is an immutable sales transaction. TotalAmount is derived as the sum
// of its items' quantity × unit price, priced at validation time.
// InvoiceNumber is INV- plus a 6-digit zero-padded value drawn from the
// sales_invoice_seq PostgreSQL sequence.
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SaleDate      time.Time       `gorm:"index;not null"`
	CustomerName  string          `gorm:"not null;default:'Cash Customer'"`
	InvoiceNumber string          `gorm:"uniqueIndex;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	User  *User      `gorm:"foreignKey:UserID"`
	Items []SaleItem `gorm:"foreignKey:SaleID"`
}

// SaleItem is one line of a sale. ProductName and PricePerUnitAtSale are
// snapshots taken at transaction time so historical sales stay renderable
// after the product is edited or deleted.
type SaleItem struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID             uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductName        string          `gorm:"not null"`
	QuantitySold       int             `gorm:"not null"`
	PricePerUnitAtSale decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt          time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
