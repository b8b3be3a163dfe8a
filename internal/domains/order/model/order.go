package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is read-only to the payment core. TotalAmount is immutable once the
// order reaches a provider; adapters never recompute or round it outside the
// money converter.
type Order struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"` // Globally unique, provider-visible reference
	TotalAmount   decimal.Decimal `json:"total_amount"` // Major units
	Currency      string          `json:"currency"`     // ISO 4217
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	CreatedAt     time.Time       `json:"created_at"`
}
