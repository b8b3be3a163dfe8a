package repository

import (
	"context"

	"paygate-backend/internal/domains/order/model"
)

// =====================================================
// ORDER REPOSITORY INTERFACE
// =====================================================

// OrderRepository is the narrow read-only view the payment core needs from
// order management. Order rows are owned elsewhere.
type OrderRepository interface {
	GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
}
