package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"paygate-backend/internal/domains/order/model"
	paymodel "paygate-backend/internal/domains/payment/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresOrderRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &postgresOrderRepository{pool: pool}
}

func (r *postgresOrderRepository) GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	query := `
		SELECT id, order_number, total_amount, currency,
		       customer_name, customer_email, customer_phone, created_at
		FROM orders
		WHERE order_number = $1
	`

	var order model.Order
	err := r.pool.QueryRow(ctx, query, orderNumber).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.TotalAmount,
		&order.Currency,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, paymodel.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", orderNumber, err)
	}

	return &order, nil
}
