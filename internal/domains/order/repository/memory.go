package repository

import (
	"context"
	"sync"

	"paygate-backend/internal/domains/order/model"
	paymodel "paygate-backend/internal/domains/payment/model"
)

// =====================================================
// IN-MEMORY REPOSITORY (tests)
// =====================================================

type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]model.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[string]model.Order)}
}

func (r *MemoryOrderRepository) Put(order model.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.OrderNumber] = order
}

func (r *MemoryOrderRepository) GetOrderByNumber(_ context.Context, orderNumber string) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderNumber]
	if !ok {
		return nil, paymodel.ErrOrderNotFound
	}
	return &order, nil
}
