package service

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordermodel "paygate-backend/internal/domains/order/model"
	orderrepo "paygate-backend/internal/domains/order/repository"
	"paygate-backend/internal/domains/payment/gateway"
	"paygate-backend/internal/domains/payment/gateway/mock"
	"paygate-backend/internal/domains/payment/model"
	"paygate-backend/internal/infrastructure/audit"
)

// =====================================================
// TEST FIXTURES
// =====================================================

type memoryDedup struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemoryDedup() *memoryDedup {
	return &memoryDedup{seen: make(map[string]bool)}
}

func (d *memoryDedup) MarkIfFirst(_ context.Context, key string, _ time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

type fixture struct {
	service PaymentService
	gateway *mock.MockGateway
	orders  *orderrepo.MemoryOrderRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	g := mock.NewMockGateway(model.ProviderStripe)
	registry := gateway.NewRegistry()
	registry.Register(g)

	orders := orderrepo.NewMemoryOrderRepository()
	orders.Put(ordermodel.Order{
		OrderNumber: "ORD1",
		TotalAmount: decimal.RequireFromString("19.99"),
		Currency:    "USD",
	})

	svc := NewPaymentService(registry, orders, newMemoryDedup(), audit.NopSink{}, zerolog.Nop())
	return &fixture{service: svc, gateway: g, orders: orders}
}

// =====================================================
// CREATE PAYMENT
// =====================================================

func TestCreatePayment(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.CreatePayment(context.Background(), model.CreatePaymentRequest{
		OrderNumber: "ORD1",
		Provider:    model.ProviderStripe,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusCreated, result.Status)
	assert.True(t, result.Amount.Equal(decimal.RequireFromString("19.99")))
	require.Len(t, f.gateway.CreateOrderCalls, 1)
	assert.Equal(t, "ORD1", f.gateway.CreateOrderCalls[0].OrderNumber)
}

func TestCreatePayment_UnknownOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreatePayment(context.Background(), model.CreatePaymentRequest{
		OrderNumber: "NOPE",
		Provider:    model.ProviderStripe,
	})
	require.Error(t, err)

	var pe *model.PaymentError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, model.ErrCodeOrderNotFound, pe.Code)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestCreatePayment_InvalidProvider(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreatePayment(context.Background(), model.CreatePaymentRequest{
		OrderNumber: "ORD1",
		Provider:    "paytm",
	})
	require.Error(t, err)

	var pe *model.PaymentError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, model.ErrCodeInvalidProvider, pe.Code)
}

func TestCreatePayment_UnregisteredProvider(t *testing.T) {
	f := newFixture(t)

	// Valid provider key, but no gateway registered for it.
	_, err := f.service.CreatePayment(context.Background(), model.CreatePaymentRequest{
		OrderNumber: "ORD1",
		Provider:    model.ProviderPayU,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownProvider)
}

func TestCreatePayment_GatewayFailure(t *testing.T) {
	f := newFixture(t)
	f.gateway.FailCreateOrder = true

	_, err := f.service.CreatePayment(context.Background(), model.CreatePaymentRequest{
		OrderNumber: "ORD1",
		Provider:    model.ProviderStripe,
	})
	require.Error(t, err)

	var pe *model.PaymentError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, model.ErrCodeTransport, pe.Code)
}

// =====================================================
// HANDLE WEBHOOK
// =====================================================

func TestHandleWebhook_VerifiedEvent(t *testing.T) {
	f := newFixture(t)
	f.gateway.WebhookEvent = &model.NormalizedWebhookEvent{
		Provider:  model.ProviderStripe,
		PaymentID: "pi_1",
		OrderID:   "ORD1",
		Status:    model.StatusPaid,
		EventType: "payment_intent.succeeded",
	}

	event, err := f.service.HandleWebhook(context.Background(), model.ProviderStripe, []byte(`{}`), http.Header{})
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, model.StatusPaid, event.Status)
}

func TestHandleWebhook_RejectedDeliveryIsSilent(t *testing.T) {
	f := newFixture(t)
	// Mock returns nil by default: signature failure.

	event, err := f.service.HandleWebhook(context.Background(), model.ProviderStripe, []byte(`{}`), http.Header{})
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestHandleWebhook_UnknownProvider(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.HandleWebhook(context.Background(), "paytm", []byte(`{}`), http.Header{})
	require.Error(t, err)

	var pe *model.PaymentError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, model.ErrCodeUnknownProvider, pe.Code)
}

func TestHandleWebhook_DuplicateDeliveryDropped(t *testing.T) {
	f := newFixture(t)
	f.gateway.WebhookEvent = &model.NormalizedWebhookEvent{
		Provider:  model.ProviderStripe,
		PaymentID: "pi_1",
		Status:    model.StatusPaid,
		EventType: "payment_intent.succeeded",
	}

	first, err := f.service.HandleWebhook(context.Background(), model.ProviderStripe, []byte(`{}`), http.Header{})
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := f.service.HandleWebhook(context.Background(), model.ProviderStripe, []byte(`{}`), http.Header{})
	require.NoError(t, err)
	assert.Nil(t, second)
}

// =====================================================
// CAPTURE / REFUND / STATUS
// =====================================================

func TestRefund(t *testing.T) {
	f := newFixture(t)

	amount := decimal.RequireFromString("5.00")
	result, err := f.service.Refund(context.Background(), model.ProviderStripe, "pi_1", &amount, "customer request")
	require.NoError(t, err)

	assert.Equal(t, model.StatusRefunded, result.Status)
	assert.Equal(t, []string{"pi_1"}, f.gateway.RefundCalls)
}

func TestRefund_GatewayFailure(t *testing.T) {
	f := newFixture(t)
	f.gateway.FailRefund = true

	_, err := f.service.Refund(context.Background(), model.ProviderStripe, "pi_1", nil, "customer request")
	require.Error(t, err)

	var pe *model.PaymentError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, model.ErrCodeTransport, pe.Code)
}

func TestFetchStatus(t *testing.T) {
	f := newFixture(t)
	f.gateway.StatusToReport = model.StatusPaid

	result, err := f.service.FetchStatus(context.Background(), model.ProviderStripe, "pi_1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, result.Status)
}

func TestProviders(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, []string{model.ProviderStripe}, f.service.Providers())
}
