package mock

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	ordermodel "paygate-backend/internal/domains/order/model"
	"paygate-backend/internal/domains/payment/model"
)

// =====================================================
// MOCK GATEWAY FOR TESTING
// =====================================================

type MockGateway struct {
	ProviderName     string
	FailCreateOrder  bool
	FailRefund       bool
	WebhookEvent     *model.NormalizedWebhookEvent // returned verbatim by VerifyWebhook
	StatusToReport   model.Status
	CreateOrderCalls []ordermodel.Order
	RefundCalls      []string
}

func NewMockGateway(provider string) *MockGateway {
	return &MockGateway{
		ProviderName:   provider,
		StatusToReport: model.StatusPending,
	}
}

func (m *MockGateway) Name() string {
	return m.ProviderName
}

func (m *MockGateway) CreateOrder(_ context.Context, order ordermodel.Order, _ model.CreateOrderOptions) (*model.PaymentIntentResult, error) {
	m.CreateOrderCalls = append(m.CreateOrderCalls, order)
	if m.FailCreateOrder {
		return nil, fmt.Errorf("mock order creation failed")
	}

	redirect := fmt.Sprintf("https://mock-gateway.test/pay?ref=%s", order.OrderNumber)
	return &model.PaymentIntentResult{
		PaymentID:   fmt.Sprintf("MOCK_%s_%d", order.OrderNumber, time.Now().Unix()),
		Provider:    m.ProviderName,
		Status:      model.StatusCreated,
		Amount:      order.TotalAmount,
		Currency:    order.Currency,
		RedirectURL: &redirect,
	}, nil
}

// VerifyWebhook returns whatever event the test staged, nil by default.
func (m *MockGateway) VerifyWebhook(_ []byte, _ http.Header) *model.NormalizedWebhookEvent {
	return m.WebhookEvent
}

func (m *MockGateway) Capture(_ context.Context, paymentID string, amount *decimal.Decimal) (*model.CaptureResult, error) {
	result := &model.CaptureResult{PaymentID: paymentID, Status: model.StatusCaptured}
	if amount != nil {
		result.Amount = *amount
	}
	return result, nil
}

func (m *MockGateway) Refund(_ context.Context, paymentID string, amount *decimal.Decimal, _ string) (*model.RefundResult, error) {
	m.RefundCalls = append(m.RefundCalls, paymentID)
	if m.FailRefund {
		return nil, fmt.Errorf("mock refund failed")
	}

	result := &model.RefundResult{
		PaymentID: paymentID,
		RefundID:  fmt.Sprintf("MOCK_REFUND_%d", time.Now().Unix()),
		Status:    model.StatusRefunded,
	}
	if amount != nil {
		result.Amount = *amount
	}
	return result, nil
}

func (m *MockGateway) FetchStatus(_ context.Context, paymentID string) (*model.StatusResult, error) {
	return &model.StatusResult{PaymentID: paymentID, Status: m.StatusToReport}, nil
}
