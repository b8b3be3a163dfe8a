package service

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"paygate-backend/internal/domains/payment/model"
)

// =====================================================
// PAYMENT SERVICE INTERFACE
// =====================================================

type PaymentService interface {
	// CreatePayment looks up the order and registers it with the requested
	// provider, returning the client continuation mechanism.
	CreatePayment(ctx context.Context, req model.CreatePaymentRequest) (*model.PaymentIntentResult, error)

	// HandleWebhook verifies the raw webhook against the provider's signature
	// scheme, deduplicates verified events and records them to the audit sink.
	// Verification failures return (nil, nil): the endpoint acknowledges the
	// delivery without trusting its contents.
	HandleWebhook(ctx context.Context, provider string, rawBody []byte, headers http.Header) (*model.NormalizedWebhookEvent, error)

	Capture(ctx context.Context, provider, paymentID string, amount *decimal.Decimal) (*model.CaptureResult, error)
	Refund(ctx context.Context, provider, paymentID string, amount *decimal.Decimal, reason string) (*model.RefundResult, error)
	FetchStatus(ctx context.Context, provider, paymentID string) (*model.StatusResult, error)

	// Providers lists the gateways available for checkout.
	Providers() []string
}
