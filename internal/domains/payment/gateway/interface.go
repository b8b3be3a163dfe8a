package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	ordermodel "paygate-backend/internal/domains/order/model"
	"paygate-backend/internal/domains/payment/model"
)

// =====================================================
// GATEWAY CONTRACT
// =====================================================

// Gateway is the uniform contract every provider adapter implements.
// Adapters are stateless after construction: credentials are resolved once
// and held as immutable fields, so one instance is safe for concurrent use.
type Gateway interface {
	// Name returns the provider key (cashfree, payu, phonepe, razorpay, stripe).
	Name() string

	// CreateOrder registers the order with the provider and returns the
	// client continuation mechanism (redirect URL, client secret or form data).
	// Fails with a *model.TransportError on a non-2xx response and with
	// model.ErrConfiguration if a required credential is absent.
	CreateOrder(ctx context.Context, order ordermodel.Order, opts model.CreateOrderOptions) (*model.PaymentIntentResult, error)

	// VerifyWebhook validates an inbound webhook against the provider's
	// signature scheme and returns the normalized event, or nil on ANY
	// failure (bad signature, malformed body, missing secret). It never
	// returns an error: webhook traffic is attacker-reachable and must not
	// be able to fault the endpoint.
	//
	// rawBody must be the literal request bytes; every signature scheme is
	// computed over the unmodified byte stream.
	VerifyWebhook(rawBody []byte, headers http.Header) *model.NormalizedWebhookEvent

	// Capture captures an authorized payment. A nil amount means full capture.
	Capture(ctx context.Context, paymentID string, amount *decimal.Decimal) (*model.CaptureResult, error)

	// Refund refunds a payment. A nil amount means full refund.
	Refund(ctx context.Context, paymentID string, amount *decimal.Decimal, reason string) (*model.RefundResult, error)

	// FetchStatus queries the provider for the payment's current state.
	FetchStatus(ctx context.Context, paymentID string) (*model.StatusResult, error)
}

// DefaultTimeout bounds every outbound provider call.
const DefaultTimeout = 30 * time.Second

// DefaultHTTPClient returns the client adapters fall back to when the caller
// does not inject one.
func DefaultHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}
