package model

import (
	"github.com/shopspring/decimal"
)

// =====================================================
// PAYMENT INTENT RESULT
// =====================================================

// PaymentIntentResult is the output of Gateway.CreateOrder. Exactly one of
// RedirectURL / ClientSecret / FormData carries the client continuation
// mechanism, depending on the provider.
type PaymentIntentResult struct {
	PaymentID    string                 `json:"payment_id"`
	Provider     string                 `json:"provider"`
	Status       Status                 `json:"status"`
	Amount       decimal.Decimal        `json:"amount"`
	Currency     string                 `json:"currency"`
	RedirectURL  *string                `json:"redirect_url,omitempty"`  // Cashfree, PhonePe
	ClientSecret *string                `json:"client_secret,omitempty"` // Stripe
	FormData     map[string]string      `json:"form_data,omitempty"`     // PayU browser form post
	Raw          map[string]interface{} `json:"raw,omitempty"`           // Opaque provider response for audit
}

// =====================================================
// NORMALIZED WEBHOOK EVENT
// =====================================================

// NormalizedWebhookEvent is only ever constructed after signature
// verification succeeds. Unverified wire data never becomes one.
type NormalizedWebhookEvent struct {
	Provider  string                 `json:"provider"`
	PaymentID string                 `json:"payment_id"`
	OrderID   string                 `json:"order_id"` // Provider's echoed reference, matches Order.OrderNumber
	Status    Status                 `json:"status"`
	Amount    decimal.Decimal        `json:"amount"` // Major units
	EventType string                 `json:"event_type,omitempty"`
	Raw       map[string]interface{} `json:"raw,omitempty"`
}

// DedupKey identifies a delivery for idempotent application by the caller.
// Providers redeliver webhooks; the key is stable across redeliveries of the
// same logical event.
func (e *NormalizedWebhookEvent) DedupKey() string {
	return e.Provider + ":" + e.PaymentID + ":" + e.EventType + ":" + string(e.Status)
}

// =====================================================
// OPERATION RESULTS
// =====================================================

// CaptureResult is the outcome of a capture call. Created per-call, owned by
// the caller; this core never stores it.
type CaptureResult struct {
	PaymentID string                 `json:"payment_id"`
	Status    Status                 `json:"status"`
	Amount    decimal.Decimal        `json:"amount"`
	Raw       map[string]interface{} `json:"raw,omitempty"`
}

type RefundResult struct {
	PaymentID string                 `json:"payment_id"`
	RefundID  string                 `json:"refund_id"`
	Status    Status                 `json:"status"`
	Amount    decimal.Decimal        `json:"amount"`
	Raw       map[string]interface{} `json:"raw,omitempty"`
}

type StatusResult struct {
	PaymentID string                 `json:"payment_id"`
	Status    Status                 `json:"status"`
	Amount    decimal.Decimal        `json:"amount"`
	Raw       map[string]interface{} `json:"raw,omitempty"`
}
