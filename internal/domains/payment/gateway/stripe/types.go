package stripe

import (
	"strings"

	"paygate-backend/internal/domains/payment/model"
)

// =====================================================
// WIRE TYPES
// =====================================================

type paymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

type refundObject struct {
	ID              string `json:"id"`
	PaymentIntentID string `json:"payment_intent"`
	Amount          int64  `json:"amount"`
	Status          string `json:"status"`
}

type eventObject struct {
	ID            string            `json:"id"`
	PaymentIntent string            `json:"payment_intent"`
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	Status        string            `json:"status"`
	Metadata      map[string]string `json:"metadata"`
}

type webhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object eventObject `json:"object"`
	} `json:"data"`
}

// mapEventType maps Stripe event types to canonical statuses. Stripe's status
// signal rides on the event type, not the object status field.
func mapEventType(eventType string) model.Status {
	switch {
	case eventType == "payment_intent.succeeded", eventType == "charge.succeeded":
		return model.StatusPaid
	case eventType == "payment_intent.payment_failed", eventType == "charge.failed":
		return model.StatusFailed
	case eventType == "charge.refunded", strings.HasPrefix(eventType, "refund."):
		return model.StatusRefunded
	default:
		return model.StatusPending
	}
}

// mapIntentStatus maps a PaymentIntent status field for status polling.
func mapIntentStatus(status string) model.Status {
	switch status {
	case "succeeded":
		return model.StatusPaid
	case "canceled":
		return model.StatusFailed
	default:
		return model.StatusPending
	}
}
