package razorpay

import (
	"paygate-backend/internal/domains/payment/model"
)

// =====================================================
// WIRE TYPES
// =====================================================

type createOrderRequest struct {
	Amount   int64             `json:"amount"` // minor units (paise)
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type paymentEntity struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type captureRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type refundRequest struct {
	Amount int64             `json:"amount,omitempty"`
	Notes  map[string]string `json:"notes,omitempty"`
}

type refundEntity struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
}

type webhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// mapStatus passes Razorpay statuses through as-is. Razorpay's vocabulary
// ("authorized", "captured", "refunded", ...) partially overlaps ours and the
// order flow has always consumed the raw values; a mapping table here would
// change stored statuses for live merchants.
func mapStatus(state string) model.Status {
	return model.Status(state)
}
