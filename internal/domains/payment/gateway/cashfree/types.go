package cashfree

import (
	"strings"

	"github.com/shopspring/decimal"

	"paygate-backend/internal/domains/payment/model"
)

// =====================================================
// WIRE TYPES
// =====================================================

type customerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type orderMeta struct {
	ReturnURL string `json:"return_url,omitempty"`
}

type createOrderRequest struct {
	OrderID         string          `json:"order_id"`
	OrderAmount     decimal.Decimal `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
	CustomerDetails customerDetails `json:"customer_details"`
	OrderMeta       *orderMeta      `json:"order_meta,omitempty"`
}

type createOrderResponse struct {
	CfOrderID        string `json:"cf_order_id"`
	OrderID          string `json:"order_id"`
	OrderStatus      string `json:"order_status"`
	PaymentSessionID string `json:"payment_session_id"`
	PaymentLink      string `json:"payment_link"`
}

type orderResponse struct {
	OrderID     string          `json:"order_id"`
	OrderStatus string          `json:"order_status"`
	OrderAmount decimal.Decimal `json:"order_amount"`
}

type refundResponse struct {
	CfRefundID   string          `json:"cf_refund_id"`
	RefundID     string          `json:"refund_id"`
	RefundStatus string          `json:"refund_status"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
}

type webhookPayload struct {
	Type string      `json:"type"`
	Data webhookData `json:"data"`
}

type webhookData struct {
	OrderID          string          `json:"order_id"`
	CfPaymentID      string          `json:"cf_payment_id"`
	PaymentSessionID string          `json:"payment_session_id"`
	PaymentStatus    string          `json:"payment_status"`
	OrderAmount      decimal.Decimal `json:"order_amount"`
}

// =====================================================
// STATUS MAP
// =====================================================

// mapStatus normalizes Cashfree's status vocabulary. Anything undocumented
// lands on pending, never an error.
func mapStatus(providerStatus string) model.Status {
	switch strings.ToLower(providerStatus) {
	case "success", "paid":
		return model.StatusPaid
	case "failed":
		return model.StatusFailed
	case "refunded":
		return model.StatusRefunded
	default:
		return model.StatusPending
	}
}
