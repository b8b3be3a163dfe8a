package payu

import (
	"strings"

	"paygate-backend/internal/domains/payment/model"
)

// =====================================================
// WEBSERVICE COMMANDS
// =====================================================

const (
	commandRefund = "cancel_refund_transaction"
	commandVerify = "verify_payment"
)

type refundResponse struct {
	Status    int    `json:"status"`
	Msg       string `json:"msg"`
	RequestID string `json:"request_id"`
}

type verifyResponse struct {
	Status             int                          `json:"status"`
	Msg                string                       `json:"msg"`
	TransactionDetails map[string]transactionDetail `json:"transaction_details"`
}

type transactionDetail struct {
	MihpayID string `json:"mihpayid"`
	Status   string `json:"status"`
	Amount   string `json:"amt"`
}

// =====================================================
// STATUS MAP
// =====================================================

// mapStatus normalizes PayU's status vocabulary.
//
// PayU's own "pending" maps to failed here, matching the behavior the order
// flow has always run with; changing it needs product confirmation first.
// Undocumented strings land on pending.
func mapStatus(providerStatus string) model.Status {
	switch strings.ToLower(providerStatus) {
	case "success":
		return model.StatusPaid
	case "failure", "pending":
		return model.StatusFailed
	default:
		return model.StatusPending
	}
}
