package phonepe

import (
	"strings"

	"paygate-backend/internal/domains/payment/model"
)

// =====================================================
// WIRE TYPES
// =====================================================

type paymentInstrument struct {
	Type string `json:"type"`
}

type payRequest struct {
	MerchantID            string            `json:"merchantId"`
	MerchantTransactionID string            `json:"merchantTransactionId"`
	Amount                int64             `json:"amount"` // paise
	RedirectURL           string            `json:"redirectUrl,omitempty"`
	RedirectMode          string            `json:"redirectMode,omitempty"`
	MobileNumber          string            `json:"mobileNumber,omitempty"`
	PaymentInstrument     paymentInstrument `json:"paymentInstrument"`
}

type refundRequest struct {
	MerchantID            string `json:"merchantId"`
	MerchantTransactionID string `json:"merchantTransactionId"`
	OriginalTransactionID string `json:"originalTransactionId"`
	Amount                int64  `json:"amount"` // paise
}

// envelope wraps every PhonePe POST body: the JSON payload rides base64
// encoded in a single request field.
type envelope struct {
	Request string `json:"request"`
}

type redirectInfo struct {
	URL string `json:"url"`
}

type instrumentResponse struct {
	Type         string       `json:"type"`
	RedirectInfo redirectInfo `json:"redirectInfo"`
}

type apiResponseData struct {
	MerchantTransactionID string              `json:"merchantTransactionId"`
	TransactionID         string              `json:"transactionId"`
	Amount                int64               `json:"amount"` // paise
	State                 string              `json:"state"`
	InstrumentResponse    *instrumentResponse `json:"instrumentResponse,omitempty"`
}

type apiResponse struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    apiResponseData `json:"data"`
}

// =====================================================
// STATUS MAP
// =====================================================

// mapStatus normalizes PhonePe's state vocabulary. Undocumented strings land
// on pending, never an error.
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
