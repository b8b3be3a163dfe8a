package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// =====================================================
// CREATE PAYMENT REQUEST/RESPONSE
// =====================================================

type CreatePaymentRequest struct {
	OrderNumber string  `json:"order_number" binding:"required"`
	Provider    string  `json:"provider" binding:"required"`
	ReturnURL   *string `json:"return_url,omitempty"`
	CancelURL   *string `json:"cancel_url,omitempty"`
}

// Validate validates CreatePaymentRequest
func (req CreatePaymentRequest) Validate() error {
	providers := make([]interface{}, 0, len(ValidProviders))
	for _, p := range ValidProviders {
		providers = append(providers, p)
	}

	return validation.ValidateStruct(&req,
		validation.Field(&req.OrderNumber, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.Provider, validation.Required, validation.In(providers...)),
		validation.Field(&req.ReturnURL, is.URL),
		validation.Field(&req.CancelURL, is.URL),
	)
}

// CreateOrderOptions carries the optional client continuation URLs passed
// through to the provider on order creation.
type CreateOrderOptions struct {
	ReturnURL string
	CancelURL string
}

// =====================================================
// ADMIN CAPTURE/REFUND REQUESTS
// =====================================================

type CaptureRequest struct {
	// Amount omitted means full-amount capture.
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

func (req CaptureRequest) Validate() error {
	if req.Amount != nil && req.Amount.LessThanOrEqual(decimal.Zero) {
		return validation.NewError("validation_amount", "amount must be positive")
	}
	return nil
}

type RefundRequest struct {
	// Amount omitted means full refund.
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Reason string           `json:"reason" binding:"required"`
}

func (req RefundRequest) Validate() error {
	if req.Amount != nil && req.Amount.LessThanOrEqual(decimal.Zero) {
		return validation.NewError("validation_amount", "amount must be positive")
	}
	return validation.ValidateStruct(&req,
		validation.Field(&req.Reason, validation.Required, validation.Length(3, 500)),
	)
}
