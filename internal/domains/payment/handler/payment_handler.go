package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"paygate-backend/internal/domains/payment/model"
	"paygate-backend/internal/domains/payment/service"
	"paygate-backend/internal/shared/response"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates new payment handler
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// =====================================================
// CHECKOUT ENDPOINTS
// =====================================================

// CreatePayment initiates payment for an order
// POST /api/v1/payments/create
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req model.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payment request", err.Error())
		return
	}

	result, err := h.paymentService.CreatePayment(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapPaymentError(err)
		response.ErrorResponse(c, statusCode, errCode, "payment initiation failed")
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ListProviders lists the gateways available for checkout
// GET /api/v1/payments/providers
func (h *PaymentHandler) ListProviders(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"providers": h.paymentService.Providers()})
}

// FetchStatus polls the provider for the payment's current state
// GET /api/v1/payments/:provider/:payment_id
func (h *PaymentHandler) FetchStatus(c *gin.Context) {
	provider := c.Param("provider")
	paymentID := c.Param("payment_id")

	result, err := h.paymentService.FetchStatus(c.Request.Context(), provider, paymentID)
	if err != nil {
		statusCode, errCode := mapPaymentError(err)
		response.ErrorResponse(c, statusCode, errCode, "status fetch failed")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// =====================================================
// ADMIN ENDPOINTS
// =====================================================

// Capture captures an authorized payment
// POST /api/v1/admin/payments/:provider/:payment_id/capture
func (h *PaymentHandler) Capture(c *gin.Context) {
	var req model.CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid capture request", err.Error())
		return
	}

	result, err := h.paymentService.Capture(c.Request.Context(), c.Param("provider"), c.Param("payment_id"), req.Amount)
	if err != nil {
		statusCode, errCode := mapPaymentError(err)
		response.ErrorResponse(c, statusCode, errCode, "capture failed")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Refund refunds a payment in full or in part
// POST /api/v1/admin/payments/:provider/:payment_id/refund
func (h *PaymentHandler) Refund(c *gin.Context) {
	var req model.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid refund request", err.Error())
		return
	}

	result, err := h.paymentService.Refund(c.Request.Context(), c.Param("provider"), c.Param("payment_id"), req.Amount, req.Reason)
	if err != nil {
		statusCode, errCode := mapPaymentError(err)
		response.ErrorResponse(c, statusCode, errCode, "refund failed")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// =====================================================
// ERROR MAPPING
// =====================================================

func mapPaymentError(err error) (int, string) {
	var pe *model.PaymentError
	if errors.As(err, &pe) {
		switch pe.Code {
		case model.ErrCodeOrderNotFound:
			return http.StatusNotFound, pe.Code
		case model.ErrCodeInvalidProvider, model.ErrCodeInvalidAmount:
			return http.StatusBadRequest, pe.Code
		case model.ErrCodeUnknownProvider:
			return http.StatusNotFound, pe.Code
		case model.ErrCodeConfiguration:
			return http.StatusServiceUnavailable, pe.Code
		case model.ErrCodeTransport:
			return http.StatusBadGateway, pe.Code
		case model.ErrCodeUnauthorized:
			return http.StatusUnauthorized, pe.Code
		}
	}
	return http.StatusInternalServerError, model.ErrCodeInternalError
}
