package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"paygate-backend/internal/domains/payment/model"
	"paygate-backend/internal/domains/payment/service"
	"paygate-backend/internal/shared/response"
)

type WebhookHandler struct {
	paymentService service.PaymentService
	logger         zerolog.Logger
}

func NewWebhookHandler(paymentService service.PaymentService, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		paymentService: paymentService,
		logger:         logger.With().Str("component", "webhook_handler").Logger(),
	}
}

// Handle receives a provider webhook delivery
// POST /api/v1/webhooks/:provider
//
// The raw body bytes are passed unmodified into verification: every provider
// signs the literal byte stream, so re-serializing a parse would break the
// signature. Once the provider is known, the endpoint always acknowledges
// with 200 — rejected or duplicate deliveries included — so providers do not
// retry-storm us over data we chose to discard.
func (h *WebhookHandler) Handle(c *gin.Context) {
	provider := c.Param("provider")

	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Warn().Err(err).Str("provider", provider).Msg("failed to read webhook body")
		response.BadRequest(c, "unreadable body")
		return
	}

	event, err := h.paymentService.HandleWebhook(c.Request.Context(), provider, rawBody, c.Request.Header)
	if err != nil {
		var pe *model.PaymentError
		if errors.As(err, &pe) && pe.Code == model.ErrCodeUnknownProvider {
			response.NotFound(c, "unknown provider")
			return
		}
		h.logger.Error().Err(err).Str("provider", provider).Msg("webhook handling failed")
		response.InternalServerError(c, "webhook handling failed")
		return
	}

	if event == nil {
		// Rejected or duplicate: acknowledged, discarded.
		response.Success(c, http.StatusOK, gin.H{"received": true})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"received":   true,
		"payment_id": event.PaymentID,
		"status":     event.Status,
	})
}
