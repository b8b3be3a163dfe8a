package service

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	orderrepo "paygate-backend/internal/domains/order/repository"
	"paygate-backend/internal/domains/payment/gateway"
	"paygate-backend/internal/domains/payment/model"
	"paygate-backend/internal/infrastructure/audit"
)

// =====================================================
// PAYMENT SERVICE IMPLEMENTATION
// =====================================================

// DedupTTL bounds how long a webhook event key is remembered. Providers stop
// redelivering well before this.
const DedupTTL = 48 * time.Hour

// DedupStore remembers webhook event keys across concurrent duplicate
// deliveries. Backed by Redis SETNX in production.
type DedupStore interface {
	MarkIfFirst(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type paymentService struct {
	registry  *gateway.Registry
	orderRepo orderrepo.OrderRepository
	dedup     DedupStore
	auditSink audit.Sink
	logger    zerolog.Logger
}

func NewPaymentService(
	registry *gateway.Registry,
	orderRepo orderrepo.OrderRepository,
	dedup DedupStore,
	auditSink audit.Sink,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		registry:  registry,
		orderRepo: orderRepo,
		dedup:     dedup,
		auditSink: auditSink,
		logger:    logger.With().Str("component", "payment_service").Logger(),
	}
}

// =====================================================
// CREATE PAYMENT
// =====================================================

func (s *paymentService) CreatePayment(ctx context.Context, req model.CreatePaymentRequest) (*model.PaymentIntentResult, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewPaymentError(model.ErrCodeInvalidProvider, "invalid payment request", err)
	}

	g, err := s.registry.Resolve(req.Provider)
	if err != nil {
		return nil, model.NewPaymentError(model.ErrCodeInvalidProvider, "provider not available", err)
	}

	order, err := s.orderRepo.GetOrderByNumber(ctx, req.OrderNumber)
	if err != nil {
		return nil, model.NewPaymentError(model.ErrCodeOrderNotFound, "order not found", err)
	}

	opts := model.CreateOrderOptions{}
	if req.ReturnURL != nil {
		opts.ReturnURL = *req.ReturnURL
	}
	if req.CancelURL != nil {
		opts.CancelURL = *req.CancelURL
	}

	result, err := g.CreateOrder(ctx, *order, opts)
	if err != nil {
		s.logger.Error().Err(err).
			Str("provider", req.Provider).
			Str("order_number", req.OrderNumber).
			Msg("order creation with provider failed")
		return nil, model.NewPaymentError(model.ErrCodeTransport, "payment initiation failed", err)
	}

	s.auditSink.Record(ctx, audit.Entry{
		Action:    model.AuditActionCreateOrder,
		Provider:  req.Provider,
		OrderID:   order.OrderNumber,
		PaymentID: result.PaymentID,
		Detail: map[string]interface{}{
			"amount":   order.TotalAmount.String(),
			"currency": order.Currency,
		},
	})

	return result, nil
}

// =====================================================
// HANDLE WEBHOOK
// =====================================================

func (s *paymentService) HandleWebhook(ctx context.Context, provider string, rawBody []byte, headers http.Header) (*model.NormalizedWebhookEvent, error) {
	g, err := s.registry.Resolve(provider)
	if err != nil {
		return nil, model.NewPaymentError(model.ErrCodeUnknownProvider, "unknown webhook provider", err)
	}

	event := g.VerifyWebhook(rawBody, headers)
	if event == nil {
		// Rejected deliveries are visible only in logs; the endpoint still
		// acknowledges so the provider does not enter a retry storm.
		s.logger.Warn().Str("provider", provider).Msg("webhook rejected")
		return nil, nil
	}

	first, err := s.dedup.MarkIfFirst(ctx, "webhook:"+event.DedupKey(), DedupTTL)
	if err != nil {
		// Dedup state being down must not drop a verified event; duplicate
		// application is the caller's responsibility in that window.
		s.logger.Error().Err(err).Str("provider", provider).Msg("webhook dedup unavailable")
	} else if !first {
		s.logger.Info().
			Str("provider", provider).
			Str("payment_id", event.PaymentID).
			Msg("duplicate webhook delivery dropped")
		return nil, nil
	}

	s.auditSink.Record(ctx, audit.Entry{
		Action:    model.AuditActionWebhook,
		Provider:  provider,
		OrderID:   event.OrderID,
		PaymentID: event.PaymentID,
		Detail: map[string]interface{}{
			"status":     string(event.Status),
			"event_type": event.EventType,
		},
	})

	return event, nil
}

// =====================================================
// CAPTURE / REFUND / STATUS
// =====================================================

func (s *paymentService) Capture(ctx context.Context, provider, paymentID string, amount *decimal.Decimal) (*model.CaptureResult, error) {
	g, err := s.registry.Resolve(provider)
	if err != nil {
		return nil, model.NewPaymentError(model.ErrCodeInvalidProvider, "provider not available", err)
	}

	result, err := g.Capture(ctx, paymentID, amount)
	if err != nil {
		return nil, model.NewPaymentError(model.ErrCodeTransport, "capture failed", err)
	}

	s.auditSink.Record(ctx, audit.Entry{
		Action:    model.AuditActionCapture,
		Provider:  provider,
		PaymentID: paymentID,
	})
	return result, nil
}

func (s *paymentService) Refund(ctx context.Context, provider, paymentID string, amount *decimal.Decimal, reason string) (*model.RefundResult, error) {
	g, err := s.registry.Resolve(provider)
	if err != nil {
		return nil, model.NewPaymentError(model.ErrCodeInvalidProvider, "provider not available", err)
	}

	result, err := g.Refund(ctx, paymentID, amount, reason)
	if err != nil {
		return nil, model.NewPaymentError(model.ErrCodeTransport, "refund failed", err)
	}

	s.auditSink.Record(ctx, audit.Entry{
		Action:    model.AuditActionRefund,
		Provider:  provider,
		PaymentID: paymentID,
		Detail:    map[string]interface{}{"reason": reason},
	})
	return result, nil
}

func (s *paymentService) FetchStatus(ctx context.Context, provider, paymentID string) (*model.StatusResult, error) {
	g, err := s.registry.Resolve(provider)
	if err != nil {
		return nil, model.NewPaymentError(model.ErrCodeInvalidProvider, "provider not available", err)
	}

	result, err := g.FetchStatus(ctx, paymentID)
	if err != nil {
		return nil, model.NewPaymentError(model.ErrCodeTransport, "status fetch failed", err)
	}
	return result, nil
}

func (s *paymentService) Providers() []string {
	return s.registry.Providers()
}
