package cashfree

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	ordermodel "paygate-backend/internal/domains/order/model"
	"paygate-backend/internal/domains/payment/model"
)

// =====================================================
// CASHFREE CLIENT
// =====================================================

type Client struct {
	config     *Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient builds a Cashfree adapter. A nil httpClient falls back to a
// 30 second bounded default.
func NewClient(config *Config, httpClient *http.Client, logger zerolog.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		logger:     logger.With().Str("gateway", model.ProviderCashfree).Logger(),
	}, nil
}

func (c *Client) Name() string {
	return model.ProviderCashfree
}

// =====================================================
// CREATE ORDER
// =====================================================

func (c *Client) CreateOrder(ctx context.Context, order ordermodel.Order, opts model.CreateOrderOptions) (*model.PaymentIntentResult, error) {
	req := createOrderRequest{
		OrderID:       order.OrderNumber,
		OrderAmount:   order.TotalAmount,
		OrderCurrency: order.Currency,
		CustomerDetails: customerDetails{
			CustomerID:    order.OrderNumber,
			CustomerName:  order.CustomerName,
			CustomerEmail: order.CustomerEmail,
			CustomerPhone: order.CustomerPhone,
		},
	}
	if opts.ReturnURL != "" {
		req.OrderMeta = &orderMeta{ReturnURL: opts.ReturnURL}
	}

	var resp createOrderResponse
	raw, err := c.postJSON(ctx, "create_order", c.config.OrdersURL(), req, &resp)
	if err != nil {
		return nil, err
	}

	result := &model.PaymentIntentResult{
		PaymentID: resp.PaymentSessionID,
		Provider:  model.ProviderCashfree,
		Status:    model.StatusCreated,
		Amount:    order.TotalAmount,
		Currency:  order.Currency,
		Raw:       raw,
	}
	if resp.PaymentLink != "" {
		link := resp.PaymentLink
		result.RedirectURL = &link
	}

	return result, nil
}

// =====================================================
// VERIFY WEBHOOK
// =====================================================

func (c *Client) VerifyWebhook(rawBody []byte, headers http.Header) *model.NormalizedWebhookEvent {
	received := headers.Get("x-cashfree-signature")
	if !VerifySignature(rawBody, received, c.config.WebhookSecret) {
		c.logger.Warn().Msg("webhook signature rejected")
		return nil
	}

	var payload webhookPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		c.logger.Warn().Err(err).Msg("webhook body unparseable")
		return nil
	}

	paymentID := payload.Data.CfPaymentID
	if paymentID == "" {
		paymentID = payload.Data.PaymentSessionID
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(rawBody, &raw)

	return &model.NormalizedWebhookEvent{
		Provider:  model.ProviderCashfree,
		PaymentID: paymentID,
		OrderID:   payload.Data.OrderID,
		Status:    mapStatus(payload.Data.PaymentStatus),
		Amount:    payload.Data.OrderAmount,
		EventType: payload.Type,
		Raw:       raw,
	}
}

// =====================================================
// CAPTURE / REFUND / STATUS
// =====================================================

// Capture is a no-op success: Cashfree auto-captures on payment.
func (c *Client) Capture(_ context.Context, paymentID string, amount *decimal.Decimal) (*model.CaptureResult, error) {
	result := &model.CaptureResult{
		PaymentID: paymentID,
		Status:    model.StatusCaptured,
	}
	if amount != nil {
		result.Amount = *amount
	}
	return result, nil
}

func (c *Client) Refund(ctx context.Context, paymentID string, amount *decimal.Decimal, reason string) (*model.RefundResult, error) {
	body := map[string]interface{}{
		"refund_id":   "rf_" + paymentID,
		"refund_note": reason,
	}
	if amount != nil {
		body["refund_amount"] = *amount
	}

	var resp refundResponse
	raw, err := c.postJSON(ctx, "refund", c.config.RefundsURL(paymentID), body, &resp)
	if err != nil {
		return nil, err
	}

	return &model.RefundResult{
		PaymentID: paymentID,
		RefundID:  resp.CfRefundID,
		Status:    model.StatusRefunded,
		Amount:    resp.RefundAmount,
		Raw:       raw,
	}, nil
}

func (c *Client) FetchStatus(ctx context.Context, paymentID string) (*model.StatusResult, error) {
	var resp orderResponse
	raw, err := c.getJSON(ctx, "fetch_status", c.config.OrderURL(paymentID), &resp)
	if err != nil {
		return nil, err
	}

	return &model.StatusResult{
		PaymentID: paymentID,
		Status:    mapStatus(resp.OrderStatus),
		Amount:    resp.OrderAmount,
		Raw:       raw,
	}, nil
}

// =====================================================
// TRANSPORT HELPERS
// =====================================================

func (c *Client) postJSON(ctx context.Context, op, url string, body interface{}, out interface{}) (map[string]interface{}, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, op, out)
}

func (c *Client) getJSON(ctx context.Context, op, url string, out interface{}) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", op, err)
	}

	return c.do(req, op, out)
}

func (c *Client) do(req *http.Request, op string, out interface{}) (map[string]interface{}, error) {
	req.Header.Set("x-client-id", c.config.AppID)
	req.Header.Set("x-client-secret", c.config.SecretKey)
	req.Header.Set("x-api-version", APIVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &model.TransportError{Provider: model.ProviderCashfree, Operation: op, Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.TransportError{Provider: model.ProviderCashfree, Operation: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.TransportError{
			Provider:   model.ProviderCashfree,
			Operation:  op,
			StatusCode: resp.StatusCode,
			Body:       string(bodyBytes),
		}
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", op, err)
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(bodyBytes, &raw)
	return raw, nil
}
