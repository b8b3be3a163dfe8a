package razorpay

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
	"paygate-backend/internal/domains/payment/money"
)

// =====================================================
// RAZORPAY CLIENT
// =====================================================

type Client struct {
	config     *Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient builds a Razorpay adapter. A nil httpClient falls back to a
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
		logger:     logger.With().Str("gateway", model.ProviderRazorpay).Logger(),
	}, nil
}

func (c *Client) Name() string {
	return model.ProviderRazorpay
}

// =====================================================
// CREATE ORDER
// =====================================================

func (c *Client) CreateOrder(ctx context.Context, order ordermodel.Order, _ model.CreateOrderOptions) (*model.PaymentIntentResult, error) {
	minor, err := money.ToMinorUnits(order.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid order amount: %w", err)
	}

	req := createOrderRequest{
		Amount:   minor,
		Currency: order.Currency,
		Receipt:  order.OrderNumber,
		Notes:    map[string]string{"order_number": order.OrderNumber},
	}

	var resp orderResponse
	raw, err := c.postJSON(ctx, "create_order", c.config.BaseURL+"/orders", req, &resp)
	if err != nil {
		return nil, err
	}

	return &model.PaymentIntentResult{
		PaymentID: resp.ID,
		Provider:  model.ProviderRazorpay,
		Status:    model.StatusCreated,
		Amount:    order.TotalAmount,
		Currency:  order.Currency,
		Raw:       raw,
	}, nil
}

// =====================================================
// VERIFY WEBHOOK
// =====================================================

func (c *Client) VerifyWebhook(rawBody []byte, headers http.Header) *model.NormalizedWebhookEvent {
	received := headers.Get("X-Razorpay-Signature")
	if !VerifySignature(rawBody, received, c.config.WebhookSecret) {
		c.logger.Warn().Msg("webhook signature rejected")
		return nil
	}

	var payload webhookPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		c.logger.Warn().Err(err).Msg("webhook body unparseable")
		return nil
	}

	entity := payload.Payload.Payment.Entity

	var raw map[string]interface{}
	_ = json.Unmarshal(rawBody, &raw)

	return &model.NormalizedWebhookEvent{
		Provider:  model.ProviderRazorpay,
		PaymentID: entity.ID,
		OrderID:   entity.OrderID,
		Status:    mapStatus(entity.Status),
		Amount:    money.FromMinorUnits(entity.Amount),
		EventType: payload.Event,
		Raw:       raw,
	}
}

// =====================================================
// CAPTURE / REFUND / STATUS
// =====================================================

// Capture requires amount and currency on the wire, so the payment is fetched
// first; a nil amount captures in full.
func (c *Client) Capture(ctx context.Context, paymentID string, amount *decimal.Decimal) (*model.CaptureResult, error) {
	var payment paymentEntity
	if _, err := c.getJSON(ctx, "capture", c.config.BaseURL+"/payments/"+paymentID, &payment); err != nil {
		return nil, err
	}

	minor := payment.Amount
	if amount != nil {
		var err error
		minor, err = money.ToMinorUnits(*amount)
		if err != nil {
			return nil, fmt.Errorf("invalid capture amount: %w", err)
		}
	}

	var resp paymentEntity
	raw, err := c.postJSON(ctx, "capture", c.config.BaseURL+"/payments/"+paymentID+"/capture", captureRequest{
		Amount:   minor,
		Currency: payment.Currency,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &model.CaptureResult{
		PaymentID: resp.ID,
		Status:    model.StatusCaptured,
		Amount:    money.FromMinorUnits(resp.Amount),
		Raw:       raw,
	}, nil
}

func (c *Client) Refund(ctx context.Context, paymentID string, amount *decimal.Decimal, reason string) (*model.RefundResult, error) {
	req := refundRequest{}
	if amount != nil {
		minor, err := money.ToMinorUnits(*amount)
		if err != nil {
			return nil, fmt.Errorf("invalid refund amount: %w", err)
		}
		req.Amount = minor
	}
	if reason != "" {
		req.Notes = map[string]string{"reason": reason}
	}

	var resp refundEntity
	raw, err := c.postJSON(ctx, "refund", c.config.BaseURL+"/payments/"+paymentID+"/refund", req, &resp)
	if err != nil {
		return nil, err
	}

	return &model.RefundResult{
		PaymentID: paymentID,
		RefundID:  resp.ID,
		Status:    model.StatusRefunded,
		Amount:    money.FromMinorUnits(resp.Amount),
		Raw:       raw,
	}, nil
}

func (c *Client) FetchStatus(ctx context.Context, paymentID string) (*model.StatusResult, error) {
	var resp paymentEntity
	raw, err := c.getJSON(ctx, "fetch_status", c.config.BaseURL+"/payments/"+paymentID, &resp)
	if err != nil {
		return nil, err
	}

	return &model.StatusResult{
		PaymentID: paymentID,
		Status:    mapStatus(resp.Status),
		Amount:    money.FromMinorUnits(resp.Amount),
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
	req.SetBasicAuth(c.config.KeyID, c.config.KeySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &model.TransportError{Provider: model.ProviderRazorpay, Operation: op, Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.TransportError{Provider: model.ProviderRazorpay, Operation: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.TransportError{
			Provider:   model.ProviderRazorpay,
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
