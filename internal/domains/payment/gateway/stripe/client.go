package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	ordermodel "paygate-backend/internal/domains/order/model"
	"paygate-backend/internal/domains/payment/model"
	"paygate-backend/internal/domains/payment/money"
)

// =====================================================
// STRIPE CLIENT
// =====================================================

type Client struct {
	config     *Config
	httpClient *http.Client
	logger     zerolog.Logger
	now        func() time.Time // overridable in tests for replay-window checks
}

// NewClient builds a Stripe adapter. A nil httpClient falls back to a
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
		logger:     logger.With().Str("gateway", model.ProviderStripe).Logger(),
		now:        time.Now,
	}, nil
}

func (c *Client) Name() string {
	return model.ProviderStripe
}

// =====================================================
// CREATE ORDER
// =====================================================

func (c *Client) CreateOrder(ctx context.Context, order ordermodel.Order, _ model.CreateOrderOptions) (*model.PaymentIntentResult, error) {
	minor, err := money.ToMinorUnits(order.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid order amount: %w", err)
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(minor, 10))
	form.Set("currency", strings.ToLower(order.Currency))
	form.Set("metadata[order_number]", order.OrderNumber)
	if order.CustomerEmail != "" {
		form.Set("receipt_email", order.CustomerEmail)
	}

	var resp paymentIntent
	raw, err := c.postForm(ctx, "create_order", c.config.BaseURL+"/payment_intents", form, &resp)
	if err != nil {
		return nil, err
	}

	result := &model.PaymentIntentResult{
		PaymentID: resp.ID,
		Provider:  model.ProviderStripe,
		Status:    model.StatusCreated,
		Amount:    order.TotalAmount,
		Currency:  order.Currency,
		Raw:       raw,
	}
	if resp.ClientSecret != "" {
		secret := resp.ClientSecret
		result.ClientSecret = &secret
	}

	return result, nil
}

// =====================================================
// VERIFY WEBHOOK
// =====================================================

func (c *Client) VerifyWebhook(rawBody []byte, headers http.Header) *model.NormalizedWebhookEvent {
	received := headers.Get("Stripe-Signature")
	if !VerifySignature(rawBody, received, c.config.WebhookSecret, c.now()) {
		c.logger.Warn().Msg("webhook signature rejected")
		return nil
	}

	var event webhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		c.logger.Warn().Err(err).Msg("webhook body unparseable")
		return nil
	}

	object := event.Data.Object

	// charge.* and refund.* events carry the intent id as a reference field.
	paymentID := object.ID
	if object.PaymentIntent != "" {
		paymentID = object.PaymentIntent
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(rawBody, &raw)

	return &model.NormalizedWebhookEvent{
		Provider:  model.ProviderStripe,
		PaymentID: paymentID,
		OrderID:   object.Metadata["order_number"],
		Status:    mapEventType(event.Type),
		Amount:    money.FromMinorUnits(object.Amount),
		EventType: event.Type,
		Raw:       raw,
	}
}

// =====================================================
// CAPTURE / REFUND / STATUS
// =====================================================

func (c *Client) Capture(ctx context.Context, paymentID string, amount *decimal.Decimal) (*model.CaptureResult, error) {
	form := url.Values{}
	if amount != nil {
		minor, err := money.ToMinorUnits(*amount)
		if err != nil {
			return nil, fmt.Errorf("invalid capture amount: %w", err)
		}
		form.Set("amount_to_capture", strconv.FormatInt(minor, 10))
	}

	var resp paymentIntent
	raw, err := c.postForm(ctx, "capture", c.config.BaseURL+"/payment_intents/"+paymentID+"/capture", form, &resp)
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
	form := url.Values{}
	form.Set("payment_intent", paymentID)
	if amount != nil {
		minor, err := money.ToMinorUnits(*amount)
		if err != nil {
			return nil, fmt.Errorf("invalid refund amount: %w", err)
		}
		form.Set("amount", strconv.FormatInt(minor, 10))
	}
	if reason != "" {
		form.Set("metadata[reason]", reason)
	}

	var resp refundObject
	raw, err := c.postForm(ctx, "refund", c.config.BaseURL+"/refunds", form, &resp)
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
	var resp paymentIntent
	raw, err := c.getJSON(ctx, "fetch_status", c.config.BaseURL+"/payment_intents/"+paymentID, &resp)
	if err != nil {
		return nil, err
	}

	return &model.StatusResult{
		PaymentID: paymentID,
		Status:    mapIntentStatus(resp.Status),
		Amount:    money.FromMinorUnits(resp.Amount),
		Raw:       raw,
	}, nil
}

// =====================================================
// TRANSPORT HELPERS
// =====================================================

func (c *Client) postForm(ctx context.Context, op, endpoint string, form url.Values, out interface{}) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, op, out)
}

func (c *Client) getJSON(ctx context.Context, op, endpoint string, out interface{}) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", op, err)
	}

	return c.do(req, op, out)
}

func (c *Client) do(req *http.Request, op string, out interface{}) (map[string]interface{}, error) {
	req.SetBasicAuth(c.config.SecretKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &model.TransportError{Provider: model.ProviderStripe, Operation: op, Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.TransportError{Provider: model.ProviderStripe, Operation: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.TransportError{
			Provider:   model.ProviderStripe,
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
