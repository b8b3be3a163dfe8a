package phonepe

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	ordermodel "paygate-backend/internal/domains/order/model"
	"paygate-backend/internal/domains/payment/model"
	"paygate-backend/internal/domains/payment/money"
)

// =====================================================
// PHONEPE CLIENT
// =====================================================

type Client struct {
	config     *Config
	httpClient *http.Client
	logger     zerolog.Logger
}

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
		logger:     logger.With().Str("gateway", model.ProviderPhonePe).Logger(),
	}, nil
}

func (c *Client) Name() string {
	return model.ProviderPhonePe
}

// =====================================================
// CREATE ORDER
// =====================================================

func (c *Client) CreateOrder(ctx context.Context, order ordermodel.Order, opts model.CreateOrderOptions) (*model.PaymentIntentResult, error) {
	paise, err := money.ToMinorUnits(order.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("phonepe create_order: %w", err)
	}

	payload := payRequest{
		MerchantID:            c.config.MerchantID,
		MerchantTransactionID: order.OrderNumber,
		Amount:                paise,
		RedirectURL:           opts.ReturnURL,
		RedirectMode:          "REDIRECT",
		MobileNumber:          order.CustomerPhone,
		PaymentInstrument:     paymentInstrument{Type: "PAY_PAGE"},
	}

	var resp apiResponse
	raw, err := c.post(ctx, "create_order", c.config.PayURL(), payload, &resp)
	if err != nil {
		return nil, err
	}

	result := &model.PaymentIntentResult{
		PaymentID: order.OrderNumber,
		Provider:  model.ProviderPhonePe,
		Status:    model.StatusCreated,
		Amount:    order.TotalAmount,
		Currency:  order.Currency,
		Raw:       raw,
	}
	if ir := resp.Data.InstrumentResponse; ir != nil && ir.RedirectInfo.URL != "" {
		u := ir.RedirectInfo.URL
		result.RedirectURL = &u
	}

	return result, nil
}

// =====================================================
// VERIFY WEBHOOK
// =====================================================

func (c *Client) VerifyWebhook(rawBody []byte, headers http.Header) *model.NormalizedWebhookEvent {
	if !Verify(rawBody, headers.Get("X-VERIFY"), c.config.SaltKey) {
		c.logger.Warn().Msg("webhook checksum rejected")
		return nil
	}

	var resp apiResponse
	if err := json.Unmarshal(rawBody, &resp); err != nil {
		c.logger.Warn().Err(err).Msg("webhook body unparseable")
		return nil
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(rawBody, &raw)

	return &model.NormalizedWebhookEvent{
		Provider:  model.ProviderPhonePe,
		PaymentID: resp.Data.TransactionID,
		OrderID:   resp.Data.MerchantTransactionID,
		Status:    mapStatus(resp.Data.State),
		Amount:    money.FromMinorUnits(resp.Data.Amount),
		EventType: resp.Code,
		Raw:       raw,
	}
}

// =====================================================
// CAPTURE / REFUND / STATUS
// =====================================================

// Capture is a no-op success: PhonePe pay-page transactions settle captured.
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

func (c *Client) Refund(ctx context.Context, paymentID string, amount *decimal.Decimal, _ string) (*model.RefundResult, error) {
	if amount == nil {
		return nil, fmt.Errorf("phonepe refund: amount is required, the refund API has no full-refund shorthand")
	}

	paise, err := money.ToMinorUnits(*amount)
	if err != nil {
		return nil, fmt.Errorf("phonepe refund: %w", err)
	}

	refundRef := "rf-" + uuid.NewString()
	payload := refundRequest{
		MerchantID:            c.config.MerchantID,
		MerchantTransactionID: refundRef,
		OriginalTransactionID: paymentID,
		Amount:                paise,
	}

	var resp apiResponse
	raw, err := c.post(ctx, "refund", c.config.RefundURL(), payload, &resp)
	if err != nil {
		return nil, err
	}

	return &model.RefundResult{
		PaymentID: paymentID,
		RefundID:  refundRef,
		Status:    model.StatusRefunded,
		Amount:    *amount,
		Raw:       raw,
	}, nil
}

func (c *Client) FetchStatus(ctx context.Context, paymentID string) (*model.StatusResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.StatusURL(paymentID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build fetch_status request: %w", err)
	}

	// Status checksum covers an empty payload with the pay path constant.
	req.Header.Set("X-VERIFY", Compute("", payPath, c.config.SaltKey, c.config.SaltIndex))
	req.Header.Set("X-MERCHANT-ID", c.config.MerchantID)

	var resp apiResponse
	raw, err := c.execute(req, "fetch_status", &resp)
	if err != nil {
		return nil, err
	}

	return &model.StatusResult{
		PaymentID: paymentID,
		Status:    mapStatus(resp.Data.State),
		Amount:    money.FromMinorUnits(resp.Data.Amount),
		Raw:       raw,
	}, nil
}

// =====================================================
// TRANSPORT HELPERS
// =====================================================

func (c *Client) post(ctx context.Context, op, url string, payload interface{}, out *apiResponse) (map[string]interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", op, err)
	}
	encoded := base64.StdEncoding.EncodeToString(body)

	envBytes, err := json.Marshal(envelope{Request: encoded})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s envelope: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(envBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-VERIFY", Compute(encoded, payPath, c.config.SaltKey, c.config.SaltIndex))

	return c.execute(req, op, out)
}

func (c *Client) execute(req *http.Request, op string, out *apiResponse) (map[string]interface{}, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &model.TransportError{Provider: model.ProviderPhonePe, Operation: op, Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.TransportError{Provider: model.ProviderPhonePe, Operation: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.TransportError{
			Provider:   model.ProviderPhonePe,
			Operation:  op,
			StatusCode: resp.StatusCode,
			Body:       string(bodyBytes),
		}
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", op, err)
	}
	if !out.Success {
		return nil, &model.TransportError{
			Provider:   model.ProviderPhonePe,
			Operation:  op,
			StatusCode: resp.StatusCode,
			Body:       string(bodyBytes),
		}
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(bodyBytes, &raw)
	return raw, nil
}
