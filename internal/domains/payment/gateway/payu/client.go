package payu

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	ordermodel "paygate-backend/internal/domains/order/model"
	"paygate-backend/internal/domains/payment/model"
	"paygate-backend/internal/domains/payment/money"
)

// =====================================================
// PAYU CLIENT
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
		logger:     logger.With().Str("gateway", model.ProviderPayU).Logger(),
	}, nil
}

func (c *Client) Name() string {
	return model.ProviderPayU
}

// =====================================================
// CREATE ORDER
// =====================================================

// CreateOrder prepares the signed form the client browser posts to PayU.
// No server-to-server call happens here; PayU's flow is redirect-only.
// Amounts go on the wire in major units, the one provider that skips the
// minor-unit conversion.
func (c *Client) CreateOrder(_ context.Context, order ordermodel.Order, opts model.CreateOrderOptions) (*model.PaymentIntentResult, error) {
	params := RequestParams{
		TxnID:       order.OrderNumber,
		Amount:      money.MajorString(order.TotalAmount),
		ProductInfo: "Order " + order.OrderNumber,
		Firstname:   order.CustomerName,
		Email:       order.CustomerEmail,
	}

	form := map[string]string{
		"action":           c.config.PaymentURL(),
		"key":              c.config.MerchantKey,
		"txnid":            params.TxnID,
		"amount":           params.Amount,
		"productinfo":      params.ProductInfo,
		"firstname":        params.Firstname,
		"email":            params.Email,
		"phone":            order.CustomerPhone,
		"surl":             opts.ReturnURL,
		"furl":             opts.CancelURL,
		"service_provider": "payu_paisa",
		"hash":             RequestHash(c.config.MerchantKey, params, c.config.MerchantSalt),
	}

	return &model.PaymentIntentResult{
		PaymentID: params.TxnID,
		Provider:  model.ProviderPayU,
		Status:    model.StatusCreated,
		Amount:    order.TotalAmount,
		Currency:  order.Currency,
		FormData:  form,
	}, nil
}

// =====================================================
// VERIFY WEBHOOK (CALLBACK)
// =====================================================

// VerifyWebhook validates a PayU callback posting. The signature is not a
// header: PayU posts form fields including a hash, recomputed here from the
// other returned fields.
func (c *Client) VerifyWebhook(rawBody []byte, _ http.Header) *model.NormalizedWebhookEvent {
	values, err := url.ParseQuery(string(rawBody))
	if err != nil {
		c.logger.Warn().Err(err).Msg("callback body unparseable")
		return nil
	}

	params := RequestParams{
		TxnID:       values.Get("txnid"),
		Amount:      values.Get("amount"),
		ProductInfo: values.Get("productinfo"),
		Firstname:   values.Get("firstname"),
		Email:       values.Get("email"),
		UDF: [5]string{
			values.Get("udf1"), values.Get("udf2"), values.Get("udf3"),
			values.Get("udf4"), values.Get("udf5"),
		},
	}
	status := values.Get("status")

	if !VerifyCallbackHash(c.config.MerchantKey, params, status, values.Get("hash"), c.config.MerchantSalt) {
		c.logger.Warn().Msg("callback hash rejected")
		return nil
	}

	amount, err := decimal.NewFromString(params.Amount)
	if err != nil {
		c.logger.Warn().Err(err).Msg("callback amount unparseable")
		return nil
	}

	raw := make(map[string]interface{}, len(values))
	for k := range values {
		raw[k] = values.Get(k)
	}

	return &model.NormalizedWebhookEvent{
		Provider:  model.ProviderPayU,
		PaymentID: values.Get("mihpayid"),
		OrderID:   params.TxnID,
		Status:    mapStatus(status),
		Amount:    amount,
		EventType: status,
		Raw:       raw,
	}
}

// =====================================================
// CAPTURE / REFUND / STATUS
// =====================================================

// Capture is a no-op success: PayU settles captured transactions itself.
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
	refundRef := "rf-" + uuid.NewString()

	amountStr := ""
	if amount != nil {
		amountStr = money.MajorString(*amount)
	}

	vars := []string{paymentID, amountStr}
	form := url.Values{
		"key":     {c.config.MerchantKey},
		"command": {commandRefund},
		"var1":    {paymentID},
		"var2":    {amountStr},
		"var3":    {reason},
		"hash":    {CommandHash(c.config.MerchantKey, commandRefund, vars, c.config.MerchantSalt)},
	}

	var resp refundResponse
	raw, err := c.postForm(ctx, "refund", form, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Status != 1 {
		return nil, &model.TransportError{
			Provider:   model.ProviderPayU,
			Operation:  "refund",
			StatusCode: http.StatusOK,
			Body:       resp.Msg,
		}
	}

	refundID := resp.RequestID
	if refundID == "" {
		refundID = refundRef
	}

	result := &model.RefundResult{
		PaymentID: paymentID,
		RefundID:  refundID,
		Status:    model.StatusRefunded,
		Raw:       raw,
	}
	if amount != nil {
		result.Amount = *amount
	}
	return result, nil
}

func (c *Client) FetchStatus(ctx context.Context, paymentID string) (*model.StatusResult, error) {
	vars := []string{paymentID}
	form := url.Values{
		"key":     {c.config.MerchantKey},
		"command": {commandVerify},
		"var1":    {paymentID},
		"hash":    {CommandHash(c.config.MerchantKey, commandVerify, vars, c.config.MerchantSalt)},
	}

	var resp verifyResponse
	raw, err := c.postForm(ctx, "fetch_status", form, &resp)
	if err != nil {
		return nil, err
	}

	detail, ok := resp.TransactionDetails[paymentID]
	if !ok {
		return nil, fmt.Errorf("payu fetch_status: no details for %s: %s", paymentID, resp.Msg)
	}

	amount, err := decimal.NewFromString(detail.Amount)
	if err != nil {
		amount = decimal.Zero
	}

	return &model.StatusResult{
		PaymentID: paymentID,
		Status:    mapStatus(detail.Status),
		Amount:    amount,
		Raw:       raw,
	}, nil
}

// =====================================================
// TRANSPORT HELPER
// =====================================================

func (c *Client) postForm(ctx context.Context, op string, form url.Values, out interface{}) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.ServiceURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &model.TransportError{Provider: model.ProviderPayU, Operation: op, Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.TransportError{Provider: model.ProviderPayU, Operation: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.TransportError{
			Provider:   model.ProviderPayU,
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
