package cashfree

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordermodel "paygate-backend/internal/domains/order/model"
	"paygate-backend/internal/domains/payment/model"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := NewConfig(model.EnvSandbox, map[string]string{
		"app_id":         "app_test",
		"secret_key":     "cfsk_test",
		"webhook_secret": "whsec_test",
	})
	require.NoError(t, err)
	return cfg
}

func newTestClient(t *testing.T, cfg *Config) *Client {
	t.Helper()
	c, err := NewClient(cfg, &http.Client{}, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestNewConfig_MissingCredential(t *testing.T) {
	_, err := NewConfig(model.EnvSandbox, map[string]string{
		"app_id": "app_test",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestCreateOrder(t *testing.T) {
	var gotHeaders http.Header
	var gotBody createOrderRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(createOrderResponse{
			CfOrderID:        "cf_123",
			OrderID:          gotBody.OrderID,
			OrderStatus:      "ACTIVE",
			PaymentSessionID: "sess_1",
			PaymentLink:      "https://payments.cashfree.com/order/sess_1",
		})
	}))
	defer server.Close()

	cfg := testConfig(t)
	cfg.BaseURL = server.URL
	client := newTestClient(t, cfg)

	order := ordermodel.Order{
		OrderNumber:   "ORD1",
		TotalAmount:   decimal.RequireFromString("100"),
		Currency:      "INR",
		CustomerName:  "Asha",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "9999999999",
	}

	result, err := client.CreateOrder(context.Background(), order, model.CreateOrderOptions{ReturnURL: "https://shop.example/return"})
	require.NoError(t, err)

	assert.Equal(t, "app_test", gotHeaders.Get("x-client-id"))
	assert.Equal(t, "cfsk_test", gotHeaders.Get("x-client-secret"))
	assert.Equal(t, APIVersion, gotHeaders.Get("x-api-version"))
	assert.Equal(t, "ORD1", gotBody.OrderID)
	assert.True(t, gotBody.OrderAmount.Equal(decimal.RequireFromString("100")))

	assert.Equal(t, "sess_1", result.PaymentID)
	assert.Equal(t, model.StatusCreated, result.Status)
	require.NotNil(t, result.RedirectURL)
	assert.Contains(t, *result.RedirectURL, "sess_1")
}

func TestCreateOrder_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"authentication failed"}`))
	}))
	defer server.Close()

	cfg := testConfig(t)
	cfg.BaseURL = server.URL
	client := newTestClient(t, cfg)

	_, err := client.CreateOrder(context.Background(), ordermodel.Order{OrderNumber: "ORD1", Currency: "INR"}, model.CreateOrderOptions{})
	require.Error(t, err)

	var te *model.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusUnauthorized, te.StatusCode)
	assert.Contains(t, te.Body, "authentication failed")
}

func TestVerifyWebhook(t *testing.T) {
	body := []byte(`{"data":{"order_id":"ORD1","payment_session_id":"sess_1","payment_status":"PAID","order_amount":100}}`)

	headers := http.Header{}
	headers.Set("x-cashfree-signature", ComputeSignature(body, "whsec_test"))

	client := newTestClient(t, testConfig(t))
	event := client.VerifyWebhook(body, headers)

	require.NotNil(t, event)
	assert.Equal(t, model.StatusPaid, event.Status)
	assert.Equal(t, "ORD1", event.OrderID)
	assert.Equal(t, "sess_1", event.PaymentID)
	assert.True(t, event.Amount.Equal(decimal.RequireFromString("100")))
}

func TestVerifyWebhook_RejectsBadSignature(t *testing.T) {
	body := []byte(`{"data":{"order_id":"ORD1","payment_status":"PAID"}}`)

	headers := http.Header{}
	headers.Set("x-cashfree-signature", ComputeSignature(body, "wrong_secret"))

	client := newTestClient(t, testConfig(t))
	assert.Nil(t, client.VerifyWebhook(body, headers))
}

func TestVerifyWebhook_RejectsMissingHeader(t *testing.T) {
	client := newTestClient(t, testConfig(t))
	assert.Nil(t, client.VerifyWebhook([]byte(`{}`), http.Header{}))
}

func TestVerifyWebhook_RejectsMalformedBody(t *testing.T) {
	body := []byte(`not-json`)
	headers := http.Header{}
	headers.Set("x-cashfree-signature", ComputeSignature(body, "whsec_test"))

	client := newTestClient(t, testConfig(t))
	assert.Nil(t, client.VerifyWebhook(body, headers))
}

func TestCapture_NoOpSuccess(t *testing.T) {
	client := newTestClient(t, testConfig(t))

	result, err := client.Capture(context.Background(), "sess_1", nil)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCaptured, result.Status)
}

func TestMapStatus(t *testing.T) {
	tests := map[string]model.Status{
		"SUCCESS":      model.StatusPaid,
		"PAID":         model.StatusPaid,
		"FAILED":       model.StatusFailed,
		"REFUNDED":     model.StatusRefunded,
		"USER_DROPPED": model.StatusPending,
		"":             model.StatusPending,
	}

	for in, want := range tests {
		assert.Equal(t, want, mapStatus(in), "status %q", in)
	}
}
