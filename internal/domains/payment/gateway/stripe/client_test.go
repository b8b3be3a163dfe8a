package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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
		"secret_key":     "sk_test_123",
		"webhook_secret": "whsec_stripe",
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
		"secret_key": "sk_test_123",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestNewConfig_RejectsTestKeyInProduction(t *testing.T) {
	_, err := NewConfig(model.EnvProduction, map[string]string{
		"secret_key":     "sk_test_123",
		"webhook_secret": "whsec_stripe",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestCreateOrder(t *testing.T) {
	var gotForm map[string][]string
	var gotUser string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _, _ = r.BasicAuth()
		require.Equal(t, "/payment_intents", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm

		_ = json.NewEncoder(w).Encode(paymentIntent{
			ID:           "pi_1",
			ClientSecret: "pi_1_secret_xyz",
			Amount:       1999,
			Currency:     "usd",
			Status:       "requires_payment_method",
		})
	}))
	defer server.Close()

	cfg := testConfig(t)
	cfg.BaseURL = server.URL
	client := newTestClient(t, cfg)

	order := ordermodel.Order{
		OrderNumber:   "ORD7",
		TotalAmount:   decimal.RequireFromString("19.99"),
		Currency:      "USD",
		CustomerEmail: "buyer@example.com",
	}

	result, err := client.CreateOrder(context.Background(), order, model.CreateOrderOptions{})
	require.NoError(t, err)

	assert.Equal(t, "sk_test_123", gotUser)
	assert.Equal(t, []string{"1999"}, gotForm["amount"])
	assert.Equal(t, []string{"usd"}, gotForm["currency"])
	assert.Equal(t, []string{"ORD7"}, gotForm["metadata[order_number]"])

	assert.Equal(t, "pi_1", result.PaymentID)
	assert.Equal(t, model.StatusCreated, result.Status)
	require.NotNil(t, result.ClientSecret)
	assert.Equal(t, "pi_1_secret_xyz", *result.ClientSecret)
}

func TestVerifyWebhook(t *testing.T) {
	body := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","amount":1999,"currency":"usd","status":"succeeded","metadata":{"order_number":"ORD7"}}}}`)

	client := newTestClient(t, testConfig(t))
	now := time.Unix(1700000000, 0)
	client.now = func() time.Time { return now }

	headers := http.Header{}
	headers.Set("Stripe-Signature", signedHeader(t, now.Unix(), body, "whsec_stripe"))

	event := client.VerifyWebhook(body, headers)
	require.NotNil(t, event)
	assert.Equal(t, "pi_1", event.PaymentID)
	assert.Equal(t, "ORD7", event.OrderID)
	assert.Equal(t, model.StatusPaid, event.Status)
	assert.Equal(t, "payment_intent.succeeded", event.EventType)
	assert.True(t, event.Amount.Equal(decimal.RequireFromString("19.99")))
}

func TestVerifyWebhook_RejectsStaleSignature(t *testing.T) {
	body := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)

	client := newTestClient(t, testConfig(t))
	now := time.Unix(1700000000, 0)
	client.now = func() time.Time { return now }

	headers := http.Header{}
	headers.Set("Stripe-Signature", signedHeader(t, now.Add(-400*time.Second).Unix(), body, "whsec_stripe"))

	assert.Nil(t, client.VerifyWebhook(body, headers))
}

func TestVerifyWebhook_ChargeEventUsesIntentReference(t *testing.T) {
	body := []byte(`{"id":"evt_2","type":"charge.refunded","data":{"object":{"id":"ch_1","payment_intent":"pi_1","amount":1999,"currency":"usd","status":"succeeded"}}}`)

	client := newTestClient(t, testConfig(t))
	now := time.Unix(1700000000, 0)
	client.now = func() time.Time { return now }

	headers := http.Header{}
	headers.Set("Stripe-Signature", signedHeader(t, now.Unix(), body, "whsec_stripe"))

	event := client.VerifyWebhook(body, headers)
	require.NotNil(t, event)
	assert.Equal(t, "pi_1", event.PaymentID)
	assert.Equal(t, model.StatusRefunded, event.Status)
}

func TestRefund(t *testing.T) {
	var gotForm map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/refunds", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm

		_ = json.NewEncoder(w).Encode(refundObject{
			ID: "re_1", PaymentIntentID: "pi_1", Amount: 1999, Status: "succeeded",
		})
	}))
	defer server.Close()

	cfg := testConfig(t)
	cfg.BaseURL = server.URL
	client := newTestClient(t, cfg)

	result, err := client.Refund(context.Background(), "pi_1", nil, "requested_by_customer")
	require.NoError(t, err)

	assert.Equal(t, []string{"pi_1"}, gotForm["payment_intent"])
	assert.Empty(t, gotForm["amount"]) // nil amount means full refund
	assert.Equal(t, "re_1", result.RefundID)
	assert.Equal(t, model.StatusRefunded, result.Status)
	assert.True(t, result.Amount.Equal(decimal.RequireFromString("19.99")))
}

func TestFetchStatus_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"message":"No such payment_intent"}}`)
	}))
	defer server.Close()

	cfg := testConfig(t)
	cfg.BaseURL = server.URL
	client := newTestClient(t, cfg)

	_, err := client.FetchStatus(context.Background(), "pi_missing")
	require.Error(t, err)

	var te *model.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusNotFound, te.StatusCode)
	assert.Contains(t, te.Body, "No such payment_intent")
}

func TestMapEventType(t *testing.T) {
	tests := map[string]model.Status{
		"payment_intent.succeeded":      model.StatusPaid,
		"charge.succeeded":              model.StatusPaid,
		"payment_intent.payment_failed": model.StatusFailed,
		"charge.failed":                 model.StatusFailed,
		"charge.refunded":               model.StatusRefunded,
		"refund.created":                model.StatusRefunded,
		"refund.updated":                model.StatusRefunded,
		"payment_intent.created":        model.StatusPending,
		"":                              model.StatusPending,
	}

	for in, want := range tests {
		assert.Equal(t, want, mapEventType(in), "event %q", in)
	}
}
