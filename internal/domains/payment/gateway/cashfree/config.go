package cashfree

import (
	"paygate-backend/internal/domains/payment/model"
)

// =====================================================
// CASHFREE CONFIGURATION
// =====================================================

// APIVersion is pinned; Cashfree breaks wire compatibility across versions.
const APIVersion = "2023-08-01"

type Config struct {
	AppID         string // x-client-id header
	SecretKey     string // x-client-secret header
	WebhookSecret string // HMAC-SHA256 key for webhook signatures
	Environment   string // sandbox | production
	BaseURL       string // Derived from Environment, overridable in tests
}

// NewConfig builds a Cashfree config from resolved credentials.
func NewConfig(environment string, creds map[string]string) (*Config, error) {
	cfg := &Config{
		AppID:         creds["app_id"],
		SecretKey:     creds["secret_key"],
		WebhookSecret: creds["webhook_secret"],
		Environment:   environment,
	}

	if environment == model.EnvProduction {
		cfg.BaseURL = "https://api.cashfree.com/pg"
	} else {
		cfg.BaseURL = "https://sandbox.cashfree.com/pg"
	}

	return cfg, cfg.Validate()
}

// Validate reports the first missing credential field.
func (c *Config) Validate() error {
	if c.AppID == "" {
		return model.NewConfigurationError(model.ProviderCashfree, "app_id")
	}
	if c.SecretKey == "" {
		return model.NewConfigurationError(model.ProviderCashfree, "secret_key")
	}
	if c.WebhookSecret == "" {
		return model.NewConfigurationError(model.ProviderCashfree, "webhook_secret")
	}
	return nil
}

// OrdersURL returns the order creation endpoint.
func (c *Config) OrdersURL() string {
	return c.BaseURL + "/orders"
}

// OrderURL returns the endpoint for one order.
func (c *Config) OrderURL(orderID string) string {
	return c.BaseURL + "/orders/" + orderID
}

// RefundsURL returns the refund endpoint for one order.
func (c *Config) RefundsURL(orderID string) string {
	return c.BaseURL + "/orders/" + orderID + "/refunds"
}
