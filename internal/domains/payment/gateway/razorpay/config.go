package razorpay

import (
	"paygate-backend/internal/domains/payment/model"
)

// =====================================================
// RAZORPAY CONFIGURATION
// =====================================================

type Config struct {
	KeyID         string // HTTP basic auth username
	KeySecret     string // HTTP basic auth password
	WebhookSecret string // HMAC-SHA256 key for webhook signatures
	Environment   string // sandbox | production; informational only
	BaseURL       string // Single host for both environments, overridable in tests
}

// NewConfig builds a Razorpay config from resolved credentials. Razorpay runs
// one host for both environments; the key pair decides test vs live mode.
func NewConfig(environment string, creds map[string]string) (*Config, error) {
	cfg := &Config{
		KeyID:         creds["key_id"],
		KeySecret:     creds["key_secret"],
		WebhookSecret: creds["webhook_secret"],
		Environment:   environment,
		BaseURL:       "https://api.razorpay.com/v1",
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.KeyID == "" {
		return model.NewConfigurationError(model.ProviderRazorpay, "key_id")
	}
	if c.KeySecret == "" {
		return model.NewConfigurationError(model.ProviderRazorpay, "key_secret")
	}
	if c.WebhookSecret == "" {
		return model.NewConfigurationError(model.ProviderRazorpay, "webhook_secret")
	}
	return nil
}
