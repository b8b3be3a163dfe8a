package stripe

import (
	"strings"

	"paygate-backend/internal/domains/payment/model"
)

// =====================================================
// STRIPE CONFIGURATION
// =====================================================

// Tolerance is the maximum accepted age (or clock skew) of a webhook
// signature timestamp.
const ToleranceSeconds = 300

type Config struct {
	SecretKey     string
	WebhookSecret string
	Environment   string // sandbox | production; the key prefix decides the mode
	BaseURL       string // Single host for both environments, overridable in tests
}

// NewConfig builds a Stripe config from resolved credentials. Stripe runs one
// host; sk_test_ vs sk_live_ keys select the environment. A production config
// holding a test key is rejected before the first network call.
func NewConfig(environment string, creds map[string]string) (*Config, error) {
	cfg := &Config{
		SecretKey:     creds["secret_key"],
		WebhookSecret: creds["webhook_secret"],
		Environment:   environment,
		BaseURL:       "https://api.stripe.com/v1",
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return model.NewConfigurationError(model.ProviderStripe, "secret_key")
	}
	if c.WebhookSecret == "" {
		return model.NewConfigurationError(model.ProviderStripe, "webhook_secret")
	}
	if c.Environment == model.EnvProduction && strings.HasPrefix(c.SecretKey, "sk_test_") {
		return model.NewConfigurationError(model.ProviderStripe, "secret_key")
	}
	return nil
}
