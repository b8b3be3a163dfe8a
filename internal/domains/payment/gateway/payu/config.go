package payu

import (
	"paygate-backend/internal/domains/payment/model"
)

// =====================================================
// PAYU CONFIGURATION
// =====================================================

type Config struct {
	MerchantKey  string // Public merchant key, first field of every hash chain
	MerchantSalt string // Secret salt, last field of every hash chain
	Environment  string // sandbox | production
	BaseURL      string // Derived from Environment, overridable in tests
}

// NewConfig builds a PayU config from resolved credentials.
func NewConfig(environment string, creds map[string]string) (*Config, error) {
	cfg := &Config{
		MerchantKey:  creds["merchant_key"],
		MerchantSalt: creds["merchant_salt"],
		Environment:  environment,
	}

	if environment == model.EnvProduction {
		cfg.BaseURL = "https://secure.payu.in"
	} else {
		cfg.BaseURL = "https://sandboxsecure.payu.in"
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.MerchantKey == "" {
		return model.NewConfigurationError(model.ProviderPayU, "merchant_key")
	}
	if c.MerchantSalt == "" {
		return model.NewConfigurationError(model.ProviderPayU, "merchant_salt")
	}
	return nil
}

// PaymentURL is the browser form-post target. PayU redirects the customer's
// browser itself rather than returning JSON.
func (c *Config) PaymentURL() string {
	return c.BaseURL + "/_payment"
}

// ServiceURL is the server-to-server webservice endpoint (refund, verify).
func (c *Config) ServiceURL() string {
	return c.BaseURL + "/merchant/postservice.php?form=2"
}
