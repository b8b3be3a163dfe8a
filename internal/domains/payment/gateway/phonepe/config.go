package phonepe

import (
	"paygate-backend/internal/domains/payment/model"
)

// =====================================================
// PHONEPE CONFIGURATION
// =====================================================

const (
	// payPath is the endpoint segment folded into every checksum. Refund and
	// status checksums intentionally reuse it even though those calls hit
	// different endpoints; the deployed merchant integration has always
	// computed them this way and the provider side accepts it.
	payPath    = "/pg/v1/pay"
	refundPath = "/pg/v1/refund"
	statusPath = "/pg/v1/status"
)

type Config struct {
	MerchantID  string
	SaltKey     string
	SaltIndex   string
	Environment string // sandbox | production
	BaseURL     string // Derived from Environment, overridable in tests
}

// NewConfig builds a PhonePe config from resolved credentials.
func NewConfig(environment string, creds map[string]string) (*Config, error) {
	cfg := &Config{
		MerchantID:  creds["merchant_id"],
		SaltKey:     creds["salt_key"],
		SaltIndex:   creds["salt_index"],
		Environment: environment,
	}

	if environment == model.EnvProduction {
		cfg.BaseURL = "https://api.phonepe.com/apis/hermes"
	} else {
		cfg.BaseURL = "https://api-preprod.phonepe.com/apis/pg-sandbox"
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.MerchantID == "" {
		return model.NewConfigurationError(model.ProviderPhonePe, "merchant_id")
	}
	if c.SaltKey == "" {
		return model.NewConfigurationError(model.ProviderPhonePe, "salt_key")
	}
	if c.SaltIndex == "" {
		return model.NewConfigurationError(model.ProviderPhonePe, "salt_index")
	}
	return nil
}

func (c *Config) PayURL() string {
	return c.BaseURL + payPath
}

func (c *Config) RefundURL() string {
	return c.BaseURL + refundPath
}

func (c *Config) StatusURL(paymentID string) string {
	return c.BaseURL + statusPath + "/" + c.MerchantID + "/" + paymentID
}
