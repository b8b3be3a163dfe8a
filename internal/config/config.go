package config

import (
	"fmt"
	"os"
	"strconv"

	"paygate-backend/internal/domains/payment/model"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Payment  PaymentConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

// =====================================================
// PAYMENT CONFIGURATION
// =====================================================

// PaymentConfig selects the gateway environment and the credential source.
// When CredentialSource is "env", provider credentials are read from
// environment variables (see EnvCredentials); "database" resolves them from
// the encrypted credential store, unsealed with MasterKey.
type PaymentConfig struct {
	Environment      string // sandbox | production
	CredentialSource string // env | database
	MasterKey        string // hex-encoded 32-byte key for the credential store
}

// EnvCredentials reads provider credentials from environment variables, e.g.
// CASHFREE_APP_ID, STRIPE_WEBHOOK_SECRET. Unset providers yield empty maps
// and are skipped at registry construction.
func EnvCredentials() map[string]map[string]string {
	env := map[string]map[string]string{
		model.ProviderCashfree: {
			"app_id":         os.Getenv("CASHFREE_APP_ID"),
			"secret_key":     os.Getenv("CASHFREE_SECRET_KEY"),
			"webhook_secret": os.Getenv("CASHFREE_WEBHOOK_SECRET"),
		},
		model.ProviderPayU: {
			"merchant_key":  os.Getenv("PAYU_MERCHANT_KEY"),
			"merchant_salt": os.Getenv("PAYU_MERCHANT_SALT"),
		},
		model.ProviderPhonePe: {
			"merchant_id": os.Getenv("PHONEPE_MERCHANT_ID"),
			"salt_key":    os.Getenv("PHONEPE_SALT_KEY"),
			"salt_index":  os.Getenv("PHONEPE_SALT_INDEX"),
		},
		model.ProviderRazorpay: {
			"key_id":         os.Getenv("RAZORPAY_KEY_ID"),
			"key_secret":     os.Getenv("RAZORPAY_KEY_SECRET"),
			"webhook_secret": os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
		},
		model.ProviderStripe: {
			"secret_key":     os.Getenv("STRIPE_SECRET_KEY"),
			"webhook_secret": os.Getenv("STRIPE_WEBHOOK_SECRET"),
		},
	}

	configured := make(map[string]map[string]string)
	for provider, creds := range env {
		empty := true
		for _, v := range creds {
			if v != "" {
				empty = false
				break
			}
		}
		if !empty {
			configured[provider] = creds
		}
	}
	return configured
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Paygate API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "paygate"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		},
		Payment: PaymentConfig{
			Environment:      getEnv("PAYMENT_ENV", model.EnvSandbox),
			CredentialSource: getEnv("PAYMENT_CREDENTIAL_SOURCE", "env"),
			MasterKey:        getEnv("PAYMENT_MASTER_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	switch c.Payment.Environment {
	case model.EnvSandbox, model.EnvProduction:
	default:
		return fmt.Errorf("PAYMENT_ENV must be sandbox or production, got %q", c.Payment.Environment)
	}

	switch c.Payment.CredentialSource {
	case "env":
	case "database":
		if c.Payment.MasterKey == "" {
			return fmt.Errorf("PAYMENT_MASTER_KEY must be set when credentials come from the database")
		}
	default:
		return fmt.Errorf("PAYMENT_CREDENTIAL_SOURCE must be env or database, got %q", c.Payment.CredentialSource)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
