package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"paygate-backend/internal/domains/payment/credentials"
	"paygate-backend/internal/domains/payment/gateway/cashfree"
	"paygate-backend/internal/domains/payment/gateway/payu"
	"paygate-backend/internal/domains/payment/gateway/phonepe"
	"paygate-backend/internal/domains/payment/gateway/razorpay"
	"paygate-backend/internal/domains/payment/gateway/stripe"
	"paygate-backend/internal/domains/payment/model"
)

// =====================================================
// GATEWAY FACTORY
// =====================================================

// BuildGateway constructs a single provider adapter with credentials resolved
// for the given environment. Name "default" selects the provider's standard
// credential set.
func BuildGateway(ctx context.Context, provider, name, environment string, resolver credentials.Resolver, httpClient *http.Client, logger zerolog.Logger) (Gateway, error) {
	creds, err := resolver.Resolve(ctx, provider, name, environment)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s credentials: %w", provider, err)
	}

	switch provider {
	case model.ProviderCashfree:
		cfg, err := cashfree.NewConfig(environment, creds)
		if err != nil {
			return nil, err
		}
		return cashfree.NewClient(cfg, httpClient, logger)
	case model.ProviderPayU:
		cfg, err := payu.NewConfig(environment, creds)
		if err != nil {
			return nil, err
		}
		return payu.NewClient(cfg, httpClient, logger)
	case model.ProviderPhonePe:
		cfg, err := phonepe.NewConfig(environment, creds)
		if err != nil {
			return nil, err
		}
		return phonepe.NewClient(cfg, httpClient, logger)
	case model.ProviderRazorpay:
		cfg, err := razorpay.NewConfig(environment, creds)
		if err != nil {
			return nil, err
		}
		return razorpay.NewClient(cfg, httpClient, logger)
	case model.ProviderStripe:
		cfg, err := stripe.NewConfig(environment, creds)
		if err != nil {
			return nil, err
		}
		return stripe.NewClient(cfg, httpClient, logger)
	default:
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownProvider, provider)
	}
}

// BuildRegistry constructs every provider the resolver holds credentials for
// and registers them. Providers without stored credentials are skipped with a
// log line rather than failing startup, so a deployment can run with a subset
// of gateways enabled.
func BuildRegistry(ctx context.Context, environment string, resolver credentials.Resolver, httpClient *http.Client, logger zerolog.Logger) (*Registry, error) {
	registry := NewRegistry()

	for provider := range credentials.RequiredKeys {
		g, err := BuildGateway(ctx, provider, "default", environment, resolver, httpClient, logger)
		if err != nil {
			if errors.Is(err, credentials.ErrNotFound) {
				logger.Info().Str("provider", provider).Msg("no credentials stored, gateway disabled")
				continue
			}
			return nil, err
		}
		registry.Register(g)
		logger.Info().Str("provider", provider).Str("environment", environment).Msg("gateway registered")
	}

	if len(registry.Providers()) == 0 {
		return nil, fmt.Errorf("no payment gateways configured for environment %s", environment)
	}
	return registry, nil
}
