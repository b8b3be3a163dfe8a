package gateway_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paygate-backend/internal/domains/payment/credentials"
	"paygate-backend/internal/domains/payment/gateway"
	"paygate-backend/internal/domains/payment/gateway/mock"
	"paygate-backend/internal/domains/payment/model"
)

func TestRegistry_ResolveRegistered(t *testing.T) {
	registry := gateway.NewRegistry()
	registry.Register(mock.NewMockGateway(model.ProviderStripe))
	registry.Register(mock.NewMockGateway(model.ProviderRazorpay))

	g, err := registry.Resolve(model.ProviderStripe)
	require.NoError(t, err)
	assert.Equal(t, model.ProviderStripe, g.Name())

	assert.Equal(t, []string{model.ProviderRazorpay, model.ProviderStripe}, registry.Providers())
}

func TestRegistry_UnknownProvider(t *testing.T) {
	registry := gateway.NewRegistry()

	_, err := registry.Resolve("paytm")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownProvider)
}

func testResolver() *credentials.StaticResolver {
	resolver := credentials.NewStaticResolver()
	resolver.Set(model.ProviderCashfree, "default", model.EnvSandbox, map[string]string{
		"app_id": "app_test", "secret_key": "cfsk_test", "webhook_secret": "whsec_cf",
	})
	resolver.Set(model.ProviderStripe, "default", model.EnvSandbox, map[string]string{
		"secret_key": "sk_test_123", "webhook_secret": "whsec_stripe",
	})
	return resolver
}

func TestBuildGateway(t *testing.T) {
	g, err := gateway.BuildGateway(context.Background(), model.ProviderStripe, "default", model.EnvSandbox, testResolver(), &http.Client{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, model.ProviderStripe, g.Name())
}

func TestBuildGateway_UnknownProvider(t *testing.T) {
	resolver := credentials.NewStaticResolver()
	resolver.Set("paytm", "default", model.EnvSandbox, map[string]string{"key": "v"})

	_, err := gateway.BuildGateway(context.Background(), "paytm", "default", model.EnvSandbox, resolver, &http.Client{}, zerolog.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownProvider)
}

func TestBuildGateway_IncompleteCredentials(t *testing.T) {
	resolver := credentials.NewStaticResolver()
	resolver.Set(model.ProviderStripe, "default", model.EnvSandbox, map[string]string{
		"secret_key": "sk_test_123",
	})

	_, err := gateway.BuildGateway(context.Background(), model.ProviderStripe, "default", model.EnvSandbox, resolver, &http.Client{}, zerolog.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestBuildRegistry_SkipsProvidersWithoutCredentials(t *testing.T) {
	registry, err := gateway.BuildRegistry(context.Background(), model.EnvSandbox, testResolver(), &http.Client{}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{model.ProviderCashfree, model.ProviderStripe}, registry.Providers())

	_, err = registry.Resolve(model.ProviderPayU)
	assert.ErrorIs(t, err, model.ErrUnknownProvider)
}

func TestBuildRegistry_NoProvidersConfigured(t *testing.T) {
	_, err := gateway.BuildRegistry(context.Background(), model.EnvSandbox, credentials.NewStaticResolver(), &http.Client{}, zerolog.Nop())
	require.Error(t, err)
}
