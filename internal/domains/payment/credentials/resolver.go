// Package credentials resolves per-provider credential sets. Adapters depend
// only on the Resolver interface; how secrets are encrypted or stored is
// invisible to them.
package credentials

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound means no credential set exists for the requested triple.
var ErrNotFound = errors.New("credentials not found")

// =====================================================
// RESOLVER INTERFACE
// =====================================================

// Resolver returns the decrypted credential map for one
// (provider type, provider name, environment) triple.
//
// Returned values are secrets: never logged, never echoed into metadata.
type Resolver interface {
	Resolve(ctx context.Context, providerType, name, environment string) (map[string]string, error)
}

// RequiredKeys lists the credential fields each provider needs. Resolution
// succeeds with extra keys present; missing required keys surface as a
// configuration error at adapter construction.
var RequiredKeys = map[string][]string{
	"cashfree": {"app_id", "secret_key", "webhook_secret"},
	"payu":     {"merchant_key", "merchant_salt"},
	"phonepe":  {"merchant_id", "salt_key", "salt_index"},
	"razorpay": {"key_id", "key_secret", "webhook_secret"},
	"stripe":   {"secret_key", "webhook_secret"},
}

// =====================================================
// STATIC RESOLVER
// =====================================================

// StaticResolver serves credentials from an in-memory map, keyed by
// providerType/name/environment. Used for env-seeded configuration and tests.
type StaticResolver struct {
	creds map[string]map[string]string
}

func NewStaticResolver() *StaticResolver {
	return &StaticResolver{creds: make(map[string]map[string]string)}
}

// Set registers a credential map for one provider triple.
func (r *StaticResolver) Set(providerType, name, environment string, values map[string]string) {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	r.creds[tripleKey(providerType, name, environment)] = copied
}

func (r *StaticResolver) Resolve(_ context.Context, providerType, name, environment string) (map[string]string, error) {
	values, ok := r.creds[tripleKey(providerType, name, environment)]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s/%s", ErrNotFound, providerType, name, environment)
	}

	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return copied, nil
}

func tripleKey(providerType, name, environment string) string {
	return providerType + "/" + name + "/" + environment
}
