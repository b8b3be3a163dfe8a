package gateway

import (
	"fmt"
	"sort"
	"sync"

	"paygate-backend/internal/domains/payment/model"
)

// =====================================================
// GATEWAY REGISTRY
// =====================================================

// Registry resolves a provider key to its adapter instance, so calling code
// holds only the Gateway contract and never branches on provider identity.
type Registry struct {
	mu       sync.RWMutex
	gateways map[string]Gateway
}

func NewRegistry() *Registry {
	return &Registry{gateways: make(map[string]Gateway)}
}

// Register adds or replaces an adapter under its own Name().
func (r *Registry) Register(g Gateway) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gateways[g.Name()] = g
}

// Resolve returns the adapter for a provider key.
func (r *Registry) Resolve(provider string) (Gateway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.gateways[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownProvider, provider)
	}
	return g, nil
}

// Providers lists the registered provider keys, sorted.
func (r *Registry) Providers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.gateways))
	for k := range r.gateways {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
