package llm

import (
	"fmt"
	"sort"
	"sync"
)

// Router holds the registered providers and picks one by name
type Router struct {
	mu        sync.RWMutex
	providers map[string]Provider
	fallback  string
}

// NewRouter creates a router that resolves an empty name to fallback
func NewRouter(fallback string) *Router {
	return &Router{
		providers: make(map[string]Provider),
		fallback:  fallback,
	}
}

// RegisterProvider adds provider, replacing any provider with the same name
func (r *Router) RegisterProvider(provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[provider.Name()] = provider
}

// ListProviders returns the names of providers that have credentials
func (r *Router) ListProviders() []string {
	var names []string
	for _, s := range r.Status() {
		if s.Configured {
			names = append(names, s.Name)
		}
	}
	return names
}

// GetProvider returns a configured provider. An empty name selects the fallback.
func (r *Router) GetProvider(name string) (Provider, error) {
	if name == "" {
		name = r.fallback
	}

	r.mu.RLock()
	p, ok := r.providers[name]
	r.mu.RUnlock()

	switch {
	case !ok:
		return nil, fmt.Errorf("provider not found: %s", name)
	case !p.IsConfigured():
		return nil, fmt.Errorf("provider not configured: %s", name)
	}
	return p, nil
}

// ProviderStatus describes a registered provider for health reporting
type ProviderStatus struct {
	Name       string `json:"name"`
	Model      string `json:"model"`
	Default    bool   `json:"default"`
	Configured bool   `json:"configured"`
}

// Status reports every registered provider, sorted by name
func (r *Router) Status() []ProviderStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	statuses := make([]ProviderStatus, 0, len(r.providers))
	for name, p := range r.providers {
		statuses = append(statuses, ProviderStatus{
			Name:       name,
			Model:      p.DefaultModel(),
			Default:    name == r.fallback,
			Configured: p.IsConfigured(),
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses
}
