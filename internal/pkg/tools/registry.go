package tools

import (
	"context"
	"log/slog"
	"sync"
)

// Registry resolves tool names to the provider endpoint implementing them.
// The endpoint map is built by querying every configured provider and is
// read-shared by all concurrent turns; it is only replaced wholesale when
// the catalog is rebuilt.
type Registry struct {
	providers []ProviderConfig
	dial      Dialer

	mu        sync.RWMutex
	endpoints map[string]string
}

func NewRegistry(providers []ProviderConfig, dial Dialer) *Registry {
	if dial == nil {
		dial = MCPDialer
	}
	return &Registry{
		providers: providers,
		dial:      dial,
		endpoints: map[string]string{},
	}
}

// ListTools queries every configured provider and returns the flattened
// catalog, in provider list order then provider-returned order. The name to
// endpoint map is rebuilt as a side effect. Providers that cannot be
// reached are skipped; an empty catalog means no tools are available and is
// not an error.
func (r *Registry) ListTools(ctx context.Context) []ToolDescriptor {
	catalog := []ToolDescriptor{}
	endpoints := map[string]string{}
	for _, provider := range r.providers {
		descriptors, err := r.listProviderTools(ctx, provider)
		if err != nil {
			slog.Warn("Registry: skipping provider", "provider", provider.Name, "endpoint", provider.Endpoint, "error", err)
			continue
		}
		for _, descriptor := range descriptors {
			if prev, ok := endpoints[descriptor.Name]; ok && prev != provider.Endpoint {
				slog.Warn("Registry: duplicate tool name, later provider wins", "tool", descriptor.Name, "provider", provider.Name)
			}
			endpoints[descriptor.Name] = provider.Endpoint
		}
		catalog = append(catalog, descriptors...)
	}
	r.mu.Lock()
	r.endpoints = endpoints
	r.mu.Unlock()
	return catalog
}

func (r *Registry) listProviderTools(ctx context.Context, provider ProviderConfig) ([]ToolDescriptor, error) {
	session, err := r.dial(ctx, provider.Endpoint)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	return session.ListTools(ctx)
}

// Resolve returns the endpoint of the provider implementing the named tool.
// The endpoint map is built lazily on first use.
func (r *Registry) Resolve(ctx context.Context, toolName string) (string, bool) {
	r.mu.RLock()
	empty := len(r.endpoints) == 0
	r.mu.RUnlock()
	if empty {
		r.ListTools(ctx)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	endpoint, ok := r.endpoints[toolName]
	return endpoint, ok
}
