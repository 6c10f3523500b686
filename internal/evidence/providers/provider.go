package providers

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Protocol defines how a provider obtains its evidence
type Protocol string

const (
	ProtocolHTTP  Protocol = "http"
	ProtocolLocal Protocol = "local" // evidence read from a document handed to us
)

// ProviderType identifies the kind of evidence a provider can produce
type ProviderType string

const (
	ProviderTypeCitizen  ProviderType = "citizen"
	ProviderTypeDocument ProviderType = "document"
)

// FieldCapability advertises which fields a provider exposes
type FieldCapability struct {
	FieldName  string `json:"field_name"`
	Available  bool   `json:"available"`
	Filterable bool   `json:"filterable"` // Whether this field can be used in queries
}

// Capabilities describes what a provider supports
type Capabilities struct {
	Protocol Protocol          `json:"protocol"`
	Type     ProviderType      `json:"type"`
	Fields   []FieldCapability `json:"fields"`
	Version  string            `json:"version"`
	Filters  []string          `json:"filters"` // Supported lookup inputs, e.g. "document"
}

// Evidence is the generic result from any provider
type Evidence struct {
	ProviderID   string            `json:"provider_id"`
	ProviderType ProviderType      `json:"provider_type"`
	Confidence   float64           `json:"confidence"` // 0.0-1.0
	Data         map[string]any    `json:"data"`
	CheckedAt    time.Time         `json:"checked_at"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Provider is the universal interface all evidence sources must implement
type Provider interface {
	// ID returns a unique identifier for this provider instance
	ID() string

	// Capabilities returns what this provider supports
	Capabilities() Capabilities

	// Lookup produces evidence from the given filter fields
	Lookup(ctx context.Context, filters map[string]string) (*Evidence, error)

	// Health checks if the provider is available
	Health(ctx context.Context) error
}

// ProviderRegistry maintains all registered providers
type ProviderRegistry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewProviderRegistry creates a new empty registry
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider to the registry
func (r *ProviderRegistry) Register(p Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := p.ID()
	if _, exists := r.providers[id]; exists {
		return fmt.Errorf("provider %s already registered", id)
	}
	r.providers[id] = p
	return nil
}

// Get retrieves a provider by ID
func (r *ProviderRegistry) Get(id string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[id]
	return p, ok
}

// ListByType returns all providers of a given type, ordered by ID
func (r *ProviderRegistry) ListByType(t ProviderType) []Provider {
	var result []Provider
	for _, p := range r.All() {
		if p.Capabilities().Type == t {
			result = append(result, p)
		}
	}
	return result
}

// All returns all registered providers ordered by ID
func (r *ProviderRegistry) All() []Provider {
	r.mu.RLock()
	result := make([]Provider, 0, len(r.providers))
	for _, p := range r.providers {
		result = append(result, p)
	}
	r.mu.RUnlock()
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}

// Health runs every provider's health check and returns the failures keyed by
// provider ID. A nil map means every provider is healthy.
func (r *ProviderRegistry) Health(ctx context.Context) map[string]error {
	var failing map[string]error
	for _, p := range r.All() {
		if err := p.Health(ctx); err != nil {
			if failing == nil {
				failing = make(map[string]error)
			}
			failing[p.ID()] = err
		}
	}
	return failing
}
