// Package eidcard exposes eID reader documents as identity evidence.
package eidcard

import (
	"context"
	"strings"
	"time"

	"eidreader/internal/eid/extractor"
	"eidreader/internal/eid/models"
	"eidreader/internal/evidence/providers"
)

const (
	// FilterDocument carries the raw reader XML.
	FilterDocument = "document"

	version = "v1.0.0"
)

// Provider reads evidence from eID reader XML handed to Lookup. It needs no
// backend, so it is always healthy.
type Provider struct {
	id  string
	now func() time.Time
}

// New creates a provider registered under id.
func New(id string) *Provider {
	return &Provider{id: id, now: time.Now}
}

func (p *Provider) ID() string { return p.id }

func (p *Provider) Capabilities() providers.Capabilities {
	fields := make([]providers.FieldCapability, 0, len(models.FieldNames))
	for _, name := range models.FieldNames {
		fields = append(fields, providers.FieldCapability{FieldName: name, Available: true})
	}
	return providers.Capabilities{
		Protocol: providers.ProtocolLocal,
		Type:     providers.ProviderTypeDocument,
		Fields:   fields,
		Version:  version,
		Filters:  []string{FilterDocument},
	}
}

// Lookup extracts the card record from filters["document"]. Confidence is the
// share of required fields that were read.
func (p *Provider) Lookup(ctx context.Context, filters map[string]string) (*providers.Evidence, error) {
	if err := ctx.Err(); err != nil {
		return nil, providers.NewProviderError(providers.ErrorTimeout, p.id, "lookup cancelled", err)
	}
	doc := filters[FilterDocument]
	if strings.TrimSpace(doc) == "" {
		return nil, providers.NewProviderError(providers.ErrorBadData, p.id, "document filter is required", nil)
	}

	record := extractor.Extract(doc)
	if record.IsEmpty() {
		return nil, providers.NewProviderError(providers.ErrorNotFound, p.id, "no identity fields found in document", nil)
	}

	data := make(map[string]any, len(models.FieldNames))
	for name, value := range record.Fields() {
		data[name] = value
	}
	return &providers.Evidence{
		ProviderID:   p.id,
		ProviderType: providers.ProviderTypeDocument,
		Confidence:   confidence(record),
		Data:         data,
		CheckedAt:    p.now(),
		Metadata: map[string]string{
			"provider_version": version,
			"complete":         boolString(record.Complete()),
		},
	}, nil
}

func (p *Provider) Health(context.Context) error { return nil }

func confidence(r models.Record) float64 {
	fields := r.Fields()
	read := 0
	for _, name := range models.RequiredFields {
		if fields[name] != "" {
			read++
		}
	}
	return float64(read) / float64(len(models.RequiredFields))
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
