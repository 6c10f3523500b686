package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	id        string
	typ       ProviderType
	healthErr error
}

func (p stubProvider) ID() string { return p.id }
func (p stubProvider) Capabilities() Capabilities {
	return Capabilities{Type: p.typ}
}
func (p stubProvider) Lookup(context.Context, map[string]string) (*Evidence, error) {
	return &Evidence{ProviderID: p.id}, nil
}
func (p stubProvider) Health(context.Context) error { return p.healthErr }

func TestProviderRegistry(t *testing.T) {
	reg := NewProviderRegistry()
	require.NoError(t, reg.Register(stubProvider{id: "eid-card", typ: ProviderTypeDocument}))
	require.NoError(t, reg.Register(stubProvider{id: "citizen", typ: ProviderTypeCitizen}))

	assert.Error(t, reg.Register(stubProvider{id: "eid-card"}), "duplicate IDs are rejected")

	p, ok := reg.Get("eid-card")
	require.True(t, ok)
	assert.Equal(t, "eid-card", p.ID())

	_, ok = reg.Get("passport")
	assert.False(t, ok)

	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "citizen", all[0].ID())
	assert.Equal(t, "eid-card", all[1].ID())

	docs := reg.ListByType(ProviderTypeDocument)
	require.Len(t, docs, 1)
	assert.Equal(t, "eid-card", docs[0].ID())
}

func TestProviderRegistryHealth(t *testing.T) {
	reg := NewProviderRegistry()
	require.NoError(t, reg.Register(stubProvider{id: "eid-card", typ: ProviderTypeDocument}))
	assert.Nil(t, reg.Health(context.Background()))

	down := errors.New("reader unplugged")
	require.NoError(t, reg.Register(stubProvider{id: "usb-reader", typ: ProviderTypeDocument, healthErr: down}))

	failing := reg.Health(context.Background())
	require.Len(t, failing, 1)
	assert.ErrorIs(t, failing["usb-reader"], down)
}
