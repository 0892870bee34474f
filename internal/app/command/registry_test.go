package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testHandler func() string

func desc(names ...string) *Descriptor[testHandler] {
	return &Descriptor[testHandler]{Names: names, Handler: func() string { return names[0] }}
}

func TestRegistryLookupAliases(t *testing.T) {
	r := NewPrefixRegistry[testHandler]()
	nlb := desc("nationalleaderboard", "nlb")
	help := desc("help", "h")
	require.NoError(t, r.Register(nlb, help))
	r.Seal()

	for _, name := range nlb.Names {
		got, ok := r.Lookup(name)
		require.True(t, ok, name)
		assert.Same(t, nlb, got)
	}
	got, ok := r.Lookup("h")
	require.True(t, ok)
	assert.Equal(t, "help", got.Handler())

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
	assert.Len(t, r.Commands(), 2)
	assert.ElementsMatch(t, []string{"nationalleaderboard", "nlb", "help", "h"}, r.Names())
}

func TestRegistryCollision(t *testing.T) {
	r := NewPrefixRegistry[testHandler]()
	require.NoError(t, r.Register(desc("ping", "p")))

	err := r.Register(desc("prefix", "p"))

	var ce *CollisionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "p", ce.Alias)
	assert.Equal(t, "ping", ce.Existing)
	assert.Equal(t, "prefix", ce.Incoming)
	assert.Contains(t, err.Error(), `"ping"`)
	assert.Contains(t, err.Error(), `"prefix"`)

	// el descriptor rechazado no deja alias colgando
	_, ok := r.Lookup("prefix")
	assert.False(t, ok)
}

func TestRegistryMustRegisterPanics(t *testing.T) {
	r := NewSlashRegistry[testHandler]()
	r.MustRegister(desc("nlb"))

	assert.Panics(t, func() { r.MustRegister(desc("leaderboard", "nlb")) })
}

func TestRegistryCaseHandling(t *testing.T) {
	prefix := NewPrefixRegistry[testHandler]()
	prefix.MustRegister(desc("Help"))
	_, ok := prefix.Lookup("help")
	assert.True(t, ok)

	slash := NewSlashRegistry[testHandler]()
	slash.MustRegister(desc("nlb"))
	_, ok = slash.Lookup("NLB")
	assert.False(t, ok)
}

func TestRegistrySealed(t *testing.T) {
	r := NewPrefixRegistry[testHandler]()
	r.Seal()
	assert.ErrorIs(t, r.Register(desc("ping")), ErrSealed)
}
