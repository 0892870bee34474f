package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithPrefixesAdded(t *testing.T) {
	cfg := GuildConfig{Prefixes: []string{"<"}}

	got := cfg.WithPrefixesAdded([]string{"!", "<", "$", "a", "b", "c"})

	assert.Equal(t, []string{"<", "!", "$", "a", "b"}, got.Prefixes)
	assert.Equal(t, []string{"<"}, cfg.Prefixes, "original must not change")
}

func TestWithPrefixesRemoved(t *testing.T) {
	cfg := GuildConfig{Prefixes: []string{"<", "!"}}

	assert.Equal(t, []string{"!"}, cfg.WithPrefixesRemoved([]string{"<"}).Prefixes)
	assert.Equal(t, []string{"<"}, cfg.WithPrefixesRemoved([]string{"!", "<"}).Prefixes)
	assert.Equal(t, []string{"<", "!"}, cfg.WithPrefixesRemoved([]string{"?"}).Prefixes)
	assert.Equal(t, []string{"<", "!"}, cfg.Prefixes)
}

func TestFindPrefix(t *testing.T) {
	cfg := GuildConfig{Prefixes: []string{"<", "<<", "!"}}

	p, ok := cfg.FindPrefix("<<nlb")
	assert.True(t, ok)
	assert.Equal(t, "<<", p)

	_, ok = cfg.FindPrefix("nlb")
	assert.False(t, ok)
}
