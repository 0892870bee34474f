package domain

import (
	"slices"
	"strings"
)

const (
	DefaultPrefix = "<"
	MaxPrefixes   = 5
)

// GuildConfig es inmutable una vez publicado en el cache: los cambios
// se hacen sobre Clone().
type GuildConfig struct {
	Prefixes []string
}

func DefaultGuildConfig() GuildConfig {
	return GuildConfig{Prefixes: []string{DefaultPrefix}}
}

func (c GuildConfig) Clone() GuildConfig {
	return GuildConfig{Prefixes: slices.Clone(c.Prefixes)}
}

// FindPrefix devuelve el prefijo más largo con el que arranca content.
func (c GuildConfig) FindPrefix(content string) (string, bool) {
	return MatchPrefix(c.Prefixes, content)
}

func MatchPrefix(prefixes []string, content string) (string, bool) {
	best := ""
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(content, p) && len(p) > len(best) {
			best = p
		}
	}
	return best, best != ""
}

// WithPrefixesAdded agrega, ordena ("<" primero), deduplica y recorta a MaxPrefixes.
func (c GuildConfig) WithPrefixesAdded(add []string) GuildConfig {
	next := c.Clone()
	next.Prefixes = append(next.Prefixes, add...)
	slices.SortStableFunc(next.Prefixes, comparePrefixes)
	next.Prefixes = slices.Compact(next.Prefixes)
	if len(next.Prefixes) > MaxPrefixes {
		next.Prefixes = next.Prefixes[:MaxPrefixes]
	}
	return next
}

// WithPrefixesRemoved quita los prefijos pedidos pero nunca deja la lista vacía.
func (c GuildConfig) WithPrefixesRemoved(remove []string) GuildConfig {
	next := c.Clone()
	for _, r := range remove {
		i := slices.Index(next.Prefixes, r)
		if i < 0 {
			continue
		}
		if len(next.Prefixes) == 1 {
			break
		}
		next.Prefixes = slices.Delete(next.Prefixes, i, i+1)
	}
	return next
}

func comparePrefixes(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == DefaultPrefix:
		return -1
	case b == DefaultPrefix:
		return 1
	}
	return strings.Compare(a, b)
}
