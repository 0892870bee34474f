package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jose-valero/osu-leaderboard-bot/internal/domain"
)

type PrefixAction uint8

const (
	PrefixShow PrefixAction = iota
	PrefixAdd
	PrefixRemove
)

// ParsePrefixAction interpreta el primer argumento de `prefix`.
func ParsePrefixAction(arg string) (PrefixAction, error) {
	switch arg {
	case "":
		return PrefixShow, nil
	case "add", "a":
		return PrefixAdd, nil
	case "remove", "r":
		return PrefixRemove, nil
	}
	return 0, domain.UserInput("If any arguments are provided, the first one must be either `add` or `remove`, not `%s`", arg)
}

type PrefixService struct {
	configs *GuildConfigs
}

func NewPrefixService(c *GuildConfigs) *PrefixService { return &PrefixService{configs: c} }

func (s *PrefixService) Show(ctx context.Context, guildID string) string {
	return formatPrefixes(s.configs.Prefixes(ctx, guildID))
}

// Update aplica add/remove con hasta MaxPrefixes argumentos.
func (s *PrefixService) Update(ctx context.Context, guildID string, action PrefixAction, args []string) (string, error) {
	if action == PrefixShow {
		return s.Show(ctx, guildID), nil
	}
	if len(args) == 0 {
		return "", domain.UserInput("After the first argument you should specify some prefix(es)")
	}
	if len(args) > domain.MaxPrefixes {
		args = args[:domain.MaxPrefixes]
	}
	for _, a := range args {
		if domain.IsCustomEmote(a) {
			return "", domain.UserInput("Does not work with custom emotes unfortunately \\:(")
		}
	}

	cfg, err := s.configs.Update(ctx, guildID, func(cfg domain.GuildConfig) domain.GuildConfig {
		if action == PrefixAdd {
			return cfg.WithPrefixesAdded(args)
		}
		return cfg.WithPrefixesRemoved(args)
	})
	if err != nil {
		return "", fmt.Errorf("update prefixes of guild %s: %w", guildID, err)
	}
	return "Prefixes updated!\n" + formatPrefixes(cfg.Prefixes), nil
}

func formatPrefixes(prefixes []string) string {
	var b strings.Builder
	b.WriteString("Prefixes for this server: ")
	for i, p := range prefixes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("`" + p + "`")
	}
	return b.String()
}
