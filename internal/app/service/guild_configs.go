package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/jose-valero/osu-leaderboard-bot/internal/domain"
)

// GuildConfigs es el cache de configuración por guild. Los valores guardados
// nunca se modifican: un update arma una copia y reemplaza la entrada.
type GuildConfigs struct {
	repo    GuildConfigRepo
	entries sync.Map // guildID → *domain.GuildConfig
	first   singleflight.Group
	// serializa los writers; los lectores no lo tocan
	writeMu sync.Mutex
}

func NewGuildConfigs(repo GuildConfigRepo) *GuildConfigs {
	return &GuildConfigs{repo: repo}
}

// Load precarga todas las configs guardadas.
func (c *GuildConfigs) Load(ctx context.Context) (int, error) {
	all, err := c.repo.All(ctx)
	if err != nil {
		return 0, err
	}
	for id, cfg := range all {
		cfg := cfg
		c.entries.Store(id, &cfg)
	}
	return len(all), nil
}

// Get devuelve la config del guild. La primera lectura de un guild sin config
// persiste el default; si la escritura falla igual se cachea y se loguea.
func (c *GuildConfigs) Get(ctx context.Context, guildID string) domain.GuildConfig {
	if v, ok := c.entries.Load(guildID); ok {
		return *v.(*domain.GuildConfig)
	}
	v, _, _ := c.first.Do(guildID, func() (any, error) {
		if v, ok := c.entries.Load(guildID); ok {
			return v, nil
		}
		cfg := domain.DefaultGuildConfig()
		if err := c.repo.Upsert(ctx, guildID, cfg); err != nil {
			log.Warn().Err(err).Str("guild", guildID).Msg("failed to persist default guild config")
		} else {
			log.Info().Str("guild", guildID).Msg("inserted default guild config")
		}
		actual, _ := c.entries.LoadOrStore(guildID, &cfg)
		return actual, nil
	})
	return *v.(*domain.GuildConfig)
}

func (c *GuildConfigs) Prefixes(ctx context.Context, guildID string) []string {
	return c.Get(ctx, guildID).Prefixes
}

// FirstPrefix es el prefijo que se muestra en ayudas y ejemplos.
func (c *GuildConfigs) FirstPrefix(ctx context.Context, guildID string) string {
	if guildID == "" {
		return domain.DefaultPrefix
	}
	if ps := c.Prefixes(ctx, guildID); len(ps) > 0 {
		return ps[0]
	}
	return domain.DefaultPrefix
}

// Update aplica f sobre una copia, persiste y recién después publica la copia.
func (c *GuildConfigs) Update(ctx context.Context, guildID string, f func(domain.GuildConfig) domain.GuildConfig) (domain.GuildConfig, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	cur := c.Get(ctx, guildID)
	next := f(cur.Clone())
	if err := c.repo.Upsert(ctx, guildID, next); err != nil {
		return cur, err
	}
	c.entries.Store(guildID, &next)
	return next, nil
}

// Len es la cantidad de guilds en cache.
func (c *GuildConfigs) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
