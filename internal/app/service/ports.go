package service

import (
	"context"

	"github.com/jose-valero/osu-leaderboard-bot/internal/domain"
)

// Lo implementa internal/infra/storage.GuildConfigRepo
type GuildConfigRepo interface {
	All(ctx context.Context) (map[string]domain.GuildConfig, error)
	Upsert(ctx context.Context, guildID string, cfg domain.GuildConfig) error
}

// Lo implementa internal/infra/storage.MapFileRepo
type MapFileRepo interface {
	Get(ctx context.Context, mapID uint32) ([]byte, error)
	Put(ctx context.Context, mapID uint32, content []byte) error
}

// Lo implementa internal/adapters/osu.Client
type MapFileAPI interface {
	MapFile(ctx context.Context, mapID uint32) ([]byte, error)
}
