package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/osu-leaderboard-bot/internal/infra/logging"
	"github.com/jose-valero/osu-leaderboard-bot/internal/infra/storage"
)

type janitorConfig struct {
	DatabaseURL string        `env:"DATABASE_URL,required,notEmpty"`
	MapCacheTTL time.Duration `env:"MAP_CACHE_TTL" envDefault:"720h"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Input es el evento del schedule. Todo es opcional.
type Input struct {
	StaleGuilds []string `json:"stale_guilds"`
	MapTTLHours int      `json:"map_ttl_hours"`
}

func handler(ctx context.Context, in Input) (string, error) {
	cfg, err := env.ParseAs[janitorConfig]()
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	logging.Init(cfg.LogLevel, "")

	ttl := cfg.MapCacheTTL
	if in.MapTTLHours > 0 {
		ttl = time.Duration(in.MapTTLHours) * time.Hour
	}

	pcfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}
	pcfg.MaxConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return "", fmt.Errorf("pool: %w", err)
	}
	defer pool.Close()
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	cctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	maps, err := storage.NewMapFileRepo(db).PruneOlderThan(cctx, ttl)
	if err != nil {
		return "", fmt.Errorf("prune map files: %w", err)
	}
	guilds, err := storage.NewGuildConfigRepo(db).DeleteMany(cctx, in.StaleGuilds)
	if err != nil {
		return "", fmt.Errorf("delete stale guild configs: %w", err)
	}

	log.Info().Int64("map_files", maps).Int64("guild_configs", guilds).Dur("ttl", ttl).Msg("janitor finished")
	return fmt.Sprintf("pruned %d map files older than %s, deleted %d guild configs", maps, ttl, guilds), nil
}

func main() { lambda.Start(handler) }
