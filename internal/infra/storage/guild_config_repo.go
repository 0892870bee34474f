package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	pq "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/osu-leaderboard-bot/internal/domain"
)

type GuildConfigRepo struct{ db *sql.DB }

func NewGuildConfigRepo(db *sql.DB) *GuildConfigRepo { return &GuildConfigRepo{db: db} }

// All trae todas las configs para precargar el cache al arrancar.
func (r *GuildConfigRepo) All(ctx context.Context) (map[string]domain.GuildConfig, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT guild_id, prefixes FROM guild_configs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]domain.GuildConfig{}
	for rows.Next() {
		var (
			id  int64
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		guildID := strconv.FormatInt(id, 10)
		cfg, err := decodePrefixes(raw)
		if err != nil {
			log.Warn().Err(err).Str("guild", guildID).Msg("invalid guild config in db, using default")
			cfg = domain.DefaultGuildConfig()
		}
		out[guildID] = cfg
	}
	return out, rows.Err()
}

func (r *GuildConfigRepo) Upsert(ctx context.Context, guildID string, cfg domain.GuildConfig) error {
	id, err := strconv.ParseInt(guildID, 10, 64)
	if err != nil {
		return fmt.Errorf("guild id %q: %w", guildID, err)
	}
	raw, err := encodePrefixes(cfg)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO guild_configs (guild_id, prefixes)
VALUES ($1, $2)
ON CONFLICT (guild_id) DO UPDATE SET
  prefixes   = EXCLUDED.prefixes,
  updated_at = now()
`, id, raw)
	if err != nil {
		return err
	}
	log.Debug().Str("guild", guildID).Msg("upserted guild config")
	return nil
}

// DeleteMany borra las configs de guilds que ya no tienen al bot.
func (r *GuildConfigRepo) DeleteMany(ctx context.Context, guildIDs []string) (int64, error) {
	if len(guildIDs) == 0 {
		return 0, nil
	}
	ids := make([]int64, 0, len(guildIDs))
	for _, g := range guildIDs {
		id, err := strconv.ParseInt(g, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("guild id %q: %w", g, err)
		}
		ids = append(ids, id)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM guild_configs WHERE guild_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func encodePrefixes(cfg domain.GuildConfig) ([]byte, error) {
	if n := len(cfg.Prefixes); n < 1 || n > domain.MaxPrefixes {
		return nil, fmt.Errorf("guild config must have 1-%d prefixes, got %d", domain.MaxPrefixes, n)
	}
	return json.Marshal(cfg.Prefixes)
}

func decodePrefixes(raw []byte) (domain.GuildConfig, error) {
	var prefixes []string
	if err := json.Unmarshal(raw, &prefixes); err != nil {
		return domain.GuildConfig{}, err
	}
	if n := len(prefixes); n < 1 || n > domain.MaxPrefixes {
		return domain.GuildConfig{}, fmt.Errorf("expected 1-%d prefixes, got %d", domain.MaxPrefixes, n)
	}
	return domain.GuildConfig{Prefixes: prefixes}, nil
}
