package storage

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jose-valero/osu-leaderboard-bot/internal/domain"
)

// MapFileRepo cachea los .osu descargados.
type MapFileRepo struct{ db *sql.DB }

func NewMapFileRepo(db *sql.DB) *MapFileRepo { return &MapFileRepo{db: db} }

func (r *MapFileRepo) Get(ctx context.Context, mapID uint32) ([]byte, error) {
	var content []byte
	err := r.db.QueryRowContext(ctx, `SELECT content FROM map_files WHERE map_id = $1`, int64(mapID)).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.CacheMissError{Kind: "map file", Key: strconv.FormatUint(uint64(mapID), 10)}
	}
	return content, err
}

func (r *MapFileRepo) Put(ctx context.Context, mapID uint32, content []byte) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO map_files (map_id, content)
VALUES ($1, $2)
ON CONFLICT (map_id) DO UPDATE SET
  content    = EXCLUDED.content,
  fetched_at = now()
`, int64(mapID), content)
	return err
}

// PruneOlderThan borra los archivos descargados hace más de ttl.
func (r *MapFileRepo) PruneOlderThan(ctx context.Context, ttl time.Duration) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM map_files WHERE fetched_at < $1`, time.Now().Add(-ttl))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
