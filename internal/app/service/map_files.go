package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jose-valero/osu-leaderboard-bot/internal/domain"
)

// MapFiles resuelve el .osu de un map: primero la db, si no la web.
type MapFiles struct {
	repo MapFileRepo
	api  MapFileAPI
}

func NewMapFiles(repo MapFileRepo, api MapFileAPI) *MapFiles {
	return &MapFiles{repo: repo, api: api}
}

func (m *MapFiles) Info(ctx context.Context, mapID uint32) (domain.MapInfo, error) {
	content, err := m.repo.Get(ctx, mapID)
	if err == nil {
		info, perr := domain.ParseMapInfo(content)
		if perr == nil {
			return withID(info, mapID), nil
		}
		log.Warn().Err(perr).Uint32("map", mapID).Msg("cached map file is corrupt, downloading again")
	} else if !domain.IsCacheMiss(err) {
		log.Warn().Err(err).Uint32("map", mapID).Msg("failed to read cached map file")
	}

	content, err = m.api.MapFile(ctx, mapID)
	if err != nil {
		return domain.MapInfo{}, &domain.UpstreamError{Op: fmt.Sprintf("download map file %d", mapID), Err: err}
	}
	info, err := domain.ParseMapInfo(content)
	if err != nil {
		return domain.MapInfo{}, &domain.UpstreamError{Op: fmt.Sprintf("parse map file %d", mapID), Err: err}
	}
	if err := m.repo.Put(ctx, mapID, content); err != nil {
		log.Warn().Err(err).Uint32("map", mapID).Msg("failed to cache map file")
	}
	return withID(info, mapID), nil
}

// los .osu viejos no traen BeatmapID
func withID(info domain.MapInfo, mapID uint32) domain.MapInfo {
	if info.MapID == 0 {
		info.MapID = mapID
	}
	return info
}
