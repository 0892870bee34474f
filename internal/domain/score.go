package domain

import (
	"cmp"
	"slices"
	"time"
)

// LeaderboardSize es el máximo de entradas que devuelve un leaderboard mergeado.
const LeaderboardSize = 50

type ScoreStatistics struct {
	Perfect uint32
	Great   uint32
	Good    uint32
	Ok      uint32
	Meh     uint32
	Miss    uint32
}

type Score struct {
	ID          uint64
	UserID      uint32
	Username    string
	CountryCode string
	Accuracy    float64 // 0..100
	Mods        GameMods
	Score       uint64
	MaxCombo    uint32
	Grade       string
	PP          *float64
	Statistics  ScoreStatistics
	EndedAt     time.Time
	HasReplay   bool
}

// MergeScores junta varios leaderboards: orden descendente por score,
// un solo score por jugador (gana la primera aparición) y como mucho LeaderboardSize.
// El orden de sets importa sólo en empates exactos.
func MergeScores(sets ...[]Score) []Score {
	n := 0
	for _, s := range sets {
		n += len(s)
	}
	all := make([]Score, 0, n)
	for _, s := range sets {
		all = append(all, s...)
	}

	slices.SortStableFunc(all, func(a, b Score) int { return cmp.Compare(b.Score, a.Score) })

	seen := make(map[uint32]struct{}, LeaderboardSize)
	out := make([]Score, 0, min(len(all), LeaderboardSize))
	for _, s := range all {
		if _, dup := seen[s.UserID]; dup {
			continue
		}
		seen[s.UserID] = struct{}{}
		out = append(out, s)
		if len(out) == LeaderboardSize {
			break
		}
	}
	return out
}
