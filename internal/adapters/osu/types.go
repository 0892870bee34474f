package osu

import (
	"time"

	"github.com/jose-valero/osu-leaderboard-bot/internal/domain"
)

// --- Leaderboard (beatmaps/{id}/scores) ---
type scoresDTO struct {
	Scores []scoreDTO `json:"scores"`
}

type scoreDTO struct {
	ID         uint64          `json:"id"`
	UserID     uint32          `json:"user_id"`
	Accuracy   float64         `json:"accuracy"`
	Mods       domain.GameMods `json:"mods"`
	TotalScore uint64          `json:"total_score"`
	MaxCombo   uint32          `json:"max_combo"`
	PP         *float64        `json:"pp"`
	Rank       string          `json:"rank"`
	EndedAt    time.Time       `json:"ended_at"`
	Replay     bool            `json:"replay"`
	Statistics struct {
		Perfect uint32 `json:"perfect"`
		Great   uint32 `json:"great"`
		Good    uint32 `json:"good"`
		Ok      uint32 `json:"ok"`
		Meh     uint32 `json:"meh"`
		Miss    uint32 `json:"miss"`
	} `json:"statistics"`
	User struct {
		Username    string `json:"username"`
		CountryCode string `json:"country_code"`
	} `json:"user"`
}

func (d scoreDTO) toDomain() domain.Score {
	return domain.Score{
		ID:          d.ID,
		UserID:      d.UserID,
		Username:    d.User.Username,
		CountryCode: d.User.CountryCode,
		Accuracy:    d.Accuracy * 100,
		Mods:        d.Mods,
		Score:       d.TotalScore,
		MaxCombo:    d.MaxCombo,
		Grade:       d.Rank,
		PP:          d.PP,
		Statistics: domain.ScoreStatistics{
			Perfect: d.Statistics.Perfect,
			Great:   d.Statistics.Great,
			Good:    d.Statistics.Good,
			Ok:      d.Statistics.Ok,
			Meh:     d.Statistics.Meh,
			Miss:    d.Statistics.Miss,
		},
		EndedAt:   d.EndedAt,
		HasReplay: d.Replay,
	}
}
