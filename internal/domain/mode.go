package domain

import "fmt"

type GameMode uint8

const (
	ModeOsu GameMode = iota
	ModeTaiko
	ModeCatch
	ModeMania
)

func (m GameMode) String() string {
	switch m {
	case ModeOsu:
		return "osu"
	case ModeTaiko:
		return "taiko"
	case ModeCatch:
		return "fruits"
	case ModeMania:
		return "mania"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// HasMirrorEquivalence: en mania un score con MR cuenta para el mismo leaderboard.
func (m GameMode) HasMirrorEquivalence() bool { return m == ModeMania }
