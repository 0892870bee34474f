package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GameMods es el bitset de mods de osu!, mismos bits que la API.
type GameMods uint32

const (
	ModNoFail GameMods = 1 << iota
	ModEasy
	ModTouchDevice
	ModHidden
	ModHardRock
	ModSuddenDeath
	ModDoubleTime
	ModRelax
	ModHalfTime
	ModNightcore
	ModFlashlight
	ModAutoplay
	ModSpunOut
	ModAutopilot
	ModPerfect
	ModKey4
	ModKey5
	ModKey6
	ModKey7
	ModKey8
	ModFadeIn
	ModRandom
	ModCinema
	ModTarget
	ModKey9
	ModKeyCoop
	ModKey1
	ModKey3
	ModKey2
	ModScoreV2
	ModMirror
)

// NoMods es la selección vacía explícita ("NM").
const NoMods GameMods = 0

var modAcronyms = []struct {
	mod  GameMods
	name string
}{
	{ModNoFail, "NF"},
	{ModEasy, "EZ"},
	{ModTouchDevice, "TD"},
	{ModHidden, "HD"},
	{ModHardRock, "HR"},
	{ModSuddenDeath, "SD"},
	{ModDoubleTime, "DT"},
	{ModRelax, "RX"},
	{ModHalfTime, "HT"},
	{ModNightcore, "NC"},
	{ModFlashlight, "FL"},
	{ModAutoplay, "AT"},
	{ModSpunOut, "SO"},
	{ModAutopilot, "AP"},
	{ModPerfect, "PF"},
	{ModKey4, "4K"},
	{ModKey5, "5K"},
	{ModKey6, "6K"},
	{ModKey7, "7K"},
	{ModKey8, "8K"},
	{ModFadeIn, "FI"},
	{ModRandom, "RD"},
	{ModCinema, "CN"},
	{ModTarget, "TP"},
	{ModKey9, "9K"},
	{ModKeyCoop, "KC"},
	{ModKey1, "1K"},
	{ModKey3, "3K"},
	{ModKey2, "2K"},
	{ModScoreV2, "V2"},
	{ModMirror, "MR"},
}

func (m GameMods) Contains(other GameMods) bool { return m&other == other }

func (m GameMods) Intersects(other GameMods) bool { return m&other != 0 }

// Acronyms devuelve los acrónimos en orden de bit.
func (m GameMods) Acronyms() []string {
	out := make([]string, 0, 4)
	for _, a := range modAcronyms {
		if m&a.mod != 0 {
			out = append(out, a.name)
		}
	}
	return out
}

func (m GameMods) String() string {
	if m == NoMods {
		return "NM"
	}
	return strings.Join(m.Acronyms(), "")
}

func modByAcronym(s string) (GameMods, bool) {
	s = strings.ToUpper(s)
	switch s {
	case "NM":
		return NoMods, true
	case "SV2", "S2":
		return ModScoreV2, true
	}
	for _, a := range modAcronyms {
		if a.name == s {
			return a.mod, true
		}
	}
	return 0, false
}

// ParseMods interpreta "hdhr", "HDDT", "nm"... en bloques de dos caracteres.
func ParseMods(s string) (GameMods, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s)%2 != 0 {
		return 0, fmt.Errorf("invalid mods %q", s)
	}
	var mods GameMods
	for i := 0; i < len(s); i += 2 {
		m, ok := modByAcronym(s[i : i+2])
		if !ok {
			return 0, fmt.Errorf("invalid mod acronym %q", s[i:i+2])
		}
		mods |= m
	}
	return mods, nil
}

// UnmarshalJSON acepta ["HD","DT"] o [{"acronym":"HD"}].
func (m *GameMods) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		var bits uint32
		if err2 := json.Unmarshal(b, &bits); err2 == nil {
			*m = GameMods(bits)
			return nil
		}
		return err
	}
	var mods GameMods
	for _, r := range raw {
		var name string
		if err := json.Unmarshal(r, &name); err != nil {
			var obj struct {
				Acronym string `json:"acronym"`
			}
			if err := json.Unmarshal(r, &obj); err != nil {
				return err
			}
			name = obj.Acronym
		}
		mod, ok := modByAcronym(name)
		if !ok {
			// mods nuevos (lazer) que no caben en el bitset
			continue
		}
		mods |= mod
	}
	*m = mods
	return nil
}
