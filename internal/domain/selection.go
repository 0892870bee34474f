package domain

import (
	"regexp"
	"strings"
)

type SelectionKind uint8

const (
	SelectInclude SelectionKind = iota + 1
	SelectExact
	SelectExclude
)

// ModSelection es lo que pidió el usuario: +hd, +hdhr! o -ez!.
type ModSelection struct {
	Kind SelectionKind
	Mods GameMods
}

var (
	reModPlus  = regexp.MustCompile(`^\+(\w+)!?$`)
	reModMinus = regexp.MustCompile(`^-(\w+)!$`)
)

// MatchModSelection reconoce sólo la sintaxis explícita con +/-.
func MatchModSelection(arg string) (ModSelection, bool) {
	if m := reModPlus.FindStringSubmatch(arg); m != nil {
		mods, err := ParseMods(m[1])
		if err != nil {
			return ModSelection{}, false
		}
		if strings.HasSuffix(arg, "!") {
			return ModSelection{Kind: SelectExact, Mods: mods}, true
		}
		return ModSelection{Kind: SelectInclude, Mods: mods}, true
	}
	if m := reModMinus.FindStringSubmatch(arg); m != nil {
		mods, err := ParseMods(m[1])
		if err != nil {
			return ModSelection{}, false
		}
		return ModSelection{Kind: SelectExclude, Mods: mods}, true
	}
	return ModSelection{}, false
}

// ParseModSelection además acepta acrónimos sueltos ("hdhr") como include.
func ParseModSelection(arg string) (ModSelection, bool) {
	if sel, ok := MatchModSelection(arg); ok {
		return sel, true
	}
	mods, err := ParseMods(arg)
	if err != nil {
		return ModSelection{}, false
	}
	return ModSelection{Kind: SelectInclude, Mods: mods}, true
}

// Filter devuelve los mods que se mandan a la API; exclude no filtra remoto.
func (s *ModSelection) Filter() (GameMods, bool) {
	if s == nil || s.Kind == SelectExclude {
		return 0, false
	}
	return s.Mods, true
}

// Allows aplica la parte local de la selección sobre un score ya traído.
// Include/exact ya vienen filtrados por la API (incluyendo alternos DT/NC y MR).
func (s *ModSelection) Allows(mods GameMods) bool {
	if s == nil || s.Kind != SelectExclude {
		return true
	}
	if s.Mods == NoMods {
		return mods != NoMods
	}
	return !mods.Intersects(s.Mods)
}
