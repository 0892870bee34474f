package domain

import (
	"regexp"
	"strconv"
	"strings"
)

const osuBase = "https://osu.ppy.sh/"

var (
	reMapNew      = regexp.MustCompile(`https://osu.ppy.sh/beatmapsets/(\d+)(?:(?:#(?:osu|mania|taiko|fruits)|<#\d+>)/(\d+))?`)
	reMapOld      = regexp.MustCompile(`https://osu.ppy.sh/b(?:eatmaps)?/(\d+)`)
	reMapsetOld   = regexp.MustCompile(`https://osu.ppy.sh/s/(\d+)`)
	reCustomEmote = regexp.MustCompile(`<(a?):([^:\n]+):(\d+)>`)
)

func parseID(s string) (uint32, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// MapIDFromText acepta un id pelado o una url de beatmap.
func MapIDFromText(s string) (uint32, bool) {
	if id, ok := parseID(s); ok {
		return id, true
	}
	if !strings.Contains(s, osuBase) {
		return 0, false
	}
	if m := reMapOld.FindStringSubmatch(s); m != nil {
		return parseID(m[1])
	}
	if m := reMapNew.FindStringSubmatch(s); m != nil && m[2] != "" {
		return parseID(m[2])
	}
	return 0, false
}

// MapsetIDFromText sólo mira urls de mapset (sin id de map).
func MapsetIDFromText(s string) (uint32, bool) {
	if !strings.Contains(s, osuBase) {
		return 0, false
	}
	if m := reMapsetOld.FindStringSubmatch(s); m != nil {
		return parseID(m[1])
	}
	if m := reMapNew.FindStringSubmatch(s); m != nil && m[2] == "" {
		return parseID(m[1])
	}
	return 0, false
}

func IsCustomEmote(s string) bool { return reCustomEmote.MatchString(s) }
