package discord

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// grados que devuelve osu! en los scores
var knownGrades = map[string]struct{}{
	"XH": {}, "X": {}, "SH": {}, "S": {}, "A": {}, "B": {}, "C": {}, "D": {}, "F": {},
}

// Formato en env: GRADE_EMOTES="XH:<:gradexh:123>,S:<:grades:456>,..."
var emojiMarkupRe = regexp.MustCompile(`^<a?:[a-zA-Z0-9_~]+:\d+>$`)

// Emotes son los emotes custom que se usan al renderizar scores.
type Emotes struct {
	Grades map[string]string
	Miss   string
}

// NewEmotes normaliza las claves y descarta lo que no parece un emote.
// Un valor raro se acepta igual si es unicode (no empieza con '<').
func NewEmotes(grades map[string]string, miss string) Emotes {
	e := Emotes{Grades: make(map[string]string, len(grades)), Miss: strings.TrimSpace(miss)}
	for k, v := range grades {
		key := strings.ToUpper(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if _, ok := knownGrades[key]; !ok {
			log.Warn().Str("grade", k).Msg("unknown grade in emote config, ignoring")
			continue
		}
		if strings.HasPrefix(v, "<") && !emojiMarkupRe.MatchString(v) {
			log.Warn().Str("grade", key).Str("emote", v).Msg("malformed grade emote, ignoring")
			continue
		}
		e.Grades[key] = v
	}
	if e.Miss == "" {
		e.Miss = "❌"
	}
	return e
}

// grade devuelve el emote del grado o el grado como código.
func (e Emotes) grade(g string) string {
	if v := e.Grades[g]; v != "" {
		return v
	}
	if g == "" {
		g = "F"
	}
	return "`" + g + "`"
}
