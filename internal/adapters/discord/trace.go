package discord

import (
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
)

// step loguea cuánto tardó algo al llamar a la función devuelta.
func step(l zerolog.Logger, msg string) func() {
	start := time.Now()
	return func() { l.Info().Dur("elapsed", time.Since(start)).Msg(msg) }
}

func trimLeftSpace(s string) string { return strings.TrimLeftFunc(s, unicode.IsSpace) }
