package pagination

import (
	"regexp"
	"strings"
)

type Control uint8

const (
	JumpStart Control = iota + 1
	MultiStepBack
	StepBack
	JumpMarker
	StepForward
	MultiStepForward
	JumpEnd
)

func (c Control) String() string {
	switch c {
	case JumpStart:
		return "jump_start"
	case MultiStepBack:
		return "multi_step_back"
	case StepBack:
		return "single_step_back"
	case JumpMarker:
		return "my_position"
	case StepForward:
		return "single_step"
	case MultiStepForward:
		return "multi_step"
	case JumpEnd:
		return "jump_end"
	}
	return "unknown"
}

// Emotes de cada control, tal como vienen de la config ("⏭" o "<:name:id>").
type Emotes struct {
	JumpStart        string
	MultiStepBack    string
	StepBack         string
	JumpMarker       string
	StepForward      string
	MultiStepForward string
	JumpEnd          string
}

func DefaultEmotes() Emotes {
	return Emotes{
		JumpStart:        "⏮",
		MultiStepBack:    "⏪",
		StepBack:         "◀",
		JumpMarker:       "🎯",
		StepForward:      "▶",
		MultiStepForward: "⏩",
		JumpEnd:          "⏭",
	}
}

func (e Emotes) of(c Control) string {
	switch c {
	case JumpStart:
		return e.JumpStart
	case MultiStepBack:
		return e.MultiStepBack
	case StepBack:
		return e.StepBack
	case JumpMarker:
		return e.JumpMarker
	case StepForward:
		return e.StepForward
	case MultiStepForward:
		return e.MultiStepForward
	case JumpEnd:
		return e.JumpEnd
	}
	return ""
}

var reEmoteMarkup = regexp.MustCompile(`^<a?:([^:\s]+):(\d+)>$`)

// APIName pasa un emote de config al formato que usa la API de reacciones.
func APIName(emote string) string {
	if m := reEmoteMarkup.FindStringSubmatch(emote); m != nil {
		return m[1] + ":" + m[2]
	}
	return emote
}

// sameEmoji compara ignorando el selector de variación U+FE0F.
func sameEmoji(a, b string) bool {
	return strings.ReplaceAll(a, "\ufe0f", "") == strings.ReplaceAll(b, "\ufe0f", "")
}
