package discord

import (
	"errors"

	"github.com/jose-valero/osu-leaderboard-bot/internal/adapters/osu"
	"github.com/jose-valero/osu-leaderboard-bot/internal/domain"
	"github.com/jose-valero/osu-leaderboard-bot/internal/infra/backoff"
)

const (
	msgGeneralIssue = "Something went wrong, blame the developers"
	msgOsuWebIssue  = "Some issue with the osu! website, DDoS protection?"

	msgGuildOnly = "That command is only available in servers"
	msgOwnerOnly = "That command can only be used by the server owner"
)

// userMessage decide qué ve el usuario para un error de handler. false: no
// se responde nada.
func userMessage(err error) (string, bool) {
	var (
		input *domain.UserInputError
		perm  *domain.PermissionError
		up    *domain.UpstreamError
		limit *backoff.RetryLimitError
		st    *osu.StatusError
		parse *osu.ParseError
	)
	switch {
	case errors.As(err, &input):
		return input.Msg, true
	case errors.As(err, &perm):
		switch perm.Reason {
		case domain.ReasonGuildOnly:
			return msgGuildOnly, true
		case domain.ReasonOwnerOnly:
			return msgOwnerOnly, true
		}
		return "", false
	case errors.As(err, &limit), errors.As(err, &up), errors.As(err, &st), errors.As(err, &parse):
		return msgOsuWebIssue, true
	}
	return msgGeneralIssue, true
}
