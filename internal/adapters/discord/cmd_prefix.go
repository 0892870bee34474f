package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/osu-leaderboard-bot/internal/app/service"
	"github.com/jose-valero/osu-leaderboard-bot/internal/domain"
)

// prefix: sólo guilds y sólo el owner (lo chequea el dispatcher).
func (h *Handlers) prefix(ctx context.Context, inv *Invocation) error {
	guildID := inv.Origin.GuildID()
	first, _ := inv.Args.Next()
	action, err := service.ParsePrefixAction(first)
	if err != nil {
		return err
	}

	var content string
	if action == service.PrefixShow {
		content = h.prefixes.Show(ctx, guildID)
	} else {
		content, err = h.prefixes.Update(ctx, guildID, action, inv.Args.Take(domain.MaxPrefixes))
		if err != nil {
			return err
		}
	}
	_, err = inv.Origin.Send(Reply{Embed: &discordgo.MessageEmbed{Description: content}})
	return err
}
