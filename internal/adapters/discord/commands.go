package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// CommandRegistrar lo cumple *discordgo.Session.
type CommandRegistrar interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

func leaderboardOptions() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "map",
			Description: "Specify a map url or map id",
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "mods",
			Description: "Specify mods e.g. hdhr or nm",
		},
	}
}

// ApplicationCommands son las definiciones que se registran en Discord.
// Tienen que coincidir con los nombres de la tabla slash.
func ApplicationCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Check if the bot is online",
		},
		{
			Name:        "leaderboard",
			Description: "Display the global leaderboard of a map",
			Options:     leaderboardOptions(),
		},
		{
			Name:        "nlb",
			Description: "Display the national leaderboard of a map",
			Options:     leaderboardOptions(),
		},
	}
}

// RegisterSlash pisa los comandos del guild (o globales si guildID es "").
func RegisterSlash(r CommandRegistrar, appID, guildID string) (int, error) {
	created, err := r.ApplicationCommandBulkOverwrite(appID, guildID, ApplicationCommands())
	if err != nil {
		return 0, fmt.Errorf("bulk overwrite commands (guild %q): %w", guildID, err)
	}
	return len(created), nil
}
