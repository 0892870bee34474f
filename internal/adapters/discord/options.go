package discord

import "github.com/bwmarrin/discordgo"

// optStr busca una opción string, también dentro de un subcomando.
func optStr(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) (string, bool) {
	for _, o := range opts {
		if o.Type == discordgo.ApplicationCommandOptionSubCommand {
			if v, ok := optStr(o.Options, name); ok {
				return v, true
			}
			continue
		}
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionString {
			return o.StringValue(), true
		}
	}
	return "", false
}
