package discord

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/osu-leaderboard-bot/internal/app/command"
	"github.com/jose-valero/osu-leaderboard-bot/internal/domain"
)

const (
	descriptionSize = 4096
	maxSuggestions  = 5
)

func (h *Handlers) helpCmd(ctx context.Context, inv *Invocation) error {
	name, ok := inv.Args.Next()
	if !ok {
		return h.dmHelp(ctx, inv)
	}
	if desc, found := h.help.Lookup(strings.ToLower(name)); found {
		return h.commandHelp(ctx, inv, desc)
	}
	return domain.UserInput("%s", h.suggest(strings.ToLower(name)))
}

// suggest arma el mensaje para un comando inexistente con los nombres a
// distancia de edición menor a 4.
func (h *Handlers) suggest(name string) string {
	type candidate struct {
		name string
		dist int
	}
	var cands []candidate
	for _, desc := range h.help.Commands() {
		for _, n := range desc.Names {
			if d := levenshtein.ComputeDistance(name, n); d < 4 {
				cands = append(cands, candidate{n, d})
			}
		}
	}
	if len(cands) == 0 {
		return "There is no such command"
	}
	slices.SortFunc(cands, func(a, b candidate) int {
		return cmp.Or(cmp.Compare(a.dist, b.dist), strings.Compare(a.name, b.name))
	})

	var b strings.Builder
	b.WriteString("There is no such command, did you mean ")
	for i, c := range cands[:min(len(cands), maxSuggestions)] {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "`%s`", c.name)
	}
	b.WriteString("?")
	return b.String()
}

func (h *Handlers) helpPrefix(ctx context.Context, guildID string) string {
	if guildID == "" {
		return h.dmPrefix
	}
	return h.configs.FirstPrefix(ctx, guildID)
}

func (h *Handlers) commandHelp(ctx context.Context, inv *Invocation, desc *Descriptor) error {
	prefix := h.helpPrefix(ctx, inv.Origin.GuildID())
	name := desc.Name()

	embed := &discordgo.MessageEmbed{
		Title:       name,
		Description: cmp.Or(desc.Help, desc.Desc),
	}
	if desc.Usage != "" {
		value := fmt.Sprintf("`%s%s %s`", prefix, name, desc.Usage)
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "How to use", Value: value, Inline: len(value) <= 29})
	}
	if len(desc.Examples) > 0 {
		var b strings.Builder
		for _, ex := range desc.Examples {
			fmt.Fprintf(&b, "`%s`\n", strings.TrimSpace(prefix+name+" "+ex))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Examples", Value: b.String()})
	}
	if aliases := desc.Aliases(); len(aliases) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Aliases",
			Value:  "`" + strings.Join(aliases, "`, `") + "`",
			Inline: true,
		})
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: availability(desc.Flags)}

	_, err := inv.Origin.Send(Reply{Embed: embed})
	return err
}

func availability(f command.Flags) string {
	switch {
	case f.Has(command.OnlyOwner):
		return "Only available for server owners"
	case f.Has(command.OnlyGuilds):
		return "Only available in servers"
	}
	return "Available in servers and DMs"
}

// dmHelp manda la lista completa por DM, partida en embeds de a 4096.
func (h *Handlers) dmHelp(ctx context.Context, inv *Invocation) error {
	user := inv.Origin.User()
	if user == nil {
		return fmt.Errorf("help without author")
	}
	ch, err := h.p.UserChannelCreate(user.ID)
	if err != nil {
		inv.Log.Warn().Err(err).Msg("failed to create DM channel")
		return domain.UserInput("Your DMs seem blocked :(\nPerhaps you disabled incoming messages from other server members?")
	}

	if inv.Origin.GuildID() != "" {
		if _, err := inv.Origin.Send(Reply{Embed: &discordgo.MessageEmbed{Description: "Don't mind me sliding into your DMs :eyes:"}}); err != nil {
			inv.Log.Warn().Err(err).Msg("failed to send DM notice")
		}
	}

	for _, chunk := range h.helpChunks(ctx, inv.Origin.GuildID()) {
		_, err := h.p.ChannelMessageSendComplex(ch.ID, &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{{Description: chunk}},
		})
		if err != nil {
			inv.Log.Warn().Err(err).Msg("failed to send help chunk")
			return domain.UserInput("Could not DM you, perhaps you disabled it?")
		}
	}
	return nil
}

func (h *Handlers) helpChunks(ctx context.Context, guildID string) []string {
	prefix := h.helpPrefix(ctx, guildID)
	var b strings.Builder
	if guildID != "" {
		fmt.Fprintf(&b, "Prefixes: `%s`", strings.Join(h.configs.Prefixes(ctx, guildID), "`, `"))
	} else {
		fmt.Fprintf(&b, "Prefix: `%s`", h.dmPrefix)
	}
	b.WriteString(" (or none in DMs).\n")
	b.WriteString("Its main functionality is the national map leaderboard command.\n")
	fmt.Fprintf(&b, "To find out more about a command like what arguments you can give or which shorter aliases it has, use __**`%shelp [command]`**__, e.g. `%shelp nlb`.\n", prefix, prefix)
	b.WriteString("\n__**All commands:**__\n")

	cmds := slices.Clone(h.help.Commands())
	slices.SortStableFunc(cmds, func(a, b *Descriptor) int {
		return cmp.Or(cmp.Compare(a.Group, b.Group), strings.Compare(a.Name(), b.Name()))
	})

	var chunks []string
	var group command.Group
	for _, desc := range cmds {
		line := fmt.Sprintf("`%s`: %s\n", desc.Name(), desc.Desc)
		if desc.Group != group {
			group = desc.Group
			line = fmt.Sprintf("__**%s**__\n", group) + line
		}
		if b.Len()+len(line) > descriptionSize {
			chunks = append(chunks, b.String())
			b.Reset()
		}
		b.WriteString(line)
	}
	if b.Len() > 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}
