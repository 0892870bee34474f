package discord

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/osu-leaderboard-bot/internal/adapters/discord/pagination"
	"github.com/jose-valero/osu-leaderboard-bot/internal/adapters/osu"
	"github.com/jose-valero/osu-leaderboard-bot/internal/domain"
)

// cuántos mensajes del canal se revisan buscando un map
const historyLimit = 50

const msgBadMods = "Failed to parse mods.\n" +
	"If you want included mods, specify it e.g. as `+hrdt`.\n" +
	"If you want exact mods, specify it e.g. as `+hdhr!`.\n" +
	"And if you want to exclude mods, specify it e.g. as `-hdnf!`."

// mapRef es un id de map o de mapset que dio el usuario.
type mapRef struct {
	id  uint32
	set bool
}

func parseMapRef(s string) (mapRef, bool) {
	if id, ok := domain.MapIDFromText(s); ok {
		return mapRef{id: id}, true
	}
	if id, ok := domain.MapsetIDFromText(s); ok {
		return mapRef{id: id, set: true}, true
	}
	return mapRef{}, false
}

type leaderboardRequest struct {
	national bool
	ref      *mapRef
	mods     *domain.ModSelection
	// índice del map en el historial del canal
	nth int
}

func (h *Handlers) leaderboardPrefix(national bool) Handler {
	return func(ctx context.Context, inv *Invocation) error {
		req := leaderboardRequest{national: national}
		for _, arg := range inv.Args.Take(2) {
			if ref, ok := parseMapRef(arg); ok {
				req.ref = &ref
			} else if sel, ok := domain.MatchModSelection(arg); ok {
				req.mods = &sel
			} else {
				return domain.UserInput("Failed to parse `%s`.\nMust be either a map id, map url, or mods.", arg)
			}
		}
		if n, ok := inv.Args.Num(); ok && n > 0 {
			req.nth = int(n) - 1
		}

		// el map del mensaje respondido pisa al de los argumentos
		if m := inv.Message; m != nil && m.Type == discordgo.MessageTypeReply && m.ReferencedMessage != nil {
			if ref, ok := refFromMessage(m.ReferencedMessage); ok {
				req.ref = &ref
			}
		}
		return h.leaderboard(ctx, inv, req)
	}
}

func (h *Handlers) leaderboardSlash(national bool) Handler {
	return func(ctx context.Context, inv *Invocation) error {
		req := leaderboardRequest{national: national}
		if raw, ok := optStr(inv.Options, "map"); ok && raw != "" {
			ref, ok := parseMapRef(strings.TrimSpace(raw))
			if !ok {
				return domain.UserInput("Failed to parse map url. Be sure you specify a valid map id or url to a map.")
			}
			req.ref = &ref
		}
		if raw, ok := optStr(inv.Options, "mods"); ok && raw != "" {
			sel, ok := domain.ParseModSelection(strings.TrimSpace(raw))
			if !ok {
				return domain.UserInput(msgBadMods)
			}
			req.mods = &sel
		}
		return h.leaderboard(ctx, inv, req)
	}
}

func (h *Handlers) leaderboard(ctx context.Context, inv *Invocation, req leaderboardRequest) error {
	mapID, err := h.resolveMap(ctx, inv, req)
	if err != nil {
		return err
	}

	info, err := h.maps.Info(ctx, mapID)
	if errors.Is(err, osu.ErrNotFound) {
		return domain.UserInput("Could not find beatmap with id `%d`. Did you give me a mapset id instead of a map id?", mapID)
	} else if err != nil {
		return fmt.Errorf("map info %d: %w", mapID, err)
	}

	q := osu.LeaderboardQuery{MapID: mapID, National: req.national, Mode: info.Mode}
	q.Mods, q.Filter = req.mods.Filter()

	stop := step(inv.Log, "fetched leaderboard")
	scores, err := h.scores.Leaderboard(ctx, q)
	if err != nil {
		return &domain.UpstreamError{Op: fmt.Sprintf("leaderboard of map %d", mapID), Err: err}
	}
	stop()
	// exclude no se filtra en la web
	scores = slices.DeleteFunc(scores, func(s domain.Score) bool { return !req.mods.Allows(s.Mods) })

	pages := pagination.NewPages(scoresPerPage, len(scores))
	content := fmt.Sprintf("I found %d scores with the specified mods on the map's leaderboard", len(scores))
	msg, err := inv.Origin.Send(Reply{Content: content, Embed: leaderboardEmbed(info, scores, pages, h.emotes)})
	if err != nil {
		return fmt.Errorf("send leaderboard: %w", err)
	}
	if pages.Total <= 1 || msg == nil || h.pager == nil {
		return nil
	}

	owner := ""
	if u := inv.Origin.User(); u != nil {
		owner = u.ID
	}
	target := pagination.Target{
		ChannelID: msg.ChannelID,
		MessageID: msg.ID,
		GuildID:   inv.Origin.GuildID(),
		OwnerID:   owner,
	}
	h.pager.Start(ctx, target, pages, pagination.Options{}, func(_ context.Context, p pagination.Pages) (pagination.Page, error) {
		return pagination.Page{Embed: leaderboardEmbed(info, scores, p, h.emotes)}, nil
	})
	return nil
}

// resolveMap: argumento o respuesta, si no el historial del canal.
func (h *Handlers) resolveMap(ctx context.Context, inv *Invocation, req leaderboardRequest) (uint32, error) {
	if req.ref != nil {
		if req.ref.set {
			return 0, domain.UserInput("Looks like you gave me a mapset id, I need a map id though")
		}
		return req.ref.id, nil
	}

	msgs, err := h.p.ChannelMessages(inv.Origin.ChannelID(), historyLimit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("channel history: %w", err)
	}
	if id, ok := mapFromMessages(msgs, req.nth); ok {
		return id, nil
	}
	return 0, domain.UserInput("No beatmap specified and none found in recent channel history. " +
		"Try specifying a map either by url to the map, or just by map id.")
}

// mapFromMessages devuelve el n-ésimo map encontrado, del más nuevo al más viejo.
func mapFromMessages(msgs []*discordgo.Message, nth int) (uint32, bool) {
	for _, m := range msgs {
		id, ok := mapFromMessage(m)
		if !ok {
			continue
		}
		if nth == 0 {
			return id, true
		}
		nth--
	}
	return 0, false
}

func mapFromMessage(m *discordgo.Message) (uint32, bool) {
	if !allDigits(m.Content) {
		if id, ok := domain.MapIDFromText(m.Content); ok {
			return id, true
		}
	}
	return mapFromEmbeds(m.Embeds)
}

func mapFromEmbeds(embeds []*discordgo.MessageEmbed) (uint32, bool) {
	for _, e := range embeds {
		if e == nil {
			continue
		}
		if e.Author != nil {
			if id, ok := domain.MapIDFromText(e.Author.URL); ok {
				return id, true
			}
		}
		if id, ok := domain.MapIDFromText(e.URL); ok {
			return id, true
		}
	}
	return 0, false
}

// refFromMessage es como mapFromMessage pero también reconoce mapsets.
func refFromMessage(m *discordgo.Message) (mapRef, bool) {
	if !allDigits(m.Content) {
		if ref, ok := parseMapRef(m.Content); ok {
			return ref, true
		}
	}
	for _, e := range m.Embeds {
		if e == nil || e.Author == nil {
			continue
		}
		if ref, ok := parseMapRef(e.Author.URL); ok {
			return ref, true
		}
	}
	if id, ok := mapFromEmbeds(m.Embeds); ok {
		return mapRef{id: id}, true
	}
	return mapRef{}, false
}

// allDigits también es true para "" (mensajes sólo con embeds).
func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
