package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/osu-leaderboard-bot/internal/adapters/discord/pagination"
	"github.com/jose-valero/osu-leaderboard-bot/internal/adapters/osu"
	"github.com/jose-valero/osu-leaderboard-bot/internal/domain"
)

type sentMessage struct {
	channelID string
	data      *discordgo.MessageSend
}

// fakePlatform graba todas las llamadas REST.
type fakePlatform struct {
	mu sync.Mutex

	typing        []string
	sent          []sentMessage
	edits         []*discordgo.MessageEdit
	responds      []*discordgo.InteractionResponse
	responseEdits []*discordgo.WebhookEdit
	dmChannels    []string

	history    []*discordgo.Message
	historyErr error
	dmErr      error
	sendErr    error
	nextID     int
}

func (f *fakePlatform) ChannelTyping(channelID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.typing = append(f.typing, channelID)
	return nil
}

func (f *fakePlatform) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, sentMessage{channelID: channelID, data: data})
	f.nextID++
	return &discordgo.Message{
		ID:        fmt.Sprintf("m%d", f.nextID),
		ChannelID: channelID,
		Content:   data.Content,
		Embeds:    data.Embeds,
	}, nil
}

func (f *fakePlatform) ChannelMessageEditComplex(m *discordgo.MessageEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, m)
	return &discordgo.Message{ID: m.ID, ChannelID: m.Channel}, nil
}

func (f *fakePlatform) ChannelMessages(_ string, limit int, _, _, _ string, _ ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history[:min(limit, len(f.history))], nil
}

func (f *fakePlatform) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.dmErr != nil {
		return nil, f.dmErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := "dm-" + recipientID
	f.dmChannels = append(f.dmChannels, id)
	return &discordgo.Channel{ID: id, Type: discordgo.ChannelTypeDM}, nil
}

func (f *fakePlatform) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responds = append(f.responds, resp)
	return nil
}

func (f *fakePlatform) InteractionResponse(ic *discordgo.Interaction, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	return &discordgo.Message{ID: "original-" + ic.ID, ChannelID: ic.ChannelID}, nil
}

func (f *fakePlatform) InteractionResponseEdit(ic *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responseEdits = append(f.responseEdits, edit)
	return &discordgo.Message{ID: "original-" + ic.ID, ChannelID: ic.ChannelID}, nil
}

func (f *fakePlatform) MessageReactionAdd(_, _, _ string, _ ...discordgo.RequestOption) error { return nil }

func (f *fakePlatform) MessageReactionRemove(_, _, _, _ string, _ ...discordgo.RequestOption) error {
	return nil
}

func (f *fakePlatform) MessageReactionsRemoveAll(_, _ string, _ ...discordgo.RequestOption) error {
	return nil
}

func (f *fakePlatform) sentEmbeds() []*discordgo.MessageEmbed {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*discordgo.MessageEmbed
	for _, s := range f.sent {
		out = append(out, s.data.Embeds...)
	}
	return out
}

func (f *fakePlatform) lastSent() sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

type fakePerms struct {
	perms  int64
	err    error
	guilds map[string]*discordgo.Guild
}

func (f *fakePerms) UserChannelPermissions(_, _ string) (int64, error) { return f.perms, f.err }

func (f *fakePerms) Guild(guildID string) (*discordgo.Guild, error) {
	if g, ok := f.guilds[guildID]; ok {
		return g, nil
	}
	return nil, discordgo.ErrStateNotFound
}

type fakePrefixes map[string][]string

func (f fakePrefixes) Prefixes(_ context.Context, guildID string) []string {
	if p, ok := f[guildID]; ok {
		return p
	}
	return []string{domain.DefaultPrefix}
}

func (f fakePrefixes) FirstPrefix(ctx context.Context, guildID string) string {
	return f.Prefixes(ctx, guildID)[0]
}

type fakeMaps struct {
	infos map[uint32]domain.MapInfo
	err   error
}

func (f *fakeMaps) Info(_ context.Context, mapID uint32) (domain.MapInfo, error) {
	if f.err != nil {
		return domain.MapInfo{}, f.err
	}
	info, ok := f.infos[mapID]
	if !ok {
		return domain.MapInfo{}, &domain.UpstreamError{Op: "download map file", Err: &osu.StatusError{Status: 404, URL: "osu/x"}}
	}
	return info, nil
}

type fakeScores struct {
	mu      sync.Mutex
	scores  []domain.Score
	err     error
	queries []osu.LeaderboardQuery
}

func (f *fakeScores) Leaderboard(_ context.Context, q osu.LeaderboardQuery) ([]domain.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Score, len(f.scores))
	copy(out, f.scores)
	return out, nil
}

type startedSession struct {
	target pagination.Target
	pages  pagination.Pages
	opts   pagination.Options
	build  pagination.BuildFunc
}

type fakePager struct {
	started []startedSession
}

func (f *fakePager) Start(_ context.Context, t pagination.Target, pages pagination.Pages, opts pagination.Options, build pagination.BuildFunc) *pagination.Session {
	f.started = append(f.started, startedSession{target: t, pages: pages, opts: opts, build: build})
	return nil
}
