package discord

import (
	"context"
	"time"

	"github.com/jose-valero/osu-leaderboard-bot/internal/adapters/discord/pagination"
	"github.com/jose-valero/osu-leaderboard-bot/internal/adapters/osu"
	"github.com/jose-valero/osu-leaderboard-bot/internal/app/command"
	"github.com/jose-valero/osu-leaderboard-bot/internal/app/service"
	"github.com/jose-valero/osu-leaderboard-bot/internal/domain"
)

// GuildPrefixes lo cumple service.GuildConfigs.
type GuildPrefixes interface {
	PrefixSource
	FirstPrefix(ctx context.Context, guildID string) string
}

// PrefixEditor lo cumple service.PrefixService.
type PrefixEditor interface {
	Show(ctx context.Context, guildID string) string
	Update(ctx context.Context, guildID string, action service.PrefixAction, args []string) (string, error)
}

// MapInfoSource lo cumple service.MapFiles.
type MapInfoSource interface {
	Info(ctx context.Context, mapID uint32) (domain.MapInfo, error)
}

// LeaderboardSource lo cumple osu.Client.
type LeaderboardSource interface {
	Leaderboard(ctx context.Context, q osu.LeaderboardQuery) ([]domain.Score, error)
}

// Pager lo cumple pagination.Manager.
type Pager interface {
	Start(ctx context.Context, t pagination.Target, pages pagination.Pages, opts pagination.Options, build pagination.BuildFunc) *pagination.Session
}

type Deps struct {
	Platform     Platform
	Configs      GuildPrefixes
	Prefixes     PrefixEditor
	Maps         MapInfoSource
	Leaderboards LeaderboardSource
	Pager        Pager
	Emotes       Emotes
	DMPrefix     string
}

// Handlers tiene los cuerpos de todos los comandos.
type Handlers struct {
	p        Platform
	configs  GuildPrefixes
	prefixes PrefixEditor
	maps     MapInfoSource
	scores   LeaderboardSource
	pager    Pager
	emotes   Emotes
	dmPrefix string

	// para help; se completa en Registries
	help *Registry
	now  func() time.Time
}

func NewHandlers(d Deps) *Handlers {
	if d.DMPrefix == "" {
		d.DMPrefix = domain.DefaultPrefix
	}
	return &Handlers{
		p:        d.Platform,
		configs:  d.Configs,
		prefixes: d.Prefixes,
		maps:     d.Maps,
		scores:   d.Leaderboards,
		pager:    d.Pager,
		emotes:   d.Emotes,
		dmPrefix: d.DMPrefix,
		now:      time.Now,
	}
}

// Registries arma y sella las tablas de comandos. Un alias repetido es un
// error de programación y corta el arranque.
func (h *Handlers) Registries() (prefix, slash *Registry, err error) {
	prefix = command.NewPrefixRegistry[Handler]()
	if err := prefix.Register(h.prefixCommands()...); err != nil {
		return nil, nil, err
	}
	prefix.Seal()

	slash = command.NewSlashRegistry[Handler]()
	if err := slash.Register(h.slashCommands()...); err != nil {
		return nil, nil, err
	}
	slash.Seal()

	h.help = prefix
	return prefix, slash, nil
}

func (h *Handlers) prefixCommands() []*Descriptor {
	return []*Descriptor{
		{
			Names:   []string{"ping", "p"},
			Group:   command.GroupUtility,
			Flags:   command.SkipDefer,
			Desc:    "Check if the bot is online",
			Handler: h.ping,
		},
		{
			Names:    []string{"help", "h"},
			Group:    command.GroupUtility,
			Desc:     "Display help for prefix commands",
			Usage:    "[command]",
			Examples: []string{"", "nlb", "ping"},
			Handler:  h.helpCmd,
		},
		{
			Names: []string{"prefix", "prefixes"},
			Group: command.GroupUtility,
			Flags: command.OnlyGuilds | command.OnlyOwner | command.SkipDefer,
			Desc:  "Change the prefixes for a server",
			Help: "Change the prefixes for a server.\n" +
				"To check the current prefixes for this server, don't pass any arguments.\n" +
				"Otherwise, the first argument must be either `add` or `remove`.\n" +
				"Following that must be a space-separated list of characters or strings you want to add or remove as prefix.\n" +
				"Servers must have between one and five prefixes.",
			Usage:    "[add / remove] [prefix]",
			Examples: []string{"add $ 🍆 new_pref", "remove < !!"},
			Handler:  h.prefix,
		},
		{
			Names:    []string{"nationalleaderboard", "nlb"},
			Group:    command.GroupOsu,
			Desc:     "Display the national leaderboard of a map",
			Help:     leaderboardHelp("national"),
			Usage:    "[map url / map id] [mods]",
			Examples: []string{"2240404", "2240404 +hdhr!", "https://osu.ppy.sh/beatmapsets/902425#osu/2240404"},
			Handler:  h.leaderboardPrefix(true),
		},
		{
			Names:    []string{"globalleaderboard", "glb", "lb"},
			Group:    command.GroupOsu,
			Desc:     "Display the global leaderboard of a map",
			Help:     leaderboardHelp("global"),
			Usage:    "[map url / map id] [mods]",
			Examples: []string{"2240404", "2240404 -ez!", "https://osu.ppy.sh/b/2240404"},
			Handler:  h.leaderboardPrefix(false),
		},
	}
}

func (h *Handlers) slashCommands() []*Descriptor {
	return []*Descriptor{
		{Names: []string{"ping"}, Group: command.GroupUtility, Flags: command.SkipDefer, Desc: "Check if the bot is online", Handler: h.ping},
		{Names: []string{"nlb"}, Group: command.GroupOsu, Desc: "Display the national leaderboard of a map", Handler: h.leaderboardSlash(true)},
		{Names: []string{"leaderboard"}, Group: command.GroupOsu, Desc: "Display the global leaderboard of a map", Handler: h.leaderboardSlash(false)},
	}
}

func leaderboardHelp(kind string) string {
	return "Display the " + kind + " leaderboard of a given map.\n" +
		"If no map is given, I will choose the last map I can find in the embeds of this channel " +
		"or in the message you reply to. Append a number to pick an older one, e.g. `nlb2`.\n" +
		"Mods can be specified: `+hdhr` includes, `+hdhr!` requires exactly, `-ez!` excludes."
}
