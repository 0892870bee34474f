package discord

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/osu-leaderboard-bot/internal/app/command"
	"github.com/jose-valero/osu-leaderboard-bot/internal/domain"
)

// Handler es la firma común de comandos de texto y slash.
type Handler func(ctx context.Context, inv *Invocation) error

type Descriptor = command.Descriptor[Handler]

type Registry = command.Registry[Handler]

// Invocation vive lo que dura un handler; no se comparte.
type Invocation struct {
	ID     string
	Origin Origin
	// Name es el nombre canónico del comando
	Name string
	// Prefix resuelto ("" en DMs sin prefijo o en slash)
	Prefix string

	// solo texto
	Message *discordgo.Message
	Args    *command.Args

	// solo slash
	Options []*discordgo.ApplicationCommandInteractionDataOption

	Log zerolog.Logger
}

// PrefixSource lo cumple service.GuildConfigs.
type PrefixSource interface {
	Prefixes(ctx context.Context, guildID string) []string
}

type DispatcherConfig struct {
	// OwnerID puede usar comandos owner-only en cualquier guild
	OwnerID  string
	DMPrefix string
}

// Dispatcher recibe los eventos del gateway, resuelve el comando, aplica las
// políticas del descriptor y corre el handler. Cada evento es independiente.
type Dispatcher struct {
	p        Platform
	perms    PermissionCache
	prefixes PrefixSource
	prefix   *Registry
	slash    *Registry
	cfg      DispatcherConfig

	self atomic.Value // string, id del bot
}

func NewDispatcher(p Platform, perms PermissionCache, prefixes PrefixSource, prefix, slash *Registry, cfg DispatcherConfig) *Dispatcher {
	if cfg.DMPrefix == "" {
		cfg.DMPrefix = domain.DefaultPrefix
	}
	d := &Dispatcher{p: p, perms: perms, prefixes: prefixes, prefix: prefix, slash: slash, cfg: cfg}
	d.self.Store("")
	return d
}

func (d *Dispatcher) SetSelfID(id string) { d.self.Store(id) }

func (d *Dispatcher) selfID() string { return d.self.Load().(string) }

// Attach engancha los handlers a la sesión. Con SyncEvents los eventos llegan
// en orden, así que cada uno se despacha en su propia goroutine.
func (d *Dispatcher) Attach(s *discordgo.Session) {
	s.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		d.SetSelfID(r.User.ID)
		log.Info().Str("user", r.User.Username).Str("id", r.User.ID).Int("guilds", len(r.Guilds)).Msg("gateway ready")
	})
	s.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		go d.HandleMessage(context.Background(), m.Message)
	})
	s.AddHandler(func(_ *discordgo.Session, ic *discordgo.InteractionCreate) {
		go d.HandleInteraction(context.Background(), ic.Interaction)
	})
}

// HandleMessage procesa un mensaje de texto de punta a punta.
func (d *Dispatcher) HandleMessage(ctx context.Context, m *discordgo.Message) {
	if m == nil || m.Author == nil || m.Author.Bot || m.WebhookID != "" {
		return
	}

	prefix, ok := d.resolvePrefix(ctx, m)
	if !ok {
		return
	}
	parsed, ok := command.Parse(m.Content, prefix, d.prefix)
	if !ok {
		log.Debug().Str("guild", m.GuildID).Str("channel", m.ChannelID).Msg("no command matched")
		return
	}

	inv := &Invocation{
		ID:      uuid.NewString(),
		Origin:  NewTextOrigin(d.p, m),
		Name:    parsed.Descriptor.Name(),
		Prefix:  prefix,
		Message: m,
		Args:    parsed.Args,
	}
	d.run(ctx, parsed.Descriptor, inv)
}

// HandleInteraction procesa un slash command.
func (d *Dispatcher) HandleInteraction(ctx context.Context, ic *discordgo.Interaction) {
	if ic == nil || ic.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := ic.ApplicationCommandData()
	desc, ok := d.slash.Lookup(data.Name)
	if !ok {
		log.Debug().Str("command", data.Name).Msg("unknown slash command")
		return
	}

	inv := &Invocation{
		ID:      uuid.NewString(),
		Origin:  NewInteractionOrigin(d.p, ic),
		Name:    desc.Name(),
		Options: data.Options,
	}
	d.run(ctx, desc, inv)
}

func (d *Dispatcher) resolvePrefix(ctx context.Context, m *discordgo.Message) (string, bool) {
	content := trimLeftSpace(m.Content)
	if m.GuildID == "" {
		// en DMs el prefijo es opcional
		if p, ok := domain.MatchPrefix([]string{d.cfg.DMPrefix}, content); ok {
			return p, true
		}
		return "", true
	}
	return domain.MatchPrefix(d.prefixes.Prefixes(ctx, m.GuildID), content)
}

func (d *Dispatcher) run(ctx context.Context, desc *Descriptor, inv *Invocation) {
	o := inv.Origin
	user := o.User()
	userID, username := "", ""
	if user != nil {
		userID, username = user.ID, user.Username
	}
	inv.Log = log.With().
		Str("id", inv.ID).
		Str("command", inv.Name).
		Str("origin", string(o.Kind())).
		Str("guild", o.GuildID()).
		Str("channel", o.ChannelID()).
		Str("user", userID).
		Logger()
	inv.Log.Info().Str("username", username).Msg("invoked command")

	if err := d.checkPolicy(desc, o, userID); err != nil {
		inv.Log.Info().Err(err).Msg("command rejected")
		if msg, ok := userMessage(err); ok {
			if rerr := o.Error(msg); rerr != nil {
				inv.Log.Warn().Err(rerr).Msg("failed to report rejection")
			}
		}
		return
	}

	if !desc.Flags.Has(command.SkipDefer) {
		if err := o.Ack(); err != nil {
			inv.Log.Warn().Err(err).Msg("failed to acknowledge command")
		}
	}

	stop := step(inv.Log, "processed command")
	err := d.execute(ctx, desc, inv)
	if err == nil {
		stop()
		return
	}

	inv.Log.Error().Err(fmt.Errorf("failed to process %s command `%s`: %w", o.Kind(), inv.Name, err)).Msg("command failed")
	if msg, ok := userMessage(err); ok {
		if rerr := o.Error(msg); rerr != nil {
			inv.Log.Warn().Err(rerr).Msg("failed to report error")
		}
	}
}

// checkPolicy aplica los flags del descriptor y el permiso de escribir.
func (d *Dispatcher) checkPolicy(desc *Descriptor, o Origin, userID string) error {
	guildID := o.GuildID()
	if desc.Flags.Has(command.OnlyGuilds) && guildID == "" {
		return &domain.PermissionError{Reason: domain.ReasonGuildOnly}
	}
	if desc.Flags.Has(command.OnlyOwner) && !d.isOwner(guildID, userID) {
		return &domain.PermissionError{Reason: domain.ReasonOwnerOnly}
	}
	if o.Kind() == OriginPrefix && guildID != "" && !d.canSend(o.ChannelID()) {
		return &domain.PermissionError{Reason: domain.ReasonCannotSend}
	}
	return nil
}

// canSend: si el state no tiene el canal asumimos que sí.
func (d *Dispatcher) canSend(channelID string) bool {
	self := d.selfID()
	if self == "" || d.perms == nil {
		return true
	}
	perms, err := d.perms.UserChannelPermissions(self, channelID)
	if err != nil {
		return true
	}
	const need = discordgo.PermissionViewChannel | discordgo.PermissionSendMessages
	return perms&discordgo.PermissionAdministrator != 0 || perms&need == need
}

func (d *Dispatcher) execute(ctx context.Context, desc *Descriptor, inv *Invocation) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
			inv.Log.Error().Str("stack", string(debug.Stack())).Msg("panic in command handler")
		}
	}()
	return desc.Handler(ctx, inv)
}
