// Package pagination maneja las respuestas de varias páginas que se navegan
// con reacciones.
package pagination

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/osu-leaderboard-bot/internal/infra/backoff"
)

// Platform es lo que usa una sesión de *discordgo.Session.
type Platform interface {
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	MessageReactionRemove(channelID, messageID, emojiID, userID string, options ...discordgo.RequestOption) error
	MessageReactionsRemoveAll(channelID, messageID string, options ...discordgo.RequestOption) error
}

type State uint8

const (
	Active State = iota + 1
	Closed
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "closed"
}

// Page es el contenido nuevo del mensaje; los campos nil no se tocan.
type Page struct {
	Content *string
	Embed   *discordgo.MessageEmbed
}

// BuildFunc arma una página. Puede hacer I/O.
type BuildFunc func(ctx context.Context, p Pages) (Page, error)

type Config struct {
	IdleTimeout        time.Duration
	MultiStep          int
	MultiStepThreshold int
	BuildTimeout       time.Duration
	Emotes             Emotes
	Retry              backoff.Policy
}

func DefaultConfig() Config {
	return Config{
		IdleTimeout:        60 * time.Second,
		MultiStep:          5,
		MultiStepThreshold: 8,
		BuildTimeout:       15 * time.Second,
		Emotes:             DefaultEmotes(),
		Retry:              backoff.Reactions,
	}
}

// Target es el mensaje ya enviado sobre el que corre la sesión.
type Target struct {
	ChannelID string
	MessageID string
	// vacío en DMs
	GuildID string
	OwnerID string
}

type Options struct {
	// Marker es la página a la que salta 🎯; nil la deshabilita.
	Marker            *int
	SuppressMultiStep bool
}

// Manager crea sesiones que comparten plataforma, hub y config.
type Manager struct {
	platform Platform
	hub      *Hub
	cfg      Config
}

func NewManager(p Platform, hub *Hub, cfg Config) *Manager {
	return &Manager{platform: p, hub: hub, cfg: cfg}
}

// Active es la cantidad de sesiones abiertas.
func (m *Manager) Active() int { return m.hub.Len() }

type Session struct {
	id       string
	platform Platform
	cfg      Config
	target   Target
	opts     Options
	build    BuildFunc
	controls []Control
	log      zerolog.Logger

	events      <-chan Reaction
	unsubscribe func()

	mu    sync.Mutex
	pages Pages
	state State

	done chan struct{}
}

// Start engancha una sesión al mensaje y devuelve enseguida. La sesión vive
// hasta que pasa IdleTimeout sin una transición aceptada; ctx no la cancela.
func (m *Manager) Start(ctx context.Context, t Target, pages Pages, opts Options, build BuildFunc) *Session {
	if opts.Marker != nil {
		mk := pages.clamp(*opts.Marker)
		opts.Marker = &mk
	}
	s := &Session{
		id:       uuid.NewString(),
		platform: m.platform,
		cfg:      m.cfg,
		target:   t,
		opts:     opts,
		build:    build,
		pages:    pages,
		state:    Active,
		done:     make(chan struct{}),
	}
	s.controls = s.availableControls()
	s.log = log.With().
		Str("session", s.id).
		Str("message", t.MessageID).
		Str("owner", t.OwnerID).
		Logger()

	// suscribir antes de poner reacciones para no perder eventos
	s.events, s.unsubscribe = m.hub.Subscribe(t.MessageID)

	go s.run(context.WithoutCancel(ctx))
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) Pages() Pages {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages
}

func (s *Session) Cursor() int { return s.Pages().Index }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Controls son los controles ofrecidos, en el orden en que se reaccionan.
func (s *Session) Controls() []Control { return s.controls }

func (s *Session) multiStep() bool {
	return !s.opts.SuppressMultiStep && s.pages.Total > s.cfg.MultiStepThreshold
}

func (s *Session) availableControls() []Control {
	cs := []Control{JumpStart}
	if s.multiStep() {
		cs = append(cs, MultiStepBack)
	}
	cs = append(cs, StepBack)
	if s.opts.Marker != nil {
		cs = append(cs, JumpMarker)
	}
	cs = append(cs, StepForward)
	if s.multiStep() {
		cs = append(cs, MultiStepForward)
	}
	return append(cs, JumpEnd)
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)

	s.log.Debug().Int("pages", s.pages.Total).Msg("pagination started")
	for _, c := range s.controls {
		emoji := APIName(s.cfg.Emotes.of(c))
		err := s.withRetry(ctx, func() error {
			return s.platform.MessageReactionAdd(s.target.ChannelID, s.target.MessageID, emoji)
		})
		if err != nil {
			s.log.Warn().Err(err).Stringer("control", c).Msg("failed to add pagination reaction")
		}
	}

	idle := time.NewTimer(s.cfg.IdleTimeout)
	defer idle.Stop()
	for {
		select {
		case <-idle.C:
			s.close(ctx)
			return
		case r, ok := <-s.events:
			if !ok {
				// otra sesión tomó el mensaje
				s.setState(Closed)
				return
			}
			if s.handle(ctx, r) {
				idle.Reset(s.cfg.IdleTimeout)
			}
		}
	}
}

// handle procesa una reacción y dice si hubo una transición aceptada.
func (s *Session) handle(ctx context.Context, r Reaction) bool {
	if r.UserID != s.target.OwnerID {
		return false
	}
	c, ok := s.control(r.Emoji)
	if !ok {
		return false
	}

	s.mu.Lock()
	prev := s.pages
	next := s.next(c)
	if next == prev.Index {
		s.mu.Unlock()
		return false
	}
	s.pages.Index = next
	pages := s.pages
	s.mu.Unlock()

	if err := s.render(ctx, pages); err != nil {
		s.log.Warn().Err(err).Stringer("control", c).Int("page", pages.Number()).Msg("failed to update pagination page")
		s.mu.Lock()
		s.pages.Index = prev.Index
		s.mu.Unlock()
		return false
	}
	return true
}

func (s *Session) render(ctx context.Context, pages Pages) error {
	bctx, cancel := context.WithTimeout(ctx, s.cfg.BuildTimeout)
	defer cancel()

	page, err := s.build(bctx, pages)
	if err != nil {
		return err
	}
	edit := &discordgo.MessageEdit{
		ID:      s.target.MessageID,
		Channel: s.target.ChannelID,
		Content: page.Content,
	}
	if page.Embed != nil {
		edit.Embeds = &[]*discordgo.MessageEmbed{page.Embed}
	}
	_, err = s.platform.ChannelMessageEditComplex(edit)
	return err
}

func (s *Session) control(emoji string) (Control, bool) {
	for _, c := range s.controls {
		if sameEmoji(APIName(s.cfg.Emotes.of(c)), emoji) {
			return c, true
		}
	}
	return 0, false
}

// next calcula el cursor destino; requiere s.mu.
func (s *Session) next(c Control) int {
	cur := s.pages.Index
	switch c {
	case JumpStart:
		return 0
	case MultiStepBack:
		return s.pages.clamp(cur - s.cfg.MultiStep)
	case StepBack:
		return s.pages.clamp(cur - 1)
	case JumpMarker:
		if s.opts.Marker == nil {
			return cur
		}
		return *s.opts.Marker
	case StepForward:
		return s.pages.clamp(cur + 1)
	case MultiStepForward:
		return s.pages.clamp(cur + s.cfg.MultiStep)
	case JumpEnd:
		return s.pages.Last()
	}
	return cur
}

func (s *Session) close(ctx context.Context) {
	s.unsubscribe()

	var err error
	if s.target.GuildID != "" {
		err = s.withRetry(ctx, func() error {
			return s.platform.MessageReactionsRemoveAll(s.target.ChannelID, s.target.MessageID)
		})
	} else {
		// en DMs no se pueden borrar reacciones ajenas
		for _, c := range s.controls {
			emoji := APIName(s.cfg.Emotes.of(c))
			if rerr := s.withRetry(ctx, func() error {
				return s.platform.MessageReactionRemove(s.target.ChannelID, s.target.MessageID, emoji, "@me")
			}); rerr != nil {
				err = rerr
			}
		}
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to remove pagination reactions")
	}

	s.setState(Closed)
	s.log.Debug().Msg("pagination closed")
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Session) withRetry(ctx context.Context, fn func() error) error {
	return s.cfg.Retry.Do(ctx, func(context.Context) error { return fn() }, transientREST)
}

func transientREST(err error) bool {
	var rl *discordgo.RateLimitError
	if errors.As(err, &rl) {
		return true
	}
	var re *discordgo.RESTError
	if errors.As(err, &re) && re.Response != nil {
		return re.Response.StatusCode == http.StatusTooManyRequests || re.Response.StatusCode >= 500
	}
	return false
}
