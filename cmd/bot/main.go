package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	discordbot "github.com/jose-valero/osu-leaderboard-bot/internal/adapters/discord"
	"github.com/jose-valero/osu-leaderboard-bot/internal/adapters/discord/pagination"
	"github.com/jose-valero/osu-leaderboard-bot/internal/adapters/httpstatus"
	"github.com/jose-valero/osu-leaderboard-bot/internal/adapters/osu"
	"github.com/jose-valero/osu-leaderboard-bot/internal/app/service"
	"github.com/jose-valero/osu-leaderboard-bot/internal/infra/backoff"
	"github.com/jose-valero/osu-leaderboard-bot/internal/infra/config"
	"github.com/jose-valero/osu-leaderboard-bot/internal/infra/logging"
	"github.com/jose-valero/osu-leaderboard-bot/internal/infra/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	closer := logging.Init(cfg.LogLevel, cfg.LogFile)
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	// DB
	db, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := storage.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	log.Info().Msg("database ready")

	// Repos + cache de configs
	guildRepo := storage.NewGuildConfigRepo(db)
	mapRepo := storage.NewMapFileRepo(db)

	configs := service.NewGuildConfigs(guildRepo)
	n, err := configs.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load guild configs")
	}
	log.Info().Int("guilds", n).Msg("loaded guild configs")

	// osu!
	oc := osu.New(cfg.OsuSession,
		osu.WithLimiter(osu.SiteLeaderboard, osu.PerSecond(cfg.LeaderboardRPS)),
		osu.WithLimiter(osu.SiteMapFile, osu.PerSecond(cfg.MapFileRPS)),
	)
	maps := service.NewMapFiles(mapRepo, oc)
	prefixes := service.NewPrefixService(configs)

	// Discord session
	auth := strings.TrimSpace(cfg.DiscordToken)
	if !strings.HasPrefix(strings.ToLower(auth), "bot ") {
		auth = "Bot " + auth
	}
	s, err := discordgo.New(auth)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create discord session")
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsDirectMessageReactions |
		discordgo.IntentsMessageContent
	s.SyncEvents = true

	// Paginación
	hub := pagination.NewHub()
	s.AddHandler(hub.OnReactionAdd)
	s.AddHandler(hub.OnReactionRemove)
	pager := pagination.NewManager(s, hub, pagination.Config{
		IdleTimeout:        cfg.Pagination.IdleTimeout,
		MultiStep:          cfg.Pagination.MultiStep,
		MultiStepThreshold: cfg.Pagination.MultiStepThreshold,
		BuildTimeout:       15 * time.Second,
		Retry:              backoff.Reactions,
		Emotes: pagination.Emotes{
			JumpStart:        cfg.Emotes.JumpStart,
			MultiStepBack:    cfg.Emotes.MultiStepBack,
			StepBack:         cfg.Emotes.SingleStepBack,
			JumpMarker:       cfg.Emotes.MyPosition,
			StepForward:      cfg.Emotes.SingleStep,
			MultiStepForward: cfg.Emotes.MultiStep,
			JumpEnd:          cfg.Emotes.JumpEnd,
		},
	})

	// Comandos
	handlers := discordbot.NewHandlers(discordbot.Deps{
		Platform:     s,
		Configs:      configs,
		Prefixes:     prefixes,
		Maps:         maps,
		Leaderboards: oc,
		Pager:        pager,
		Emotes:       discordbot.NewEmotes(cfg.Emotes.Grades, cfg.Emotes.Miss),
		DMPrefix:     cfg.DMPrefix,
	})
	prefixReg, slashReg, err := handlers.Registries()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build command registries")
	}
	dispatcher := discordbot.NewDispatcher(s, s.State, configs, prefixReg, slashReg, discordbot.DispatcherConfig{
		OwnerID:  cfg.OwnerUserID,
		DMPrefix: cfg.DMPrefix,
	})
	dispatcher.Attach(s)

	if err := s.Open(); err != nil {
		log.Fatal().Err(err).Msg("failed to open gateway")
	}
	defer s.Close()
	log.Info().Str("user", s.State.User.Username).Str("id", s.State.User.ID).Msg("connected to discord")

	registered, err := discordbot.RegisterSlash(s, s.State.User.ID, cfg.DevGuildID)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register slash commands")
	}
	log.Info().Int("commands", registered).Str("guild", cfg.DevGuildID).Msg("registered slash commands")

	// Status
	status := httpstatus.New(func() httpstatus.Stats {
		s.State.RLock()
		guilds := len(s.State.Guilds)
		s.State.RUnlock()
		return httpstatus.Stats{
			Guilds:         guilds,
			Sessions:       pager.Active(),
			PrefixCommands: prefixReg.Len(),
			SlashCommands:  slashReg.Len(),
		}
	})
	go func() {
		if err := status.Start(ctx, cfg.HTTPAddr); err != nil {
			log.Error().Err(err).Msg("status server stopped")
		}
	}()

	// Pruner de map files viejos
	go func() {
		t := time.NewTicker(6 * time.Hour)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			pctx, cancel := context.WithTimeout(ctx, time.Minute)
			pruned, err := mapRepo.PruneOlderThan(pctx, cfg.MapCacheTTL)
			cancel()
			if err != nil {
				log.Warn().Err(err).Msg("failed to prune map files")
				continue
			}
			log.Debug().Int64("pruned", pruned).Msg("pruned map files")
		}
	}()

	// Esperar señal
	<-ctx.Done()
	log.Info().Msg("shutting down")
}
