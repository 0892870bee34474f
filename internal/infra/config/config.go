package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DatabaseURL  string `env:"DATABASE_URL,required,notEmpty"`
	DiscordToken string `env:"DISCORD_TOKEN,required,notEmpty"`
	OsuSession   string `env:"OSU_SESSION,required,notEmpty"`

	// dueño del bot; puede usar comandos owner-only en cualquier guild
	OwnerUserID string `env:"OWNER_USER_ID"`
	// si está, los slash commands se registran solo en ese guild
	DevGuildID string `env:"DEV_GUILD_ID"`
	DMPrefix   string `env:"DM_PREFIX" envDefault:"<"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	MapCacheTTL time.Duration `env:"MAP_CACHE_TTL" envDefault:"720h"`

	LeaderboardRPS int `env:"OSU_LEADERBOARD_RPS" envDefault:"2"`
	MapFileRPS     int `env:"OSU_MAPFILE_RPS" envDefault:"5"`

	Pagination Pagination
	Emotes     Emotes
}

type Pagination struct {
	IdleTimeout        time.Duration `env:"PAGINATION_IDLE_TIMEOUT" envDefault:"60s"`
	MultiStep          int           `env:"PAGINATION_MULTI_STEP" envDefault:"5"`
	MultiStepThreshold int           `env:"PAGINATION_MULTI_STEP_THRESHOLD" envDefault:"8"`
}

// Emotes de los controles de paginación y de los grades.
type Emotes struct {
	JumpStart      string `env:"EMOTE_JUMP_START" envDefault:"⏮"`
	MultiStepBack  string `env:"EMOTE_MULTI_STEP_BACK" envDefault:"⏪"`
	SingleStepBack string `env:"EMOTE_SINGLE_STEP_BACK" envDefault:"◀"`
	MyPosition     string `env:"EMOTE_MY_POSITION" envDefault:"🎯"`
	SingleStep     string `env:"EMOTE_SINGLE_STEP" envDefault:"▶"`
	MultiStep      string `env:"EMOTE_MULTI_STEP" envDefault:"⏩"`
	JumpEnd        string `env:"EMOTE_JUMP_END" envDefault:"⏭"`
	Miss           string `env:"EMOTE_MISS" envDefault:"❌"`

	// GRADE_EMOTES=X:<:gradeX:123>,S:<:gradeS:456>
	Grades map[string]string `env:"GRADE_EMOTES"`
}

// Load lee la config del entorno. main carga antes el .env con godotenv.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.DMPrefix == "":
		return fmt.Errorf("DM_PREFIX must not be empty")
	case c.LeaderboardRPS <= 0 || c.MapFileRPS <= 0:
		return fmt.Errorf("osu rate limits must be positive (got %d, %d)", c.LeaderboardRPS, c.MapFileRPS)
	case c.Pagination.IdleTimeout <= 0:
		return fmt.Errorf("PAGINATION_IDLE_TIMEOUT must be positive")
	case c.Pagination.MultiStep <= 1:
		return fmt.Errorf("PAGINATION_MULTI_STEP must be greater than 1")
	}
	return nil
}
