package config

import (
	"time"

	"rpsboard/internal/repository"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Repo     repository.Config `envPrefix:"REPO_"`
	LogLevel string            `env:"LOGGER_LEVEL" envDefault:"debug"`

	DiscordToken     string   `env:"DISCORD_TOKEN" envDefault:""`
	DiscordGuildID   string   `env:"DISCORD_GUILD_ID" envDefault:""`
	AllowedChannelID string   `env:"ALLOWED_CHANNEL_ID" envDefault:""`
	AdminUserIDs     []string `env:"ADMIN_USER_IDS" envSeparator:"," envDefault:""`

	TelegramToken    string  `env:"TELEGRAM_TOKEN" envDefault:""`
	TelegramAdminIDs []int64 `env:"TELEGRAM_ADMIN_IDS" envSeparator:"," envDefault:""`

	GoogleCredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE" envDefault:""`
	GoogleOwnerEmail      string `env:"GOOGLE_OWNER_EMAIL" envDefault:""`
	SpreadsheetID         string `env:"SPREADSHEET_ID" envDefault:""`

	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"60s"`
	Timezone        string        `env:"TIMEZONE" envDefault:"Asia/Seoul"`
	MetricsAddr     string        `env:"METRICS_ADDR" envDefault:""`
}

func ReadEnvConfig(cfg *Config) error {
	return env.Parse(cfg)
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
