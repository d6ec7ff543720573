package config

import "time"

// Config holds runtime configuration for the fair bot.
type Config struct {
	AppEnv   string
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	HTTPPort int    `mapstructure:"http_port" validate:"required,min=1,max=65535"`

	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Game      GameConfig      `mapstructure:"game"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
}

// TelegramConfig configures the bot transport. Token is expected from the
// TELEGRAM_TOKEN environment variable in production.
type TelegramConfig struct {
	Token       string        `mapstructure:"token"`
	PollTimeout time.Duration `mapstructure:"poll_timeout"`
}

// DatabaseConfig points at the sqlite database file.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// RedisConfig configures the optional Redis session backend. With Enabled
// unset, sessions live in process memory.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GameConfig tunes the game rules.
type GameConfig struct {
	StartingCoins int64 `mapstructure:"starting_coins" validate:"min=0"`
	// CatalogPath, when set, overrides the built-in content with a YAML
	// catalog file; WatchCatalog reloads it on change.
	CatalogPath  string `mapstructure:"catalog_path"`
	WatchCatalog bool   `mapstructure:"watch_catalog"`
}

// RateLimitConfig bounds per-user update bursts. PerUser of zero
// disables limiting.
type RateLimitConfig struct {
	PerUser int           `mapstructure:"per_user" validate:"min=0"`
	Window  time.Duration `mapstructure:"window"`
}

// LoggingConfig configures the rotating log file sink. An empty File
// keeps logs on stdout only.
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// SentryConfig configures error reporting; an empty DSN disables it.
type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}
