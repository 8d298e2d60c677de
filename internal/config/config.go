// Package config loads and validates bot configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/fedisum/summarybot/internal/logging"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Instance  InstanceConfig  `mapstructure:"instance"`
	Bot       BotConfig       `mapstructure:"bot"`
	Feed      FeedConfig      `mapstructure:"feed"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Retry     RetryConfig     `mapstructure:"retry"`
	Gate      GateConfig      `mapstructure:"gate"`
	Summary   SummaryConfig   `mapstructure:"summary"`
	Store     StoreConfig     `mapstructure:"store"`
	Blocklist BlocklistConfig `mapstructure:"blocklist"`
	Template  TemplateConfig  `mapstructure:"template"`
	Logging   logging.Config  `mapstructure:"logging"`
	Ops       OpsConfig       `mapstructure:"ops"`
}

// InstanceConfig identifies the federated instance and the bot account.
type InstanceConfig struct {
	Domain   string `mapstructure:"domain"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// BotConfig governs the outer polling loop.
type BotConfig struct {
	SleepSeconds int `mapstructure:"sleep_seconds"`
}

// FeedConfig selects which slice of the feed each cycle covers.
type FeedConfig struct {
	Community string `mapstructure:"community"`
	Sort      string `mapstructure:"sort"`
	Listing   string `mapstructure:"listing"`
	Pages     int    `mapstructure:"pages"`
	SavedOnly bool   `mapstructure:"saved_only"`
}

// FetchConfig bounds article downloads.
type FetchConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
}

// RetryConfig shapes the platform API retry policy.
type RetryConfig struct {
	MaxAttempts        int `mapstructure:"max_attempts"`
	BackoffStepSeconds int `mapstructure:"backoff_step_seconds"`
}

// GateConfig holds the accepted reduction band, bounds inclusive.
type GateConfig struct {
	MinReduction int `mapstructure:"min_reduction"`
	MaxReduction int `mapstructure:"max_reduction"`
}

// SummaryConfig sizes the extractive summary.
type SummaryConfig struct {
	Sentences int `mapstructure:"sentences"`
	Words     int `mapstructure:"words"`
}

// StoreConfig selects and configures the dedup store backend.
type StoreConfig struct {
	Provider string              `mapstructure:"provider"`
	File     FileStoreConfig     `mapstructure:"file"`
	Postgres PostgresStoreConfig `mapstructure:"postgres"`
}

// FileStoreConfig locates the append-only dedup log.
type FileStoreConfig struct {
	Path string `mapstructure:"path"`
}

// PostgresStoreConfig controls the Postgres dedup store.
type PostgresStoreConfig struct {
	DSN      string `mapstructure:"dsn"`
	Table    string `mapstructure:"table"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// BlocklistConfig locates the blocked-domain file.
type BlocklistConfig struct {
	Path string `mapstructure:"path"`
}

// TemplateConfig locates the comment template.
type TemplateConfig struct {
	Path string `mapstructure:"path"`
}

// OpsConfig controls the health/metrics HTTP server.
type OpsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// Load builds a Config from defaults, an optional file, and the environment.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	v.SetEnvPrefix("SUMMARYBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// bindLegacyEnv keeps the environment variable names the bot has always
// been deployed with working alongside the prefixed ones.
func bindLegacyEnv(v *viper.Viper) {
	v.BindEnv("instance.domain", "SUMMARYBOT_INSTANCE_DOMAIN", "INSTANCE_URL")         //nolint:errcheck
	v.BindEnv("instance.username", "SUMMARYBOT_INSTANCE_USERNAME", "BOT_USERNAME")     //nolint:errcheck
	v.BindEnv("instance.password", "SUMMARYBOT_INSTANCE_PASSWORD", "BOT_PASSWORD")     //nolint:errcheck
	v.BindEnv("bot.sleep_seconds", "SUMMARYBOT_BOT_SLEEP_SECONDS", "BOT_SLEEP_SECS")   //nolint:errcheck
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.sleep_seconds", 600)
	v.SetDefault("feed.sort", "New")
	v.SetDefault("feed.listing", "Local")
	v.SetDefault("feed.pages", 5)
	v.SetDefault("feed.saved_only", false)
	v.SetDefault("fetch.timeout_seconds", 10)
	v.SetDefault("fetch.user_agent", "Summarizer v2.0")
	v.SetDefault("retry.max_attempts", 10)
	v.SetDefault("retry.backoff_step_seconds", 5)
	v.SetDefault("gate.min_reduction", 50)
	v.SetDefault("gate.max_reduction", 96)
	v.SetDefault("summary.sentences", 3)
	v.SetDefault("summary.words", 5)
	v.SetDefault("store.provider", "file")
	v.SetDefault("store.file.path", "assets/processed_posts.txt")
	v.SetDefault("store.postgres.table", "processed_posts")
	v.SetDefault("blocklist.path", "assets/blocklist.txt")
	v.SetDefault("template.path", "templates/en.txt")
	v.SetDefault("logging.development", false)
	v.SetDefault("logging.file.path", "logs/summarybot.log")
	v.SetDefault("logging.file.max_size_mb", 10)
	v.SetDefault("logging.file.max_backups", 10)
	v.SetDefault("ops.enabled", true)
	v.SetDefault("ops.addr", ":8080")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Instance.Domain == "" {
		return fmt.Errorf("instance.domain must be set")
	}
	if c.Bot.SleepSeconds <= 0 {
		return fmt.Errorf("bot.sleep_seconds must be > 0")
	}
	if c.Feed.Pages <= 0 {
		return fmt.Errorf("feed.pages must be > 0")
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be > 0")
	}
	if c.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("retry.max_attempts must be > 0")
	}
	if c.Retry.BackoffStepSeconds <= 0 {
		return fmt.Errorf("retry.backoff_step_seconds must be > 0")
	}
	if c.Gate.MinReduction < 0 || c.Gate.MaxReduction > 100 || c.Gate.MinReduction > c.Gate.MaxReduction {
		return fmt.Errorf("gate reduction band must satisfy 0 <= min <= max <= 100")
	}
	switch c.Store.Provider {
	case "file":
		if c.Store.File.Path == "" {
			return fmt.Errorf("store.file.path must be set for the file provider")
		}
	case "postgres":
		if c.Store.Postgres.DSN == "" {
			return fmt.Errorf("store.postgres.dsn must be set for the postgres provider")
		}
	default:
		return fmt.Errorf("unknown store provider: %s", c.Store.Provider)
	}
	if c.Blocklist.Path == "" {
		return fmt.Errorf("blocklist.path must be set")
	}
	if c.Template.Path == "" {
		return fmt.Errorf("template.path must be set")
	}
	if c.Ops.Enabled && c.Ops.Addr == "" {
		return fmt.Errorf("ops.addr must be set when the ops server is enabled")
	}
	return nil
}

// SleepInterval converts the inter-cycle sleep into a duration.
func (c Config) SleepInterval() time.Duration {
	return time.Duration(c.Bot.SleepSeconds) * time.Second
}

// FetchTimeout converts the article fetch bound into a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// BackoffStep converts the retry backoff step into a duration.
func (c Config) BackoffStep() time.Duration {
	return time.Duration(c.Retry.BackoffStepSeconds) * time.Second
}
