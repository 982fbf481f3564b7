package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string `mapstructure:"-"`   // Telegram API token loaded from environment
	Quiz             Quiz   `mapstructure:"quiz"`
	DB               DB     `mapstructure:"database"`
	Redis            Redis  `mapstructure:"redis"`
	HTTP             HTTP   `mapstructure:"http"`
}

// Quiz contains gameplay settings.
type Quiz struct {
	CountdownSeconds int    `mapstructure:"countdown_seconds"` // per-question time limit
	SetsDir          string `mapstructure:"sets_dir"`          // directory with YAML trivia sets
	ImportSchedule   string `mapstructure:"import_schedule"`   // cron spec for re-importing SetsDir
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Redis contains leaderboard cache settings. The cache is optional.
type Redis struct {
	URL string `mapstructure:"-"`
}

// HTTP contains API server settings.
type HTTP struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"` // empty allows every origin
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from an optional .env file, config files and
// environment variables. Secrets are not required here; binaries check the
// ones they need with the Require* helpers.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("quiz.countdown_seconds", 10)
	v.SetDefault("quiz.sets_dir", "assets/sets")
	v.SetDefault("quiz.import_schedule", "@every 10m")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowed_origins", []string{})

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_url", "REDIS_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("quiz.countdown_seconds", "QUIZ_COUNTDOWN_SECONDS")
	_ = v.BindEnv("http.addr", "HTTP_ADDR")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")
	cfg.Redis.URL = v.GetString("redis_url")

	if cfg.Quiz.CountdownSeconds <= 0 {
		return nil, fmt.Errorf("quiz.countdown_seconds must be positive, got %d", cfg.Quiz.CountdownSeconds)
	}

	return &cfg, nil
}

// RequireTelegram checks that the bot token is present.
func (c *Config) RequireTelegram() error {
	if c.TelegramAPIToken == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}
	return nil
}

// RequireDatabase checks that the database URL is present.
func (c *Config) RequireDatabase() error {
	if c.DB.URL == "" {
		return fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
	}
	return nil
}

// Enabled reports whether a leaderboard cache is configured.
func (r Redis) Enabled() bool {
	return r.URL != ""
}
