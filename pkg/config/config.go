package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Id strategies understood by IDConfig.
const (
	IDStrategyClock    = "clock"
	IDStrategySequence = "sequence"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	CORS    CORSConfig
	Log     LogConfig
	Session SessionConfig
	Profile ProfileConfig
	Seed    SeedConfig
	IDs     IDConfig
	Metrics MetricsConfig
	Docs    DocsConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SessionConfig controls the signed tokens handed out on role switch.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// ProfileConfig tunes the profile editor.
type ProfileConfig struct {
	SaveDelay     time.Duration
	AvatarBaseURL string
}

// SeedConfig points at an optional YAML seed file and the bcrypt cost used for seed passwords.
type SeedConfig struct {
	File       string
	BcryptCost int
}

// IDConfig selects how new event and registration ids are produced.
type IDConfig struct {
	Strategy string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

// DocsConfig toggles the Swagger UI outside production.
type DocsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Session = SessionConfig{
		Secret: v.GetString("SESSION_SECRET"),
		TTL:    parseDuration(v.GetString("SESSION_TTL"), 12*time.Hour),
	}

	cfg.Profile = ProfileConfig{
		SaveDelay:     parseDuration(v.GetString("PROFILE_SAVE_DELAY"), 800*time.Millisecond),
		AvatarBaseURL: v.GetString("AVATAR_BASE_URL"),
	}

	cost := v.GetInt("BCRYPT_COST")
	if cost <= 0 {
		cost = 10
	}
	cfg.Seed = SeedConfig{
		File:       v.GetString("SEED_FILE"),
		BcryptCost: cost,
	}

	strategy := strings.ToLower(strings.TrimSpace(v.GetString("ID_STRATEGY")))
	if strategy != IDStrategySequence {
		strategy = IDStrategyClock
	}
	cfg.IDs = IDConfig{Strategy: strategy}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}
	cfg.Docs = DocsConfig{Enabled: v.GetBool("ENABLE_DOCS")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SESSION_SECRET", "dev_session_secret")
	v.SetDefault("SESSION_TTL", "12h")

	v.SetDefault("PROFILE_SAVE_DELAY", "800ms")
	v.SetDefault("AVATAR_BASE_URL", "https://api.dicebear.com/7.x/avataaars/svg")

	v.SetDefault("SEED_FILE", "")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("ID_STRATEGY", IDStrategyClock)

	v.SetDefault("ENABLE_METRICS", true)
	v.SetDefault("ENABLE_DOCS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
