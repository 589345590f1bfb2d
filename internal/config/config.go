package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Oracle OracleConfig
	Notify NotifyConfig
	Worker WorkerConfig
	Seed   SeedConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// OracleConfig selects and credentials the prediction provider. The key
// for the selected provider is required at startup; a missing credential
// is a fatal configuration error, not a per-call one.
type OracleConfig struct {
	Provider        string
	Model           string
	AnthropicAPIKey string
	OpenAIAPIKey    string
}

// NotifyConfig holds optional Slack alert delivery settings.
type NotifyConfig struct {
	SlackBotToken     string
	SlackAlertChannel string
}

// WorkerConfig controls the periodic dashboard refresh.
type WorkerConfig struct {
	RefreshCron string
}

// SeedConfig controls demo corpus seeding. Zero disables seeding.
type SeedConfig struct {
	TicketCount int
}

// Load reads configuration from environment variables, applying defaults
// where possible and validating the oracle credential.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ticket-intel"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 60),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Oracle: OracleConfig{
			Provider:        getEnv("ORACLE_PROVIDER", "anthropic"),
			Model:           os.Getenv("ORACLE_MODEL"),
			AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
			OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		},
		Notify: NotifyConfig{
			SlackBotToken:     os.Getenv("SLACK_BOT_TOKEN"),
			SlackAlertChannel: os.Getenv("SLACK_ALERT_CHANNEL"),
		},
		Worker: WorkerConfig{
			RefreshCron: getEnv("DASHBOARD_REFRESH_CRON", "@every 15m"),
		},
		Seed: SeedConfig{
			TicketCount: getEnvAsInt("SEED_TICKETS", 200),
		},
	}

	switch cfg.Oracle.Provider {
	case "anthropic":
		if cfg.Oracle.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY required for oracle provider %q", cfg.Oracle.Provider)
		}
	case "openai":
		if cfg.Oracle.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY required for oracle provider %q", cfg.Oracle.Provider)
		}
	default:
		return nil, fmt.Errorf("unknown oracle provider %q", cfg.Oracle.Provider)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
