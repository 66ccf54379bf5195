package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Ledger drivers.
const (
	LedgerNone     = "none"
	LedgerPostgres = "postgres"
	LedgerSQLite   = "sqlite"
)

// Bot modes.
const (
	BotModePolling = "polling"
	BotModeWebhook = "webhook"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv        string
	LogLevel      string
	EncryptionKey string

	HTTP      HTTPConfig
	AI        AIConfig
	Search    SearchConfig
	Generator GeneratorConfig
	Ledger    LedgerConfig
	Storage   StorageConfig
	Bot       BotConfig
}

type HTTPConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// Addr is host:port for net/http.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type AIConfig struct {
	GroqAPIKey string
	BaseURL    string
	Model      string
	Timeout    time.Duration
}

type SearchConfig struct {
	TavilyAPIKey string
	BaseURL      string
	Timeout      time.Duration
}

type GeneratorConfig struct {
	Seed  int64
	Total int
}

type LedgerConfig struct {
	Driver string
	DSN    string
}

// StorageConfig enables presigned image uploads when Bucket is set.
type StorageConfig struct {
	Bucket          string
	Region          string
	Endpoint        string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	UploadTTL       time.Duration
}

// Enabled reports whether image uploads are configured.
func (c StorageConfig) Enabled() bool { return c.Bucket != "" }

// BotConfig drives the Telegram bot server.
type BotConfig struct {
	Token   string
	Mode    string
	Polling struct {
		WorkerPoolSize int
	}
	Webhook struct {
		URL        string
		ListenPort int
	}
	// SafetyChatID receives emergency alerts. Zero disables forwarding.
	SafetyChatID int64
}

// DevMode enables console logging.
func (c *Config) DevMode() bool { return c.AppEnv == "dev" }

var envBindings = map[string]string{
	"app.env":                   "APP_ENV",
	"app.log_level":             "LOG_LEVEL",
	"encryption.key":            "ENCRYPTION_KEY",
	"http.host":                 "HTTP_HOST",
	"http.port":                 "PORT",
	"http.read_timeout":         "HTTP_READ_TIMEOUT",
	"http.write_timeout":        "HTTP_WRITE_TIMEOUT",
	"http.shutdown_timeout":     "HTTP_SHUTDOWN_TIMEOUT",
	"http.allowed_origins":      "CORS_ALLOWED_ORIGINS",
	"ai.groq_api_key":           "GROQ_API_KEY",
	"ai.base_url":               "GROQ_BASE_URL",
	"ai.model":                  "GROQ_MODEL",
	"ai.timeout":                "AI_TIMEOUT",
	"search.tavily_api_key":     "TAVILY_API_KEY",
	"search.base_url":           "TAVILY_BASE_URL",
	"search.timeout":            "SEARCH_TIMEOUT",
	"generator.seed":            "GENERATOR_SEED",
	"generator.total":           "GENERATOR_TOTAL",
	"ledger.driver":             "LEDGER_DRIVER",
	"ledger.dsn":                "LEDGER_DSN",
	"storage.bucket":            "S3_BUCKET",
	"storage.region":            "S3_REGION",
	"storage.endpoint":          "S3_ENDPOINT",
	"storage.path_style":        "S3_PATH_STYLE",
	"storage.access_key_id":     "S3_ACCESS_KEY_ID",
	"storage.secret_access_key": "S3_SECRET_ACCESS_KEY",
	"storage.public_base_url":   "S3_PUBLIC_BASE_URL",
	"storage.upload_ttl":        "S3_UPLOAD_TTL",
	"bot.token":                 "TELEGRAM_BOT_TOKEN",
	"bot.mode":                  "BOT_MODE",
	"bot.workers":               "BOT_WORKER_POOL_SIZE",
	"bot.webhook_url":           "BOT_WEBHOOK_URL",
	"bot.webhook_port":          "BOT_WEBHOOK_PORT",
	"bot.safety_chat_id":        "BOT_SAFETY_CHAT_ID",
}

// Load loads configuration from the environment, reading .env first when
// one exists.
func Load() (*Config, error) {

	// 1. Load .env file into the process environment
	if err := godotenv.Load(); err != nil {
		// A missing .env is normal in prod.
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	// 2. Explicitly bind viper keys to env var names
	v := viper.New()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	// 3. Set defaults
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8000)
	v.SetDefault("http.read_timeout", "15s")
	v.SetDefault("http.write_timeout", "60s")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("http.allowed_origins", "*")
	v.SetDefault("ai.timeout", "45s")
	v.SetDefault("search.timeout", "15s")
	v.SetDefault("generator.seed", 0)
	v.SetDefault("generator.total", 100)
	v.SetDefault("ledger.driver", LedgerNone)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.upload_ttl", "15m")
	v.SetDefault("bot.mode", BotModePolling)
	v.SetDefault("bot.workers", 4)
	v.SetDefault("bot.webhook_port", 8443)

	// 4. Get values directly from viper
	cfg := Config{
		AppEnv:        v.GetString("app.env"),
		LogLevel:      v.GetString("app.log_level"),
		EncryptionKey: v.GetString("encryption.key"),
		HTTP: HTTPConfig{
			Host:            v.GetString("http.host"),
			Port:            v.GetInt("http.port"),
			ReadTimeout:     v.GetDuration("http.read_timeout"),
			WriteTimeout:    v.GetDuration("http.write_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
			AllowedOrigins:  splitList(v.GetString("http.allowed_origins")),
		},
		AI: AIConfig{
			GroqAPIKey: v.GetString("ai.groq_api_key"),
			BaseURL:    v.GetString("ai.base_url"),
			Model:      v.GetString("ai.model"),
			Timeout:    v.GetDuration("ai.timeout"),
		},
		Search: SearchConfig{
			TavilyAPIKey: v.GetString("search.tavily_api_key"),
			BaseURL:      v.GetString("search.base_url"),
			Timeout:      v.GetDuration("search.timeout"),
		},
		Generator: GeneratorConfig{
			Seed:  v.GetInt64("generator.seed"),
			Total: v.GetInt("generator.total"),
		},
		Ledger: LedgerConfig{
			Driver: strings.ToLower(v.GetString("ledger.driver")),
			DSN:    v.GetString("ledger.dsn"),
		},
		Storage: StorageConfig{
			Bucket:          v.GetString("storage.bucket"),
			Region:          v.GetString("storage.region"),
			Endpoint:        v.GetString("storage.endpoint"),
			PathStyle:       v.GetBool("storage.path_style"),
			AccessKeyID:     v.GetString("storage.access_key_id"),
			SecretAccessKey: v.GetString("storage.secret_access_key"),
			PublicBaseURL:   v.GetString("storage.public_base_url"),
			UploadTTL:       v.GetDuration("storage.upload_ttl"),
		},
	}
	cfg.Bot.Token = v.GetString("bot.token")
	cfg.Bot.Mode = v.GetString("bot.mode")
	cfg.Bot.Polling.WorkerPoolSize = v.GetInt("bot.workers")
	cfg.Bot.Webhook.URL = v.GetString("bot.webhook_url")
	cfg.Bot.Webhook.ListenPort = v.GetInt("bot.webhook_port")
	cfg.Bot.SafetyChatID = v.GetInt64("bot.safety_chat_id")

	// 5. Validation
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field rules. Bot settings are checked by
// ValidateBot since only the bot command needs them.
func (c *Config) Validate() error {
	var errs []error

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be within 1-65535, got %d", c.HTTP.Port))
	}
	if c.Generator.Total <= 0 {
		errs = append(errs, fmt.Errorf("GENERATOR_TOTAL must be positive, got %d", c.Generator.Total))
	}

	switch c.Ledger.Driver {
	case LedgerNone:
	case LedgerPostgres, LedgerSQLite:
		if c.Ledger.DSN == "" {
			errs = append(errs, fmt.Errorf("LEDGER_DSN is required for the %s ledger", c.Ledger.Driver))
		}
		if c.EncryptionKey == "" {
			errs = append(errs, errors.New("ENCRYPTION_KEY is required when a ledger is configured"))
		}
	default:
		errs = append(errs, fmt.Errorf("LEDGER_DRIVER must be one of none, postgres, sqlite, got %q", c.Ledger.Driver))
	}

	if c.EncryptionKey != "" {
		if len(c.EncryptionKey) != 64 {
			errs = append(errs, fmt.Errorf("ENCRYPTION_KEY must be a 64-character hex string (32 bytes), but got %d chars", len(c.EncryptionKey)))
		} else if _, err := hex.DecodeString(c.EncryptionKey); err != nil {
			errs = append(errs, fmt.Errorf("ENCRYPTION_KEY must be hex-encoded: %w", err))
		}
	}

	return errors.Join(errs...)
}

// ValidateBot checks the settings the Telegram bot needs.
func (c *Config) ValidateBot() error {
	var errs []error
	if c.Bot.Token == "" {
		errs = append(errs, errors.New("TELEGRAM_BOT_TOKEN is not set"))
	}
	switch c.Bot.Mode {
	case BotModePolling:
	case BotModeWebhook:
		if c.Bot.Webhook.URL == "" {
			errs = append(errs, errors.New("BOT_WEBHOOK_URL is required in webhook mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("BOT_MODE must be polling or webhook, got %q", c.Bot.Mode))
	}
	if c.Bot.Polling.WorkerPoolSize < 1 {
		errs = append(errs, fmt.Errorf("BOT_WORKER_POOL_SIZE must be at least 1, got %d", c.Bot.Polling.WorkerPoolSize))
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
