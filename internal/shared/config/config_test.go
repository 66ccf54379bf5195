package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.True(t, cfg.DevMode())
	assert.Equal(t, "0.0.0.0:8000", cfg.HTTP.Addr())
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, 100, cfg.Generator.Total)
	assert.Equal(t, LedgerNone, cfg.Ledger.Driver)
	assert.False(t, cfg.Storage.Enabled())
	assert.Equal(t, 15*time.Minute, cfg.Storage.UploadTTL)
	assert.Equal(t, "polling", cfg.Bot.Mode)
	assert.Equal(t, 4, cfg.Bot.Polling.WorkerPoolSize)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://bodi.ng, https://admin.bodi.ng")
	t.Setenv("GROQ_API_KEY", "gsk-1")
	t.Setenv("LEDGER_DRIVER", "SQLite")
	t.Setenv("LEDGER_DSN", "sqlite://:memory:")
	t.Setenv("ENCRYPTION_KEY", validKey)
	t.Setenv("S3_BUCKET", "bodi-images")
	t.Setenv("S3_PATH_STYLE", "true")
	t.Setenv("BOT_SAFETY_CHAT_ID", "-100123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.DevMode())
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, []string{"https://bodi.ng", "https://admin.bodi.ng"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "gsk-1", cfg.AI.GroqAPIKey)
	assert.Equal(t, LedgerSQLite, cfg.Ledger.Driver)
	assert.True(t, cfg.Storage.Enabled())
	assert.True(t, cfg.Storage.PathStyle)
	assert.Equal(t, int64(-100123), cfg.Bot.SafetyChatID)
}

func TestLoad_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		env     map[string]string
		wantMsg string
	}{
		{"ledger needs a key", map[string]string{"LEDGER_DRIVER": "postgres", "LEDGER_DSN": "postgres://x"}, "ENCRYPTION_KEY is required"},
		{"ledger needs a dsn", map[string]string{"LEDGER_DRIVER": "sqlite", "ENCRYPTION_KEY": validKey}, "LEDGER_DSN is required"},
		{"unknown driver", map[string]string{"LEDGER_DRIVER": "mysql"}, "LEDGER_DRIVER must be one of"},
		{"short key", map[string]string{"ENCRYPTION_KEY": "abcd"}, "64-character"},
		{"non-hex key", map[string]string{"ENCRYPTION_KEY": strings.Repeat("z", 64)}, "hex-encoded"},
		{"bad port", map[string]string{"PORT": "70000"}, "PORT must be"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestValidateBot(t *testing.T) {
	cfg := &Config{}
	cfg.Bot.Mode = "webhook"
	err := cfg.ValidateBot()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
	assert.Contains(t, err.Error(), "BOT_WEBHOOK_URL")
	assert.Contains(t, err.Error(), "BOT_WORKER_POOL_SIZE")

	cfg.Bot.Token = "123:abc"
	cfg.Bot.Mode = "polling"
	cfg.Bot.Polling.WorkerPoolSize = 2
	assert.NoError(t, cfg.ValidateBot())
}
