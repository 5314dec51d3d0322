package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoadYAMLWithDefaults(t *testing.T) {
	clearEnv(t, "DATABASE_DRIVER", "DATABASE_URL", "JWT_SECRET", "PORT", "APP_ENV", "CORS_ALLOWED_ORIGINS")

	path := writeConfig(t, `
server:
  port: 9090
  env: production
database:
  driver: sqlite
  url: "file::memory:"
jwt:
  secret: s3cret
outbox:
  poll_interval: 500ms
  max_attempts: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 500*time.Millisecond, cfg.Outbox.PollInterval)
	assert.Equal(t, 3, cfg.Outbox.MaxAttempts)

	assert.Equal(t, 20, cfg.Outbox.BatchSize)
	assert.Equal(t, 60, cfg.JWT.TTL)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "collabex:realtime", cfg.Redis.Channel)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: sqlite
  url: "file::memory:"
jwt:
  secret: from-file
`)
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PORT", "7000")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("JWT_SECRET", "env-only")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-only", cfg.JWT.Secret)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "unknown driver",
			cfg:  Config{Database: DatabaseConfig{Driver: "oracle", DSN: "x"}, JWT: JWTConfig{Secret: "s"}},
			want: `unsupported database driver "oracle"`,
		},
		{
			name: "missing url",
			cfg:  Config{Database: DatabaseConfig{Driver: "postgres"}, JWT: JWTConfig{Secret: "s"}},
			want: "database url is required",
		},
		{
			name: "missing secret",
			cfg:  Config{Database: DatabaseConfig{Driver: "mysql", DSN: "x"}},
			want: "jwt secret is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.cfg.Validate(), tt.want)
		})
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "server: [unterminated")
	_, err := Load(path)
	assert.Error(t, err)
}
