package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  port: 8080
  env: production
jwt:
  secret: from-file
  login_ttl: 72h
otp:
  ttl: 5m
  max_attempts: 3
database:
  driver: sqlite
  dsn: file::memory:
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, "fittrack", cfg.JWTIssuer, "issuer falls back to default")
	assert.Equal(t, 72*time.Hour, cfg.LoginTTL)
	assert.Equal(t, 24*time.Hour, cfg.RegistrationTTL)
	assert.Equal(t, 5*time.Minute, cfg.OTP_TTL)
	assert.Equal(t, 3, cfg.OTP_MaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.OTP_AttemptWindow)
	assert.Equal(t, 6, cfg.OTP_Length)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "log", cfg.MailProvider)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: from-file
redis:
  db: 2
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PORT", "9000")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("REDIS_DB", "0")
	t.Setenv("OTP_MAX_ATTEMPTS", "0")
	t.Setenv("SMS_OVERRIDE_RECIPIENT", "+15550009999")
	t.Setenv("MAIL_PROVIDER", "sendgrid")
	t.Setenv("EMAIL", "noreply@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 0, cfg.RedisDB, "explicit zero wins over the file")
	assert.Equal(t, 0, cfg.OTP_MaxAttempts)
	assert.Equal(t, "+15550009999", cfg.SMSOverrideRecipient)
	assert.Equal(t, "sendgrid", cfg.MailProvider)
	assert.Equal(t, "noreply@example.com", cfg.MailFrom)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		env      map[string]string
	}{
		{
			name:     "missing secret",
			contents: "app:\n  port: 5000\n",
		},
		{
			name:     "bad duration",
			contents: "jwt:\n  secret: s\notp:\n  ttl: soon\n",
		},
		{
			name:     "bad yaml",
			contents: "jwt: [",
		},
		{
			name:     "bad env int",
			contents: "jwt:\n  secret: s\n",
			env:      map[string]string{"PORT": "eighty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_PATH", writeConfig(t, tt.contents))
			t.Setenv("JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yml"))
	t.Setenv("JWT_SECRET", "s")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	// config/config.yml does not exist relative to this package
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("JWT_SECRET", "s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 60*time.Second, cfg.OTP_ResendWindow)
	assert.False(t, cfg.IsProduction())
}
