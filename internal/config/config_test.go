package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.HTF.Reveal)
	assert.False(t, cfg.Mail.Enabled())
	assert.Empty(t, cfg.Server.TrustedProxies)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("HTF_REVEAL", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("FRONTEND_URL", "https://projects.example.com/")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USER", "mailer@example.com")
	t.Setenv("SMTP_PASSWORD", "app-password")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,127.0.0.1")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.HTF.Reveal)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "https://projects.example.com", cfg.Server.FrontendURL)
	assert.True(t, cfg.Mail.Enabled())
	assert.Equal(t, "mailer@example.com", cfg.Mail.FromEmail)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.Server.TrustedProxies)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 5000, GinMode: "debug"},
			Database: DatabaseConfig{Driver: "postgres"},
			Auth:     AuthConfig{SecretKey: "short", TokenTTL: time.Hour},
		}
	}

	require.NoError(t, base().Validate())

	cfg := base()
	cfg.Server.GinMode = "release"
	assert.Error(t, cfg.Validate(), "short secret must be rejected in release mode")

	cfg = base()
	cfg.Auth.SecretKey = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Database.Driver = "oracle"
	assert.Error(t, cfg.Validate())
}
