package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		want     slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"unknown defaults to info", "unknown", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &AppConfig{LogLevel: tt.logLevel}
			assert.Equal(t, tt.want, c.SlogLevel())
		})
	}
}

func TestAppConfig_DerivedPaths(t *testing.T) {
	c := &AppConfig{DataDir: "/data"}

	tests := []struct {
		name string
		fn   func() string
		want string
	}{
		{"LogDir", c.LogDir, "/data/logs"},
		{"DatabasePath", c.DatabasePath, "/data/barbershop.db"},
		{"ShopProfilePath", c.ShopProfilePath, "/data/shop.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn())
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BARBERSHOP_DATA_DIR", "/tmp/test-barbershop")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAILER_WORKERS", "8")
	t.Setenv("MAIL_SEND_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/test-barbershop", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.MailerWorkers)
	assert.Equal(t, 5*time.Second, cfg.MailSendTimeout)
	// Sender defaults apply when the env var is unset.
	assert.Equal(t, "noreply@papusbarbershop.com", cfg.FromEmail)
}

func TestAppConfig_ProviderDetection(t *testing.T) {
	c := &AppConfig{}
	assert.False(t, c.SESConfigured())
	assert.False(t, c.SMTPConfigured())
	assert.False(t, c.S3Configured())

	c.SESAccessKey = "AKIA..."
	c.SESSecretKey = "secret"
	c.SESRegion = "us-east-2"
	assert.True(t, c.SESConfigured())

	c.SMTPHost = "mail.example.com"
	assert.True(t, c.SMTPConfigured())

	c.S3Region = "us-east-1"
	c.S3Bucket = "media"
	c.S3AccessKeyID = "AKIA..."
	c.S3SecretAccessKey = "secret"
	assert.True(t, c.S3Configured())
}
