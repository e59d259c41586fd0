// Package config loads application configuration from environment variables
// and the optional YAML shop profile.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds all application-level configuration loaded from environment variables.
type AppConfig struct {
	// Port is the HTTP server port. Defaults to 8080.
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the root data directory. Defaults to ~/.barbershop.
	DataDir string `envconfig:"BARBERSHOP_DATA_DIR"`

	// LogLevel sets the minimum log level (debug, info, warn, error). Defaults to info.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// MailProvider selects the delivery backend: "ses", "smtp", or empty.
	// When empty, "ses" is assumed if SES credentials are present; otherwise
	// mail runs in degraded (logged no-op) mode.
	MailProvider string `envconfig:"MAIL_PROVIDER"`

	// FromEmail is the sender address for all outgoing mail.
	FromEmail string `envconfig:"SES_FROM_EMAIL" default:"noreply@papusbarbershop.com"`

	// Amazon SES credentials. Access key and secret must both be set to
	// enable the SES provider.
	SESAccessKey string `envconfig:"AWS_SES_ACCESS_KEY"`
	SESSecretKey string `envconfig:"AWS_SES_SECRET_KEY"`
	SESRegion    string `envconfig:"AWS_SES_REGION" default:"us-east-1"`

	// SMTP connection parameters, used when MailProvider is "smtp".
	SMTPHost       string `envconfig:"SMTP_HOST"`
	SMTPPort       int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername   string `envconfig:"SMTP_USERNAME"`
	SMTPPassword   string `envconfig:"SMTP_PASSWORD"`
	SMTPEncryption string `envconfig:"SMTP_ENCRYPTION" default:"starttls"`

	// MailerWorkers is the size of the send worker pool.
	MailerWorkers int `envconfig:"MAILER_WORKERS" default:"4"`
	// MailerQueueSize is the task buffer; submission blocks when it is full.
	MailerQueueSize int `envconfig:"MAILER_QUEUE_SIZE" default:"100"`
	// MailSendTimeout bounds each provider call.
	MailSendTimeout time.Duration `envconfig:"MAIL_SEND_TIMEOUT" default:"30s"`

	// S3 object storage for image uploads (barber photos, haircut pictures).
	S3Region          string        `envconfig:"AWS_S3_REGION"`
	S3Bucket          string        `envconfig:"AWS_S3_BUCKET_NAME"`
	S3AccessKeyID     string        `envconfig:"AWS_ACCESS_KEY_ID"`
	S3SecretAccessKey string        `envconfig:"AWS_SECRET_ACCESS_KEY"`
	S3PresignExpiry   time.Duration `envconfig:"S3_PRESIGN_EXPIRATION" default:"1h"`

	// Appointment reminder scheduler.
	RemindersEnabled bool          `envconfig:"REMINDERS_ENABLED" default:"true"`
	ReminderInterval time.Duration `envconfig:"REMINDER_INTERVAL" default:"10m"`
	ReminderWindow   time.Duration `envconfig:"REMINDER_WINDOW" default:"24h"`
}

// Load reads AppConfig from environment variables using envconfig.
// DataDir defaults to ~/.barbershop if not set.
func Load() (*AppConfig, error) {
	var c AppConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		c.DataDir = filepath.Join(home, ".barbershop")
	}
	return &c, nil
}

// SlogLevel converts the LogLevel string to a slog.Level.
// Unknown values default to slog.LevelInfo.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogDir returns the path to the log directory.
func (c *AppConfig) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// DatabasePath returns the path to the SQLite database file.
func (c *AppConfig) DatabasePath() string {
	return filepath.Join(c.DataDir, "barbershop.db")
}

// ShopProfilePath returns the path to the optional shop profile YAML file.
func (c *AppConfig) ShopProfilePath() string {
	return filepath.Join(c.DataDir, "shop.yaml")
}

// SESConfigured reports whether the SES credentials are present.
func (c *AppConfig) SESConfigured() bool {
	return c.SESAccessKey != "" && c.SESSecretKey != "" && c.SESRegion != ""
}

// SMTPConfigured reports whether an SMTP host is present.
func (c *AppConfig) SMTPConfigured() bool {
	return c.SMTPHost != ""
}

// S3Configured reports whether the upload signer has everything it needs.
func (c *AppConfig) S3Configured() bool {
	return c.S3Region != "" && c.S3Bucket != "" &&
		c.S3AccessKeyID != "" && c.S3SecretAccessKey != ""
}
