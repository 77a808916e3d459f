package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Mail providers understood by MAIL_PROVIDER.
const (
	MailProviderSMTP   = "smtp"
	MailProviderResend = "resend"
	MailProviderLog    = "log"
	MailProviderNone   = "none"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	// CORS
	CORSAllowedOrigins []string
	// Mail transport
	MailProvider    string
	MailFromEmail   string
	MailFromName    string
	MailSendTimeout time.Duration
	// SMTP Configuration (Gmail by default)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	// Resend Configuration
	ResendAPIKey string
	// Contact form
	ContactEmailTo string // Owner notification recipient
	OwnerName      string // Signature used in acknowledgement emails
	// Redis Configuration (idempotency keys)
	RedisURL       string
	RedisPassword  string
	IdempotencyTTL time.Duration

	// parseErrs collects malformed numeric variables for Validate.
	parseErrs []error
}

func LoadConfig() (*Config, error) {
	// .env is a local convenience; in production the file is usually absent.
	_ = godotenv.Load()

	smtpUsername := getEnv("SMTP_USERNAME", getEnv("GMAIL_USER", ""))
	var parseErrs []error

	cfg := &Config{
		Port:               getEnv("PORT", "5000"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		// Mail transport
		MailProvider:    strings.ToLower(getEnv("MAIL_PROVIDER", MailProviderSMTP)),
		MailFromEmail:   getEnv("SMTP_FROM_EMAIL", smtpUsername),
		MailFromName:    getEnv("MAIL_FROM_NAME", ""),
		MailSendTimeout: time.Duration(getEnvInt("MAIL_SEND_TIMEOUT_SECONDS", 20, &parseErrs)) * time.Second,
		// SMTP Configuration
		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587, &parseErrs),
		SMTPUsername: smtpUsername,
		SMTPPassword: getEnv("SMTP_PASSWORD", getEnv("GMAIL_PASSWORD", "")),
		// Resend Configuration
		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		// Contact form
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", getEnv("RECEIVER_EMAIL", "")),
		OwnerName:      getEnv("OWNER_NAME", "Deep"),
		// Redis Configuration
		RedisURL:       getEnv("REDIS_URL", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		IdempotencyTTL: time.Duration(getEnvInt("IDEMPOTENCY_TTL_SECONDS", 86400, &parseErrs)) * time.Second,
		parseErrs:      parseErrs,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.MailProvider == MailProviderNone {
		log.Println("WARNING: MAIL_PROVIDER=none. The contact endpoint will answer 503.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Idempotency keys will be kept in memory.")
	}

	return cfg, nil
}

// Validate checks that everything the selected mail provider needs is present.
func (c *Config) Validate() error {
	errs := append([]error(nil), c.parseErrs...)

	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("PORT must be numeric, got %q", c.Port))
	}
	if c.MailSendTimeout <= 0 {
		errs = append(errs, errors.New("MAIL_SEND_TIMEOUT_SECONDS must be positive"))
	}
	if c.IdempotencyTTL <= 0 {
		errs = append(errs, errors.New("IDEMPOTENCY_TTL_SECONDS must be positive"))
	}

	switch c.MailProvider {
	case MailProviderNone:
		return errors.Join(errs...)
	case MailProviderSMTP:
		if c.SMTPHost == "" {
			errs = append(errs, errors.New("SMTP_HOST is required"))
		}
		if c.SMTPUsername == "" || c.SMTPPassword == "" {
			errs = append(errs, errors.New("SMTP_USERNAME and SMTP_PASSWORD (or GMAIL_USER and GMAIL_PASSWORD) are required"))
		}
	case MailProviderResend:
		if c.ResendAPIKey == "" {
			errs = append(errs, errors.New("RESEND_API_KEY is required"))
		}
	case MailProviderLog:
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_PROVIDER %q", c.MailProvider))
	}

	if c.ContactEmailTo == "" {
		errs = append(errs, errors.New("CONTACT_EMAIL_TO (or RECEIVER_EMAIL) is required"))
	}
	if c.MailFromEmail == "" {
		errs = append(errs, errors.New("SMTP_FROM_EMAIL is required"))
	}

	return errors.Join(errs...)
}

// Environment names the deployment for security event logs.
func (c *Config) Environment() string {
	if c.GinMode == "release" {
		return "production"
	}
	return "development"
}

// MailEnabled reports whether a mail transport should be built at all.
func (c *Config) MailEnabled() bool {
	return c.MailProvider != MailProviderNone
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set.
// A malformed value is recorded in errs and yields fallback.
func getEnvInt(key string, fallback int, errs *[]error) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	intVal, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be an integer, got %q", key, value))
		return fallback
	}
	return intVal
}

// getEnvList splits a comma separated variable, dropping empty items
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimRight(strings.TrimSpace(item), "/"); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
