package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment. It is
// loaded once in main and passed down; nothing else touches os.Getenv.
type Config struct {
	Port        string
	DatabaseDSN string
	JWTSecret   string
	FrontendURL string
	CORSOrigins []string

	SMTP    SMTPConfig
	Payment PaymentConfig

	AWSBucket string
}

type SMTPConfig struct {
	Address  string
	Host     string
	From     string
	Password string
}

// Enabled reports whether mail can be sent. Without a server address
// and a sender identity every delivery attempt would fail, so callers
// skip mail entirely.
func (s SMTPConfig) Enabled() bool {
	return s.Address != "" && s.From != ""
}

// PaymentConfig carries the gateway credentials. When ConsumerKey is
// empty the checkout flow skips payment initiation entirely.
type PaymentConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	NotificationID string
	CallbackURL    string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}

	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseDSN: mustGetEnv("DATABASE_DSN"),
		JWTSecret:   mustGetEnv("JWT_SECRET"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:4200"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200")),
		SMTP: SMTPConfig{
			Address:  getEnv("SMTP_ADDRESS", ""),
			Host:     getEnv("FROM_EMAIL_SMTP", ""),
			From:     getEnv("FROM_EMAIL", ""),
			Password: getEnv("FROM_EMAIL_PASSWORD", ""),
		},
		Payment: PaymentConfig{
			BaseURL:        getEnv("PAYMENT_BASE_URL", "https://pay.pesapal.com/v3"),
			ConsumerKey:    getEnv("PAYMENT_CONSUMER_KEY", ""),
			ConsumerSecret: getEnv("PAYMENT_CONSUMER_SECRET", ""),
			NotificationID: getEnv("PAYMENT_NOTIFICATION_ID", ""),
			CallbackURL:    getEnv("PAYMENT_CALLBACK_URL", ""),
		},
		AWSBucket: getEnv("AWS_BUCKET", "bookmart"),
	}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func mustGetEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		log.Fatalf("ENV %s is required", key)
	}
	return value
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
