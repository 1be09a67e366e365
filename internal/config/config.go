package config

import (
	"os"
	"strconv"
)

// ZendeskConfig holds the ticketing backend credentials and endpoints.
type ZendeskConfig struct {
	Subdomain string
	Email     string
	APIToken  string
	// BaseURL overrides the URL derived from Subdomain. Mainly for tests
	// pointed at a local stub server.
	BaseURL           string
	UploadTimeoutSec  int
	RequestTimeoutSec int
}

// RecaptchaConfig holds the bot-verification settings.
type RecaptchaConfig struct {
	Enabled   bool
	SiteKey   string
	SecretKey string
	// VerifyURL overrides Google's siteverify endpoint. Mainly for tests.
	VerifyURL string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated once at startup from environment variables and read-only
// afterwards. Sensitive values are not hardcoded.
type AppConfig struct {
	Port      string
	LogLevel  string
	LogFormat string
	Zendesk   ZendeskConfig
	Recaptcha RecaptchaConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:      getEnv("PORT", "8080"), // default only for non-sensitive value
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		Zendesk: ZendeskConfig{
			Subdomain:         getEnv("ZENDESK_SUBDOMAIN", ""),
			Email:             getEnv("ZENDESK_EMAIL", ""),
			APIToken:          getEnv("ZENDESK_API_TOKEN", ""),
			BaseURL:           getEnv("ZENDESK_BASE_URL", ""),
			UploadTimeoutSec:  getEnvInt("ZENDESK_UPLOAD_TIMEOUT_SEC", 60),
			RequestTimeoutSec: getEnvInt("ZENDESK_REQUEST_TIMEOUT_SEC", 20),
		},
		Recaptcha: RecaptchaConfig{
			Enabled:   getEnvBool("RECAPTCHA_ENABLED", true),
			SiteKey:   getEnv("RECAPTCHA_SITE_KEY", ""),
			SecretKey: getEnv("RECAPTCHA_SECRET_KEY", ""),
			VerifyURL: getEnv("RECAPTCHA_VERIFY_URL", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
