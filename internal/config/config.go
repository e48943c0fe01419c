package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	JWTSecret      string
	SessionTTL     time.Duration
	Port           string
	AllowedOrigins []string
	Production     bool
	MailgunDomain  string
	MailgunAPIKey  string
	AlertSender    string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "CRMDB"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		SessionTTL:     getDurationEnv("SESSION_TTL", 60, time.Minute),
		Port:           getEnvOrDefault("PORT", "3000"),
		AllowedOrigins: splitEnv("CORS_ORIGINS", "http://localhost:5173"),
		Production:     getEnvOrDefault("APP_ENV", "development") == "production",
		MailgunDomain:  getEnvOrDefault("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:  getEnvOrDefault("MAILGUN_API_KEY", ""),
		AlertSender:    getEnvOrDefault("ALERT_SENDER", "CRM System <alerts@localhost>"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func splitEnv(key, defaultValue string) []string {
	raw := getEnvOrDefault(key, defaultValue)
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
