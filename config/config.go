package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config carries every environment-sourced setting the application needs.
type Config struct {
	Port     string
	SiteName string
	BaseURL  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	RedisAddr string

	// Tuning knobs for the weighted and trigram search strategies. The
	// defaults follow the values the content team settled on; there is no
	// principled derivation behind them, so they stay configurable.
	SearchRankThreshold   float64
	SearchSimilarityFloor float64
}

func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		SiteName: getEnv("SITE_NAME", "My blog"),
		BaseURL:  getEnv("BASE_URL", "http://localhost:8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "blog"),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "noreply@localhost"),

		RedisAddr: getEnv("REDIS_ADDR", ""),

		SearchRankThreshold:   getEnvFloat("SEARCH_RANK_THRESHOLD", 0.3),
		SearchSimilarityFloor: getEnvFloat("SEARCH_SIMILARITY_FLOOR", 0.1),
	}
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
