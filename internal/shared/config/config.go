package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	Env             string
	DataSourceURL   string
	FetchTimeout    time.Duration
	RefreshInterval time.Duration
	SnapshotTTL     time.Duration
	InvoiceLimit    int
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:            os.Getenv("PORT"),
		Env:             os.Getenv("ENV"),
		DataSourceURL:   os.Getenv("DATA_SOURCE_URL"),
		FetchTimeout:    durationEnv("FETCH_TIMEOUT", 10*time.Second),
		RefreshInterval: durationEnv("REFRESH_INTERVAL", 60*time.Second),
		SnapshotTTL:     durationEnv("SNAPSHOT_TTL", 10*time.Minute),
		InvoiceLimit:    intEnv("INVOICE_LIMIT", 200),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.DataSourceURL == "" {
		cfg.DataSourceURL = "http://localhost:3000/api"
	}

	return cfg
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using default %s", key, raw, fallback)
		return fallback
	}
	return d
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using default %d", key, raw, fallback)
		return fallback
	}
	return n
}
