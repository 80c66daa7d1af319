package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingDatabaseURL is returned by Load when DATABASE_URL is not set.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL environment variable is not set")

type Config struct {
	Port            string
	GinMode         string
	DatabaseURL     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	DBLogLevel      string
}

// Load reads the environment like LoadEnv and requires DATABASE_URL.
func Load() (*Config, error) {
	cfg := LoadEnv()
	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	return cfg, nil
}

// LoadEnv reads the environment, pulling in a .env file first when one exists.
// Missing values fall back to defaults; nothing is required.
func LoadEnv() *Config {
	if err := godotenv.Load(); err != nil {
		// Not fatal - production deployments set the environment directly
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Could not read .env file: %v", err)
		}
	}

	return &Config{
		Port:            getenv("PORT", "8080"),
		GinMode:         os.Getenv("GIN_MODE"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		MaxOpenConns:    getenvInt("DB_MAX_OPEN_CONNS", 20),
		MaxIdleConns:    getenvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxIdleTime: getenvDuration("DB_CONN_MAX_IDLE_TIME", 20*time.Second),
		DBLogLevel:      getenv("DB_LOG_LEVEL", "warn"),
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(k))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
