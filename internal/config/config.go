package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type Config struct {
	AppEnv          string
	LogLevel        string
	AdminBotToken   string
	BotToken        string
	DBUser          string
	DBPassword      string
	DBName          string
	DBHost          string
	DBPort          string
	StateBackend    string
	RedisURL        string
	StateTTL        time.Duration
	Location        *time.Location
	ResetOnFarewell bool
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Printf("config.Load: no .env file found - using env variables")
	}

	return FromEnv(os.Getenv)
}

// FromEnv builds the config from getenv, applying defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		AppEnv:        getenv("APP_ENV"),
		LogLevel:      getenv("LOG_LEVEL"),
		AdminBotToken: getenv("ADMIN_BOT_TOKEN"),
		BotToken:      getenv("BOT_TOKEN"),
		DBUser:        getenv("DB_USER"),
		DBPassword:    getenv("DB_PASSWORD"),
		DBName:        getenv("DB_NAME"),
		DBHost:        getenv("DB_HOST"),
		DBPort:        getenv("DB_PORT"),
		StateBackend:  getenv("STATE_BACKEND"),
		RedisURL:      getenv("REDIS_URL"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("config.Load: BOT_TOKEN is required")
	}

	if cfg.AppEnv == "" {
		cfg.AppEnv = "production"
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.StateBackend == "" {
		cfg.StateBackend = BackendPostgres
	}

	switch cfg.StateBackend {
	case BackendPostgres:
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("config.Load: REDIS_URL is required for STATE_BACKEND=redis")
		}
	case BackendMemory:
	default:
		return nil, fmt.Errorf("config.Load: unknown STATE_BACKEND %q", cfg.StateBackend)
	}

	if cfg.DBHost == "" {
		cfg.DBHost = "localhost"
	}

	if cfg.DBPort == "" {
		cfg.DBPort = "5432"
	}

	if raw := getenv("STATE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config.Load: invalid STATE_TTL: %w", err)
		}
		cfg.StateTTL = ttl
	}

	tz := getenv("BOT_TZ")
	if tz == "" {
		tz = "America/Sao_Paulo"
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("config.Load: invalid BOT_TZ: %w", err)
	}
	cfg.Location = loc

	if raw := getenv("RESET_ON_FAREWELL"); raw != "" {
		cfg.ResetOnFarewell, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("config.Load: invalid RESET_ON_FAREWELL: %w", err)
		}
	}

	return cfg, nil
}

// RequireDB checks the database settings for binaries that talk to PostgreSQL.
func (c *Config) RequireDB() error {
	if c.DBUser == "" || c.DBPassword == "" || c.DBName == "" {
		return fmt.Errorf("config.Load: DB_USER, DB_PASSWORD, DB_NAME are required")
	}

	return nil
}

func (c *Config) RequireAdminBot() error {
	if c.AdminBotToken == "" {
		return fmt.Errorf("config.Load: ADMIN_BOT_TOKEN is required")
	}

	return nil
}
