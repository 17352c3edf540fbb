package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	APIKey           string
	APIBaseURL       string
	CompanionBaseURL string
	DBPath           string
	ServerPort       string
	LogLevel         string
	APIRatePerSecond float64
	BattlePageSize   int
	CursorTTL        time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	ratePerSecond, err := strconv.ParseFloat(getEnv("API_RATE_PER_SECOND", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid API_RATE_PER_SECOND: %w", err)
	}
	pageSize, err := strconv.Atoi(getEnv("BATTLE_PAGE_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid BATTLE_PAGE_SIZE: %w", err)
	}
	cursorTTL, err := time.ParseDuration(getEnv("CURSOR_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CURSOR_TTL: %w", err)
	}

	cfg := &Config{
		APIKey:           getEnv("BRAWLSTARS_API_KEY", ""),
		APIBaseURL:       getEnv("BRAWLSTARS_BASE_URL", "https://api.brawlstars.com/v1"),
		CompanionBaseURL: getEnv("BRAWLIFY_BASE_URL", "https://api.brawlify.com/v1"),
		DBPath:           getEnv("DB_PATH", "brawl.db"),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		APIRatePerSecond: ratePerSecond,
		BattlePageSize:   pageSize,
		CursorTTL:        cursorTTL,
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("BRAWLSTARS_API_KEY is required")
	}
	if cfg.APIRatePerSecond <= 0 {
		return nil, fmt.Errorf("API_RATE_PER_SECOND must be positive")
	}
	if cfg.BattlePageSize <= 0 {
		return nil, fmt.Errorf("BATTLE_PAGE_SIZE must be positive")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Float64("api_rate_per_second", cfg.APIRatePerSecond).
		Int("battle_page_size", cfg.BattlePageSize).
		Dur("cursor_ttl", cfg.CursorTTL).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
