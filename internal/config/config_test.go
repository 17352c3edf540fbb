package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BRAWLSTARS_API_KEY", "test-key")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "https://api.brawlstars.com/v1", cfg.APIBaseURL)
	assert.Equal(t, "brawl.db", cfg.DBPath)
	assert.Equal(t, 10, cfg.BattlePageSize)
	assert.Equal(t, 10*time.Minute, cfg.CursorTTL)
	assert.Equal(t, 10.0, cfg.APIRatePerSecond)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BRAWLSTARS_API_KEY", "k")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("BATTLE_PAGE_SIZE", "25")
	t.Setenv("CURSOR_TTL", "30s")
	t.Setenv("API_RATE_PER_SECOND", "2.5")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, 25, cfg.BattlePageSize)
	assert.Equal(t, 30*time.Second, cfg.CursorTTL)
	assert.Equal(t, 2.5, cfg.APIRatePerSecond)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("BRAWLSTARS_API_KEY", "")
	_, err := Load(zerolog.Nop())
	assert.ErrorContains(t, err, "BRAWLSTARS_API_KEY is required")

	t.Setenv("BRAWLSTARS_API_KEY", "k")
	t.Setenv("BATTLE_PAGE_SIZE", "lots")
	_, err = Load(zerolog.Nop())
	assert.ErrorContains(t, err, "invalid BATTLE_PAGE_SIZE")

	t.Setenv("BATTLE_PAGE_SIZE", "0")
	_, err = Load(zerolog.Nop())
	assert.ErrorContains(t, err, "BATTLE_PAGE_SIZE must be positive")
}
