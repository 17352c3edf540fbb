package api

import (
	"context"

	"brawl-tracker/internal/config"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// CompanionClient reads the fan-run companion dataset (maps, game modes). It
// needs no API key and is not throttled client-side.
type CompanionClient struct {
	http *Client
}

func NewCompanionClient(cfg *config.Config, logger zerolog.Logger) *CompanionClient {
	return &CompanionClient{
		http: newClient(cfg.CompanionBaseURL, "", rate.NewLimiter(rate.Inf, 0), logger.With().Str("upstream", "companion").Logger()),
	}
}

func (c *CompanionClient) Client() *Client {
	return c.http
}

type CompanionEnvironment struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Hash string `json:"hash"`
}

type CompanionModeRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Hash string `json:"hash"`
}

type CompanionMap struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Hash        string               `json:"hash"`
	Disabled    bool                 `json:"disabled"`
	Environment CompanionEnvironment `json:"environment"`
	GameMode    CompanionModeRef     `json:"gameMode"`
}

type CompanionMapsResponse struct {
	List []CompanionMap `json:"list"`
}

type CompanionGameMode struct {
	ID   int64  `json:"id"`
	ScID int64  `json:"scId"`
	Name string `json:"name"`
	// ScHash is the mode name as the game API spells it, e.g. "gemGrab".
	ScHash string `json:"scHash"`
	Color  string `json:"color"`
}

type CompanionGameModesResponse struct {
	List []CompanionGameMode `json:"list"`
}

func (c *CompanionClient) GetMaps(ctx context.Context) ([]CompanionMap, error) {
	resp, err := doRequest[CompanionMapsResponse](ctx, c.http, "/maps", nil)
	if err != nil {
		return nil, err
	}
	return resp.List, nil
}

func (c *CompanionClient) GetGameModes(ctx context.Context) ([]CompanionGameMode, error) {
	resp, err := doRequest[CompanionGameModesResponse](ctx, c.http, "/gamemodes", nil)
	if err != nil {
		return nil, err
	}
	return resp.List, nil
}
