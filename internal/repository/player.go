package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"brawl-tracker/internal/constants"
	"brawl-tracker/internal/db"
	"brawl-tracker/internal/domain"

	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("not found")

type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *PlayerRepository) GetByTag(ctx context.Context, tag string) (*domain.Player, error) {
	player, err := r.queries.GetPlayerByTag(ctx, tag)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", tag, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	p := toDomainPlayer(player)
	return &p, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, player *domain.Player) error {
	now := time.Now().UTC()
	if player.CreatedAt.IsZero() {
		player.CreatedAt = now
	}
	if player.LastFetchAt.IsZero() {
		player.LastFetchAt = now
	}
	player.UpdatedAt = now

	return r.queries.UpsertPlayer(ctx, db.UpsertPlayerParams{
		Tag:             player.Tag,
		Name:            player.Name,
		NameColor:       player.NameColor,
		IconID:          player.IconID,
		Trophies:        int64(player.Trophies),
		HighestTrophies: int64(player.HighestTrophies),
		ExpLevel:        int64(player.ExpLevel),
		TrioVictories:   int64(player.TrioVictories),
		SoloVictories:   int64(player.SoloVictories),
		DuoVictories:    int64(player.DuoVictories),
		ClubTag:         player.ClubTag,
		ClubName:        player.ClubName,
		IsPartialFetch:  player.IsPartialFetch,
		LastFetchAt:     player.LastFetchAt.UTC(),
		CreatedAt:       player.CreatedAt.UTC(),
		UpdatedAt:       player.UpdatedAt,
	})
}

// InsertPartialBatch records players seen only through a club roster. Existing
// rows are left untouched.
func (r *PlayerRepository) InsertPartialBatch(ctx context.Context, players []domain.Player) error {
	if len(players) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now().UTC()

	for i := 0; i < len(players); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(players))
		for _, player := range players[i:end] {
			err := qtx.InsertPartialPlayer(ctx, db.InsertPartialPlayerParams{
				Tag:         player.Tag,
				Name:        player.Name,
				Trophies:    int64(player.Trophies),
				ClubTag:     player.ClubTag,
				ClubName:    player.ClubName,
				LastFetchAt: now,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
			if err != nil {
				return fmt.Errorf("failed to insert player %s: %w", player.Tag, err)
			}
		}
	}

	return tx.Commit()
}

func (r *PlayerRepository) ShouldRefresh(ctx context.Context, tag string, ttl time.Duration) (bool, error) {
	player, err := r.queries.GetPlayerLastFetchAt(ctx, tag)
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Debug().Str("tag", tag).Msg("player not found, should refresh")
		return true, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Str("tag", tag).Msg("failed to get player")
		return false, err
	}
	if player.IsPartialFetch {
		r.logger.Debug().Str("tag", tag).Msg("player is partial fetch, should refresh")
		return true, nil
	}

	timeSince := time.Since(player.LastFetchAt)
	shouldRefresh := timeSince > ttl
	r.logger.Debug().
		Str("tag", tag).
		Time("last_fetch_at", player.LastFetchAt).
		Dur("time_since", timeSince).
		Dur("ttl", ttl).
		Bool("should_refresh", shouldRefresh).
		Msg("checking if player should refresh")

	return shouldRefresh, nil
}

func (r *PlayerRepository) SetLastFetchAt(ctx context.Context, tag string, lastFetchAt time.Time) error {
	err := r.queries.UpdatePlayerLastFetchAt(ctx, db.UpdatePlayerLastFetchAtParams{
		LastFetchAt: lastFetchAt.UTC(),
		UpdatedAt:   time.Now().UTC(),
		Tag:         tag,
	})
	if err != nil {
		r.logger.Error().Err(err).Str("tag", tag).Msg("failed to set last fetch at")
		return err
	}
	return nil
}

// Search does a substring match on name and tag. Ranking is left to the caller.
func (r *PlayerRepository) Search(ctx context.Context, query string, limit int) ([]domain.Player, error) {
	searchPattern := "%" + query + "%"
	players, err := r.queries.SearchPlayers(ctx, db.SearchPlayersParams{
		Name:  searchPattern,
		Tag:   searchPattern,
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.Player, len(players))
	for i, p := range players {
		result[i] = toDomainPlayer(p)
	}
	return result, nil
}

func toDomainPlayer(p db.Player) domain.Player {
	return domain.Player{
		Tag:             p.Tag,
		Name:            p.Name,
		NameColor:       p.NameColor,
		IconID:          p.IconID,
		Trophies:        int(p.Trophies),
		HighestTrophies: int(p.HighestTrophies),
		ExpLevel:        int(p.ExpLevel),
		TrioVictories:   int(p.TrioVictories),
		SoloVictories:   int(p.SoloVictories),
		DuoVictories:    int(p.DuoVictories),
		ClubTag:         p.ClubTag,
		ClubName:        p.ClubName,
		IsPartialFetch:  p.IsPartialFetch,
		LastFetchAt:     p.LastFetchAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
