package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"brawl-tracker/internal/db"
	"brawl-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type ClubRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewClubRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ClubRepository {
	return &ClubRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Upsert stores the club and replaces its member list.
func (r *ClubRepository) Upsert(ctx context.Context, club *domain.Club, members []domain.ClubMember) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now().UTC()
	if club.CreatedAt.IsZero() {
		club.CreatedAt = now
	}
	if club.LastFetchAt.IsZero() {
		club.LastFetchAt = now
	}
	club.UpdatedAt = now

	err = qtx.UpsertClub(ctx, db.UpsertClubParams{
		Tag:              club.Tag,
		Name:             club.Name,
		Description:      club.Description,
		Type:             club.Type,
		BadgeID:          club.BadgeID,
		RequiredTrophies: int64(club.RequiredTrophies),
		Trophies:         int64(club.Trophies),
		LastFetchAt:      club.LastFetchAt.UTC(),
		CreatedAt:        club.CreatedAt.UTC(),
		UpdatedAt:        club.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert club %s: %w", club.Tag, err)
	}

	if err := qtx.DeleteClubMembers(ctx, club.Tag); err != nil {
		return fmt.Errorf("failed to clear members of %s: %w", club.Tag, err)
	}
	for _, m := range members {
		err := qtx.InsertClubMember(ctx, db.InsertClubMemberParams{
			ClubTag:   club.Tag,
			PlayerTag: m.PlayerTag,
			Name:      m.Name,
			Role:      m.Role,
			Trophies:  int64(m.Trophies),
		})
		if err != nil {
			return fmt.Errorf("failed to insert member %s: %w", m.PlayerTag, err)
		}
	}

	return tx.Commit()
}

func (r *ClubRepository) Get(ctx context.Context, tag string) (*domain.Club, []domain.ClubMember, error) {
	c, err := r.queries.GetClubByTag(ctx, tag)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("club %s: %w", tag, ErrNotFound)
	}
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.queries.ListClubMembers(ctx, tag)
	if err != nil {
		return nil, nil, err
	}

	club := &domain.Club{
		Tag:              c.Tag,
		Name:             c.Name,
		Description:      c.Description,
		Type:             c.Type,
		BadgeID:          c.BadgeID,
		RequiredTrophies: int(c.RequiredTrophies),
		Trophies:         int(c.Trophies),
		LastFetchAt:      c.LastFetchAt,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	members := make([]domain.ClubMember, len(rows))
	for i, m := range rows {
		members[i] = domain.ClubMember{
			ClubTag:   m.ClubTag,
			PlayerTag: m.PlayerTag,
			Name:      m.Name,
			Role:      m.Role,
			Trophies:  int(m.Trophies),
		}
	}
	return club, members, nil
}

func (r *ClubRepository) ShouldRefresh(ctx context.Context, tag string, ttl time.Duration) (bool, error) {
	c, err := r.queries.GetClubByTag(ctx, tag)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	shouldRefresh := time.Since(c.LastFetchAt) > ttl
	r.logger.Debug().
		Str("tag", tag).
		Time("last_fetch_at", c.LastFetchAt).
		Bool("should_refresh", shouldRefresh).
		Msg("checking if club should refresh")
	return shouldRefresh, nil
}
