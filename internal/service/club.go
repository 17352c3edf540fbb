package service

import (
	"context"
	"errors"
	"fmt"

	"brawl-tracker/internal/api"
	"brawl-tracker/internal/constants"
	"brawl-tracker/internal/domain"
	"brawl-tracker/internal/repository"
	"brawl-tracker/internal/tag"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type ClubService struct {
	client  *api.Client
	repo    *repository.ClubRepository
	players *repository.PlayerRepository
	logger  zerolog.Logger
}

func NewClubService(client *api.Client, repo *repository.ClubRepository, players *repository.PlayerRepository, logger zerolog.Logger) *ClubService {
	return &ClubService{client: client, repo: repo, players: players, logger: logger}
}

func (s *ClubService) GetClub(ctx context.Context, rawTag string, refresh bool) (*domain.Club, []domain.ClubMember, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	t, err := tag.Parse(rawTag)
	if err != nil {
		return nil, nil, err
	}

	shouldRefresh, err := s.repo.ShouldRefresh(ctx, t.String(), constants.ClubRefreshTTL)
	if err != nil {
		return nil, nil, err
	}
	if !shouldRefresh && !refresh {
		club, members, err := s.repo.Get(ctx, t.String())
		if err == nil {
			s.logger.Info().Str("tag", t.String()).Msg("returning cached club")
			return club, members, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, nil, err
		}
	}

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer apiCancel()

	g, gCtx := errgroup.WithContext(apiCtx)
	var clubResp *api.ClubResponse
	var membersResp *api.ClubMembersResponse

	g.Go(func() error {
		var err error
		clubResp, err = s.client.GetClub(gCtx, t)
		return err
	})

	g.Go(func() error {
		var err error
		membersResp, err = s.client.GetClubMembers(gCtx, t, api.Paging{})
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("tag", t.String()).Msg("failed to fetch club")
		return nil, nil, fmt.Errorf("failed to fetch club: %w", err)
	}

	club := &domain.Club{
		Tag:              clubResp.Tag,
		Name:             clubResp.Name,
		Description:      clubResp.Description,
		Type:             clubResp.Type,
		BadgeID:          clubResp.BadgeID,
		RequiredTrophies: clubResp.RequiredTrophies,
		Trophies:         clubResp.Trophies,
	}

	// the members endpoint is paged and authoritative; the embedded list is a fallback
	source := membersResp.Items
	if len(source) == 0 {
		source = clubResp.Members
	}
	members := make([]domain.ClubMember, len(source))
	partial := make([]domain.Player, len(source))
	for i, m := range source {
		members[i] = domain.ClubMember{
			ClubTag:   club.Tag,
			PlayerTag: m.Tag,
			Name:      m.Name,
			Role:      m.Role,
			Trophies:  m.Trophies,
		}
		partial[i] = domain.Player{
			Tag:      m.Tag,
			Name:     m.Name,
			Trophies: m.Trophies,
			ClubTag:  club.Tag,
			ClubName: club.Name,
		}
	}

	if err := s.repo.Upsert(ctx, club, members); err != nil {
		return nil, nil, fmt.Errorf("failed to store club: %w", err)
	}
	if err := s.players.InsertPartialBatch(ctx, partial); err != nil {
		s.logger.Warn().Err(err).Str("tag", club.Tag).Msg("failed to record club members as players")
	}

	s.logger.Info().Str("tag", club.Tag).Int("members", len(members)).Msg("club fetched successfully")
	return club, members, nil
}
