package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"brawl-tracker/internal/api"
	"brawl-tracker/internal/constants"
	"brawl-tracker/internal/domain"
	"brawl-tracker/internal/repository"
	"brawl-tracker/internal/tag"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog"
)

type PlayerService struct {
	client *api.Client
	repo   *repository.PlayerRepository
	logger zerolog.Logger
}

func NewPlayerService(client *api.Client, repo *repository.PlayerRepository, logger zerolog.Logger) *PlayerService {
	return &PlayerService{client: client, repo: repo, logger: logger}
}

func (s *PlayerService) GetPlayer(ctx context.Context, rawTag string, refresh bool) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	t, err := tag.Parse(rawTag)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("tag", t.String()).Bool("refresh", refresh).Msg("getting player")

	shouldRefresh, err := s.repo.ShouldRefresh(ctx, t.String(), constants.PlayerRefreshTTL)
	if err != nil {
		return nil, err
	}
	if refresh {
		s.logger.Debug().Str("tag", t.String()).Msg("manual refresh requested")
		shouldRefresh = true
	}

	if !shouldRefresh {
		player, err := s.repo.GetByTag(ctx, t.String())
		if err == nil {
			s.logger.Info().Str("tag", t.String()).Msg("returning cached player")
			return player, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer apiCancel()

	resp, err := s.client.GetPlayer(apiCtx, t)
	if err != nil {
		s.logger.Error().Err(err).Str("tag", t.String()).Msg("failed to fetch player")
		return nil, fmt.Errorf("failed to fetch player: %w", err)
	}

	player := fromAPIPlayer(resp)
	if err := s.repo.Upsert(ctx, player); err != nil {
		s.logger.Error().Err(err).Str("tag", player.Tag).Msg("failed to upsert player")
		return nil, fmt.Errorf("failed to upsert player: %w", err)
	}

	s.logger.Info().Str("tag", player.Tag).Msg("player fetched successfully")
	return player, nil
}

// SearchSuggestions ranks stored players against query by fuzzy match on name
// and tag. Candidates are the substring matches plus the top players by trophies.
func (s *PlayerService) SearchSuggestions(ctx context.Context, query string) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Player{}, nil
	}

	s.logger.Debug().Str("query", query).Msg("searching players")

	direct, err := s.repo.Search(ctx, query, constants.SearchCandidateLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to search players")
		return nil, err
	}
	top, err := s.repo.Search(ctx, "", constants.SearchCandidateLimit)
	if err != nil {
		return nil, err
	}

	suggestions := rankPlayers(query, append(direct, top...), constants.SearchSuggestionLimit)

	s.logger.Info().Int("count", len(suggestions)).Str("query", query).Msg("search completed")
	return suggestions, nil
}

func rankPlayers(query string, candidates []domain.Player, limit int) []domain.Player {
	seen := make(map[string]struct{}, len(candidates))
	var unique []domain.Player
	var targets []string
	for _, p := range candidates {
		if _, ok := seen[p.Tag]; ok {
			continue
		}
		seen[p.Tag] = struct{}{}
		unique = append(unique, p)
		targets = append(targets, strings.ToLower(p.Name+" "+p.Tag))
	}

	ranks := fuzzy.RankFind(strings.ToLower(query), targets)
	sort.Stable(ranks)

	out := make([]domain.Player, 0, min(limit, len(ranks)))
	for _, r := range ranks {
		if len(out) == limit {
			break
		}
		out = append(out, unique[r.OriginalIndex])
	}
	return out
}

func fromAPIPlayer(resp *api.PlayerResponse) *domain.Player {
	p := &domain.Player{
		Tag:             resp.Tag,
		Name:            resp.Name,
		NameColor:       resp.NameColor,
		IconID:          resp.Icon.ID,
		Trophies:        resp.Trophies,
		HighestTrophies: resp.HighestTrophies,
		ExpLevel:        resp.ExpLevel,
		TrioVictories:   resp.TrioVictories,
		SoloVictories:   resp.SoloVictories,
		DuoVictories:    resp.DuoVictories,
	}
	if resp.Club != nil {
		p.ClubTag = resp.Club.Tag
		p.ClubName = resp.Club.Name
	}
	return p
}
