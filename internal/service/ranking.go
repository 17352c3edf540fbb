package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"brawl-tracker/internal/api"
	"brawl-tracker/internal/constants"
	"brawl-tracker/internal/domain"

	"github.com/rs/zerolog"
)

var ErrInvalidRanking = errors.New("invalid ranking request")

type RankingKind string

const (
	RankingPlayers  RankingKind = "players"
	RankingClubs    RankingKind = "clubs"
	RankingBrawlers RankingKind = "brawlers"
)

type RankingQuery struct {
	Kind      RankingKind
	Country   string // ISO 3166-1 alpha-2 or "global"
	BrawlerID int64
	Limit     int
}

type RankingService struct {
	client *api.Client
	logger zerolog.Logger
}

func NewRankingService(client *api.Client, logger zerolog.Logger) *RankingService {
	return &RankingService{client: client, logger: logger}
}

func (q *RankingQuery) normalize() error {
	q.Country = strings.ToLower(strings.TrimSpace(q.Country))
	if q.Country == "" {
		q.Country = "global"
	}
	if q.Country != "global" && len(q.Country) != 2 {
		return fmt.Errorf("%w: country %q", ErrInvalidRanking, q.Country)
	}
	if q.Country != "global" {
		q.Country = strings.ToUpper(q.Country)
	}
	if q.Limit <= 0 || q.Limit > constants.DefaultRankingLimit {
		q.Limit = constants.DefaultRankingLimit
	}
	if q.Kind == RankingBrawlers && q.BrawlerID == 0 {
		return fmt.Errorf("%w: brawler rankings need a brawler id", ErrInvalidRanking)
	}
	return nil
}

func (s *RankingService) GetRankings(ctx context.Context, q RankingQuery) ([]domain.RankingEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	if err := q.normalize(); err != nil {
		return nil, err
	}
	paging := api.Paging{Limit: q.Limit}

	s.logger.Debug().Str("kind", string(q.Kind)).Str("country", q.Country).Int("limit", q.Limit).Msg("getting rankings")

	switch q.Kind {
	case RankingPlayers, "":
		resp, err := s.client.GetPlayerRankings(ctx, q.Country, paging)
		if err != nil {
			return nil, err
		}
		return playerRankings(resp.Items), nil
	case RankingBrawlers:
		resp, err := s.client.GetBrawlerRankings(ctx, q.Country, q.BrawlerID, paging)
		if err != nil {
			return nil, err
		}
		return playerRankings(resp.Items), nil
	case RankingClubs:
		resp, err := s.client.GetClubRankings(ctx, q.Country, paging)
		if err != nil {
			return nil, err
		}
		out := make([]domain.RankingEntry, len(resp.Items))
		for i, c := range resp.Items {
			out[i] = domain.RankingEntry{
				Rank:        c.Rank,
				Tag:         c.Tag,
				Name:        c.Name,
				Trophies:    c.Trophies,
				MemberCount: c.MemberCount,
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: kind %q", ErrInvalidRanking, q.Kind)
}

func playerRankings(items []api.PlayerRanking) []domain.RankingEntry {
	out := make([]domain.RankingEntry, len(items))
	for i, p := range items {
		out[i] = domain.RankingEntry{
			Rank:     p.Rank,
			Tag:      p.Tag,
			Name:     p.Name,
			Trophies: p.Trophies,
		}
		if p.Club != nil {
			out[i].ClubName = p.Club.Name
		}
	}
	return out
}
