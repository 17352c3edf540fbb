package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"brawl-tracker/internal/api"
	"brawl-tracker/internal/config"
	"brawl-tracker/internal/constants"
	"brawl-tracker/internal/repository"
	"brawl-tracker/internal/service"
	"brawl-tracker/internal/tag"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const BrawlTrackerPath = "/brawl.v1.BrawlTracker/"

const (
	GetPlayerProcedure         = BrawlTrackerPath + "GetPlayer"
	GetBattlesProcedure        = BrawlTrackerPath + "GetBattles"
	GetClubProcedure           = BrawlTrackerPath + "GetClub"
	GetRankingsProcedure       = BrawlTrackerPath + "GetRankings"
	GetEventRotationProcedure  = BrawlTrackerPath + "GetEventRotation"
	SearchSuggestionsProcedure = BrawlTrackerPath + "SearchSuggestions"
)

type TrackerServer struct {
	playerSvc  *service.PlayerService
	battleSvc  *service.BattleService
	clubSvc    *service.ClubService
	rankingSvc *service.RankingService
	eventSvc   *service.EventService
	pageSize   int
	logger     zerolog.Logger
}

func NewTrackerServer(
	playerSvc *service.PlayerService,
	battleSvc *service.BattleService,
	clubSvc *service.ClubService,
	rankingSvc *service.RankingService,
	eventSvc *service.EventService,
	cfg *config.Config,
	logger zerolog.Logger,
) *TrackerServer {
	return &TrackerServer{
		playerSvc:  playerSvc,
		battleSvc:  battleSvc,
		clubSvc:    clubSvc,
		rankingSvc: rankingSvc,
		eventSvc:   eventSvc,
		pageSize:   cfg.BattlePageSize,
		logger:     logger,
	}
}

// NewHandler mounts every procedure under BrawlTrackerPath.
func NewHandler(s *TrackerServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{
		connect.WithCodec(jsonCodec{}),
		connect.WithInterceptors(requestTimer(s.logger, constants.SlowRequestThreshold)),
	}, opts...)

	mux := http.NewServeMux()
	mux.Handle(GetPlayerProcedure, connect.NewUnaryHandler(GetPlayerProcedure, s.GetPlayer, opts...))
	mux.Handle(GetBattlesProcedure, connect.NewUnaryHandler(GetBattlesProcedure, s.GetBattles, opts...))
	mux.Handle(GetClubProcedure, connect.NewUnaryHandler(GetClubProcedure, s.GetClub, opts...))
	mux.Handle(GetRankingsProcedure, connect.NewUnaryHandler(GetRankingsProcedure, s.GetRankings, opts...))
	mux.Handle(GetEventRotationProcedure, connect.NewUnaryHandler(GetEventRotationProcedure, s.GetEventRotation, opts...))
	mux.Handle(SearchSuggestionsProcedure, connect.NewUnaryHandler(SearchSuggestionsProcedure, s.SearchSuggestions, opts...))
	return BrawlTrackerPath, mux
}

func (s *TrackerServer) GetPlayer(ctx context.Context, req *connect.Request[PlayerRequest]) (*connect.Response[PlayerResponse], error) {
	player, err := s.playerSvc.GetPlayer(ctx, req.Msg.Tag, req.Msg.Refresh)
	if err != nil {
		return nil, s.connectError(ctx, "GetPlayer", err)
	}
	return connect.NewResponse(toPlayerResponse(player)), nil
}

// GetBattles opens a cursor when none is given, optionally syncing the battle
// log first, and returns the next page of reconstructed battles.
func (s *TrackerServer) GetBattles(ctx context.Context, req *connect.Request[BattlesRequest]) (*connect.Response[BattlesResponse], error) {
	cursor := req.Msg.Cursor
	if cursor == "" {
		if req.Msg.Sync {
			if _, err := s.battleSvc.Sync(ctx, req.Msg.Tag); err != nil {
				return nil, s.connectError(ctx, "GetBattles", err)
			}
		}
		var err error
		cursor, err = s.battleSvc.OpenCursor(req.Msg.Tag)
		if err != nil {
			return nil, s.connectError(ctx, "GetBattles", err)
		}
	}

	pageSize := req.Msg.PageSize
	if pageSize <= 0 {
		pageSize = s.pageSize
	}

	battles, hasMore, err := s.battleSvc.NextPage(ctx, cursor, pageSize)
	if err != nil {
		return nil, s.connectError(ctx, "GetBattles", err)
	}

	resp := &BattlesResponse{Battles: make([]*Battle, len(battles)), HasMore: hasMore}
	for i, b := range battles {
		resp.Battles[i] = toBattle(b)
	}
	if hasMore {
		resp.Cursor = cursor
	}
	return connect.NewResponse(resp), nil
}

func (s *TrackerServer) GetClub(ctx context.Context, req *connect.Request[ClubRequest]) (*connect.Response[ClubResponse], error) {
	club, members, err := s.clubSvc.GetClub(ctx, req.Msg.Tag, req.Msg.Refresh)
	if err != nil {
		return nil, s.connectError(ctx, "GetClub", err)
	}
	return connect.NewResponse(toClubResponse(club, members)), nil
}

func (s *TrackerServer) GetRankings(ctx context.Context, req *connect.Request[RankingsRequest]) (*connect.Response[RankingsResponse], error) {
	entries, err := s.rankingSvc.GetRankings(ctx, service.RankingQuery{
		Kind:      service.RankingKind(req.Msg.Kind),
		Country:   req.Msg.Country,
		BrawlerID: req.Msg.BrawlerID,
		Limit:     req.Msg.Limit,
	})
	if err != nil {
		return nil, s.connectError(ctx, "GetRankings", err)
	}

	resp := &RankingsResponse{Entries: make([]*RankingEntry, len(entries))}
	for i, e := range entries {
		resp.Entries[i] = &RankingEntry{
			Rank:        e.Rank,
			Tag:         e.Tag,
			Name:        e.Name,
			Trophies:    e.Trophies,
			ClubName:    e.ClubName,
			MemberCount: e.MemberCount,
		}
	}
	return connect.NewResponse(resp), nil
}

func (s *TrackerServer) GetEventRotation(ctx context.Context, req *connect.Request[EventRotationRequest]) (*connect.Response[EventRotationResponse], error) {
	events, err := s.eventSvc.GetRotation(ctx)
	if err != nil {
		return nil, s.connectError(ctx, "GetEventRotation", err)
	}

	resp := &EventRotationResponse{Events: make([]*RotationEvent, len(events))}
	for i, e := range events {
		resp.Events[i] = &RotationEvent{
			SlotID:      e.SlotID,
			EventID:     e.EventID,
			Mode:        e.Mode,
			ModeName:    e.ModeName,
			Map:         e.Map,
			Environment: e.Environment,
			StartTime:   formatTime(e.StartTime),
			EndTime:     formatTime(e.EndTime),
		}
	}
	return connect.NewResponse(resp), nil
}

func (s *TrackerServer) SearchSuggestions(ctx context.Context, req *connect.Request[SearchSuggestionsRequest]) (*connect.Response[SearchSuggestionsResponse], error) {
	players, err := s.playerSvc.SearchSuggestions(ctx, req.Msg.Query)
	if err != nil {
		return nil, s.connectError(ctx, "SearchSuggestions", err)
	}

	resp := &SearchSuggestionsResponse{Suggestions: make([]*PlayerResponse, len(players))}
	for i := range players {
		resp.Suggestions[i] = toPlayerResponse(&players[i])
	}
	return connect.NewResponse(resp), nil
}

func (s *TrackerServer) connectError(ctx context.Context, procedure string, err error) *connect.Error {
	code := errorCode(err)
	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = &s.logger
	}
	event := logger.Warn()
	if code == connect.CodeInternal {
		event = logger.Error()
	}
	event.Err(err).Str("procedure", procedure).Str("code", code.String()).Msg("request failed")
	return connect.NewError(code, err)
}

func errorCode(err error) connect.Code {
	switch {
	case errors.Is(err, tag.ErrInvalidTag),
		errors.Is(err, service.ErrInvalidRanking),
		errors.Is(err, api.ErrBadRequest):
		return connect.CodeInvalidArgument
	case errors.Is(err, api.ErrNotFound),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrCursorNotFound):
		return connect.CodeNotFound
	case errors.Is(err, api.ErrRateLimited):
		return connect.CodeResourceExhausted
	case errors.Is(err, api.ErrMaintenance),
		errors.Is(err, api.ErrForbidden):
		return connect.CodeUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	}
	return connect.CodeInternal
}

// requestTimer logs slow procedures.
func requestTimer(logger zerolog.Logger, threshold time.Duration) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			if took := time.Since(start); took > threshold {
				logger.Warn().Str("procedure", req.Spec().Procedure).Dur("took", took).Msg("slow request")
			}
			return resp, err
		}
	}
}
