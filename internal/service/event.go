package service

import (
	"context"
	"fmt"

	"brawl-tracker/internal/api"
	"brawl-tracker/internal/constants"
	"brawl-tracker/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type EventService struct {
	client    *api.Client
	companion *api.CompanionClient
	logger    zerolog.Logger
}

func NewEventService(client *api.Client, companion *api.CompanionClient, logger zerolog.Logger) *EventService {
	return &EventService{client: client, companion: companion, logger: logger}
}

// GetRotation returns the live event rotation. Map metadata from the companion
// dataset is best effort; the rotation is returned without it on failure.
func (s *EventService) GetRotation(ctx context.Context) ([]domain.RotationEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	var rotation []api.ScheduledEvent
	var maps []api.CompanionMap
	var modes []api.CompanionGameMode

	g.Go(func() error {
		var err error
		rotation, err = s.client.GetEventRotation(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		maps, err = s.companion.GetMaps(gCtx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to fetch companion maps, continuing without")
			maps = nil
		}
		return nil
	})

	g.Go(func() error {
		var err error
		modes, err = s.companion.GetGameModes(gCtx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to fetch companion game modes, continuing without")
			modes = nil
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch event rotation")
		return nil, fmt.Errorf("failed to fetch event rotation: %w", err)
	}

	byID := make(map[int64]api.CompanionMap, len(maps))
	for _, m := range maps {
		byID[m.ID] = m
	}

	modeNames := make(map[string]string, len(modes))
	for _, m := range modes {
		modeNames[m.ScHash] = m.Name
	}

	out := make([]domain.RotationEvent, 0, len(rotation))
	for _, e := range rotation {
		ev := domain.RotationEvent{
			SlotID:  e.SlotID,
			EventID: e.Event.ID,
			Mode:    e.Event.Mode,
			Map:     e.Event.Map,
			// maps missing from the dataset still get a display name for the mode
			ModeName: modeNames[e.Event.Mode],
		}
		if start, err := api.ParseBattleTime(e.StartTime); err == nil {
			ev.StartTime = start
		}
		if end, err := api.ParseBattleTime(e.EndTime); err == nil {
			ev.EndTime = end
		}
		if m, ok := byID[e.Event.ID]; ok {
			if m.GameMode.Name != "" {
				ev.ModeName = m.GameMode.Name
			}
			ev.Environment = m.Environment.Name
		}
		out = append(out, ev)
	}

	s.logger.Debug().Int("events", len(out)).Int("maps", len(maps)).Int("modes", len(modes)).Msg("event rotation fetched")
	return out, nil
}
