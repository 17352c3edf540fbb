package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"brawl-tracker/internal/api"
	"brawl-tracker/internal/battlelog"
	"brawl-tracker/internal/config"
	"brawl-tracker/internal/constants"
	"brawl-tracker/internal/repository"
	"brawl-tracker/internal/tag"

	"github.com/bits-and-blooms/bloom/v3"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

var ErrCursorNotFound = errors.New("cursor not found or expired")

type BattleService struct {
	client    *api.Client
	repo      *repository.BattleRepository
	cursorTTL time.Duration
	logger    zerolog.Logger

	seenMu sync.Mutex
	seen   *bloom.BloomFilter

	cursorsMu sync.Mutex
	cursors   map[string]*battleCursor
}

type battleCursor struct {
	mu       sync.Mutex
	tag      string
	it       *battlelog.Iterator
	lastUsed time.Time
}

type SyncResult struct {
	Fetched int
	Stored  int
	Battles int
}

func NewBattleService(client *api.Client, repo *repository.BattleRepository, cfg *config.Config, logger zerolog.Logger) *BattleService {
	return &BattleService{
		client:    client,
		repo:      repo,
		cursorTTL: cfg.CursorTTL,
		logger:    logger,
		seen:      bloom.NewWithEstimates(constants.SeenBattleEstimate, constants.SeenBattleFPRate),
		cursors:   make(map[string]*battleCursor),
	}
}

// SeedSeen loads every stored raw battle key into the sync filter so a freshly
// started service only checks the database for keys it may have seen.
func (s *BattleService) SeedSeen(ctx context.Context) (int, error) {
	keys, err := s.repo.AllRawKeys(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load stored battle keys: %w", err)
	}

	s.seenMu.Lock()
	for _, k := range keys {
		s.seen.AddString(k)
	}
	s.seenMu.Unlock()

	s.logger.Info().Int("keys", len(keys)).Msg("battle sync filter seeded")
	return len(keys), nil
}

// Sync pulls the player's battle log from the game API, stores entries not
// seen before and rebuilds the player's battles from the whole stored log.
func (s *BattleService) Sync(ctx context.Context, rawTag string) (*SyncResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	t, err := tag.Parse(rawTag)
	if err != nil {
		return nil, err
	}
	playerTag := t.String()

	var records []battlelog.RawBattleRecord
	src := api.NewBattleLogSource(s.client, t, constants.BattleLogLimit, s.logger)
	for src.HasNext() {
		page, err := src.FetchNextPage(ctx)
		if err != nil {
			s.logger.Error().Err(err).Str("tag", playerTag).Msg("failed to sync battle log")
			return nil, fmt.Errorf("failed to fetch battle log: %w", err)
		}
		records = append(records, page...)
	}

	fresh, checked, err := s.filterSeen(ctx, playerTag, records)
	if err != nil {
		return nil, err
	}
	inserted, err := s.repo.UpsertRawBatch(ctx, playerTag, fresh)
	if err != nil {
		return nil, fmt.Errorf("failed to store battle log: %w", err)
	}
	s.markSeen(playerTag, fresh)

	battles, err := s.rebuild(ctx, playerTag)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveBattles(ctx, playerTag, battles); err != nil {
		return nil, fmt.Errorf("failed to save battles: %w", err)
	}

	s.logger.Info().
		Str("tag", playerTag).
		Int("fetched", len(records)).
		Int("db_checked", checked).
		Int("stored", inserted).
		Int("battles", len(battles)).
		Msg("battle log synced")

	return &SyncResult{Fetched: len(records), Stored: inserted, Battles: len(battles)}, nil
}

// filterSeen drops records already stored. Keys the bloom filter has never
// seen are new without a lookup; only its positives are checked against the
// database. It returns the new records and how many keys were looked up.
func (s *BattleService) filterSeen(ctx context.Context, playerTag string, records []battlelog.RawBattleRecord) ([]battlelog.RawBattleRecord, int, error) {
	fresh := make([]battlelog.RawBattleRecord, 0, len(records))
	var maybe []battlelog.RawBattleRecord
	var maybeKeys []string
	batch := make(map[string]struct{}, len(records))

	s.seenMu.Lock()
	for _, r := range records {
		key := repository.RawKey(playerTag, r)
		if _, dup := batch[key]; dup {
			continue
		}
		batch[key] = struct{}{}
		if !s.seen.TestString(key) {
			fresh = append(fresh, r)
			continue
		}
		maybe = append(maybe, r)
		maybeKeys = append(maybeKeys, key)
	}
	s.seenMu.Unlock()

	if len(maybeKeys) == 0 {
		return fresh, 0, nil
	}
	stored, err := s.repo.StoredRawKeys(ctx, maybeKeys)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to check stored battles: %w", err)
	}
	for i, r := range maybe {
		if _, ok := stored[maybeKeys[i]]; !ok {
			fresh = append(fresh, r)
		}
	}
	return fresh, len(maybeKeys), nil
}

func (s *BattleService) markSeen(playerTag string, records []battlelog.RawBattleRecord) {
	s.seenMu.Lock()
	defer s.seenMu.Unlock()
	for _, r := range records {
		s.seen.AddString(repository.RawKey(playerTag, r))
	}
}

func (s *BattleService) rebuild(ctx context.Context, playerTag string) ([]battlelog.Battle, error) {
	it := battlelog.NewIterator(
		repository.NewStoredRecordSource(s.repo, playerTag, constants.StoredRecordPageSize),
		s.logger.With().Str("tag", playerTag).Logger(),
	)
	var battles []battlelog.Battle
	for it.HasNext() {
		page, err := it.Next(ctx, constants.MaxBattlePageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to rebuild battles: %w", err)
		}
		battles = append(battles, page...)
	}
	return battles, nil
}

// OpenCursor starts a paged read of the player's stored battle log, oldest
// battle first.
func (s *BattleService) OpenCursor(rawTag string) (string, error) {
	t, err := tag.Parse(rawTag)
	if err != nil {
		return "", err
	}
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate cursor id: %w", err)
	}

	c := &battleCursor{
		tag: t.String(),
		it: battlelog.NewIterator(
			repository.NewStoredRecordSource(s.repo, t.String(), constants.StoredRecordPageSize),
			s.logger.With().Str("tag", t.String()).Str("cursor", id).Logger(),
		),
		lastUsed: time.Now(),
	}

	s.cursorsMu.Lock()
	s.cursors[id] = c
	s.cursorsMu.Unlock()

	s.logger.Debug().Str("tag", t.String()).Str("cursor", id).Msg("battle cursor opened")
	return id, nil
}

// NextPage returns the next battles for a cursor and whether more remain. A
// failed read keeps the cursor so the call can be retried; an exhausted or
// corrupted cursor is closed.
func (s *BattleService) NextPage(ctx context.Context, cursorID string, pageSize int) ([]battlelog.Battle, bool, error) {
	if pageSize <= 0 {
		pageSize = constants.DefaultBattlePageSize
	}
	pageSize = min(pageSize, constants.MaxBattlePageSize)

	s.cursorsMu.Lock()
	c, ok := s.cursors[cursorID]
	s.cursorsMu.Unlock()
	if !ok {
		return nil, false, ErrCursorNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastUsed = time.Now()

	battles, err := c.it.Next(ctx, pageSize)
	if err != nil {
		if errors.Is(err, battlelog.ErrInvariantViolation) {
			s.CloseCursor(cursorID)
		}
		return nil, false, err
	}

	hasMore := c.it.HasNext()
	if !hasMore {
		s.CloseCursor(cursorID)
	}
	return battles, hasMore, nil
}

func (s *BattleService) CloseCursor(cursorID string) {
	s.cursorsMu.Lock()
	defer s.cursorsMu.Unlock()
	delete(s.cursors, cursorID)
}

// SweepCursors drops cursors idle for longer than the configured TTL and
// returns how many were dropped.
func (s *BattleService) SweepCursors(now time.Time) int {
	s.cursorsMu.Lock()
	defer s.cursorsMu.Unlock()

	dropped := 0
	for id, c := range s.cursors {
		if !c.mu.TryLock() {
			continue
		}
		idle := now.Sub(c.lastUsed)
		c.mu.Unlock()
		if idle > s.cursorTTL {
			delete(s.cursors, id)
			dropped++
		}
	}
	if dropped > 0 {
		s.logger.Debug().Int("dropped", dropped).Int("open", len(s.cursors)).Msg("expired battle cursors swept")
	}
	return dropped
}

// RunCursorSweeper sweeps expired cursors until ctx is done.
func (s *BattleService) RunCursorSweeper(ctx context.Context) {
	ticker := time.NewTicker(constants.CursorSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.SweepCursors(now)
		}
	}
}

func (s *BattleService) ListBattles(ctx context.Context, rawTag string, limit int) ([]battlelog.Battle, error) {
	t, err := tag.Parse(rawTag)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = constants.DefaultBattlePageSize
	}
	stored, err := s.repo.ListBattles(ctx, t.String(), min(limit, constants.MaxBattlePageSize))
	if err != nil {
		return nil, err
	}
	out := make([]battlelog.Battle, len(stored))
	for i, b := range stored {
		out[i] = b.Detail
	}
	return out, nil
}
