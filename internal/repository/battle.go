package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"brawl-tracker/internal/battlelog"
	"brawl-tracker/internal/constants"
	"brawl-tracker/internal/db"
	"brawl-tracker/internal/domain"

	json "github.com/goccy/go-json"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type BattleRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewBattleRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *BattleRepository {
	return &BattleRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// RawKey identifies a battle log entry for one player. The game API has no
// battle id, so time and event stand in for it.
func RawKey(playerTag string, r battlelog.RawBattleRecord) string {
	return fmt.Sprintf("%s|%s|%d|%s", playerTag, r.Time.UTC().Format(time.RFC3339), r.Event.ID, r.Mode)
}

// UpsertRawBatch stores records that are not stored yet and returns how many
// were new.
func (r *BattleRepository) UpsertRawBatch(ctx context.Context, playerTag string, records []battlelog.RawBattleRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now().UTC()
	inserted := 0

	for i := 0; i < len(records); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(records))
		for _, rec := range records[i:end] {
			payload, err := json.Marshal(rec)
			if err != nil {
				return 0, fmt.Errorf("failed to encode battle at %s: %w", rec.Time, err)
			}
			n, err := qtx.InsertRawBattle(ctx, db.InsertRawBattleParams{
				BattleKey:  RawKey(playerTag, rec),
				PlayerTag:  playerTag,
				BattleTime: rec.Time.UTC(),
				Payload:    payload,
				CreatedAt:  now,
			})
			if err != nil {
				return 0, fmt.Errorf("failed to insert raw battle: %w", err)
			}
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// StoredRawKeys returns which of keys are already stored.
func (r *BattleRepository) StoredRawKeys(ctx context.Context, keys []string) (map[string]struct{}, error) {
	set := make(map[string]struct{}, len(keys))
	for i := 0; i < len(keys); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(keys))
		found, err := r.queries.ListStoredRawKeys(ctx, keys[i:end])
		if err != nil {
			return nil, err
		}
		for _, k := range found {
			set[k] = struct{}{}
		}
	}
	return set, nil
}

// AllRawKeys lists every stored raw battle key, for warming the sync filter.
func (r *BattleRepository) AllRawKeys(ctx context.Context) ([]string, error) {
	return r.queries.ListAllRawKeys(ctx)
}

func (r *BattleRepository) CountRaw(ctx context.Context, playerTag string) (int, error) {
	n, err := r.queries.CountRawBattles(ctx, playerTag)
	return int(n), err
}

// RawCursor is a position in a player's stored log. The zero value is the start.
type RawCursor struct {
	Time time.Time
	Key  string
}

// RawPage returns up to limit stored records after the cursor, oldest first.
func (r *BattleRepository) RawPage(ctx context.Context, playerTag string, after RawCursor, limit int) ([]domain.RawBattle, error) {
	rows, err := r.queries.ListRawBattlesAfter(ctx, db.ListRawBattlesAfterParams{
		PlayerTag: playerTag,
		AfterTime: after.Time.UTC(),
		AfterKey:  after.Key,
		Limit:     int64(limit),
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.RawBattle, len(rows))
	for i, row := range rows {
		var rec battlelog.RawBattleRecord
		if err := json.Unmarshal(row.Payload, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode raw battle %s: %w", row.BattleKey, err)
		}
		out[i] = domain.RawBattle{
			Key:       row.BattleKey,
			PlayerTag: row.PlayerTag,
			Record:    rec,
			CreatedAt: row.CreatedAt,
		}
	}
	return out, nil
}

// SaveBattles replaces the player's reconstructed battles. Reconstruction always
// runs over the full stored log, so a ranked match split across two syncs ends
// up as one battle.
func (r *BattleRepository) SaveBattles(ctx context.Context, playerTag string, battles []battlelog.Battle) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	if err := qtx.DeleteBattlesByPlayer(ctx, playerTag); err != nil {
		return fmt.Errorf("failed to clear battles: %w", err)
	}

	now := time.Now().UTC()
	for _, b := range battles {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		s := Summarize(b)
		detail, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("failed to encode battle: %w", err)
		}

		err = qtx.InsertBattle(ctx, db.InsertBattleParams{
			ID:           id,
			PlayerTag:    playerTag,
			Kind:         s.Kind,
			Mode:         s.Mode,
			Class:        s.Class,
			EventID:      s.EventID,
			Map:          s.Map,
			StartedAt:    s.StartedAt.UTC(),
			Result:       s.Result,
			TrophyChange: toInt64Ptr(s.TrophyChange),
			Rank:         toInt64Ptr(s.Rank),
			StarTag:      s.StarTag,
			DurationMs:   s.Duration.Milliseconds(),
			Detail:       detail,
			CreatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("failed to insert battle: %w", err)
		}

		for _, round := range s.Rounds {
			err := qtx.InsertBattleRound(ctx, db.InsertBattleRoundParams{
				BattleID:   id,
				RoundIndex: int64(round.Index),
				Result:     round.Result,
				DurationMs: round.Duration.Milliseconds(),
			})
			if err != nil {
				return fmt.Errorf("failed to insert round %d of %s: %w", round.Index, id, err)
			}
		}
	}

	return tx.Commit()
}

// ListBattles returns the player's stored battles, newest first.
func (r *BattleRepository) ListBattles(ctx context.Context, playerTag string, limit int) ([]domain.StoredBattle, error) {
	rows, err := r.queries.ListBattlesByPlayer(ctx, db.ListBattlesByPlayerParams{
		PlayerTag: playerTag,
		Limit:     int64(limit),
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []domain.StoredBattle{}, nil
	}

	roundRows, err := r.queries.ListRoundsByPlayer(ctx, playerTag)
	if err != nil {
		return nil, err
	}
	rounds := make(map[string][]domain.StoredRound)
	for _, rr := range roundRows {
		rounds[rr.BattleID] = append(rounds[rr.BattleID], domain.StoredRound{
			Index:    int(rr.RoundIndex),
			Result:   rr.Result,
			Duration: time.Duration(rr.DurationMs) * time.Millisecond,
		})
	}

	out := make([]domain.StoredBattle, len(rows))
	for i, row := range rows {
		var detail battlelog.Battle
		if err := json.Unmarshal(row.Detail, &detail); err != nil {
			return nil, fmt.Errorf("failed to decode battle %s: %w", row.ID, err)
		}
		out[i] = domain.StoredBattle{
			ID:           row.ID,
			PlayerTag:    row.PlayerTag,
			Kind:         row.Kind,
			Mode:         row.Mode,
			Class:        row.Class,
			EventID:      row.EventID,
			Map:          row.Map,
			StartedAt:    row.StartedAt,
			Result:       row.Result,
			TrophyChange: fromInt64Ptr(row.TrophyChange),
			Rank:         fromInt64Ptr(row.Rank),
			StarTag:      row.StarTag,
			Duration:     time.Duration(row.DurationMs) * time.Millisecond,
			Rounds:       rounds[row.ID],
			Detail:       detail,
			CreatedAt:    row.CreatedAt,
		}
	}
	return out, nil
}

// Summarize flattens a battle into the columns stored alongside its detail.
func Summarize(b battlelog.Battle) domain.StoredBattle {
	s := domain.StoredBattle{
		Kind:      b.Kind.String(),
		Mode:      string(b.Mode),
		Class:     string(b.Class),
		EventID:   b.Event.ID,
		Map:       b.Event.Map,
		StartedAt: b.Time,
		Detail:    b,
	}

	switch b.Kind {
	case battlelog.KindTeams:
		s.Result = string(b.Teams.Result)
		s.TrophyChange = b.Teams.TrophyChange
		s.StarTag = starTag(b.Teams.StarPlayer)
		s.Duration = durationOf(b.Teams.Duration)
	case battlelog.KindSoloShowdown:
		s.Rank = intPtr(b.SoloShowdown.Rank)
		s.TrophyChange = intPtr(b.SoloShowdown.TrophyChange)
	case battlelog.KindTeamShowdown:
		s.Rank = intPtr(b.TeamShowdown.Rank)
		s.TrophyChange = intPtr(b.TeamShowdown.TrophyChange)
	case battlelog.KindDuel:
		s.Result = string(b.Duel.Result)
		s.TrophyChange = intPtr(b.Duel.TrophyChange)
		s.Duration = durationOf(b.Duel.Duration)
	case battlelog.KindRegularRanked, battlelog.KindFriendlyRanked:
		s.Result = string(b.Ranked.Result)
		s.StarTag = starTag(b.Ranked.StarPlayer)
		s.Duration = b.Ranked.TotalDuration()
		for i, round := range b.Ranked.Rounds {
			s.Rounds = append(s.Rounds, domain.StoredRound{
				Index:    i,
				Result:   string(round.Result),
				Duration: durationOf(round.Duration),
			})
		}
	}
	return s
}

func starTag(p *battlelog.Participant) string {
	if p == nil {
		return ""
	}
	return p.Tag
}

func durationOf(d *time.Duration) time.Duration {
	if d == nil {
		return 0
	}
	return *d
}

func intPtr(v int) *int {
	return &v
}

func toInt64Ptr(v *int) *int64 {
	if v == nil {
		return nil
	}
	n := int64(*v)
	return &n
}

func fromInt64Ptr(v *int64) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

// StoredRecordSource pages through a player's stored battle log, oldest
// first, for a battlelog.Iterator.
type StoredRecordSource struct {
	repo      *BattleRepository
	playerTag string
	pageSize  int
	cursor    RawCursor
	done      bool
}

func NewStoredRecordSource(repo *BattleRepository, playerTag string, pageSize int) *StoredRecordSource {
	return &StoredRecordSource{repo: repo, playerTag: playerTag, pageSize: pageSize}
}

func (s *StoredRecordSource) HasNext() bool {
	return !s.done
}

func (s *StoredRecordSource) FetchNextPage(ctx context.Context) ([]battlelog.RawBattleRecord, error) {
	if s.done {
		return nil, nil
	}
	rows, err := s.repo.RawPage(ctx, s.playerTag, s.cursor, s.pageSize)
	if err != nil {
		return nil, err
	}
	if len(rows) < s.pageSize {
		s.done = true
	}
	if len(rows) == 0 {
		return nil, nil
	}

	last := rows[len(rows)-1]
	s.cursor = RawCursor{Time: last.Record.Time, Key: last.Key}

	records := make([]battlelog.RawBattleRecord, len(rows))
	for i, row := range rows {
		records[i] = row.Record
	}
	return records, nil
}
