package api

import (
	"context"
	"fmt"
	"time"

	"brawl-tracker/internal/battlelog"
	"brawl-tracker/internal/tag"

	"github.com/rs/zerolog"
)

const BattleTimeLayout = "20060102T150405.000Z"

func ParseBattleTime(s string) (time.Time, error) {
	return time.Parse(BattleTimeLayout, s)
}

// ToRecord converts one battle log entry into the record the reconstruction
// engine consumes. The record is validated before it is returned.
func (item BattleLogItem) ToRecord() (battlelog.RawBattleRecord, error) {
	at, err := ParseBattleTime(item.BattleTime)
	if err != nil {
		return battlelog.RawBattleRecord{}, fmt.Errorf("invalid battle time %q: %w", item.BattleTime, err)
	}

	b := item.Battle
	mode := b.Mode
	if mode == "" {
		mode = item.Event.Mode
	}

	r := battlelog.RawBattleRecord{
		Time:         at,
		Event:        battlelog.EventRef{ID: item.Event.ID, Map: item.Event.Map},
		Mode:         battlelog.Mode(mode),
		Result:       battlelog.ResultKind(b.Result),
		Class:        battlelog.BattleClass(b.Type),
		Rank:         b.Rank,
		TrophyChange: b.TrophyChange,
	}
	if b.Duration != nil {
		d := time.Duration(*b.Duration) * time.Second
		r.Duration = &d
	}
	if b.StarPlayer != nil {
		p := toParticipant(*b.StarPlayer)
		r.StarPlayer = &p
	}
	for _, team := range b.Teams {
		members := make([]battlelog.Participant, len(team))
		for i, p := range team {
			members[i] = toParticipant(p)
		}
		r.Teams = append(r.Teams, members)
	}
	for _, p := range b.Players {
		r.Players = append(r.Players, toParticipant(p))
	}

	if err := r.Validate(); err != nil {
		return battlelog.RawBattleRecord{}, err
	}
	return r, nil
}

func toParticipant(p BattlePlayer) battlelog.Participant {
	out := battlelog.Participant{Tag: p.Tag, Name: p.Name}
	if p.Brawler != nil {
		out.Brawlers = []battlelog.BrawlerRef{toBrawlerRef(*p.Brawler)}
	}
	for _, b := range p.Brawlers {
		out.Brawlers = append(out.Brawlers, toBrawlerRef(b))
	}
	return out
}

func toBrawlerRef(b BattleBrawler) battlelog.BrawlerRef {
	return battlelog.BrawlerRef{ID: b.ID, Name: b.Name, Power: b.Power, Trophies: b.Trophies}
}

// ToRecords converts a page, dropping entries that fail validation.
func ToRecords(items []BattleLogItem, logger zerolog.Logger) []battlelog.RawBattleRecord {
	records := make([]battlelog.RawBattleRecord, 0, len(items))
	for _, item := range items {
		r, err := item.ToRecord()
		if err != nil {
			logger.Warn().Err(err).Str("battle_time", item.BattleTime).Str("mode", item.Battle.Mode).Msg("skipping invalid battle log entry")
			continue
		}
		records = append(records, r)
	}
	return records
}

// BattleLogSource pages through a player's battle log on the game API,
// following the after cursor until the API stops returning one.
type BattleLogSource struct {
	client   *Client
	tag      tag.Tag
	pageSize int
	after    string
	done     bool
	logger   zerolog.Logger
}

func NewBattleLogSource(client *Client, t tag.Tag, pageSize int, logger zerolog.Logger) *BattleLogSource {
	return &BattleLogSource{client: client, tag: t, pageSize: pageSize, logger: logger}
}

func (s *BattleLogSource) HasNext() bool {
	return !s.done
}

// FetchNextPage skips pages whose entries were all invalid, since an empty page
// tells the iterator the log is exhausted.
func (s *BattleLogSource) FetchNextPage(ctx context.Context) ([]battlelog.RawBattleRecord, error) {
	for !s.done {
		resp, err := s.client.GetBattleLog(ctx, s.tag, Paging{Limit: s.pageSize, After: s.after})
		if err != nil {
			return nil, err
		}

		s.after = resp.Paging.Cursors.After
		if s.after == "" || len(resp.Items) == 0 {
			s.done = true
		}
		if records := ToRecords(resp.Items, s.logger); len(records) > 0 {
			return records, nil
		}
	}
	return nil, nil
}
