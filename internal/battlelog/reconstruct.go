package battlelog

import (
	"context"
	"fmt"
)

// Reconstruct is the batch form of the iterator for an already complete log.
func Reconstruct(records []RawBattleRecord) ([]Battle, error) {
	units := Group(records)
	battles := make([]Battle, 0, len(units))
	for _, u := range units {
		b, err := Build(u)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s battle: %w", u.Shape, err)
		}
		battles = append(battles, b)
	}
	return battles, nil
}

// SliceSource serves an in-memory record list in fixed-size pages.
type SliceSource struct {
	records  []RawBattleRecord
	pageSize int
	offset   int
}

func NewSliceSource(records []RawBattleRecord, pageSize int) *SliceSource {
	if pageSize <= 0 {
		pageSize = len(records)
	}
	return &SliceSource{records: records, pageSize: pageSize}
}

func (s *SliceSource) HasNext() bool {
	return s.offset < len(s.records)
}

func (s *SliceSource) FetchNextPage(ctx context.Context) ([]RawBattleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	end := min(s.offset+s.pageSize, len(s.records))
	page := s.records[s.offset:end]
	s.offset = end
	return page, nil
}
