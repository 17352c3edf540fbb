package battlelog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var ErrReverseIteration = errors.New("battle iterator only moves forward")

// PageSource is a forward-only paged feed of raw records. An empty page means
// the source is exhausted.
type PageSource interface {
	HasNext() bool
	FetchNextPage(ctx context.Context) ([]RawBattleRecord, error)
}

// Iterator reconstructs battles from a PageSource, fetching extra pages when a
// ranked run is still open at the end of the loaded records. It is not safe for
// concurrent use.
type Iterator struct {
	source PageSource
	logger zerolog.Logger

	pending   []RawBattleRecord
	state     State
	ready     []Battle
	exhausted bool
	flushed   bool
	err       error
}

func NewIterator(source PageSource, logger zerolog.Logger) *Iterator {
	return &Iterator{source: source, logger: logger}
}

// HasNext reports whether another call to Next can yield battles.
func (it *Iterator) HasNext() bool {
	if it.err != nil {
		return false
	}
	if len(it.ready) > 0 || len(it.pending) > 0 || it.state.Accumulating() {
		return true
	}
	return !it.exhausted && it.source.HasNext()
}

// Next returns up to pageSize battles. It returns fewer only when the source is
// exhausted. A fetch error leaves every buffer untouched so the call can be
// retried; an invariant violation poisons the iterator.
func (it *Iterator) Next(ctx context.Context, pageSize int) ([]Battle, error) {
	if it.err != nil {
		return nil, it.err
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	out := it.take(pageSize)
	for len(out) < pageSize {
		if len(it.pending) > 0 {
			next := it.pending[0]
			it.pending = it.pending[1:]

			var units []Unit
			it.state, units = Step(it.state, Classify(next))
			battles, err := it.build(units)
			if err != nil {
				return nil, err
			}
			out = append(out, battles...)
			continue
		}

		if it.exhausted || !it.source.HasNext() {
			it.exhausted = true
			if !it.flushed {
				it.flushed = true
				var units []Unit
				open := it.state.Open()
				it.state, units = Flush(it.state)
				if open > 0 {
					it.logger.Debug().Int("rounds", open).Msg("force-flushing open run at end of battle log")
				}
				battles, err := it.build(units)
				if err != nil {
					return nil, err
				}
				out = append(out, battles...)
			}
			break
		}

		page, err := it.source.FetchNextPage(ctx)
		if err != nil {
			// keep what was built this call for the retry
			it.ready = append(out, it.ready...)
			it.logger.Warn().Err(err).Int("carried", len(it.ready)).Int("open_rounds", it.state.Open()).Msg("failed to fetch battle log page")
			return nil, fmt.Errorf("failed to fetch battle log page: %w", err)
		}
		if len(page) == 0 {
			it.exhausted = true
			continue
		}
		it.logger.Debug().Int("records", len(page)).Int("open_rounds", it.state.Open()).Msg("fetched battle log page")
		it.pending = append(it.pending, page...)
	}

	if len(out) > pageSize {
		it.ready = append(out[pageSize:len(out):len(out)], it.ready...)
		out = out[:pageSize:pageSize]
	}
	return out, nil
}

// Previous always fails; reconstruction consumes its source.
func (it *Iterator) Previous(context.Context, int) ([]Battle, error) {
	return nil, ErrReverseIteration
}

func (it *Iterator) take(n int) []Battle {
	if len(it.ready) == 0 {
		return make([]Battle, 0, n)
	}
	k := min(n, len(it.ready))
	out := make([]Battle, k, n)
	copy(out, it.ready[:k])
	it.ready = it.ready[k:]
	return out
}

func (it *Iterator) build(units []Unit) ([]Battle, error) {
	battles := make([]Battle, 0, len(units))
	for _, u := range units {
		b, err := Build(u)
		if err != nil {
			it.err = fmt.Errorf("failed to build %s battle: %w", u.Shape, err)
			it.logger.Error().Err(err).Str("shape", u.Shape.String()).Int("records", len(u.Records)).Msg("battle reconstruction aborted")
			return nil, it.err
		}
		battles = append(battles, b)
	}
	return battles, nil
}
