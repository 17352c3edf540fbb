package battlelog

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream unavailable")

// flakySource fails the listed fetch attempts (1-based) once each.
type flakySource struct {
	inner   *SliceSource
	failOn  map[int]bool
	fetches int
}

func (f *flakySource) HasNext() bool {
	return f.inner.HasNext()
}

func (f *flakySource) FetchNextPage(ctx context.Context) ([]RawBattleRecord, error) {
	f.fetches++
	if f.failOn[f.fetches] {
		return nil, errUpstream
	}
	return f.inner.FetchNextPage(ctx)
}

func drain(t *testing.T, it *Iterator, pageSize int) []Battle {
	t.Helper()
	var all []Battle
	for it.HasNext() {
		page, err := it.Next(context.Background(), pageSize)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(page), pageSize)
		all = append(all, page...)
	}
	return all
}

// TestIterator_PaginationEquivalence tests every source split and page size yields the batch result
func TestIterator_PaginationEquivalence(t *testing.T) {
	records := mixedLog()
	want, err := Reconstruct(records)
	require.NoError(t, err)

	for sourcePage := 1; sourcePage <= len(records); sourcePage++ {
		for pageSize := 1; pageSize <= 6; pageSize++ {
			it := NewIterator(NewSliceSource(records, sourcePage), zerolog.Nop())
			got := drain(t, it, pageSize)
			require.Equal(t, want, got, "source page %d, page size %d", sourcePage, pageSize)
		}
	}
}

// TestIterator_FullPagesUntilExhausted tests short pages only happen at the end
func TestIterator_FullPagesUntilExhausted(t *testing.T) {
	it := NewIterator(NewSliceSource(mixedLog(), 4), zerolog.Nop())
	ctx := context.Background()

	var sizes []int
	for it.HasNext() {
		page, err := it.Next(ctx, 3)
		require.NoError(t, err)
		sizes = append(sizes, len(page))
	}
	assert.Equal(t, []int{3, 3, 3, 1}, sizes)
}

// TestIterator_RunAcrossPages tests a run straddling a page boundary is held back, not split
func TestIterator_RunAcrossPages(t *testing.T) {
	records := []RawBattleRecord{
		rec(0, ModeBrawlBall, ClassTrophies, withTeams(rosterAB), withStar(alice), withResult(ResultVictory)),
		round(1, ClassSoloRanked, ResultVictory, nil),
		round(2, ClassSoloRanked, ResultVictory, nil),
		round(3, ClassSoloRanked, ResultDefeat, &dan),
	}
	it := NewIterator(NewSliceSource(records, 2), zerolog.Nop())
	ctx := context.Background()

	first, err := it.Next(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, KindTeams, first[0].Kind)
	assert.True(t, it.HasNext())

	second, err := it.Next(ctx, 1)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, KindRegularRanked, second[0].Kind)
	assert.Len(t, second[0].Ranked.Rounds, 3)
	assert.False(t, it.HasNext())
}

// TestIterator_RetryAfterFetchError tests a failed fetch keeps carry-over state
func TestIterator_RetryAfterFetchError(t *testing.T) {
	records := []RawBattleRecord{
		rec(0, ModeBrawlBall, ClassTrophies, withTeams(rosterAB), withStar(alice), withResult(ResultVictory)),
		round(1, ClassTrioRanked, ResultVictory, nil),
		round(2, ClassTrioRanked, ResultVictory, &erin),
	}
	src := &flakySource{inner: NewSliceSource(records, 2), failOn: map[int]bool{2: true}}
	it := NewIterator(src, zerolog.Nop())
	ctx := context.Background()

	_, err := it.Next(ctx, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, errUpstream)
	assert.True(t, it.HasNext())

	page, err := it.Next(ctx, 5)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, KindTeams, page[0].Kind)
	assert.Equal(t, KindRegularRanked, page[1].Kind)
	assert.Len(t, page[1].Ranked.Rounds, 2)
	assert.False(t, it.HasNext())
	assert.Equal(t, 3, src.fetches)
}

func TestIterator_RetryMatchesBatch(t *testing.T) {
	records := mixedLog()
	want, err := Reconstruct(records)
	require.NoError(t, err)

	src := &flakySource{inner: NewSliceSource(records, 3), failOn: map[int]bool{1: true, 3: true, 4: true}}
	it := NewIterator(src, zerolog.Nop())
	ctx := context.Background()

	var got []Battle
	for it.HasNext() {
		page, err := it.Next(ctx, 2)
		if err != nil {
			require.ErrorIs(t, err, errUpstream)
			continue
		}
		got = append(got, page...)
	}
	assert.Equal(t, want, got)
}

func TestIterator_ForceFlushOnce(t *testing.T) {
	records := []RawBattleRecord{
		round(0, ClassSoloRanked, ResultVictory, nil),
		round(1, ClassSoloRanked, ResultNone, nil),
	}
	it := NewIterator(NewSliceSource(records, 1), zerolog.Nop())
	ctx := context.Background()

	page, err := it.Next(ctx, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.False(t, page[0].Ranked.IsFinished())

	assert.False(t, it.HasNext())
	page, err = it.Next(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestIterator_EmptySource(t *testing.T) {
	it := NewIterator(NewSliceSource(nil, 5), zerolog.Nop())
	assert.False(t, it.HasNext())
	page, err := it.Next(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestIterator_ReverseIsUsageError(t *testing.T) {
	it := NewIterator(NewSliceSource(mixedLog(), 5), zerolog.Nop())
	_, err := it.Previous(context.Background(), 5)
	assert.ErrorIs(t, err, ErrReverseIteration)
}

func TestIterator_RejectsNonPositivePageSize(t *testing.T) {
	it := NewIterator(NewSliceSource(mixedLog(), 5), zerolog.Nop())
	_, err := it.Next(context.Background(), 0)
	assert.Error(t, err)
	assert.True(t, it.HasNext(), "a bad argument does not poison the iterator")
}

// TestIterator_BuildErrorPoisons tests a build failure aborts the iterator for good
func TestIterator_BuildErrorPoisons(t *testing.T) {
	records := []RawBattleRecord{
		rec(0, ModeBrawlBall, ClassTrophies, withTeams(rosterAB), withStar(alice)),
		// friendly team mode without teams: classified as a candidate, fails to build
		rec(1, ModeGemGrab, ClassFriendly, withPlayers(alice, bob), withStar(alice)),
		rec(2, ModeBrawlBall, ClassTrophies, withTeams(rosterAB), withStar(bob)),
	}
	it := NewIterator(NewSliceSource(records, 5), zerolog.Nop())
	ctx := context.Background()

	_, err := it.Next(ctx, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.False(t, it.HasNext())

	_, again := it.Next(ctx, 5)
	assert.Equal(t, err, again)
}

func TestIterator_CanceledContext(t *testing.T) {
	it := NewIterator(NewSliceSource(mixedLog(), 5), zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := it.Next(ctx, 3)
	assert.ErrorIs(t, err, context.Canceled)

	page, err := it.Next(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, page, 3)
}
