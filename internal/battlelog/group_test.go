package battlelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shapes(units []Unit) []Shape {
	out := make([]Shape, len(units))
	for i, u := range units {
		out[i] = u.Shape
	}
	return out
}

// TestGroup_RankedRun tests that N-1 open rounds followed by a terminal round form one unit
func TestGroup_RankedRun(t *testing.T) {
	for n := 1; n <= 5; n++ {
		var records []RawBattleRecord
		for i := 0; i < n-1; i++ {
			records = append(records, round(i, ClassSoloRanked, ResultVictory, nil))
		}
		records = append(records, round(n-1, ClassSoloRanked, ResultDefeat, &alice))

		units := Group(records)
		require.Len(t, units, 1, "n=%d", n)
		assert.Equal(t, ShapeRanked, units[0].Shape)
		assert.Equal(t, records, units[0].Records)
	}
}

func TestStep_TransitionsAreValues(t *testing.T) {
	s0 := State{}
	s1, units := Step(s0, Classify(round(0, ClassSoloRanked, ResultVictory, nil)))
	assert.Empty(t, units)
	assert.True(t, s1.Accumulating())
	assert.False(t, s0.Accumulating())

	s2, units := Step(s1, Classify(round(1, ClassSoloRanked, ResultVictory, nil)))
	assert.Empty(t, units)
	assert.Equal(t, 2, s2.Open())
	assert.Equal(t, 1, s1.Open(), "stepping must not mutate the previous state")

	s3, units := Step(s2, Classify(round(2, ClassSoloRanked, ResultVictory, &bob)))
	require.Len(t, units, 1)
	assert.Len(t, units[0].Records, 3)
	assert.False(t, s3.Accumulating())
}

// TestGroup_NonMergeOnTeams tests adjacent runs with different rosters stay apart
func TestGroup_NonMergeOnTeams(t *testing.T) {
	records := []RawBattleRecord{
		round(0, ClassTrioRanked, ResultVictory, nil),
		rec(1, ModeGemGrab, ClassTrioRanked, withTeams(rosterCD), withResult(ResultVictory), withStar(alice)),
	}
	units := Group(records)
	require.Len(t, units, 2)
	assert.Equal(t, []Shape{ShapeRanked, ShapeRanked}, shapes(units))
	assert.Len(t, units[0].Records, 1)
	assert.Len(t, units[1].Records, 1)
}

func TestGroup_NonMergeOnEventAndClass(t *testing.T) {
	records := []RawBattleRecord{
		round(0, ClassFriendly, ResultVictory, nil),
		rec(1, ModeGemGrab, ClassFriendly, withTeams(rosterAB), withEvent(ballPit), withStar(alice)),
		round(2, ClassSoloRanked, ResultVictory, nil),
		round(3, ClassDuoRanked, ResultVictory, &alice),
	}
	units := Group(records)
	// lone friendlies downgrade, lone explicit ranked rounds stay ranked
	assert.Equal(t, []Shape{ShapeTeams, ShapeTeams, ShapeRanked, ShapeRanked}, shapes(units))
}

// TestGroup_SingletonDowngrade tests a lone friendly record is a plain teams battle
func TestGroup_SingletonDowngrade(t *testing.T) {
	terminal := Group([]RawBattleRecord{round(0, ClassFriendly, ResultVictory, &alice)})
	require.Len(t, terminal, 1)
	assert.Equal(t, ShapeTeams, terminal[0].Shape)

	open := Group([]RawBattleRecord{round(0, ClassFriendly, ResultVictory, nil)})
	require.Len(t, open, 1)
	assert.Equal(t, ShapeTeams, open[0].Shape)

	explicit := Group([]RawBattleRecord{round(0, ClassSoloRanked, ResultVictory, &alice)})
	require.Len(t, explicit, 1)
	assert.Equal(t, ShapeRanked, explicit[0].Shape)
}

// TestStep_IncompatibleIsReevaluated tests the breaking record is not dropped
func TestStep_IncompatibleIsReevaluated(t *testing.T) {
	s, _ := Step(State{}, Classify(round(0, ClassSoloRanked, ResultVictory, nil)))
	sd := rec(1, ModeSoloShowdown, ClassTrophies, withPlayers(alice, bob), withRank(1))

	s, units := Step(s, Classify(sd))
	require.Len(t, units, 2)
	assert.Equal(t, ShapeRanked, units[0].Shape)
	assert.Equal(t, ShapeShowdown, units[1].Shape)
	assert.Equal(t, sd, units[1].Records[0])
	assert.False(t, s.Accumulating())

	// the breaking record may itself open a new run
	s, _ = Step(State{}, Classify(round(0, ClassSoloRanked, ResultVictory, nil)))
	next := rec(1, ModeGemGrab, ClassSoloRanked, withTeams(rosterCD))
	s, units = Step(s, Classify(next))
	require.Len(t, units, 1)
	assert.True(t, s.Accumulating())
	assert.Equal(t, 1, s.Open())
}

func TestFlush(t *testing.T) {
	s, units := Flush(State{})
	assert.Empty(t, units)
	assert.False(t, s.Accumulating())

	open, _ := Step(State{}, Classify(round(0, ClassSoloRanked, ResultVictory, nil)))
	open, _ = Step(open, Classify(round(1, ClassSoloRanked, ResultNone, nil)))
	s, units = Flush(open)
	require.Len(t, units, 1)
	assert.Equal(t, ShapeRanked, units[0].Shape)
	assert.Len(t, units[0].Records, 2)
	assert.False(t, s.Accumulating())
}

// TestGroup_Conservation tests every record lands in exactly one unit, in order
func TestGroup_Conservation(t *testing.T) {
	records := mixedLog()
	units := Group(records)

	var flat []RawBattleRecord
	for _, u := range units {
		flat = append(flat, u.Records...)
	}
	assert.Equal(t, records, flat)

	assert.Equal(t, []Shape{
		ShapeTeams,
		ShapeRanked,
		ShapeShowdown,
		ShapeRanked,
		ShapeTeams,
		ShapeShowdown,
		ShapeRanked,
		ShapeShowdown,
		ShapeRanked,
		ShapeRanked,
	}, shapes(units))
}
