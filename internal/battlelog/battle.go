package battlelog

import "time"

type Kind int

const (
	KindTeams Kind = iota
	KindSoloShowdown
	KindTeamShowdown
	KindDuel
	KindRegularRanked
	KindFriendlyRanked
)

func (k Kind) String() string {
	switch k {
	case KindTeams:
		return "teams"
	case KindSoloShowdown:
		return "solo_showdown"
	case KindTeamShowdown:
		return "team_showdown"
	case KindDuel:
		return "duel"
	case KindRegularRanked:
		return "regular_ranked"
	case KindFriendlyRanked:
		return "friendly_ranked"
	}
	return "unknown"
}

// Battle is a reconstructed match. Kind selects which payload pointer is set;
// exactly one of them is non-nil.
type Battle struct {
	Kind  Kind
	Time  time.Time
	Event EventRef
	Mode  Mode
	Class BattleClass

	Teams        *TeamsBattle
	SoloShowdown *SoloShowdownBattle
	TeamShowdown *TeamShowdownBattle
	Duel         *DuelBattle
	Ranked       *RankedBattle
}

// Records returns how many raw records were folded into the battle.
func (b Battle) Records() int {
	if b.Ranked != nil {
		return len(b.Ranked.Rounds)
	}
	return 1
}

type TeamsBattle struct {
	Teams        [][]Participant
	StarPlayer   *Participant
	Duration     *time.Duration
	Result       ResultKind
	TrophyChange *int
}

type SoloShowdownBattle struct {
	Players         []Participant
	Rank            int
	AffectsTrophies bool
	TrophyChange    int
}

type TeamShowdownBattle struct {
	Teams           [][]Participant
	Rank            int
	AffectsTrophies bool
	TrophyChange    int
}

type DuelBattle struct {
	Players         []Participant
	Duration        *time.Duration
	Result          ResultKind
	AffectsTrophies bool
	TrophyChange    int
}

type Round struct {
	Result   ResultKind
	Duration *time.Duration
}

// RankedBattle is a multi-round match. Inferred is set when the grouping came
// from friendly games rather than an explicit ranked class.
type RankedBattle struct {
	Rounds     []Round
	Result     ResultKind
	StarPlayer *Participant
	Teams      [][]Participant
	Inferred   bool
}

// IsFinished is false for runs that were force-flushed before a final result.
func (r *RankedBattle) IsFinished() bool {
	return r.Result.Known()
}

func (r *RankedBattle) TotalDuration() time.Duration {
	var total time.Duration
	for _, round := range r.Rounds {
		if round.Duration != nil {
			total += *round.Duration
		}
	}
	return total
}
