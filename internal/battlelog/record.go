package battlelog

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"brawl-tracker/internal/tag"
)

var ErrMalformedRecord = errors.New("malformed battle record")

type Mode string

const (
	ModeGemGrab       Mode = "gemGrab"
	ModeBrawlBall     Mode = "brawlBall"
	ModeHeist         Mode = "heist"
	ModeBounty        Mode = "bounty"
	ModeSiege         Mode = "siege"
	ModeHotZone       Mode = "hotZone"
	ModeKnockout      Mode = "knockout"
	ModeWipeout       Mode = "wipeout"
	ModePayload       Mode = "payload"
	ModeBasketBrawl   Mode = "basketBrawl"
	ModeVolleyBrawl   Mode = "volleyBrawl"
	ModePaintBrawl    Mode = "paintBrawl"
	ModeHoldTheTrophy Mode = "holdTheTrophy"
	ModeTrophyThieves Mode = "trophyThieves"
	ModeBigGame       Mode = "bigGame"
	ModeBossFight     Mode = "bossFight"
	ModeRoboRumble    Mode = "roboRumble"
	ModeSoloShowdown  Mode = "soloShowdown"
	ModeDuoShowdown   Mode = "duoShowdown"
	ModeTrioShowdown  Mode = "trioShowdown"
	ModeDuels         Mode = "duels"
)

// IsShowdown reports battle-royale modes, which are ranked by placement.
func (m Mode) IsShowdown() bool {
	switch m {
	case ModeSoloShowdown, ModeDuoShowdown, ModeTrioShowdown:
		return true
	}
	return false
}

func (m Mode) IsDuel() bool {
	return m == ModeDuels
}

// IsShowdownLike covers every mode whose records are always terminal and never
// part of a multi-round match.
func (m Mode) IsShowdownLike() bool {
	return m.IsShowdown() || m.IsDuel()
}

type BattleClass string

const (
	ClassTrophies   BattleClass = "ranked"
	ClassSoloRanked BattleClass = "soloRanked"
	ClassDuoRanked  BattleClass = "duoRanked"
	ClassTrioRanked BattleClass = "teamRanked"
	ClassFriendly   BattleClass = "friendly"
)

// IsExplicitRanked reports the competitive ranked classes; "ranked" on the
// wire means trophy play and is not one of them.
func (c BattleClass) IsExplicitRanked() bool {
	switch c {
	case ClassSoloRanked, ClassDuoRanked, ClassTrioRanked:
		return true
	}
	return false
}

func (c BattleClass) AffectsTrophies() bool {
	return c == ClassTrophies
}

type ResultKind string

const (
	ResultNone    ResultKind = ""
	ResultVictory ResultKind = "victory"
	ResultDefeat  ResultKind = "defeat"
	ResultDraw    ResultKind = "draw"
)

func (r ResultKind) Known() bool {
	return r != ResultNone
}

// EventRef identifies the event slot (map + mode rotation entry) a battle was
// played in. Friendly games on custom maps carry a zero ID.
type EventRef struct {
	ID  int64
	Map string
}

type BrawlerRef struct {
	ID       int64
	Name     string
	Power    int
	Trophies int
}

type Participant struct {
	Tag      string
	Name     string
	Brawlers []BrawlerRef
}

func (p Participant) IsBot() bool {
	return tag.IsBot(p.Tag)
}

func (p Participant) equal(o Participant) bool {
	return p.Tag == o.Tag && slices.EqualFunc(p.Brawlers, o.Brawlers, func(a, b BrawlerRef) bool {
		return a.ID == b.ID
	})
}

type RawBattleRecord struct {
	Time         time.Time
	Event        EventRef
	Mode         Mode
	Duration     *time.Duration
	Result       ResultKind
	Class        BattleClass
	Rank         *int
	TrophyChange *int
	StarPlayer   *Participant
	Teams        [][]Participant
	Players      []Participant
}

func (r RawBattleRecord) Validate() error {
	hasTeams, hasPlayers := len(r.Teams) > 0, len(r.Players) > 0
	switch {
	case hasTeams && hasPlayers:
		return fmt.Errorf("%w: record at %s has both teams and players", ErrMalformedRecord, r.Time.Format(time.RFC3339))
	case !hasTeams && !hasPlayers:
		return fmt.Errorf("%w: record at %s has no participants", ErrMalformedRecord, r.Time.Format(time.RFC3339))
	}
	if r.Mode.IsShowdown() && r.Rank == nil {
		return fmt.Errorf("%w: %s record at %s has no rank", ErrMalformedRecord, r.Mode, r.Time.Format(time.RFC3339))
	}
	switch r.Result {
	case ResultNone, ResultVictory, ResultDefeat, ResultDraw:
	default:
		return fmt.Errorf("%w: unknown result %q", ErrMalformedRecord, r.Result)
	}
	return nil
}

func sameTeams(a, b [][]Participant) bool {
	return slices.EqualFunc(a, b, func(x, y []Participant) bool {
		return slices.EqualFunc(x, y, Participant.equal)
	})
}

// participants flattens the roster regardless of record shape.
func (r RawBattleRecord) participants() []Participant {
	if len(r.Players) > 0 {
		return r.Players
	}
	var out []Participant
	for _, team := range r.Teams {
		out = append(out, team...)
	}
	return out
}
