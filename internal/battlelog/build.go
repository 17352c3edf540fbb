package battlelog

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvariantViolation means the grouping produced a unit that cannot exist.
// It indicates a defect in classification or grouping and is never retried.
var ErrInvariantViolation = errors.New("battle log invariant violation")

// Build turns one closed unit into its typed Battle.
func Build(u Unit) (Battle, error) {
	if len(u.Records) == 0 {
		return Battle{}, fmt.Errorf("%w: empty %s unit", ErrInvariantViolation, u.Shape)
	}

	switch u.Shape {
	case ShapeShowdown:
		if len(u.Records) != 1 {
			return Battle{}, fmt.Errorf("%w: showdown unit with %d records", ErrInvariantViolation, len(u.Records))
		}
		return buildShowdown(u.Records[0])
	case ShapeTeams:
		if len(u.Records) != 1 {
			return Battle{}, fmt.Errorf("%w: teams unit with %d records", ErrInvariantViolation, len(u.Records))
		}
		return buildTeams(u.Records[0])
	case ShapeRanked:
		return buildRanked(u.Records)
	}
	return Battle{}, fmt.Errorf("%w: unknown unit shape %d", ErrInvariantViolation, u.Shape)
}

func header(r RawBattleRecord) Battle {
	return Battle{
		Time:  r.Time,
		Event: r.Event,
		Mode:  r.Mode,
		Class: r.Class,
	}
}

func buildShowdown(r RawBattleRecord) (Battle, error) {
	b := header(r)
	affects := r.Class.AffectsTrophies() && !botsOnly(r.participants())
	change := trophyChange(r, affects)

	switch {
	case len(r.Players) > 0 && r.Mode.IsShowdown() && r.Rank == nil:
		return Battle{}, fmt.Errorf("%w: %s record at %s has no rank", ErrMalformedRecord, r.Mode, r.Time.Format(time.RFC3339))
	// unknown solo-shaped modes without placement are decided by result, like duels
	case len(r.Players) > 0 && (r.Mode.IsDuel() || r.Rank == nil):
		b.Kind = KindDuel
		b.Duel = &DuelBattle{
			Players:         cloneParticipants(r.Players),
			Duration:        cloneDuration(r.Duration),
			Result:          r.Result,
			AffectsTrophies: affects,
			TrophyChange:    change,
		}
	case len(r.Players) > 0:
		b.Kind = KindSoloShowdown
		b.SoloShowdown = &SoloShowdownBattle{
			Players:         cloneParticipants(r.Players),
			Rank:            *r.Rank,
			AffectsTrophies: affects,
			TrophyChange:    change,
		}
	case len(r.Teams) > 0 && r.Rank != nil:
		b.Kind = KindTeamShowdown
		b.TeamShowdown = &TeamShowdownBattle{
			Teams:           cloneTeams(r.Teams),
			Rank:            *r.Rank,
			AffectsTrophies: affects,
			TrophyChange:    change,
		}
	default:
		return Battle{}, fmt.Errorf("%w: %s record at %s has no rank", ErrMalformedRecord, r.Mode, r.Time.Format(time.RFC3339))
	}
	return b, nil
}

func buildTeams(r RawBattleRecord) (Battle, error) {
	if len(r.Teams) == 0 {
		return Battle{}, fmt.Errorf("%w: %s record at %s has no teams", ErrMalformedRecord, r.Mode, r.Time.Format(time.RFC3339))
	}
	change := cloneInt(r.TrophyChange)
	if r.Class.AffectsTrophies() && botsOnly(r.participants()) {
		change = nil
	}
	b := header(r)
	b.Kind = KindTeams
	b.Teams = &TeamsBattle{
		Teams:        cloneTeams(r.Teams),
		StarPlayer:   cloneParticipant(r.StarPlayer),
		Duration:     cloneDuration(r.Duration),
		Result:       r.Result,
		TrophyChange: change,
	}
	return b, nil
}

func buildRanked(records []RawBattleRecord) (Battle, error) {
	first, last := records[0], records[len(records)-1]
	if !first.Class.IsExplicitRanked() && first.Class != ClassFriendly {
		return Battle{}, fmt.Errorf("%w: ranked unit with class %q", ErrInvariantViolation, first.Class)
	}
	if len(first.Teams) == 0 {
		return Battle{}, fmt.Errorf("%w: ranked %s record at %s has no teams", ErrMalformedRecord, first.Mode, first.Time.Format(time.RFC3339))
	}
	for i, r := range records[1:] {
		if r.Event != first.Event || r.Class != first.Class || !sameTeams(r.Teams, first.Teams) {
			return Battle{}, fmt.Errorf("%w: round %d disagrees with round 0 on event, class or teams", ErrInvariantViolation, i+1)
		}
	}

	rounds := make([]Round, len(records))
	for i, r := range records {
		rounds[i] = Round{Result: r.Result, Duration: cloneDuration(r.Duration)}
	}

	b := header(first)
	ranked := &RankedBattle{
		Rounds:     rounds,
		Result:     last.Result,
		StarPlayer: cloneParticipant(last.StarPlayer),
		Teams:      cloneTeams(last.Teams),
	}
	if first.Class == ClassFriendly {
		b.Kind = KindFriendlyRanked
		ranked.Inferred = true
	} else {
		b.Kind = KindRegularRanked
	}
	b.Ranked = ranked
	return b, nil
}

func botsOnly(ps []Participant) bool {
	for _, p := range ps {
		if !p.IsBot() {
			return false
		}
	}
	return true
}

func trophyChange(r RawBattleRecord, affects bool) int {
	if !affects || r.TrophyChange == nil {
		return 0
	}
	return *r.TrophyChange
}

func cloneParticipant(p *Participant) *Participant {
	if p == nil {
		return nil
	}
	c := *p
	c.Brawlers = append([]BrawlerRef(nil), p.Brawlers...)
	return &c
}

func cloneParticipants(ps []Participant) []Participant {
	out := make([]Participant, len(ps))
	for i := range ps {
		out[i] = *cloneParticipant(&ps[i])
	}
	return out
}

func cloneTeams(teams [][]Participant) [][]Participant {
	out := make([][]Participant, len(teams))
	for i, t := range teams {
		out[i] = cloneParticipants(t)
	}
	return out
}

func cloneDuration(d *time.Duration) *time.Duration {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
