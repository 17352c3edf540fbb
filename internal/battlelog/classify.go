package battlelog

type Category int

const (
	// CategoryShowdownLike records are placement or duel results. Always terminal.
	CategoryShowdownLike Category = iota
	// CategoryRankedCandidate records may be one round of a multi-round match.
	CategoryRankedCandidate
	CategoryPlainTeams
)

func (c Category) String() string {
	switch c {
	case CategoryShowdownLike:
		return "showdown_like"
	case CategoryRankedCandidate:
		return "ranked_candidate"
	case CategoryPlainTeams:
		return "plain_teams"
	}
	return "unknown"
}

type RoundTermination int

const (
	Terminal RoundTermination = iota
	// NonTerminal rounds carry no star player; the match continues in a later record.
	NonTerminal
)

type Classified struct {
	Record      RawBattleRecord
	Category    Category
	Termination RoundTermination
}

// Classify is pure: the same record always yields the same result.
func Classify(r RawBattleRecord) Classified {
	c := Classified{Record: r, Termination: Terminal}

	switch {
	case r.Mode.IsShowdownLike() || r.Rank != nil:
		c.Category = CategoryShowdownLike
	case r.Class.IsExplicitRanked() || r.Class == ClassFriendly:
		c.Category = CategoryRankedCandidate
	case len(r.Teams) == 0 && len(r.Players) > 0:
		// solo-shaped record in a mode we don't know: terminal, like showdown
		c.Category = CategoryShowdownLike
	default:
		c.Category = CategoryPlainTeams
	}

	if c.Category == CategoryRankedCandidate && r.StarPlayer == nil {
		c.Termination = NonTerminal
	}
	return c
}

// compatible reports whether next may extend a run started by first.
func compatible(first, next Classified) bool {
	if next.Category != CategoryRankedCandidate {
		return false
	}
	a, b := first.Record, next.Record
	return a.Event == b.Event && a.Class == b.Class && sameTeams(a.Teams, b.Teams)
}
