package battlelog

type Shape int

const (
	ShapeShowdown Shape = iota
	ShapeTeams
	ShapeRanked
)

func (s Shape) String() string {
	switch s {
	case ShapeShowdown:
		return "showdown"
	case ShapeTeams:
		return "teams"
	case ShapeRanked:
		return "ranked"
	}
	return "unknown"
}

// Unit is a closed group of records that becomes exactly one Battle.
type Unit struct {
	Shape   Shape
	Records []RawBattleRecord
}

// State is either Idle (no open run) or Accumulating rounds of one ranked match.
// The zero value is Idle. States are values: Step never mutates its input.
type State struct {
	run []Classified
}

func (s State) Accumulating() bool {
	return len(s.run) > 0
}

// Open returns the number of buffered rounds.
func (s State) Open() int {
	return len(s.run)
}

// Step feeds one classified record into the state machine and returns the
// next state with any units closed by it, in input order.
func Step(s State, next Classified) (State, []Unit) {
	var out []Unit

	if s.Accumulating() {
		if compatible(s.run[0], next) {
			run := make([]Classified, len(s.run), len(s.run)+1)
			copy(run, s.run)
			run = append(run, next)
			if next.Termination == NonTerminal {
				return State{run: run}, nil
			}
			return State{}, []Unit{closeRun(run)}
		}
		out = append(out, closeRun(s.run))
	}

	switch next.Category {
	case CategoryRankedCandidate:
		run := []Classified{next}
		if next.Termination == Terminal {
			return State{}, append(out, closeRun(run))
		}
		return State{run: run}, out
	case CategoryShowdownLike:
		return State{}, append(out, Unit{Shape: ShapeShowdown, Records: []RawBattleRecord{next.Record}})
	default:
		return State{}, append(out, Unit{Shape: ShapeTeams, Records: []RawBattleRecord{next.Record}})
	}
}

// Flush closes an open run at end of stream. Idle states flush to nothing.
func Flush(s State) (State, []Unit) {
	if !s.Accumulating() {
		return State{}, nil
	}
	return State{}, []Unit{closeRun(s.run)}
}

func closeRun(run []Classified) Unit {
	records := make([]RawBattleRecord, len(run))
	for i, c := range run {
		records[i] = c.Record
	}
	if len(run) > 1 || run[0].Record.Class.IsExplicitRanked() {
		return Unit{Shape: ShapeRanked, Records: records}
	}
	// a lone friendly game is not assumed to be a ranked fragment
	return Unit{Shape: ShapeTeams, Records: records}
}

// Group runs the whole state machine over records, flushing at the end.
func Group(records []RawBattleRecord) []Unit {
	var (
		state State
		units []Unit
		out   []Unit
	)
	for _, r := range records {
		state, units = Step(state, Classify(r))
		out = append(out, units...)
	}
	_, units = Flush(state)
	return append(out, units...)
}
