package battlelog

import (
	"time"
)

var baseTime = time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC)

var (
	alice = Participant{Tag: "#2PP", Name: "alice", Brawlers: []BrawlerRef{{ID: 16000000, Name: "SHELLY", Power: 11}}}
	bob   = Participant{Tag: "#8QGV", Name: "bob", Brawlers: []BrawlerRef{{ID: 16000001, Name: "COLT", Power: 9}}}
	cara  = Participant{Tag: "#YPVJR", Name: "cara", Brawlers: []BrawlerRef{{ID: 16000002, Name: "BULL", Power: 10}}}
	dan   = Participant{Tag: "#LQGRJ", Name: "dan", Brawlers: []BrawlerRef{{ID: 16000003, Name: "BROCK", Power: 11}}}
	erin  = Participant{Tag: "#CUV90", Name: "erin", Brawlers: []BrawlerRef{{ID: 16000004, Name: "RICO", Power: 8}}}
	finn  = Participant{Tag: "#0289P", Name: "finn", Brawlers: []BrawlerRef{{ID: 16000005, Name: "SPIKE", Power: 11}}}
	bot1  = Participant{Tag: "#2", Name: "Bot 1", Brawlers: []BrawlerRef{{ID: 16000000, Name: "SHELLY"}}}
	bot2  = Participant{Tag: "#3", Name: "Bot 2", Brawlers: []BrawlerRef{{ID: 16000001, Name: "COLT"}}}

	rosterAB = [][]Participant{{alice, bob, cara}, {dan, erin, finn}}
	rosterCD = [][]Participant{{alice, dan, cara}, {bob, erin, finn}}

	gemMine = EventRef{ID: 15000007, Map: "Hard Rock Mine"}
	ballPit = EventRef{ID: 15000050, Map: "Backyard Bowl"}
)

type recordOpt func(*RawBattleRecord)

// rec builds a record at minute offset i from baseTime.
func rec(i int, mode Mode, class BattleClass, opts ...recordOpt) RawBattleRecord {
	r := RawBattleRecord{
		Time:  baseTime.Add(time.Duration(i) * time.Minute),
		Event: gemMine,
		Mode:  mode,
		Class: class,
	}
	for _, o := range opts {
		o(&r)
	}
	return r
}

func withTeams(t [][]Participant) recordOpt {
	return func(r *RawBattleRecord) { r.Teams = t }
}

func withPlayers(ps ...Participant) recordOpt {
	return func(r *RawBattleRecord) { r.Players = ps }
}

func withStar(p Participant) recordOpt {
	return func(r *RawBattleRecord) { r.StarPlayer = &p }
}

func withResult(res ResultKind) recordOpt {
	return func(r *RawBattleRecord) { r.Result = res }
}

func withSeconds(s int) recordOpt {
	return func(r *RawBattleRecord) {
		d := time.Duration(s) * time.Second
		r.Duration = &d
	}
}

func withRank(n int) recordOpt {
	return func(r *RawBattleRecord) { r.Rank = &n }
}

func withTrophyChange(n int) recordOpt {
	return func(r *RawBattleRecord) { r.TrophyChange = &n }
}

func withEvent(e EventRef) recordOpt {
	return func(r *RawBattleRecord) { r.Event = e }
}

// round is a ranked-candidate record on rosterAB.
func round(i int, class BattleClass, res ResultKind, star *Participant) RawBattleRecord {
	r := rec(i, ModeGemGrab, class, withTeams(rosterAB), withResult(res), withSeconds(90+i))
	r.StarPlayer = star
	return r
}

func ptr[T any](v T) *T {
	return &v
}

// mixedLog covers every shape, including a ranked run left open at the end.
func mixedLog() []RawBattleRecord {
	return []RawBattleRecord{
		rec(0, ModeBrawlBall, ClassTrophies, withTeams(rosterAB), withStar(alice), withResult(ResultVictory), withSeconds(120), withTrophyChange(8)),
		round(1, ClassSoloRanked, ResultVictory, nil),
		round(2, ClassSoloRanked, ResultDefeat, nil),
		round(3, ClassSoloRanked, ResultVictory, &bob),
		rec(4, ModeSoloShowdown, ClassTrophies, withPlayers(alice, bob, bot1), withRank(3), withTrophyChange(2)),
		round(5, ClassFriendly, ResultDefeat, nil),
		round(6, ClassFriendly, ResultDefeat, &dan),
		round(7, ClassFriendly, ResultVictory, &alice),
		rec(8, ModeDuels, ClassTrophies, withPlayers(alice, bob), withResult(ResultVictory), withSeconds(80), withTrophyChange(6)),
		round(9, ClassTrioRanked, ResultVictory, &cara),
		rec(10, ModeDuoShowdown, ClassTrophies, withTeams([][]Participant{{alice, bob}, {cara, dan}}), withRank(1), withTrophyChange(10)),
		round(11, ClassDuoRanked, ResultVictory, nil),
		rec(12, ModeGemGrab, ClassDuoRanked, withTeams(rosterCD), withResult(ResultDefeat), withSeconds(70)),
		rec(13, ModeGemGrab, ClassDuoRanked, withTeams(rosterCD), withResult(ResultNone), withSeconds(40)),
	}
}
