package domain

import (
	"time"

	"brawl-tracker/internal/battlelog"
)

type Player struct {
	Tag             string
	Name            string
	NameColor       string
	IconID          int64
	Trophies        int
	HighestTrophies int
	ExpLevel        int
	TrioVictories   int
	SoloVictories   int
	DuoVictories    int
	ClubTag         string
	ClubName        string
	IsPartialFetch  bool
	LastFetchAt     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Club struct {
	Tag              string
	Name             string
	Description      string
	Type             string // "open", "inviteOnly", "closed"
	BadgeID          int64
	RequiredTrophies int
	Trophies         int
	LastFetchAt      time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type ClubMember struct {
	ClubTag   string
	PlayerTag string
	Name      string
	Role      string // "member", "senior", "vicePresident", "president"
	Trophies  int
}

// RawBattle is one battle log entry as stored, keyed by player, time and event.
type RawBattle struct {
	Key       string
	PlayerTag string
	Record    battlelog.RawBattleRecord
	CreatedAt time.Time
}

// StoredBattle is the persisted summary of a reconstructed battle. Detail
// holds the full battle so it can be served without re-running reconstruction.
type StoredBattle struct {
	ID           string // nanoid
	PlayerTag    string
	Kind         string
	Mode         string
	Class        string
	EventID      int64
	Map          string
	StartedAt    time.Time
	Result       string
	TrophyChange *int
	Rank         *int
	StarTag      string
	Duration     time.Duration
	Rounds       []StoredRound
	Detail       battlelog.Battle
	CreatedAt    time.Time
}

type StoredRound struct {
	Index    int
	Result   string
	Duration time.Duration
}

type RankingEntry struct {
	Rank        int
	Tag         string
	Name        string
	Trophies    int
	ClubName    string
	MemberCount int
}

type RotationEvent struct {
	SlotID      int
	StartTime   time.Time
	EndTime     time.Time
	EventID     int64
	Mode        string
	Map         string
	ModeName    string
	Environment string
}
