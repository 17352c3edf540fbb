package constants

import "time"

const (
	PlayerRefreshTTL = 5 * time.Minute
	ClubRefreshTTL   = 10 * time.Minute
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	// procedures slower than this are logged
	SlowRequestThreshold = 2 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	SearchSuggestionLimit = 10
	// candidates pulled from the database before fuzzy ranking
	SearchCandidateLimit = 200
)

const (
	DefaultBattlePageSize = 10
	MaxBattlePageSize     = 50
	// rows read from raw_battles per underlying page
	StoredRecordPageSize = 25
	CursorSweepInterval  = time.Minute
)

const (
	// the game API keeps roughly the last 25 battles per player
	BattleLogLimit = 25
	// expected stored raw battles across all tracked players, for the sync dedupe filter
	SeenBattleEstimate = 500000
	SeenBattleFPRate   = 0.001
)

const (
	DefaultRankingLimit = 200
)
