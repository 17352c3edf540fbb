package api

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type PagingInfo struct {
	Cursors Cursors `json:"cursors"`
}

type Icon struct {
	ID int64 `json:"id"`
}

type ClubRef struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
}

type Accessory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type PlayerBrawler struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	Power           int         `json:"power"`
	Rank            int         `json:"rank"`
	Trophies        int         `json:"trophies"`
	HighestTrophies int         `json:"highestTrophies"`
	Gears           []Accessory `json:"gears"`
	StarPowers      []Accessory `json:"starPowers"`
	Gadgets         []Accessory `json:"gadgets"`
}

type PlayerResponse struct {
	Tag                  string          `json:"tag"`
	Name                 string          `json:"name"`
	NameColor            string          `json:"nameColor"`
	Icon                 Icon            `json:"icon"`
	Trophies             int             `json:"trophies"`
	HighestTrophies      int             `json:"highestTrophies"`
	ExpLevel             int             `json:"expLevel"`
	ExpPoints            int             `json:"expPoints"`
	TrioVictories        int             `json:"3vs3Victories"`
	SoloVictories        int             `json:"soloVictories"`
	DuoVictories         int             `json:"duoVictories"`
	BestRoboRumbleTime   int             `json:"bestRoboRumbleTime"`
	BestTimeAsBigBrawler int             `json:"bestTimeAsBigBrawler"`
	Club                 *ClubRef        `json:"club"`
	Brawlers             []PlayerBrawler `json:"brawlers"`
}

type ClubMember struct {
	Tag       string `json:"tag"`
	Name      string `json:"name"`
	NameColor string `json:"nameColor"`
	Role      string `json:"role"`
	Trophies  int    `json:"trophies"`
	Icon      Icon   `json:"icon"`
}

type ClubResponse struct {
	Tag              string       `json:"tag"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	Type             string       `json:"type"`
	BadgeID          int64        `json:"badgeId"`
	RequiredTrophies int          `json:"requiredTrophies"`
	Trophies         int          `json:"trophies"`
	Members          []ClubMember `json:"members"`
}

type ClubMembersResponse struct {
	Items  []ClubMember `json:"items"`
	Paging PagingInfo   `json:"paging"`
}

type PlayerRanking struct {
	Tag       string   `json:"tag"`
	Name      string   `json:"name"`
	NameColor string   `json:"nameColor"`
	Icon      Icon     `json:"icon"`
	Trophies  int      `json:"trophies"`
	Rank      int      `json:"rank"`
	Club      *ClubRef `json:"club"`
}

type PlayerRankingsResponse struct {
	Items  []PlayerRanking `json:"items"`
	Paging PagingInfo      `json:"paging"`
}

type ClubRanking struct {
	Tag         string `json:"tag"`
	Name        string `json:"name"`
	BadgeID     int64  `json:"badgeId"`
	Trophies    int    `json:"trophies"`
	Rank        int    `json:"rank"`
	MemberCount int    `json:"memberCount"`
}

type ClubRankingsResponse struct {
	Items  []ClubRanking `json:"items"`
	Paging PagingInfo    `json:"paging"`
}

type Brawler struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	StarPowers []Accessory `json:"starPowers"`
	Gadgets    []Accessory `json:"gadgets"`
}

type BrawlersResponse struct {
	Items  []Brawler  `json:"items"`
	Paging PagingInfo `json:"paging"`
}

type Event struct {
	ID     int64  `json:"id"`
	Mode   string `json:"mode"`
	ModeID int64  `json:"modeId"`
	Map    string `json:"map"`
}

type ScheduledEvent struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	SlotID    int    `json:"slotId"`
	Event     Event  `json:"event"`
}

type BattleBrawler struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Power    int    `json:"power"`
	Trophies int    `json:"trophies"`
}

// BattlePlayer carries a single brawler, except in duels where it carries the
// whole lineup in Brawlers.
type BattlePlayer struct {
	Tag      string          `json:"tag"`
	Name     string          `json:"name"`
	Brawler  *BattleBrawler  `json:"brawler"`
	Brawlers []BattleBrawler `json:"brawlers"`
}

type Battle struct {
	Mode         string           `json:"mode"`
	Type         string           `json:"type"`
	Result       string           `json:"result"`
	Duration     *int             `json:"duration"`
	Rank         *int             `json:"rank"`
	TrophyChange *int             `json:"trophyChange"`
	StarPlayer   *BattlePlayer    `json:"starPlayer"`
	Teams        [][]BattlePlayer `json:"teams"`
	Players      []BattlePlayer   `json:"players"`
}

type BattleLogItem struct {
	BattleTime string `json:"battleTime"`
	Event      Event  `json:"event"`
	Battle     Battle `json:"battle"`
}

type BattleLogResponse struct {
	Items  []BattleLogItem `json:"items"`
	Paging PagingInfo      `json:"paging"`
}
