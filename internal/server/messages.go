package server

import (
	"time"

	"brawl-tracker/internal/battlelog"
	"brawl-tracker/internal/domain"
	"brawl-tracker/internal/repository"
)

type PlayerRequest struct {
	Tag     string `json:"tag"`
	Refresh bool   `json:"refresh"`
}

type PlayerResponse struct {
	Tag             string `json:"tag"`
	Name            string `json:"name"`
	NameColor       string `json:"name_color,omitempty"`
	IconID          int64  `json:"icon_id"`
	Trophies        int    `json:"trophies"`
	HighestTrophies int    `json:"highest_trophies"`
	ExpLevel        int    `json:"exp_level"`
	TrioVictories   int    `json:"trio_victories"`
	SoloVictories   int    `json:"solo_victories"`
	DuoVictories    int    `json:"duo_victories"`
	ClubTag         string `json:"club_tag,omitempty"`
	ClubName        string `json:"club_name,omitempty"`
}

type BattlesRequest struct {
	Tag      string `json:"tag"`
	Cursor   string `json:"cursor,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
	// Sync pulls the latest battle log before opening a new cursor.
	Sync bool `json:"sync,omitempty"`
}

type BattlesResponse struct {
	Battles []*Battle `json:"battles"`
	Cursor  string    `json:"cursor,omitempty"`
	HasMore bool      `json:"has_more"`
}

type Brawler struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Power    int    `json:"power,omitempty"`
	Trophies int    `json:"trophies,omitempty"`
}

type Participant struct {
	Tag      string     `json:"tag"`
	Name     string     `json:"name"`
	Bot      bool       `json:"bot,omitempty"`
	Brawlers []*Brawler `json:"brawlers"`
}

type Round struct {
	Result     string `json:"result"`
	DurationMs int64  `json:"duration_ms"`
}

type Battle struct {
	Kind            string           `json:"kind"`
	Time            string           `json:"time"`
	Mode            string           `json:"mode"`
	Class           string           `json:"class"`
	EventID         int64            `json:"event_id"`
	Map             string           `json:"map"`
	Result          string           `json:"result,omitempty"`
	Rank            *int             `json:"rank,omitempty"`
	TrophyChange    *int             `json:"trophy_change,omitempty"`
	AffectsTrophies bool             `json:"affects_trophies"`
	DurationMs      int64            `json:"duration_ms"`
	StarPlayer      *Participant     `json:"star_player,omitempty"`
	Teams           [][]*Participant `json:"teams,omitempty"`
	Players         []*Participant   `json:"players,omitempty"`
	Rounds          []*Round         `json:"rounds,omitempty"`
	Finished        bool             `json:"finished"`
	Inferred        bool             `json:"inferred,omitempty"`
}

type ClubRequest struct {
	Tag     string `json:"tag"`
	Refresh bool   `json:"refresh"`
}

type ClubMember struct {
	Tag      string `json:"tag"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Trophies int    `json:"trophies"`
}

type ClubResponse struct {
	Tag              string        `json:"tag"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	Type             string        `json:"type"`
	BadgeID          int64         `json:"badge_id"`
	RequiredTrophies int           `json:"required_trophies"`
	Trophies         int           `json:"trophies"`
	Members          []*ClubMember `json:"members"`
}

type RankingsRequest struct {
	Kind      string `json:"kind"`
	Country   string `json:"country,omitempty"`
	BrawlerID int64  `json:"brawler_id,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

type RankingEntry struct {
	Rank        int    `json:"rank"`
	Tag         string `json:"tag"`
	Name        string `json:"name"`
	Trophies    int    `json:"trophies"`
	ClubName    string `json:"club_name,omitempty"`
	MemberCount int    `json:"member_count,omitempty"`
}

type RankingsResponse struct {
	Entries []*RankingEntry `json:"entries"`
}

type EventRotationRequest struct{}

type RotationEvent struct {
	SlotID      int    `json:"slot_id"`
	EventID     int64  `json:"event_id"`
	Mode        string `json:"mode"`
	ModeName    string `json:"mode_name,omitempty"`
	Map         string `json:"map"`
	Environment string `json:"environment,omitempty"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

type EventRotationResponse struct {
	Events []*RotationEvent `json:"events"`
}

type SearchSuggestionsRequest struct {
	Query string `json:"query"`
}

type SearchSuggestionsResponse struct {
	Suggestions []*PlayerResponse `json:"suggestions"`
}

func toPlayerResponse(p *domain.Player) *PlayerResponse {
	return &PlayerResponse{
		Tag:             p.Tag,
		Name:            p.Name,
		NameColor:       p.NameColor,
		IconID:          p.IconID,
		Trophies:        p.Trophies,
		HighestTrophies: p.HighestTrophies,
		ExpLevel:        p.ExpLevel,
		TrioVictories:   p.TrioVictories,
		SoloVictories:   p.SoloVictories,
		DuoVictories:    p.DuoVictories,
		ClubTag:         p.ClubTag,
		ClubName:        p.ClubName,
	}
}

func toParticipant(p battlelog.Participant) *Participant {
	out := &Participant{Tag: p.Tag, Name: p.Name, Bot: p.IsBot(), Brawlers: make([]*Brawler, len(p.Brawlers))}
	for i, b := range p.Brawlers {
		out.Brawlers[i] = &Brawler{ID: b.ID, Name: b.Name, Power: b.Power, Trophies: b.Trophies}
	}
	return out
}

func toParticipants(ps []battlelog.Participant) []*Participant {
	if len(ps) == 0 {
		return nil
	}
	out := make([]*Participant, len(ps))
	for i, p := range ps {
		out[i] = toParticipant(p)
	}
	return out
}

func toTeams(teams [][]battlelog.Participant) [][]*Participant {
	if len(teams) == 0 {
		return nil
	}
	out := make([][]*Participant, len(teams))
	for i, team := range teams {
		out[i] = toParticipants(team)
	}
	return out
}

func toBattle(b battlelog.Battle) *Battle {
	s := repository.Summarize(b)
	out := &Battle{
		Kind:            s.Kind,
		Time:            b.Time.UTC().Format(time.RFC3339),
		Mode:            s.Mode,
		Class:           s.Class,
		EventID:         s.EventID,
		Map:             s.Map,
		Result:          s.Result,
		Rank:            s.Rank,
		TrophyChange:    s.TrophyChange,
		AffectsTrophies: b.Class.AffectsTrophies(),
		DurationMs:      s.Duration.Milliseconds(),
		Finished:        true,
	}

	switch b.Kind {
	case battlelog.KindTeams:
		out.Teams = toTeams(b.Teams.Teams)
		if b.Teams.StarPlayer != nil {
			out.StarPlayer = toParticipant(*b.Teams.StarPlayer)
		}
	case battlelog.KindSoloShowdown:
		out.Players = toParticipants(b.SoloShowdown.Players)
		out.AffectsTrophies = b.SoloShowdown.AffectsTrophies
	case battlelog.KindTeamShowdown:
		out.Teams = toTeams(b.TeamShowdown.Teams)
		out.AffectsTrophies = b.TeamShowdown.AffectsTrophies
	case battlelog.KindDuel:
		out.Players = toParticipants(b.Duel.Players)
		out.AffectsTrophies = b.Duel.AffectsTrophies
	case battlelog.KindRegularRanked, battlelog.KindFriendlyRanked:
		out.Teams = toTeams(b.Ranked.Teams)
		if b.Ranked.StarPlayer != nil {
			out.StarPlayer = toParticipant(*b.Ranked.StarPlayer)
		}
		out.Finished = b.Ranked.IsFinished()
		out.Inferred = b.Ranked.Inferred
		for _, r := range s.Rounds {
			out.Rounds = append(out.Rounds, &Round{Result: r.Result, DurationMs: r.Duration.Milliseconds()})
		}
	}
	return out
}

func toClubResponse(c *domain.Club, members []domain.ClubMember) *ClubResponse {
	out := &ClubResponse{
		Tag:              c.Tag,
		Name:             c.Name,
		Description:      c.Description,
		Type:             c.Type,
		BadgeID:          c.BadgeID,
		RequiredTrophies: c.RequiredTrophies,
		Trophies:         c.Trophies,
		Members:          make([]*ClubMember, len(members)),
	}
	for i, m := range members {
		out.Members[i] = &ClubMember{Tag: m.PlayerTag, Name: m.Name, Role: m.Role, Trophies: m.Trophies}
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
