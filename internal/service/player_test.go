package service

import (
	"testing"

	"brawl-tracker/internal/api"
	"brawl-tracker/internal/domain"
	"brawl-tracker/internal/tag"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playerBody = `{
  "tag": "#2PP", "name": "alice", "nameColor": "0xffa2e3fe", "icon": {"id": 28000000},
  "trophies": 31000, "highestTrophies": 32000, "expLevel": 210,
  "3vs3Victories": 9000, "soloVictories": 1200, "duoVictories": 800,
  "club": {"tag": "#QQ", "name": "Spike Fans"}
}`

func TestPlayerService_GetPlayerCachesUntilRefresh(t *testing.T) {
	f := newFixture(t)
	f.upstream.set("/players/#2PP", playerBody)
	svc := NewPlayerService(f.client, f.players, zerolog.Nop())

	p, err := svc.GetPlayer(bg, "2pp", false)
	require.NoError(t, err)
	assert.Equal(t, "#2PP", p.Tag)
	assert.Equal(t, 9000, p.TrioVictories)
	assert.Equal(t, "Spike Fans", p.ClubName)
	assert.Equal(t, 1, f.upstream.count("/players/#2PP"))

	_, err = svc.GetPlayer(bg, "#2PP", false)
	require.NoError(t, err)
	assert.Equal(t, 1, f.upstream.count("/players/#2PP"), "served from the database")

	_, err = svc.GetPlayer(bg, "#2PP", true)
	require.NoError(t, err)
	assert.Equal(t, 2, f.upstream.count("/players/#2PP"))
}

func TestPlayerService_GetPlayerErrors(t *testing.T) {
	f := newFixture(t)
	svc := NewPlayerService(f.client, f.players, zerolog.Nop())

	_, err := svc.GetPlayer(bg, "not a tag!", false)
	assert.ErrorIs(t, err, tag.ErrInvalidTag)

	_, err = svc.GetPlayer(bg, "#8QGV", false)
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestPlayerService_SearchSuggestions(t *testing.T) {
	f := newFixture(t)
	svc := NewPlayerService(f.client, f.players, zerolog.Nop())

	for _, p := range []domain.Player{
		{Tag: "#2PP", Name: "alice", Trophies: 100},
		{Tag: "#8QGV", Name: "malice", Trophies: 300},
		{Tag: "#YPVJR", Name: "bob", Trophies: 200},
	} {
		require.NoError(t, f.players.Upsert(bg, &p))
	}

	got, err := svc.SearchSuggestions(bg, "alc")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0].Name, "closest match first")
	assert.Equal(t, "malice", got[1].Name)

	got, err = svc.SearchSuggestions(bg, "ypv")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "#YPVJR", got[0].Tag)

	got, err = svc.SearchSuggestions(bg, "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
}
