package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClubService_FetchesClubAndMembers(t *testing.T) {
	f := newFixture(t)
	f.upstream.set("/clubs/#QQ", `{"tag": "#QQ", "name": "Spike Fans", "type": "open", "badgeId": 8000001, "requiredTrophies": 20000, "trophies": 900000,
		"members": [{"tag": "#2PP", "name": "alice", "role": "president", "trophies": 31000}]}`)
	f.upstream.set("/clubs/#QQ/members", `{"items": [
		{"tag": "#2PP", "name": "alice", "role": "president", "trophies": 31000},
		{"tag": "#8QGV", "name": "bob", "role": "member", "trophies": 12000}
	], "paging": {"cursors": {}}}`)
	svc := NewClubService(f.client, f.clubs, f.players, zerolog.Nop())

	club, members, err := svc.GetClub(bg, "qq", false)
	require.NoError(t, err)
	assert.Equal(t, "Spike Fans", club.Name)
	assert.Equal(t, 20000, club.RequiredTrophies)
	require.Len(t, members, 2, "paged member list wins over the embedded one")
	assert.Equal(t, 1, f.upstream.count("/clubs/#QQ"))
	assert.Equal(t, 1, f.upstream.count("/clubs/#QQ/members"))

	bob, err := f.players.GetByTag(bg, "#8QGV")
	require.NoError(t, err)
	assert.True(t, bob.IsPartialFetch)
	assert.Equal(t, "Spike Fans", bob.ClubName)

	_, members, err = svc.GetClub(bg, "#QQ", false)
	require.NoError(t, err)
	assert.Len(t, members, 2)
	assert.Equal(t, 1, f.upstream.count("/clubs/#QQ"), "served from the database")

	_, _, err = svc.GetClub(bg, "#QQ", true)
	require.NoError(t, err)
	assert.Equal(t, 2, f.upstream.count("/clubs/#QQ"))
}

func TestClubService_MemberFetchFailure(t *testing.T) {
	f := newFixture(t)
	f.upstream.set("/clubs/#QQ", `{"tag": "#QQ", "name": "Spike Fans"}`)
	f.upstream.set("/clubs/#QQ/members", `{}`)
	f.upstream.fail("/clubs/#QQ/members", 500)
	svc := NewClubService(f.client, f.clubs, f.players, zerolog.Nop())

	_, _, err := svc.GetClub(bg, "#QQ", false)
	require.Error(t, err)

	_, _, err = f.clubs.Get(bg, "#QQ")
	assert.Error(t, err, "nothing stored on failure")
}
