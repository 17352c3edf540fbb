package service

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rotationBody = `[
  {"startTime": "20250314T080000.000Z", "endTime": "20250315T080000.000Z", "slotId": 1, "event": {"id": 15000007, "mode": "gemGrab", "map": "Hard Rock Mine"}},
  {"startTime": "20250314T080000.000Z", "endTime": "20250315T080000.000Z", "slotId": 2, "event": {"id": 15000999, "mode": "heist", "map": "New Map"}}
]`

func TestEventService_EnrichesFromCompanion(t *testing.T) {
	f := newFixture(t)
	f.upstream.set("/events/rotation", rotationBody)
	f.upstream.set("/maps", `{"list": [{"id": 15000007, "name": "Hard Rock Mine", "environment": {"name": "Mine"}, "gameMode": {"name": "Gem Grab"}}]}`)
	f.upstream.set("/gamemodes", `{"list": [{"id": 1, "scId": 48000000, "name": "Gem Grab", "scHash": "gemGrab"}, {"id": 2, "scId": 48000002, "name": "Heist", "scHash": "heist"}]}`)
	svc := NewEventService(f.client, f.companion, zerolog.Nop())

	events, err := svc.GetRotation(bg)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "Gem Grab", events[0].ModeName)
	assert.Equal(t, "Mine", events[0].Environment)
	assert.True(t, events[0].StartTime.Equal(time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Heist", events[1].ModeName, "mode name comes from the game mode table")
	assert.Empty(t, events[1].Environment, "maps missing from the dataset have no environment")
	assert.Equal(t, "heist", events[1].Mode)
}

func TestEventService_CompanionDown(t *testing.T) {
	f := newFixture(t)
	f.upstream.set("/events/rotation", rotationBody)
	f.upstream.set("/maps", `{}`)
	f.upstream.fail("/maps", 502)
	svc := NewEventService(f.client, f.companion, zerolog.Nop())

	events, err := svc.GetRotation(bg)
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Empty(t, events[0].Environment)
}

func TestEventService_RotationDown(t *testing.T) {
	f := newFixture(t)
	f.upstream.set("/events/rotation", `[]`)
	f.upstream.fail("/events/rotation", 503)
	svc := NewEventService(f.client, f.companion, zerolog.Nop())

	_, err := svc.GetRotation(bg)
	assert.Error(t, err)
}
