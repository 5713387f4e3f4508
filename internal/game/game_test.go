package game

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackout/internal/drink"
)

type phase string

func (p phase) String() string { return string(p) }

func TestNewPlayers(t *testing.T) {
	players, err := NewPlayers([]string{" Alice ", "Bob", "Chloé"})
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, Player{ID: "player-0", Name: "Alice", Active: true}, players[0])
	assert.Equal(t, "player-2", players[2].ID)
}

func TestNormalizeRosterRejects(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{"too few", []string{"solo"}},
		{"too many", []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}},
		{"blank name", []string{"a", "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeRoster(tt.names)
			assert.ErrorIs(t, err, ErrInvalidRoster)
		})
	}

	names, err := NormalizeRoster([]string{"a", "b", "c", "d", "e", "f", "g", "h"})
	require.NoError(t, err)
	assert.Len(t, names, MaxPlayers)
}

func TestInvalidOperationError(t *testing.T) {
	err := Invalid("blackjack", "hit", phase("betting"), "no cards dealt")
	assert.True(t, errors.Is(err, ErrInvalidOperation))
	assert.False(t, errors.Is(err, ErrOutOfRange))
	assert.Equal(t, "blackjack: hit not allowed in phase betting: no cards dealt", err.Error())

	var ioe *InvalidOperationError
	require.ErrorAs(t, err, &ioe)
	assert.Equal(t, "hit", ioe.Op)
}

type recorder struct{ events []GameEvent }

func (r *recorder) OnEvent(e GameEvent) { r.events = append(r.events, e) }

func TestEventBus(t *testing.T) {
	bus := NewEventBus()
	rec := &recorder{}
	var fnCount int
	fn := SubscriberFunc(func(GameEvent) { fnCount++ })

	bus.Subscribe(rec)
	bus.Subscribe(fn)

	at := time.Date(2025, time.January, 1, 20, 0, 0, 0, time.UTC)
	bus.Publish(NewPenaltyEvent(Blackjack, drink.Sips("player-0", 3, drink.Drink), at))
	require.Len(t, rec.events, 1)
	assert.Equal(t, EventTypePenalty, rec.events[0].EventType())
	assert.Equal(t, at, rec.events[0].Timestamp())

	bus.Unsubscribe(fn) // no-op for funcs, must not panic
	bus.Unsubscribe(rec)
	bus.Publish(NewGameEndEvent(NinetyNine, "player-1", at))
	assert.Len(t, rec.events, 1)
	assert.Equal(t, 2, fnCount)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("99")
	require.NoError(t, err)
	assert.Equal(t, NinetyNine, k)

	_, err = ParseKind("poker")
	assert.Error(t, err)
}
