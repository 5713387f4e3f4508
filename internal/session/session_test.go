package session

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackout/internal/drink"
	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/prompt"
)

func newTestSession(t *testing.T, names ...string) (*Session, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2026, 10, 16, 21, 0, 0, 0, time.UTC))
	s, err := New(names,
		WithClock(clock),
		WithLogger(log.New(io.Discard)),
		WithSeed(42),
		WithID("test-session"),
	)
	require.NoError(t, err)
	return s, clock
}

func TestNewRejectsBadRoster(t *testing.T) {
	_, err := New([]string{"Solo"}, WithLogger(log.New(io.Discard)))
	assert.ErrorIs(t, err, game.ErrInvalidRoster)

	_, err = New([]string{"Alice", "  "}, WithLogger(log.New(io.Discard)))
	assert.ErrorIs(t, err, game.ErrInvalidRoster)
}

func TestNewGeneratesID(t *testing.T) {
	s, err := New([]string{"Alice", "Bob"}, WithLogger(log.New(io.Discard)))
	require.NoError(t, err)
	assert.Len(t, s.ID, 26)
	assert.NotZero(t, s.Seed())
}

func TestRecordPublishesDisplayablePenalties(t *testing.T) {
	s, clock := newTestSession(t, "Alice", "Bob")

	var events []game.PenaltyEvent
	s.Subscribe(game.SubscriberFunc(func(e game.GameEvent) {
		if pe, ok := e.(game.PenaltyEvent); ok {
			events = append(events, pe)
		}
	}))

	published := s.Record(game.Blackjack,
		drink.Sips("player-0", 3, drink.Drink),
		drink.Sips("player-1", 0, drink.Drink),
		drink.Shots("player-1", 1),
	)
	require.Len(t, published, 2)
	require.Len(t, events, 2)
	assert.Equal(t, clock.Now(), events[0].Timestamp())
	assert.Equal(t, game.Blackjack, events[1].Kind)

	assert.Equal(t, 3, s.Ledger().Tally("Alice").DrankSips)
	assert.Equal(t, 1, s.Ledger().Tally("Bob").DrankShots)
}

func TestEngineConstructorsAnnounceStart(t *testing.T) {
	s, _ := newTestSession(t, "Alice", "Bob", "Carol")

	var kinds []game.Kind
	s.Subscribe(game.SubscriberFunc(func(e game.GameEvent) {
		if gs, ok := e.(game.GameStartEvent); ok {
			kinds = append(kinds, gs.Kind)
			assert.Len(t, gs.Players, 3)
		}
	}))

	_, err := s.Borderland()
	require.NoError(t, err)
	bj, err := s.Blackjack()
	require.NoError(t, err)
	assert.Equal(t, 312, bj.ShoeRemaining())
	nn, err := s.NinetyNine()
	require.NoError(t, err)
	assert.Equal(t, 99, nn.MaxTotal())
	_, err = s.HorseRace()
	require.NoError(t, err)
	_, err = s.PalmTree()
	require.NoError(t, err)
	d, pg, err := s.Prompts(prompt.NeverHaveIEver)
	require.NoError(t, err)
	assert.Equal(t, prompt.NeverHaveIEver, pg.Kind)
	assert.NotEmpty(t, d.Current())

	assert.Equal(t, []game.Kind{
		game.Borderland, game.Blackjack, game.NinetyNine,
		game.HorseRace, game.PalmTree, game.Prompts,
	}, kinds)
}

func TestSameSeedSameShuffle(t *testing.T) {
	a, _ := newTestSession(t, "Alice", "Bob")
	b, _ := newTestSession(t, "Alice", "Bob")

	ga, err := a.NinetyNine()
	require.NoError(t, err)
	gb, err := b.NinetyNine()
	require.NoError(t, err)
	assert.Equal(t, ga.Players(), gb.Players())

	// the second engine of a session draws from a different stream
	gc, err := a.NinetyNine()
	require.NoError(t, err)
	assert.NotEqual(t, ga.Players(), gc.Players())
}

func TestPhaseChangeAndEnd(t *testing.T) {
	s, clock := newTestSession(t, "Alice", "Bob")

	var got []game.GameEvent
	s.Subscribe(game.SubscriberFunc(func(e game.GameEvent) { got = append(got, e) }))

	s.PhaseChanged(game.PalmTree, "playing", "playing")
	s.PhaseChanged(game.PalmTree, "playing", "trunk")
	clock.Advance(5 * time.Minute)
	s.End(game.PalmTree, "")

	require.Len(t, got, 2)
	pc := got[0].(game.PhaseChangeEvent)
	assert.Equal(t, "trunk", pc.To)
	assert.Equal(t, game.EventTypeGameEnd, got[1].EventType())
	assert.Equal(t, 5*time.Minute, s.Elapsed())
}

func TestName(t *testing.T) {
	s, _ := newTestSession(t, " Alice ", "Bob")
	assert.Equal(t, "Alice", s.Name("player-0"))
	assert.Equal(t, "player-9", s.Name("player-9"))
	assert.Equal(t, []string{"Alice", "Bob"}, s.Names())
}
