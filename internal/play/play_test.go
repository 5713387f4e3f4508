package play

import (
	"io"
	"strconv"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackout/internal/blackjack"
	"github.com/lox/blackout/internal/borderland"
	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/drink"
	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/session"
)

func newSession(t *testing.T, names ...string) *session.Session {
	t.Helper()
	if len(names) == 0 {
		names = []string{"Alice", "Bob", "Carol"}
	}
	s, err := session.New(names,
		session.WithLogger(log.New(io.Discard)),
		session.WithClock(quartz.NewMock(t)),
		session.WithSeed(7),
	)
	require.NoError(t, err)
	return s
}

func exec(t *testing.T, d Driver, line string) Response {
	t.Helper()
	resp, err := d.Exec(line)
	require.NoError(t, err, line)
	return resp
}

func TestNewEveryKind(t *testing.T) {
	s := newSession(t)
	for _, kind := range game.Kinds {
		d, err := New(s, kind)
		require.NoError(t, err, kind)
		assert.Equal(t, kind, d.Kind())
		assert.NotEmpty(t, d.Title())
		assert.NotEmpty(t, d.Status())
		assert.NotEmpty(t, d.Commands())
		assert.False(t, d.Done())
	}

	_, err := New(s, game.Kind("poker"))
	assert.Error(t, err)
}

func TestCommandParsing(t *testing.T) {
	d, err := New(newSession(t), game.Blackjack)
	require.NoError(t, err)

	resp, err := d.Exec("   ")
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)

	_, err = d.Exec("dance")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = d.Exec("bet alice")
	assert.ErrorIs(t, err, ErrUsage)

	_, err = d.Exec("bet alice lots")
	assert.ErrorIs(t, err, ErrUsage)

	_, err = d.Exec("bet 9 3")
	assert.ErrorIs(t, err, game.ErrUnknownPlayer)

	_, err = d.Exec("bet Dave 3")
	assert.ErrorIs(t, err, game.ErrUnknownPlayer)

	_, err = d.Exec("hit")
	assert.ErrorIs(t, err, game.ErrInvalidOperation)

	// aliases and case are accepted
	resp = exec(t, d, "B ALICE 4")
	assert.Equal(t, []string{"Alice bets 4 sips"}, resp.Lines)
}

func TestBlackjackRound(t *testing.T) {
	s := newSession(t, "Alice", "Bob")
	var ended int
	s.Subscribe(game.SubscriberFunc(func(e game.GameEvent) {
		if e.EventType() == game.EventTypeGameEnd {
			ended++
		}
	}))

	d, err := newBlackjack(s, blackjack.WithDeck(deck.MustParseCards("5H 6D 10C 9S KH 7C 4D", deck.BlackjackValue)))
	require.NoError(t, err)

	exec(t, d, "bet alice 3")
	resp := exec(t, d, "bet 2 20")
	assert.Equal(t, []string{"Bob bets 10 sips"}, resp.Lines)

	exec(t, d, "deal")
	resp = exec(t, d, "hit")
	assert.Equal(t, []string{"Alice hits: 5♥ 6♦ 4♦ = 15"}, resp.Lines)
	exec(t, d, "stand")
	assert.False(t, d.Done())

	resp = exec(t, d, "stand")
	assert.True(t, d.Done())
	assert.Contains(t, resp.Lines, "Alice drinks 3 sips")
	assert.Contains(t, resp.Lines, "Bob hands out 10 sips")
	require.Len(t, resp.Penalties, 2)
	assert.Equal(t, 1, ended)

	assert.Equal(t, 3, s.Ledger().Tally("Alice").DrankSips)
	assert.Equal(t, 10, s.Ledger().Tally("Bob").GaveSips)

	exec(t, d, "round")
	assert.False(t, d.Done())
	assert.Contains(t, d.Status()[0], "betting")
}

func TestBorderlandContest(t *testing.T) {
	s := newSession(t)
	d, err := newBorderland(s)
	require.NoError(t, err)

	exec(t, d, "draw")
	if !d.g.IsRevealed() {
		exec(t, d, "reveal")
	}
	card, ok := d.g.CurrentCard()
	require.True(t, ok)

	exec(t, d, "contest bob")
	exec(t, d, "raise carol")
	_, err = d.Exec("draw")
	assert.ErrorIs(t, err, game.ErrInvalidOperation)

	resp := exec(t, d, "accept alice")
	want := borderland.Penalty(card, 2)
	require.Len(t, resp.Penalties, 1)
	assert.Equal(t, "player-0", resp.Penalties[0].Recipient)
	assert.Equal(t, want.Amount, resp.Penalties[0].Amount)
	assert.Equal(t, want.Unit, resp.Penalties[0].Unit)

	resp = exec(t, d, "next")
	assert.Equal(t, []string{"Bob's turn"}, resp.Lines)
}

func TestBorderlandPlaysToTheEnd(t *testing.T) {
	d, err := newBorderland(newSession(t))
	require.NoError(t, err)

	for i := 0; i < 60 && !d.Done(); i++ {
		exec(t, d, "draw")
		if !d.Done() {
			exec(t, d, "next")
		}
	}
	assert.True(t, d.Done())
	assert.Contains(t, d.Status(), "Game over")
}

func TestNinetyNineCommands(t *testing.T) {
	d, err := newNinetyNine(newSession(t))
	require.NoError(t, err)

	_, err = d.Exec("play 9")
	assert.ErrorIs(t, err, game.ErrOutOfRange)
	_, err = d.Exec("play")
	assert.ErrorIs(t, err, ErrUsage)

	first := d.g.CurrentPlayer()
	resp := exec(t, d, "play 1")
	assert.NotEmpty(t, resp.Lines)
	assert.NotEqual(t, first.ID, d.g.CurrentPlayer().ID)
	assert.Contains(t, d.Status()[0], "Total:")
}

func TestNinetyNineBustRecordsShot(t *testing.T) {
	s := newSession(t, "Alice", "Bob")
	d, err := newNinetyNine(s)
	require.NoError(t, err)

	// always playing the first card busts sooner or later
	for i := 0; i < 500 && s.Ledger().Totals().DrankShots == 0; i++ {
		exec(t, d, "play 1 11")
	}
	assert.Positive(t, s.Ledger().Totals().DrankShots)
}

func TestHorseRace(t *testing.T) {
	s := newSession(t, "Alice", "Bob")
	d, err := newHorseRace(s)
	require.NoError(t, err)

	_, err = d.Exec("start")
	assert.ErrorIs(t, err, game.ErrInvalidOperation)
	_, err = d.Exec("bet alice purple 2")
	assert.Error(t, err)

	exec(t, d, "bet alice hearts 2")
	exec(t, d, "bet bob s 3")
	exec(t, d, "start")

	var last Response
	for i := 0; i < 48 && !d.Done(); i++ {
		last = exec(t, d, "draw")
	}
	require.True(t, d.Done())
	assert.Len(t, last.Penalties, 2)

	totals := s.Ledger().Totals()
	assert.Equal(t, 5, totals.DrankSips+totals.GaveSips)
}

func TestPalmTree(t *testing.T) {
	s := newSession(t)
	d, err := newPalmTree(s)
	require.NoError(t, err)

	resp := exec(t, d, "flip 1")
	assert.Len(t, resp.Penalties, 1)
	_, err = d.Exec("flip 1")
	assert.ErrorIs(t, err, game.ErrInvalidOperation)
	_, err = d.Exec("flip 0")
	assert.ErrorIs(t, err, game.ErrOutOfRange)
	_, err = d.Exec("trunk")
	assert.ErrorIs(t, err, game.ErrInvalidOperation)

	for pos := 2; pos <= len(d.g.Circle()); pos++ {
		exec(t, d, "flip "+strconv.Itoa(pos))
	}
	resp = exec(t, d, "trunk")
	require.Len(t, resp.Penalties, 1)
	card, _ := d.g.Trunk()
	assert.Equal(t, card.Value*2, resp.Penalties[0].Amount)
	assert.True(t, d.Done())

	resp = exec(t, d, "restart")
	assert.Equal(t, []string{"New game, same table"}, resp.Lines)
	assert.False(t, d.Done())
	assert.Equal(t, len(d.g.Circle()), d.g.Remaining())
}

func TestPrompts(t *testing.T) {
	d, err := newPrompts(newSession(t))
	require.NoError(t, err)

	before := d.deck.Current()
	resp := exec(t, d, "next")
	assert.Equal(t, []string{d.deck.Current()}, resp.Lines)
	assert.NotEqual(t, before, d.deck.Current())

	exec(t, d, "game truth-or-dare")
	assert.Equal(t, "truth-or-dare", string(d.game.Kind))

	_, err = d.Exec("game charades")
	assert.Error(t, err)
	assert.False(t, d.Done())
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		p    drink.Penalty
		want string
	}{
		{drink.Sips("player-0", 1, drink.Drink), "Alice drinks 1 sip"},
		{drink.Sips("player-0", 4, drink.Give), "Alice hands out 4 sips"},
		{drink.Shots("player-0", 1), "Alice drinks 1 shot"},
		{drink.Shots("player-0", 4), "Alice drinks 4 shots"},
	}
	for _, tt := range tests {
		if got := Describe("Alice", tt.p); got != tt.want {
			t.Errorf("Describe(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

