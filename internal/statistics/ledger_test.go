package statistics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackout/internal/drink"
	"github.com/lox/blackout/internal/game"
)

func roster() []game.Player {
	players, _ := game.NewPlayers([]string{"Alice", "Bob", "Chloé"})
	return players
}

func TestLedgerRecord(t *testing.T) {
	l := NewLedger(roster())
	l.Record(drink.Sips("player-0", 4, drink.Drink))
	l.Record(drink.Sips("player-0", 2, drink.Give))
	l.Record(drink.Shots("player-1", 1))
	l.Record(drink.Sips("player-2", 0, drink.Drink))

	assert.Equal(t, Tally{Name: "Alice", DrankSips: 4, GaveSips: 2}, l.Tally("Alice"))
	assert.Equal(t, Tally{Name: "Bob", DrankShots: 1}, l.Tally("Bob"))
	assert.Equal(t, Tally{Name: "Chloé"}, l.Tally("Chloé"))
	assert.Equal(t, Tally{DrankSips: 4, DrankShots: 1, GaveSips: 2}, l.Totals())
}

func TestLedgerUnknownRecipient(t *testing.T) {
	l := NewLedger(roster())
	l.Record(drink.Sips("player-7", 3, drink.Drink))
	assert.Equal(t, 3, l.Tally("player-7").DrankSips)
}

func TestLedgerLeaderboardOrder(t *testing.T) {
	l := NewLedger(roster())
	l.Record(drink.Sips("player-0", 10, drink.Drink))
	l.Record(drink.Shots("player-1", 1))
	l.Record(drink.Sips("player-2", 10, drink.Drink))

	board := l.Leaderboard()
	names := []string{board[0].Name, board[1].Name, board[2].Name}
	assert.Equal(t, []string{"Bob", "Alice", "Chloé"}, names)
}

func TestLedgerSubscribesToPenalties(t *testing.T) {
	l := NewLedger(roster())
	bus := game.NewEventBus()
	bus.Subscribe(l)

	now := time.Unix(0, 0)
	bus.Publish(game.NewPenaltyEvent(game.Blackjack, drink.Sips("player-1", 5, drink.Drink), now))
	bus.Publish(game.NewGameEndEvent(game.Blackjack, "", now))

	assert.Equal(t, 5, l.Tally("Bob").DrankSips)
}

func TestLedgerConcurrentRecord(t *testing.T) {
	l := NewLedger(roster())
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Record(drink.Sips("player-0", 1, drink.Drink))
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, l.Tally("Alice").DrankSips)
}

func TestLedgerAdd(t *testing.T) {
	l := NewLedger(nil)
	l.Add(Tally{Name: "Dana", DrankSips: 3})
	l.Add(Tally{Name: "Dana", DrankSips: 2, GaveShots: 1})
	assert.Equal(t, Tally{Name: "Dana", DrankSips: 5, GaveShots: 1}, l.Tally("Dana"))
}
