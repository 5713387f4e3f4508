// Package store keeps the remembered roster and the drink history on the
// local machine.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/drink"
	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/statistics"
)

// ErrNoRoster is returned by LoadRoster when nothing has been saved yet
var ErrNoRoster = errors.New("no roster saved")

// Entry is one recorded penalty
type Entry struct {
	SessionID string    `yaml:"session"`
	Game      game.Kind `yaml:"game"`
	Player    string    `yaml:"player"`
	Amount    int       `yaml:"amount"`
	Unit      deck.Unit `yaml:"unit"`
	Action    string    `yaml:"action"`
	At        time.Time `yaml:"at"`
}

// NewEntry records a penalty paid by the named player
func NewEntry(sessionID string, kind game.Kind, player string, p drink.Penalty, at time.Time) Entry {
	return Entry{
		SessionID: sessionID,
		Game:      kind,
		Player:    player,
		Amount:    p.Amount,
		Unit:      p.Unit,
		Action:    p.Action.String(),
		At:        at.UTC(),
	}
}

func (e Entry) tally() statistics.Tally {
	t := statistics.Tally{Name: e.Player}
	switch {
	case e.Action == drink.Give.String() && e.Unit == deck.Shot:
		t.GaveShots = e.Amount
	case e.Action == drink.Give.String():
		t.GaveSips = e.Amount
	case e.Unit == deck.Shot:
		t.DrankShots = e.Amount
	default:
		t.DrankSips = e.Amount
	}
	return t
}

// Store persists rosters and penalty history
type Store interface {
	SaveRoster(ctx context.Context, names []string) error
	LoadRoster(ctx context.Context) ([]string, error)
	AppendPenalties(ctx context.Context, entries []Entry) error
	// Totals returns all-time tallies in leaderboard order
	Totals(ctx context.Context) ([]statistics.Tally, error)
	Close() error
}

// Open returns the store for a driver: "file", "sqlite" or "none"
func Open(driver, path string, logger *log.Logger) (Store, error) {
	switch driver {
	case "file":
		return OpenFile(path, logger)
	case "sqlite":
		return OpenSQLite(path, logger)
	case "none", "":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}
}

func leaderboard(entries []Entry) []statistics.Tally {
	l := statistics.NewLedger(nil)
	for _, e := range entries {
		l.Add(e.tally())
	}
	return l.Leaderboard()
}

// Nop discards everything
type Nop struct{}

func (Nop) SaveRoster(context.Context, []string) error        { return nil }
func (Nop) LoadRoster(context.Context) ([]string, error)      { return nil, ErrNoRoster }
func (Nop) AppendPenalties(context.Context, []Entry) error    { return nil }
func (Nop) Totals(context.Context) ([]statistics.Tally, error) { return nil, nil }
func (Nop) Close() error                                       { return nil }
