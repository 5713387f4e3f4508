package statistics

import (
	"sort"
	"sync"

	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/drink"
	"github.com/lox/blackout/internal/game"
)

// Tally is what one player has drunk and handed out
type Tally struct {
	Name       string
	DrankSips  int
	DrankShots int
	GaveSips   int
	GaveShots  int
}

// Ledger totals penalties per player. It subscribes to a session's event
// bus and is safe for concurrent use.
type Ledger struct {
	mu      sync.Mutex
	names   map[string]string // player ID to display name
	tallies map[string]*Tally // keyed by display name
}

// NewLedger creates a ledger for a roster
func NewLedger(players []game.Player) *Ledger {
	l := &Ledger{names: make(map[string]string), tallies: make(map[string]*Tally)}
	for _, p := range players {
		l.names[p.ID] = p.Name
		l.tallies[p.Name] = &Tally{Name: p.Name}
	}
	return l
}

// Record adds a penalty to the recipient's tally. Penalties for unknown IDs
// are tallied under the ID itself.
func (l *Ledger) Record(p drink.Penalty) {
	if p.IsZero() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	name, ok := l.names[p.Recipient]
	if !ok {
		name = p.Recipient
	}
	t, ok := l.tallies[name]
	if !ok {
		t = &Tally{Name: name}
		l.tallies[name] = t
	}

	switch {
	case p.Action == drink.Drink && p.Unit == deck.Shot:
		t.DrankShots += p.Amount
	case p.Action == drink.Drink:
		t.DrankSips += p.Amount
	case p.Unit == deck.Shot:
		t.GaveShots += p.Amount
	default:
		t.GaveSips += p.Amount
	}
}

// OnEvent implements game.EventSubscriber
func (l *Ledger) OnEvent(event game.GameEvent) {
	if e, ok := event.(game.PenaltyEvent); ok {
		l.Record(e.Penalty)
	}
}

// Add merges a tally, used when loading history
func (l *Ledger) Add(t Tally) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cur, ok := l.tallies[t.Name]
	if !ok {
		cur = &Tally{Name: t.Name}
		l.tallies[t.Name] = cur
	}
	cur.DrankSips += t.DrankSips
	cur.DrankShots += t.DrankShots
	cur.GaveSips += t.GaveSips
	cur.GaveShots += t.GaveShots
}

// Tally returns a player's totals by display name
func (l *Ledger) Tally(name string) Tally {
	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.tallies[name]; ok {
		return *t
	}
	return Tally{Name: name}
}

// Leaderboard orders players by shots drunk, then sips drunk, then name
func (l *Ledger) Leaderboard() []Tally {
	l.mu.Lock()
	out := make([]Tally, 0, len(l.tallies))
	for _, t := range l.tallies {
		out = append(out, *t)
	}
	l.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].DrankShots != out[j].DrankShots {
			return out[i].DrankShots > out[j].DrankShots
		}
		if out[i].DrankSips != out[j].DrankSips {
			return out[i].DrankSips > out[j].DrankSips
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Totals sums every tally
func (l *Ledger) Totals() Tally {
	l.mu.Lock()
	defer l.mu.Unlock()
	var sum Tally
	for _, t := range l.tallies {
		sum.DrankSips += t.DrankSips
		sum.DrankShots += t.DrankShots
		sum.GaveSips += t.GaveSips
		sum.GaveShots += t.GaveShots
	}
	return sum
}
