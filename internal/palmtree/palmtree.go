// Package palmtree implements the palm-tree reveal game: a circle of face-down
// cards around a trunk card. Red cards are drunk, black cards are handed out,
// and the trunk pays double at the end.
package palmtree

import (
	"fmt"

	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/drink"
	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/randutil"
)

const name = "palmtree"

const (
	MinCircle     = 6
	MaxCircle     = 12
	DefaultCircle = 10
	TrunkBonus    = 2
)

// Phase of the game
type Phase int

const (
	Playing Phase = iota
	Trunk
	Ended
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Trunk:
		return "trunk"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Slot is a circle position
type Slot struct {
	Card     deck.Card
	Position int
	Drawn    bool
}

// Reveal is what a flipped card asks of the player who flipped it
type Reveal struct {
	Card    deck.Card
	Penalty drink.Penalty
	Bonus   bool
}

// Option configures a Game during creation.
type Option func(*config)

type config struct {
	src    randutil.Source
	circle int
	cards  []deck.Card
}

// WithSource sets the shuffle source.
func WithSource(src randutil.Source) Option {
	return func(c *config) { c.src = src }
}

// WithCircle sets the number of circle cards, clamped to [MinCircle, MaxCircle].
func WithCircle(n int) Option {
	return func(c *config) { c.circle = n }
}

// WithDeck lays out a fixed ordered deck: the circle first, then the trunk.
func WithDeck(cards []deck.Card) Option {
	return func(c *config) { c.cards = append([]deck.Card(nil), cards...) }
}

// Game holds one palm tree
type Game struct {
	cfg     config
	players []game.Player
	current int
	circle  []Slot
	trunk   deck.Card
	shown   bool
	phase   Phase
}

// New seats the roster and lays out the tree
func New(names []string, opts ...Option) (*Game, error) {
	players, err := game.NewPlayers(names)
	if err != nil {
		return nil, err
	}
	cfg := config{circle: DefaultCircle}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.circle = max(MinCircle, min(MaxCircle, cfg.circle))
	if cfg.src == nil {
		cfg.src, _ = randutil.NewTimeSeeded()
	}
	if cfg.cards != nil && len(cfg.cards) < cfg.circle+1 {
		return nil, fmt.Errorf("%s: %d cards cannot fill a circle of %d and a trunk: %w",
			name, len(cfg.cards), cfg.circle, deck.ErrEmptyDeck)
	}
	g := &Game{cfg: cfg, players: players}
	g.Reset()
	return g, nil
}

// Reset lays out a fresh tree
func (g *Game) Reset() {
	var cards []deck.Card
	if g.cfg.cards != nil {
		cards = g.cfg.cards
	} else {
		cards = deck.Shuffled(deck.New(1, deck.BorderlandValue), g.cfg.src)
	}
	g.circle = make([]Slot, g.cfg.circle)
	for i := range g.circle {
		g.circle[i] = Slot{Card: cards[i], Position: i}
	}
	g.trunk = cards[g.cfg.circle]
	g.shown = false
	g.current = 0
	g.phase = Playing
}

func penaltyFor(playerID string, c deck.Card, multiplier int) drink.Penalty {
	action := drink.Give
	if c.IsRed() {
		action = drink.Drink
	}
	return drink.Sips(playerID, c.Value*multiplier, action)
}

// DrawCircle flips the circle card at position for the current player, then
// passes the turn. Flipping the last circle card opens the trunk.
func (g *Game) DrawCircle(position int) (Reveal, error) {
	if g.phase != Playing {
		return Reveal{}, game.Invalid(name, "draw", g.phase, "")
	}
	if position < 0 || position >= len(g.circle) {
		return Reveal{}, fmt.Errorf("%s: position %d: %w", name, position, game.ErrOutOfRange)
	}
	slot := &g.circle[position]
	if slot.Drawn {
		return Reveal{}, game.Invalid(name, "draw", g.phase, fmt.Sprintf("position %d already drawn", position))
	}
	slot.Drawn = true

	p := g.players[g.current]
	rev := Reveal{Card: slot.Card, Penalty: penaltyFor(p.ID, slot.Card, 1)}
	g.current = (g.current + 1) % len(g.players)

	if g.Remaining() == 0 {
		g.phase = Trunk
	}
	return rev, nil
}

// RevealTrunk flips the trunk for the current player at double value and
// ends the game.
func (g *Game) RevealTrunk() (Reveal, error) {
	if g.phase != Trunk {
		return Reveal{}, game.Invalid(name, "reveal trunk", g.phase, "")
	}
	g.shown = true
	g.phase = Ended
	p := g.players[g.current]
	return Reveal{Card: g.trunk, Penalty: penaltyFor(p.ID, g.trunk, TrunkBonus), Bonus: true}, nil
}

// Remaining counts circle cards not yet flipped
func (g *Game) Remaining() int {
	n := 0
	for _, s := range g.circle {
		if !s.Drawn {
			n++
		}
	}
	return n
}

// Circle returns the slots. Undrawn cards are included; hiding them is up to
// the caller.
func (g *Game) Circle() []Slot {
	return append([]Slot(nil), g.circle...)
}

// Trunk returns the trunk card once it has been revealed
func (g *Game) Trunk() (deck.Card, bool) {
	if !g.shown {
		return deck.Card{}, false
	}
	return g.trunk, true
}

// Phase returns the current phase
func (g *Game) Phase() Phase { return g.phase }

// CurrentPlayer is the player who flips next
func (g *Game) CurrentPlayer() game.Player { return g.players[g.current] }
