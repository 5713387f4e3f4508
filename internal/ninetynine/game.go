// Package ninetynine implements the counting game: players take turns adding
// cards to a running total and whoever would push it past 99 loses a life.
package ninetynine

import (
	"fmt"

	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/drink"
	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/randutil"
)

const name = "ninetynine"

// Phase of the game
type Phase int

const (
	Playing Phase = iota
	Ended
)

func (p Phase) String() string {
	if p == Ended {
		return "ended"
	}
	return "playing"
}

// Direction of play around the table
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

// Player is a seat with a hand and remaining lives
type Player struct {
	ID    string
	Name  string
	Hand  []deck.Card
	Lives int
	Out   bool
}

// PlayResult describes what a PlayCard call did. An illegal play is a game
// event, not an error: the card stays in hand and the player pays Penalty.
type PlayResult struct {
	Card       deck.Card
	Legal      bool
	Effect     Effect
	Total      int
	Direction  Direction
	Penalty    drink.Penalty
	Eliminated bool
	GameOver   bool
}

// Game holds one round of 99
type Game struct {
	cfg       config
	players   []Player
	current   int
	deck      *deck.Deck
	discard   []deck.Card
	total     int
	direction Direction
	last      *deck.Card
	loser     string
	phase     Phase
	src       randutil.Source
}

// New seats the roster and deals each player a hand
func New(names []string, opts ...Option) (*Game, error) {
	seated, err := game.NewPlayers(names)
	if err != nil {
		return nil, err
	}
	cfg := newConfig(opts)
	if cfg.handSize > MaxHandSize {
		return nil, fmt.Errorf("%s: hand size %d above %d: %w", name, cfg.handSize, MaxHandSize, game.ErrOutOfRange)
	}
	// a standard deck must keep at least two cards back so hands can refill
	if cfg.cards == nil && len(seated)*cfg.handSize > 52-2 {
		return nil, fmt.Errorf("%s: %w: %d players cannot hold %d cards each", name, game.ErrInvalidRoster, len(seated), cfg.handSize)
	}
	g := &Game{cfg: cfg, src: cfg.src}
	for _, p := range seated {
		g.players = append(g.players, Player{ID: p.ID, Name: p.Name})
	}
	g.deal()
	return g, nil
}

func (g *Game) deal() {
	if g.cfg.cards != nil {
		g.deck = deck.NewDeck(g.cfg.cards)
	} else {
		g.deck = deck.NewShuffled(1, deck.NinetyNineValue, g.src)
	}
	for i := range g.players {
		p := &g.players[i]
		p.Hand = nil
		for range g.cfg.handSize {
			if c, ok := g.drawCard(); ok {
				p.Hand = append(p.Hand, c)
			}
		}
		p.Lives = g.cfg.lives
		p.Out = false
	}
	g.discard = nil
	g.total = 0
	g.direction = Clockwise
	g.current = 0
	g.last = nil
	g.loser = ""
	g.phase = Playing
	if !g.canAct(g.current) {
		g.advance()
	}
}

// Reset deals a new game to the same players
func (g *Game) Reset() {
	g.deal()
}

// drawCard takes the top card, reshuffling the discard pile under its top
// card when the deck runs out.
func (g *Game) drawCard() (deck.Card, bool) {
	if g.deck.IsEmpty() && len(g.discard) > 1 {
		top := g.discard[len(g.discard)-1]
		g.deck.Refill(g.discard[:len(g.discard)-1], g.src)
		g.discard = []deck.Card{top}
	}
	c, err := g.deck.Draw()
	if err != nil {
		return deck.Card{}, false
	}
	return c, true
}

// CanPlay reports whether c can be played on the current total
func (g *Game) CanPlay(c deck.Card, ace int) bool {
	return !Exceeds(g.total, g.cfg.maxTotal, c, ace)
}

// PlayCard plays the current player's card at index. ace picks 1 or 11 for
// an ace and is ignored otherwise.
func (g *Game) PlayCard(index, ace int) (PlayResult, error) {
	if g.phase != Playing {
		return PlayResult{}, game.Invalid(name, "play card", g.phase, "")
	}
	p := &g.players[g.current]
	if index < 0 || index >= len(p.Hand) {
		return PlayResult{}, fmt.Errorf("%s: card index %d of %d: %w", name, index, len(p.Hand), game.ErrOutOfRange)
	}
	card := p.Hand[index]
	effect := CardEffect(card.Rank)
	if effect == AceChoice && ace != 1 && ace != 11 {
		return PlayResult{}, fmt.Errorf("%s: ace value %d: %w", name, ace, game.ErrOutOfRange)
	}

	if !g.CanPlay(card, ace) {
		return g.bust(card, effect), nil
	}

	p.Hand = append(p.Hand[:index:index], p.Hand[index+1:]...)

	switch effect {
	case Reverse:
		g.direction = -g.direction
	case SetTo99:
		g.total = g.cfg.maxTotal
	default:
		g.total += Contribution(card, ace)
	}
	g.total = max(0, min(g.cfg.maxTotal, g.total))

	if c, ok := g.drawCard(); ok {
		p.Hand = append(p.Hand, c)
	}
	g.discard = append(g.discard, card)
	g.last = &card
	g.advance()

	return PlayResult{
		Card:      card,
		Legal:     true,
		Effect:    effect,
		Total:     g.total,
		Direction: g.direction,
		GameOver:  g.phase == Ended,
	}, nil
}

// bust charges the current player a life and a shot. The card stays in hand.
func (g *Game) bust(card deck.Card, effect Effect) PlayResult {
	p := &g.players[g.current]
	p.Lives--
	if p.Lives <= 0 {
		p.Lives = 0
		p.Out = true
	}
	g.loser = p.ID

	res := PlayResult{
		Card:       card,
		Effect:     effect,
		Total:      g.total,
		Direction:  g.direction,
		Penalty:    drink.Shots(p.ID, 1),
		Eliminated: p.Out,
	}

	if g.activeCount() <= 1 {
		g.phase = Ended
		res.GameOver = true
		return res
	}
	g.advance()
	res.GameOver = g.phase == Ended
	return res
}

// advance steps in the current direction to the next player who is still in
// and holds a card. A player whose hand ran dry with nothing left to draw
// sits out; when nobody can play the game ends.
func (g *Game) advance() {
	n := len(g.players)
	next := g.current
	for range n {
		next = (next + int(g.direction) + n) % n
		if g.canAct(next) {
			g.current = next
			return
		}
	}
	g.phase = Ended
}

func (g *Game) canAct(seat int) bool {
	p := g.players[seat]
	return !p.Out && len(p.Hand) > 0
}

func (g *Game) activeCount() int {
	n := 0
	for _, p := range g.players {
		if !p.Out {
			n++
		}
	}
	return n
}

// Phase returns the current phase
func (g *Game) Phase() Phase { return g.phase }

// Total is the running total
func (g *Game) Total() int { return g.total }

// Direction is the current direction of play
func (g *Game) Direction() Direction { return g.direction }

// MaxTotal is the bust limit
func (g *Game) MaxTotal() int { return g.cfg.maxTotal }

// CurrentPlayer returns the player to act
func (g *Game) CurrentPlayer() Player {
	return clonePlayer(g.players[g.current])
}

// Players returns a copy of every seat
func (g *Game) Players() []Player {
	out := make([]Player, len(g.players))
	for i, p := range g.players {
		out[i] = clonePlayer(p)
	}
	return out
}

// LastPlayed returns the most recent legal card
func (g *Game) LastPlayed() (deck.Card, bool) {
	if g.last == nil {
		return deck.Card{}, false
	}
	return *g.last, true
}

// Loser is the ID of the last player to bust, empty if nobody has
func (g *Game) Loser() string { return g.loser }

// Winner is the last player standing once the game has ended. A game that
// ran out of cards with several players left has no winner.
func (g *Game) Winner() (Player, bool) {
	if g.phase != Ended || g.activeCount() != 1 {
		return Player{}, false
	}
	for _, p := range g.players {
		if !p.Out {
			return clonePlayer(p), true
		}
	}
	return Player{}, false
}

// DeckRemaining is the number of undrawn cards
func (g *Game) DeckRemaining() int { return g.deck.Len() }

// Discarded returns the discard pile, top card last
func (g *Game) Discarded() []deck.Card {
	out := make([]deck.Card, len(g.discard))
	copy(out, g.discard)
	return out
}

func clonePlayer(p Player) Player {
	p.Hand = append([]deck.Card(nil), p.Hand...)
	return p
}
