// Package borderland implements the rule-card game: each turn a player draws
// a card whose suit decides the rule, and the penalty can be contested and
// escalated before someone accepts it.
package borderland

import (
	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/drink"
	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/randutil"
)

const name = "borderland"

// Phase of the game
type Phase int

const (
	Playing Phase = iota
	InContest
	Resolution
	Ended
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case InContest:
		return "contest"
	case Resolution:
		return "resolution"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Contest is the state of a duel over the current card
type Contest struct {
	Active     bool
	Level      Level
	BaseCard   deck.Card
	Challenger game.Player
}

// Draw describes a freshly drawn card. Ended is set instead when the deck was
// already exhausted.
type Draw struct {
	Card   deck.Card
	Rule   RuleKind
	Hidden bool
	Ended  bool
}

// Game holds one Borderland session
type Game struct {
	players  []game.Player
	current  int
	deck     *deck.Deck
	discard  []deck.Card
	card     *deck.Card
	revealed bool
	contest  Contest
	phase    Phase
	src      randutil.Source
	fixed    []deck.Card
}

// New seats the roster and shuffles a single deck
func New(names []string, opts ...Option) (*Game, error) {
	players, err := game.NewPlayers(names)
	if err != nil {
		return nil, err
	}
	cfg := newConfig(opts)
	g := &Game{players: players, src: cfg.src, fixed: cfg.cards}
	g.deal()
	return g, nil
}

func (g *Game) deal() {
	if g.fixed != nil {
		g.deck = deck.NewDeck(g.fixed)
	} else {
		g.deck = deck.NewShuffled(1, deck.BorderlandValue, g.src)
	}
	g.discard = nil
	g.card = nil
	g.revealed = false
	g.contest = Contest{}
	g.current = 0
	g.phase = Playing
}

// Reset starts over with a fresh deck and the same players
func (g *Game) Reset() {
	for i := range g.players {
		g.players[i].Active = true
	}
	g.deal()
}

// DrawCard turns over the top card for the current player. Drawing from an
// exhausted deck ends the game rather than failing.
func (g *Game) DrawCard() (Draw, error) {
	switch {
	case g.phase == Ended, g.phase == InContest:
		return Draw{}, game.Invalid(name, "draw", g.phase, "")
	case g.phase == Playing && g.card != nil:
		return Draw{}, game.Invalid(name, "draw", g.phase, "a card is already in play")
	}

	card, err := g.deck.Draw()
	if err != nil {
		g.discardCurrent()
		g.phase = Ended
		return Draw{Ended: true}, nil
	}

	g.discardCurrent()
	g.card = &card
	rule := RuleFor(card.Suit)
	g.revealed = !rule.StartsHidden()
	g.contest = Contest{}
	g.phase = Playing

	return Draw{Card: card, Rule: rule, Hidden: !g.revealed}, nil
}

// Reveal turns a hidden card face up
func (g *Game) Reveal() error {
	if g.card == nil {
		return game.Invalid(name, "reveal", g.phase, "no card drawn")
	}
	g.revealed = true
	return nil
}

// StartContest opens a duel over the current card at level 1. A card whose
// contest was resolved can be contested again while it stays in play.
func (g *Game) StartContest(challengerID string) error {
	if (g.phase != Playing && g.phase != Resolution) || g.card == nil || g.contest.Active {
		return game.Invalid(name, "start contest", g.phase, "")
	}
	p, err := g.player(challengerID)
	if err != nil {
		return err
	}
	g.contest = Contest{Active: true, Level: 1, BaseCard: *g.card, Challenger: p}
	g.phase = InContest
	return nil
}

// EscalateContest raises the stake one level and hands the challenge on
func (g *Game) EscalateContest(nextChallengerID string) error {
	if !g.contest.Active {
		return game.Invalid(name, "escalate", g.phase, "no contest")
	}
	if g.contest.Level >= MaxLevel {
		return game.Invalid(name, "escalate", g.phase, "contest already at maximum level")
	}
	p, err := g.player(nextChallengerID)
	if err != nil {
		return err
	}
	g.contest.Level++
	g.contest.Challenger = p
	return nil
}

// ResolveContest charges the accepting player and closes the contest
func (g *Game) ResolveContest(acceptingID string) (drink.Penalty, error) {
	if !g.contest.Active {
		return drink.Penalty{}, game.Invalid(name, "resolve", g.phase, "no contest")
	}
	if _, err := g.player(acceptingID); err != nil {
		return drink.Penalty{}, err
	}
	p := Penalty(g.contest.BaseCard, g.contest.Level)
	p.Recipient = acceptingID
	g.contest = Contest{}
	g.phase = Resolution
	return p, nil
}

// CancelContest drops the contest without charging anyone
func (g *Game) CancelContest() error {
	if !g.contest.Active {
		return game.Invalid(name, "cancel contest", g.phase, "no contest")
	}
	g.contest = Contest{}
	g.phase = Playing
	return nil
}

// CurrentPenalty previews the stake of the active contest
func (g *Game) CurrentPenalty() (drink.Penalty, bool) {
	if !g.contest.Active {
		return drink.Penalty{}, false
	}
	return Penalty(g.contest.BaseCard, g.contest.Level), true
}

// NextTurn passes the turn to the next active player and clears the table.
// With no active players left it does nothing.
func (g *Game) NextTurn() error {
	if g.phase == Ended {
		return game.Invalid(name, "next turn", g.phase, "")
	}
	next, ok := g.nextActive(g.current + 1)
	if !ok {
		return nil
	}
	g.current = next
	g.discardCurrent()
	g.contest = Contest{}
	g.phase = Playing
	return nil
}

// SetActive takes a player out of (or back into) the rotation
func (g *Game) SetActive(playerID string, active bool) error {
	for i := range g.players {
		if g.players[i].ID == playerID {
			g.players[i].Active = active
			return nil
		}
	}
	return game.ErrUnknownPlayer
}

func (g *Game) nextActive(from int) (int, bool) {
	n := len(g.players)
	for i := range n {
		pos := (from + i) % n
		if g.players[pos].Active {
			return pos, true
		}
	}
	return -1, false
}

func (g *Game) discardCurrent() {
	if g.card != nil {
		g.discard = append(g.discard, *g.card)
		g.card = nil
		g.revealed = false
	}
}

func (g *Game) player(id string) (game.Player, error) {
	for _, p := range g.players {
		if p.ID == id {
			return p, nil
		}
	}
	return game.Player{}, game.ErrUnknownPlayer
}

// Phase returns the current phase
func (g *Game) Phase() Phase { return g.phase }

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() game.Player { return g.players[g.current] }

// Players returns a copy of the seats
func (g *Game) Players() []game.Player {
	out := make([]game.Player, len(g.players))
	copy(out, g.players)
	return out
}

// CurrentCard returns the card in play, if any
func (g *Game) CurrentCard() (deck.Card, bool) {
	if g.card == nil {
		return deck.Card{}, false
	}
	return *g.card, true
}

// IsRevealed reports whether the current card is face up
func (g *Game) IsRevealed() bool { return g.revealed }

// Contest returns a copy of the contest state
func (g *Game) Contest() Contest { return g.contest }

// CardsRemaining returns how many cards are left to draw
func (g *Game) CardsRemaining() int { return g.deck.Len() }

// Discarded returns how many cards have left play
func (g *Game) Discarded() int { return len(g.discard) }
