// Package horserace implements the betting race: each suit is a horse, every
// drawn card moves its horse one step and players bet sips on the winner.
package horserace

import (
	"fmt"

	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/drink"
	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/randutil"
)

const name = "horserace"

// DefaultFinish is the number of steps a horse needs to win
const DefaultFinish = 7

// Lanes is the order horses are shown in
var Lanes = [...]deck.Suit{deck.Hearts, deck.Diamonds, deck.Clubs, deck.Spades}

// Phase of the race
type Phase int

const (
	Betting Phase = iota
	Racing
	Finished
)

func (p Phase) String() string {
	switch p {
	case Betting:
		return "betting"
	case Racing:
		return "racing"
	case Finished:
		return "result"
	default:
		return "unknown"
	}
}

// Bet is one player's stake on a horse
type Bet struct {
	PlayerID string
	Horse    deck.Suit
	Amount   int
}

// Horse is a lane and how far it has run
type Horse struct {
	Suit     deck.Suit
	Position int
}

// Step is the outcome of one draw
type Step struct {
	Card     deck.Card
	Position int
	Won      bool
	// Exhausted is set when the deck ran out before any horse finished
	Exhausted bool
}

// Payout settles a bet once the race is over
type Payout struct {
	Bet     Bet
	Won     bool
	Penalty drink.Penalty
}

// Option configures a Race during creation.
type Option func(*config)

type config struct {
	src    randutil.Source
	finish int
	cards  []deck.Card
}

// WithSource sets the shuffle source.
func WithSource(src randutil.Source) Option {
	return func(c *config) { c.src = src }
}

// WithFinish sets how many steps win the race.
func WithFinish(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.finish = n
		}
	}
}

// WithDeck races on a fixed ordered deck.
func WithDeck(cards []deck.Card) Option {
	return func(c *config) { c.cards = append([]deck.Card(nil), cards...) }
}

// Race holds one horse race
type Race struct {
	cfg       config
	players   []game.Player
	bets      []Bet
	positions map[deck.Suit]int
	deck      *deck.Deck
	drawn     []deck.Card
	winner    *deck.Suit
	phase     Phase
}

// New seats the roster and shuffles a deck with the aces removed
func New(names []string, opts ...Option) (*Race, error) {
	players, err := game.NewPlayers(names)
	if err != nil {
		return nil, err
	}
	cfg := config{finish: DefaultFinish}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.src == nil {
		cfg.src, _ = randutil.NewTimeSeeded()
	}
	r := &Race{cfg: cfg, players: players}
	r.Reset()
	return r, nil
}

// RaceDeck is a single deck without aces, since the aces are the horses
func RaceDeck() []deck.Card {
	var out []deck.Card
	for _, c := range deck.New(1, deck.BorderlandValue) {
		if !c.IsAce() {
			out = append(out, c)
		}
	}
	return out
}

// Reset clears bets and puts every horse back at the gate
func (r *Race) Reset() {
	if r.cfg.cards != nil {
		r.deck = deck.NewDeck(r.cfg.cards)
	} else {
		r.deck = deck.NewDeck(deck.Shuffled(RaceDeck(), r.cfg.src))
	}
	r.bets = nil
	r.drawn = nil
	r.winner = nil
	r.positions = make(map[deck.Suit]int, len(Lanes))
	r.phase = Betting
}

// PlaceBet stakes amount sips on a horse, replacing the player's previous bet
func (r *Race) PlaceBet(playerID string, horse deck.Suit, amount int) error {
	if r.phase != Betting {
		return game.Invalid(name, "place bet", r.phase, "")
	}
	if !r.seated(playerID) {
		return fmt.Errorf("%s: %w: %q", name, game.ErrUnknownPlayer, playerID)
	}
	if amount <= 0 {
		return fmt.Errorf("%s: bet of %d: %w", name, amount, game.ErrOutOfRange)
	}
	bet := Bet{PlayerID: playerID, Horse: horse, Amount: amount}
	for i := range r.bets {
		if r.bets[i].PlayerID == playerID {
			r.bets[i] = bet
			return nil
		}
	}
	r.bets = append(r.bets, bet)
	return nil
}

// RemoveBet withdraws a player's bet, if any
func (r *Race) RemoveBet(playerID string) error {
	if r.phase != Betting {
		return game.Invalid(name, "remove bet", r.phase, "")
	}
	for i := range r.bets {
		if r.bets[i].PlayerID == playerID {
			r.bets = append(r.bets[:i], r.bets[i+1:]...)
			return nil
		}
	}
	return nil
}

// StartRace closes betting. At least one bet is needed.
func (r *Race) StartRace() error {
	if r.phase != Betting {
		return game.Invalid(name, "start race", r.phase, "")
	}
	if len(r.bets) == 0 {
		return game.Invalid(name, "start race", r.phase, "no bets placed")
	}
	r.phase = Racing
	return nil
}

// DrawNext moves the horse matching the next card. The first horse to reach
// the finish ends the race.
func (r *Race) DrawNext() (Step, error) {
	if r.phase != Racing {
		return Step{}, game.Invalid(name, "draw", r.phase, "")
	}
	card, err := r.deck.Draw()
	if err != nil {
		r.phase = Finished
		return Step{Exhausted: true}, nil
	}
	r.drawn = append(r.drawn, card)
	r.positions[card.Suit]++
	step := Step{Card: card, Position: r.positions[card.Suit]}
	if step.Position >= r.cfg.finish {
		suit := card.Suit
		r.winner = &suit
		r.phase = Finished
		step.Won = true
	}
	return step, nil
}

// Results settles every bet: backers of the winner hand out their stake and
// everyone else drinks it. Empty until a horse has won.
func (r *Race) Results() []Payout {
	if r.winner == nil {
		return nil
	}
	out := make([]Payout, 0, len(r.bets))
	for _, b := range r.bets {
		won := b.Horse == *r.winner
		action := drink.Drink
		if won {
			action = drink.Give
		}
		out = append(out, Payout{Bet: b, Won: won, Penalty: drink.Sips(b.PlayerID, b.Amount, action)})
	}
	return out
}

func (r *Race) seated(id string) bool {
	for _, p := range r.players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Phase returns the current phase
func (r *Race) Phase() Phase { return r.phase }

// Finish is the number of steps needed to win
func (r *Race) Finish() int { return r.cfg.finish }

// Players returns the seated players
func (r *Race) Players() []game.Player {
	return append([]game.Player(nil), r.players...)
}

// Bets returns a copy of the open bets
func (r *Race) Bets() []Bet {
	return append([]Bet(nil), r.bets...)
}

// Horses returns every lane's position in display order
func (r *Race) Horses() []Horse {
	out := make([]Horse, 0, len(Lanes))
	for _, s := range Lanes {
		out = append(out, Horse{Suit: s, Position: r.positions[s]})
	}
	return out
}

// Winner returns the winning horse once the race is over
func (r *Race) Winner() (deck.Suit, bool) {
	if r.winner == nil {
		return 0, false
	}
	return *r.winner, true
}

// Drawn returns the cards drawn so far in order
func (r *Race) Drawn() []deck.Card {
	return append([]deck.Card(nil), r.drawn...)
}
