// Package blackjack implements a multi-player blackjack round against a
// dealer, where bets are counted in sips.
package blackjack

import (
	"fmt"

	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/game"
)

const name = "blackjack"

// Phase of a round
type Phase int

const (
	Betting Phase = iota
	Dealing
	PlayerTurn
	DealerTurn
	Finished
)

func (p Phase) String() string {
	switch p {
	case Betting:
		return "betting"
	case Dealing:
		return "dealing"
	case PlayerTurn:
		return "player_turn"
	case DealerTurn:
		return "dealer_turn"
	case Finished:
		return "result"
	default:
		return "unknown"
	}
}

// Player is a seat at the table
type Player struct {
	ID       string
	Name     string
	Hand     Hand
	Bet      int
	Standing bool
	Doubled  bool
	Result   Result
}

// Dealer holds the house hand. Only the first card is visible until Revealed.
type Dealer struct {
	Hand     Hand
	Revealed bool
}

// Game is a blackjack table
type Game struct {
	cfg     config
	shoe    *deck.Deck
	players []Player
	dealer  Dealer
	current int
	phase   Phase
}

// New seats the roster and builds the shoe
func New(names []string, opts ...Option) (*Game, error) {
	seated, err := game.NewPlayers(names)
	if err != nil {
		return nil, err
	}
	cfg := newConfig(opts)
	g := &Game{cfg: cfg}
	for _, p := range seated {
		g.players = append(g.players, Player{ID: p.ID, Name: p.Name})
	}
	if cfg.cards != nil {
		g.shoe = deck.NewDeck(cfg.cards)
	} else {
		g.shoe = g.freshShoe()
	}
	return g, nil
}

func (g *Game) freshShoe() *deck.Deck {
	return deck.NewShuffled(g.cfg.decks, deck.BlackjackValue, g.cfg.src)
}

// draw takes the top card, replacing an exhausted shoe mid-round
func (g *Game) draw() deck.Card {
	c, err := g.shoe.Draw()
	if err != nil {
		g.shoe = g.freshShoe()
		c, _ = g.shoe.Draw()
	}
	return c
}

func (g *Game) player(id string) (*Player, error) {
	for i := range g.players {
		if g.players[i].ID == id {
			return &g.players[i], nil
		}
	}
	return nil, fmt.Errorf("%s: %w: %q", name, game.ErrUnknownPlayer, id)
}

// PlaceBet sets a player's bet, clamped to the table limits. The clamped
// amount is returned.
func (g *Game) PlaceBet(playerID string, amount int) (int, error) {
	if g.phase != Betting {
		return 0, game.Invalid(name, "place bet", g.phase, "")
	}
	p, err := g.player(playerID)
	if err != nil {
		return 0, err
	}
	p.Bet = max(g.cfg.minBet, min(g.cfg.maxBet, amount))
	return p.Bet, nil
}

// StartDealing gives two cards to every player then two to the dealer.
// Players who never bet play for the minimum.
func (g *Game) StartDealing() error {
	if g.phase != Betting {
		return game.Invalid(name, "deal", g.phase, "")
	}
	g.phase = Dealing

	for i := range g.players {
		p := &g.players[i]
		if p.Bet == 0 {
			p.Bet = g.cfg.minBet
		}
		p.Hand = HandValue([]deck.Card{g.draw(), g.draw()})
	}
	g.dealer = Dealer{Hand: HandValue([]deck.Card{g.draw(), g.draw()})}

	g.current = 0
	g.phase = PlayerTurn
	return nil
}

// Hit draws a card for the current player. A bust stands the player
// automatically and moves play on.
func (g *Game) Hit() (Hand, error) {
	if g.phase != PlayerTurn {
		return Hand{}, game.Invalid(name, "hit", g.phase, "")
	}
	if !g.CanHit() {
		return Hand{}, game.Invalid(name, "hit", g.phase, "player cannot take another card")
	}
	p := &g.players[g.current]
	p.Hand = p.Hand.With(g.draw())
	hand := p.Hand.clone()
	if hand.IsBusted {
		p.Standing = true
		g.advance()
	}
	return hand, nil
}

// Stand ends the current player's turn
func (g *Game) Stand() error {
	if g.phase != PlayerTurn {
		return game.Invalid(name, "stand", g.phase, "")
	}
	g.players[g.current].Standing = true
	g.advance()
	return nil
}

// DoubleDown doubles the bet on a two-card hand, draws exactly one card and
// stands.
func (g *Game) DoubleDown() (Hand, error) {
	if g.phase != PlayerTurn {
		return Hand{}, game.Invalid(name, "double down", g.phase, "")
	}
	if !g.CanDoubleDown() {
		return Hand{}, game.Invalid(name, "double down", g.phase, "only allowed on the first two cards")
	}
	p := &g.players[g.current]
	p.Bet *= 2
	p.Doubled = true
	p.Hand = p.Hand.With(g.draw())
	p.Standing = true
	hand := p.Hand.clone()
	g.advance()
	return hand, nil
}

// advance moves to the next player still to act, or hands over to the dealer
func (g *Game) advance() {
	for i := g.current + 1; i < len(g.players); i++ {
		if !g.players[i].Standing {
			g.current = i
			return
		}
	}
	g.phase = DealerTurn
	if !g.cfg.manualDealer {
		g.playDealer()
	}
}

// PlayDealerTurn reveals the hole card, draws to 17 and settles every bet.
// It is only needed with WithManualDealer.
func (g *Game) PlayDealerTurn() error {
	if g.phase != DealerTurn {
		return game.Invalid(name, "dealer turn", g.phase, "")
	}
	g.playDealer()
	return nil
}

func (g *Game) playDealer() {
	g.dealer.Revealed = true

	allBusted := true
	for _, p := range g.players {
		if !p.Hand.IsBusted {
			allBusted = false
			break
		}
	}
	if !allBusted {
		for g.dealer.Hand.Value < DealerStandsOn {
			g.dealer.Hand = g.dealer.Hand.With(g.draw())
		}
	}

	for i := range g.players {
		g.players[i].Result = Settle(g.players[i].Hand, g.dealer.Hand)
	}
	g.phase = Finished
}

// Outcomes lists every player's settlement. Empty until the round is over.
func (g *Game) Outcomes() []Outcome {
	if g.phase != Finished {
		return nil
	}
	out := make([]Outcome, 0, len(g.players))
	for _, p := range g.players {
		out = append(out, Outcome{
			PlayerID: p.ID,
			Result:   p.Result,
			Penalty:  penaltyFor(p.ID, p.Bet, p.Result),
		})
	}
	return out
}

// NewRound clears hands and bets, building a fresh shoe first when the
// current one is running low. It may be called at any point to abandon a
// round.
func (g *Game) NewRound() {
	if g.shoe.Len() < g.cfg.reshuffleBelow {
		g.shoe = g.freshShoe()
	}
	for i := range g.players {
		p := &g.players[i]
		*p = Player{ID: p.ID, Name: p.Name}
	}
	g.dealer = Dealer{}
	g.current = 0
	g.phase = Betting
}

// Reset starts the table over with a fresh shoe
func (g *Game) Reset() {
	g.shoe = g.freshShoe()
	g.NewRound()
}

// CanHit reports whether the current player may take a card
func (g *Game) CanHit() bool {
	if g.phase != PlayerTurn {
		return false
	}
	p := g.players[g.current]
	return !p.Standing && !p.Hand.IsBusted
}

// CanDoubleDown reports whether the current player may double
func (g *Game) CanDoubleDown() bool {
	if g.phase != PlayerTurn {
		return false
	}
	p := g.players[g.current]
	return !p.Standing && !p.Doubled && len(p.Hand.Cards) == 2
}

// Phase returns the current phase
func (g *Game) Phase() Phase { return g.phase }

// CurrentPlayer returns the player to act, if any
func (g *Game) CurrentPlayer() (Player, bool) {
	if g.phase != PlayerTurn {
		return Player{}, false
	}
	p := g.players[g.current]
	p.Hand = p.Hand.clone()
	return p, true
}

// Players returns a copy of the seats
func (g *Game) Players() []Player {
	out := make([]Player, len(g.players))
	for i, p := range g.players {
		p.Hand = p.Hand.clone()
		out[i] = p
	}
	return out
}

// Dealer returns the dealer's state
func (g *Game) Dealer() Dealer {
	d := g.dealer
	d.Hand = d.Hand.clone()
	return d
}

// DealerUpCard returns the card the dealer shows face up
func (g *Game) DealerUpCard() (deck.Card, bool) {
	if len(g.dealer.Hand.Cards) == 0 {
		return deck.Card{}, false
	}
	return g.dealer.Hand.Cards[0], true
}

// ShoeRemaining is the number of undealt cards
func (g *Game) ShoeRemaining() int { return g.shoe.Len() }

// BetLimits returns the inclusive bet range
func (g *Game) BetLimits() (minBet, maxBet int) { return g.cfg.minBet, g.cfg.maxBet }
