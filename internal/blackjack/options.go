package blackjack

import (
	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/randutil"
)

const (
	DefaultDecks          = 6
	DefaultMinBet         = 1
	DefaultMaxBet         = 10
	DefaultReshuffleBelow = 52
	DealerStandsOn        = 17
)

// Option configures a Game during creation.
type Option func(*config)

type config struct {
	src            randutil.Source
	decks          int
	minBet, maxBet int
	reshuffleBelow int
	cards          []deck.Card // If provided, used as the first shoe in this order
	manualDealer   bool
}

func newConfig(opts []Option) config {
	cfg := config{
		decks:          DefaultDecks,
		minBet:         DefaultMinBet,
		maxBet:         DefaultMaxBet,
		reshuffleBelow: DefaultReshuffleBelow,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.src == nil {
		cfg.src, _ = randutil.NewTimeSeeded()
	}
	return cfg
}

// WithSource sets the shuffle source.
func WithSource(src randutil.Source) Option {
	return func(c *config) { c.src = src }
}

// WithDecks sets how many decks make up the shoe.
func WithDecks(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.decks = n
		}
	}
}

// WithBetLimits sets the inclusive bet range.
func WithBetLimits(minBet, maxBet int) Option {
	return func(c *config) {
		if minBet > 0 && maxBet >= minBet {
			c.minBet, c.maxBet = minBet, maxBet
		}
	}
}

// WithReshuffleBelow sets the shoe size under which NewRound builds a fresh shoe.
func WithReshuffleBelow(n int) Option {
	return func(c *config) { c.reshuffleBelow = n }
}

// WithDeck uses a fixed ordered shoe first. Once it runs out a fresh shuffled
// shoe replaces it.
func WithDeck(cards []deck.Card) Option {
	return func(c *config) { c.cards = append([]deck.Card(nil), cards...) }
}

// WithManualDealer leaves the dealer turn to an explicit PlayDealerTurn call
// so a front-end can pace the reveal.
func WithManualDealer() Option {
	return func(c *config) { c.manualDealer = true }
}
