package ninetynine

import (
	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/randutil"
)

const (
	DefaultLives    = 3
	DefaultHandSize = 3
	DefaultMaxTotal = 99

	// MaxHandSize bounds WithHandSize
	MaxHandSize = 6
)

// Option configures a Game during creation.
type Option func(*config)

type config struct {
	src      randutil.Source
	lives    int
	handSize int
	maxTotal int
	cards    []deck.Card
}

func newConfig(opts []Option) config {
	cfg := config{lives: DefaultLives, handSize: DefaultHandSize, maxTotal: DefaultMaxTotal}
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

// WithLives sets the starting lives per player.
func WithLives(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.lives = n
		}
	}
}

// WithHandSize sets how many cards each player holds.
func WithHandSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.handSize = n
		}
	}
}

// WithMaxTotal changes the bust limit. Kings set the total to this value.
func WithMaxTotal(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxTotal = n
		}
	}
}

// WithDeck deals from a fixed ordered deck instead of a shuffled one.
func WithDeck(cards []deck.Card) Option {
	return func(c *config) { c.cards = append([]deck.Card(nil), cards...) }
}
