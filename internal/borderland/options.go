package borderland

import (
	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/randutil"
)

// Option configures a Game during creation.
type Option func(*config)

type config struct {
	src   randutil.Source
	cards []deck.Card // If provided, dealt in this exact order
}

func newConfig(opts []Option) config {
	var cfg config
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
	return func(c *config) {
		c.src = src
	}
}

// WithDeck deals a fixed, already ordered deck (top card first). Reset deals
// the same order again.
func WithDeck(cards []deck.Card) Option {
	return func(c *config) {
		c.cards = append([]deck.Card(nil), cards...)
	}
}
