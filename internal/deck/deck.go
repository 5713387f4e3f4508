package deck

import (
	"errors"
	"fmt"

	"github.com/lox/blackout/internal/randutil"
)

// ErrEmptyDeck is returned when drawing from a deck with no cards left.
var ErrEmptyDeck = errors.New("deck is empty")

// New builds 52*numDecks cards valued by the given strategy, in suit then rank
// order. Multi-deck shoes suffix each ID with the copy index so IDs stay unique.
func New(numDecks int, value Valuer) []Card {
	if numDecks < 1 {
		numDecks = 1
	}
	cards := make([]Card, 0, 52*numDecks)
	for d := range numDecks {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				c := NewCard(suit, rank, value)
				if numDecks > 1 {
					c.ID = fmt.Sprintf("%s-%d", c.ID, d)
				}
				cards = append(cards, c)
			}
		}
	}
	return cards
}

// Shuffle permutes cards in place using Fisher-Yates
func Shuffle(cards []Card, src randutil.Source) {
	for i := len(cards) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Shuffled returns a shuffled copy, leaving the input untouched
func Shuffled(cards []Card, src randutil.Source) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	Shuffle(out, src)
	return out
}

// Deck is an ordered pile consumed from the front
type Deck struct {
	cards []Card
}

// NewDeck wraps a copy of the given cards; the first card is the top.
func NewDeck(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// NewShuffled builds and shuffles a fresh deck
func NewShuffled(numDecks int, value Valuer, src randutil.Source) *Deck {
	cards := New(numDecks, value)
	Shuffle(cards, src)
	return &Deck{cards: cards}
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// DrawN deals n cards or none at all
func (d *Deck) DrawN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("draw %d of %d: %w", n, len(d.cards), ErrEmptyDeck)
	}
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards, nil
}

// Peek returns the top card without removing it from the deck
func (d *Deck) Peek() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[0], true
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards, top first
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Refill replaces the contents with a shuffled copy of cards
func (d *Deck) Refill(cards []Card, src randutil.Source) {
	d.cards = Shuffled(cards, src)
}
