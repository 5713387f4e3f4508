package blackjack

import "github.com/lox/blackout/internal/deck"

// Hand is fully derived from its cards; build it with HandValue and never
// edit the flags directly.
type Hand struct {
	Cards       []deck.Card
	Value       int
	IsSoft      bool
	IsBlackjack bool
	IsBusted    bool
}

// HandValue scores cards with aces at 11, demoting one ace at a time to 1
// while the total is over 21. A hand is soft when an ace still counts 11.
func HandValue(cards []deck.Card) Hand {
	value := 0
	aces := 0
	for _, c := range cards {
		if c.Rank == deck.Ace {
			aces++
		}
		value += deck.BlackjackValue(c.Rank)
	}

	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}

	cp := make([]deck.Card, len(cards))
	copy(cp, cards)
	return Hand{
		Cards:       cp,
		Value:       value,
		IsSoft:      aces > 0 && value <= 21,
		IsBlackjack: len(cards) == 2 && value == 21,
		IsBusted:    value > 21,
	}
}

// With returns the hand re-scored with one more card
func (h Hand) With(c deck.Card) Hand {
	cards := make([]deck.Card, 0, len(h.Cards)+1)
	cards = append(cards, h.Cards...)
	cards = append(cards, c)
	return HandValue(cards)
}

// clone copies the hand so callers cannot reach the engine's cards
func (h Hand) clone() Hand {
	h.Cards = append([]deck.Card(nil), h.Cards...)
	return h
}
