package deck

import (
	"fmt"
	"strings"
)

// ParseCard parses a card such as "AS", "10h", "Td" or "kc"
func ParseCard(s string, value Valuer) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}

	var suit Suit
	switch s[len(s)-1] {
	case 'C':
		suit = Clubs
	case 'D':
		suit = Diamonds
	case 'H':
		suit = Hearts
	case 'S':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid suit: %c", s[len(s)-1])
	}

	var rank Rank
	switch r := s[:len(s)-1]; r {
	case "A":
		rank = Ace
	case "T", "10":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		if len(r) != 1 || r[0] < '2' || r[0] > '9' {
			return Card{}, fmt.Errorf("invalid rank: %s", r)
		}
		rank = Rank(r[0] - '0')
	}

	return NewCard(suit, rank, value), nil
}

// ParseCards parses a whitespace or comma separated list of cards
func ParseCards(s string, value Valuer) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f, value)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixtures; it panics on bad input
func MustParseCards(s string, value Valuer) []Card {
	cards, err := ParseCards(s, value)
	if err != nil {
		panic(err)
	}
	return cards
}

// ParseSuit accepts a suit name or its initial, case-insensitive
func ParseSuit(s string) (Suit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "clubs", "club":
		return Clubs, nil
	case "d", "diamonds", "diamond":
		return Diamonds, nil
	case "h", "hearts", "heart":
		return Hearts, nil
	case "s", "spades", "spade":
		return Spades, nil
	default:
		return 0, fmt.Errorf("invalid suit: %q", s)
	}
}
