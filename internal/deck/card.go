package deck

import (
	"fmt"
	"strconv"
)

// Suit represents a card suit
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in construction order.
var Suits = [...]Suit{Clubs, Diamonds, Hearts, Spades}

// String returns the lowercase suit name used in card IDs
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "clubs"
	case Diamonds:
		return "diamonds"
	case Hearts:
		return "hearts"
	case Spades:
		return "spades"
	default:
		return "?"
	}
}

// Symbol returns the unicode pip for the suit
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank, Ace low.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists every rank in construction order.
var Ranks = [...]Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// String returns the face symbol of the rank ("A", "2".."10", "J", "Q", "K")
func (r Rank) String() string {
	switch {
	case r == Ace:
		return "A"
	case r >= Two && r <= Ten:
		return strconv.Itoa(int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	default:
		return "?"
	}
}

// IsFace returns true for J, Q and K
func (r Rank) IsFace() bool {
	return r >= Jack && r <= King
}

// Unit is the drinking unit a card is paid in.
type Unit string

const (
	Sips Unit = "sips"
	Shot Unit = "shot"
)

// UnitFor returns the unit carried by a rank: aces are shots, everything else sips.
func UnitFor(r Rank) Unit {
	if r == Ace {
		return Shot
	}
	return Sips
}

// Valuer maps a rank onto its numeric value for one game. Every game supplies
// its own so that the same physical rank can mean different things.
type Valuer func(Rank) int

// BorderlandValue: A=1, pips at face value, court cards 10.
func BorderlandValue(r Rank) int {
	if r.IsFace() {
		return 10
	}
	return int(r)
}

// BlackjackValue: A=11 (demoted during hand valuation), court cards 10.
func BlackjackValue(r Rank) int {
	switch {
	case r == Ace:
		return 11
	case r.IsFace():
		return 10
	default:
		return int(r)
	}
}

// NinetyNineValue is the printed value: A=1, J=11, Q=12, K=13. The effect of a
// card on the running total is resolved by the ninetynine package.
func NinetyNineValue(r Rank) int {
	return int(r)
}

// Card is an immutable playing card
type Card struct {
	ID    string
	Suit  Suit
	Rank  Rank
	Value int
	Unit  Unit
}

// NewCard creates a card valued by the given strategy
func NewCard(suit Suit, rank Rank, value Valuer) Card {
	return Card{
		ID:    fmt.Sprintf("%s-%s", suit, rank),
		Suit:  suit,
		Rank:  rank,
		Value: value(rank),
		Unit:  UnitFor(rank),
	}
}

// String returns the string representation of a card (e.g., "K♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}
