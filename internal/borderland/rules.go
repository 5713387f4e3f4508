package borderland

import (
	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/drink"
)

// RuleKind is the rule a drawn card triggers. The wording of each rule is
// owned by the content layer; the engine only classifies.
type RuleKind int

const (
	Guess      RuleKind = iota // clubs: card stays face down until guessed
	Action                     // diamonds
	Question                   // hearts
	Constraint                 // spades: a dare
)

func (k RuleKind) String() string {
	switch k {
	case Guess:
		return "guess"
	case Action:
		return "action"
	case Question:
		return "question"
	case Constraint:
		return "constraint"
	default:
		return "unknown"
	}
}

// StartsHidden reports whether a card with this rule is drawn face down
func (k RuleKind) StartsHidden() bool {
	return k == Guess
}

// RuleFor maps a suit onto its rule
func RuleFor(s deck.Suit) RuleKind {
	switch s {
	case deck.Clubs:
		return Guess
	case deck.Diamonds:
		return Action
	case deck.Hearts:
		return Question
	default:
		return Constraint
	}
}

// Level is a contest escalation level, 0 meaning uncontested
type Level int

const MaxLevel Level = 3

var multipliers = [...]int{0: 1, 1: 1, 2: 2, 3: 4}

// Multiplier returns the stake multiplier for a level; out of range levels
// are clamped.
func Multiplier(l Level) int {
	if l < 0 {
		l = 0
	}
	if l > MaxLevel {
		l = MaxLevel
	}
	return multipliers[l]
}

// Penalty computes what accepting a card at a given level costs. Aces keep
// their shot unit and are multiplied like any other card.
func Penalty(card deck.Card, level Level) drink.Penalty {
	return drink.Penalty{
		Amount:      card.Value * Multiplier(level),
		Unit:        card.Unit,
		Action:      drink.Drink,
		Displayable: true,
	}
}
