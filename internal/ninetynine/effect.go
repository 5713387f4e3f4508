package ninetynine

import "github.com/lox/blackout/internal/deck"

// Effect classifies what a rank does to the running total
type Effect int

const (
	Add Effect = iota
	Reverse
	Skip
	Minus10
	SetTo99
	AceChoice
)

func (e Effect) String() string {
	switch e {
	case Reverse:
		return "reverse"
	case Skip:
		return "skip"
	case Minus10:
		return "minus_10"
	case SetTo99:
		return "set_to_99"
	case AceChoice:
		return "ace_choice"
	default:
		return "add"
	}
}

// CardEffect returns the special effect of a rank
func CardEffect(r deck.Rank) Effect {
	switch r {
	case deck.Four:
		return Reverse
	case deck.Nine:
		return Skip
	case deck.Ten:
		return Minus10
	case deck.King:
		return SetTo99
	case deck.Ace:
		return AceChoice
	default:
		return Add
	}
}

// Contribution is what a card adds to the total. Kings contribute nothing
// here because they replace the total instead. ace must be 1 or 11 and is
// ignored for other ranks.
func Contribution(c deck.Card, ace int) int {
	switch CardEffect(c.Rank) {
	case Reverse, Skip, SetTo99:
		return 0
	case Minus10:
		return -10
	case AceChoice:
		return ace
	}
	if c.Rank.IsFace() {
		return 10
	}
	return int(c.Rank)
}

// Exceeds reports whether playing c on total would go over limit. A King is
// always safe.
func Exceeds(total, limit int, c deck.Card, ace int) bool {
	if CardEffect(c.Rank) == SetTo99 {
		return false
	}
	return total+Contribution(c, ace) > limit
}
