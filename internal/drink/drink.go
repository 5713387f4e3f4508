// Package drink defines the structured penalty every resolving engine
// operation returns. Rendering it is left to the presentation layer.
package drink

import (
	"fmt"

	"github.com/lox/blackout/internal/deck"
)

// Action says whether the recipient drinks the amount or hands it out.
type Action int

const (
	Drink Action = iota
	Give
)

func (a Action) String() string {
	if a == Give {
		return "give"
	}
	return "drink"
}

// Penalty is the outcome of a resolving operation
type Penalty struct {
	Amount      int
	Unit        deck.Unit
	Recipient   string // player ID
	Action      Action
	Displayable bool // false for outcomes with nothing to pay (a push)
}

// Sips builds a displayable sip penalty
func Sips(recipient string, amount int, action Action) Penalty {
	return Penalty{Amount: amount, Unit: deck.Sips, Recipient: recipient, Action: action, Displayable: amount > 0}
}

// Shots builds a displayable shot penalty
func Shots(recipient string, amount int) Penalty {
	return Penalty{Amount: amount, Unit: deck.Shot, Recipient: recipient, Action: Drink, Displayable: amount > 0}
}

// IsZero reports whether nothing needs to be paid
func (p Penalty) IsZero() bool {
	return p.Amount == 0
}

// String is a compact form for logs, e.g. "player-1 drink 4 sips"
func (p Penalty) String() string {
	return fmt.Sprintf("%s %s %d %s", p.Recipient, p.Action, p.Amount, p.Unit)
}
