package game

import "fmt"

// Kind identifies one of the mini-games
type Kind string

const (
	Borderland Kind = "borderland"
	Blackjack  Kind = "blackjack"
	NinetyNine Kind = "ninetynine"
	HorseRace  Kind = "horserace"
	PalmTree   Kind = "palmtree"
	Prompts    Kind = "prompts"
)

// Kinds lists the card games in hub order
var Kinds = []Kind{Borderland, Blackjack, NinetyNine, HorseRace, PalmTree, Prompts}

func (k Kind) String() string { return string(k) }

// ParseKind accepts the canonical names plus a few aliases
func ParseKind(s string) (Kind, error) {
	switch s {
	case "borderland", "border":
		return Borderland, nil
	case "blackjack", "bj", "21":
		return Blackjack, nil
	case "ninetynine", "99", "ninety-nine":
		return NinetyNine, nil
	case "horserace", "horse-race", "pmu":
		return HorseRace, nil
	case "palmtree", "palm-tree", "palmier":
		return PalmTree, nil
	case "prompts", "prompt":
		return Prompts, nil
	}
	return "", fmt.Errorf("unknown game %q", s)
}
