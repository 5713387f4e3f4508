package blackjack

import (
	"github.com/lox/blackout/internal/drink"
)

// Result is a player's outcome against the dealer
type Result int

const (
	Pending Result = iota
	Win
	Lose
	Push
	BlackjackWin
)

func (r Result) String() string {
	switch r {
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Push:
		return "push"
	case BlackjackWin:
		return "blackjack"
	default:
		return "pending"
	}
}

// BlackjackPayout is how many times the bet a natural hands out
const BlackjackPayout = 3

// Settle classifies a player hand against the dealer, in priority order:
// player bust, player natural, dealer bust, then the higher total.
func Settle(player, dealer Hand) Result {
	switch {
	case player.IsBusted:
		return Lose
	case player.IsBlackjack && !dealer.IsBlackjack:
		return BlackjackWin
	case dealer.IsBusted:
		return Win
	case player.Value > dealer.Value:
		return Win
	case player.Value < dealer.Value:
		return Lose
	default:
		return Push
	}
}

// Outcome is one player's settlement with what it costs
type Outcome struct {
	PlayerID string
	Result   Result
	Penalty  drink.Penalty
}

// penaltyFor turns a settled bet into sips: losers drink their bet, winners
// hand it out, a natural hands out three times the bet.
func penaltyFor(playerID string, bet int, r Result) drink.Penalty {
	switch r {
	case Lose:
		return drink.Sips(playerID, bet, drink.Drink)
	case Win:
		return drink.Sips(playerID, bet, drink.Give)
	case BlackjackWin:
		return drink.Sips(playerID, bet*BlackjackPayout, drink.Give)
	default:
		return drink.Sips(playerID, 0, drink.Drink)
	}
}
