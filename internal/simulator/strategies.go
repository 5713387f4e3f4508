package simulator

import (
	"fmt"

	"github.com/lox/blackout/internal/blackjack"
	"github.com/lox/blackout/internal/borderland"
	"github.com/lox/blackout/internal/config"
	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/horserace"
	"github.com/lox/blackout/internal/ninetynine"
	"github.com/lox/blackout/internal/palmtree"
	"github.com/lox/blackout/internal/randutil"
)

// BlackjackRounds is how many rounds make up one simulated blackjack game
const BlackjackRounds = 10

// streams splits a game seed into the engine's shuffle and the strategy's
// decisions
func streams(seed int64) (shuffle, choices randutil.Source) {
	return randutil.New(seed), randutil.New(randutil.Derive(seed, 1))
}

// playBorderland draws through the deck. About a third of cards are
// contested by another player, escalated on a coin flip and accepted by a
// random player.
func playBorderland(names []string, seed int64, _ *config.Config) (run, error) {
	shuffle, rng := streams(seed)
	g, err := borderland.New(names, borderland.WithSource(shuffle))
	if err != nil {
		return run{}, err
	}
	players := g.Players()

	var r run
	for r.steps < maxSteps {
		r.steps++
		d, err := g.DrawCard()
		if err != nil {
			return r, err
		}
		if d.Ended {
			break
		}
		if d.Hidden {
			if err := g.Reveal(); err != nil {
				return r, err
			}
		}

		if rng.IntN(3) == 0 {
			if err := g.StartContest(players[rng.IntN(len(players))].ID); err != nil {
				return r, err
			}
			for g.Contest().Level < borderland.MaxLevel && rng.IntN(2) == 0 {
				if err := g.EscalateContest(players[rng.IntN(len(players))].ID); err != nil {
					return r, err
				}
			}
			level := g.Contest().Level
			p, err := g.ResolveContest(players[rng.IntN(len(players))].ID)
			if err != nil {
				return r, err
			}
			r.penalties = append(r.penalties, p)
			r.outcomes = append(r.outcomes, fmt.Sprintf("contest level %d", level))
		} else {
			r.outcomes = append(r.outcomes, d.Rule.String())
		}

		if err := g.NextTurn(); err != nil {
			return r, err
		}
	}
	return r, nil
}

// playBlackjack plays BlackjackRounds rounds with a simple fixed strategy:
// double on 10 or 11, otherwise hit below 17.
func playBlackjack(names []string, seed int64, settings *config.Config) (run, error) {
	shuffle, rng := streams(seed)
	c := settings.Blackjack
	g, err := blackjack.New(names,
		blackjack.WithSource(shuffle),
		blackjack.WithDecks(c.Decks),
		blackjack.WithBetLimits(c.MinBet, c.MaxBet),
		blackjack.WithReshuffleBelow(c.ReshuffleBelow),
	)
	if err != nil {
		return run{}, err
	}
	minBet, maxBet := g.BetLimits()

	var r run
	for range BlackjackRounds {
		for _, p := range g.Players() {
			if _, err := g.PlaceBet(p.ID, minBet+rng.IntN(maxBet-minBet+1)); err != nil {
				return r, err
			}
		}
		if err := g.StartDealing(); err != nil {
			return r, err
		}
		for g.Phase() == blackjack.PlayerTurn && r.steps < maxSteps {
			r.steps++
			p, _ := g.CurrentPlayer()
			v := p.Hand.Value
			switch {
			case g.CanDoubleDown() && (v == 10 || v == 11):
				_, err = g.DoubleDown()
			case v < blackjack.DealerStandsOn && g.CanHit():
				_, err = g.Hit()
			default:
				err = g.Stand()
			}
			if err != nil {
				return r, err
			}
		}
		for _, o := range g.Outcomes() {
			r.outcomes = append(r.outcomes, o.Result.String())
			if o.Penalty.Displayable {
				r.penalties = append(r.penalties, o.Penalty)
			}
		}
		g.NewRound()
	}
	return r, nil
}

// playNinetyNine plays the lowest legal card, keeping kings for last, and
// counts aces low.
func playNinetyNine(names []string, seed int64, settings *config.Config) (run, error) {
	shuffle, _ := streams(seed)
	c := settings.NinetyNine
	g, err := ninetynine.New(names,
		ninetynine.WithSource(shuffle),
		ninetynine.WithLives(c.Lives),
		ninetynine.WithHandSize(c.HandSize),
		ninetynine.WithMaxTotal(c.MaxTotal),
	)
	if err != nil {
		return run{}, err
	}

	var r run
	for g.Phase() == ninetynine.Playing && r.steps < maxSteps {
		r.steps++
		index, ace := chooseNinetyNine(g)
		res, err := g.PlayCard(index, ace)
		if err != nil {
			return r, err
		}
		switch {
		case res.Legal:
			r.outcomes = append(r.outcomes, "legal")
		case res.Eliminated:
			r.outcomes = append(r.outcomes, "eliminated")
		default:
			r.outcomes = append(r.outcomes, "bust")
		}
		if res.Penalty.Displayable {
			r.penalties = append(r.penalties, res.Penalty)
		}
	}
	if g.Phase() == ninetynine.Ended {
		r.loser = g.Loser()
	}
	return r, nil
}

func chooseNinetyNine(g *ninetynine.Game) (index, ace int) {
	hand := g.CurrentPlayer().Hand
	best, bestScore := -1, 0
	bestAce := 1
	for i, c := range hand {
		for _, a := range []int{11, 1} {
			if !g.CanPlay(c, a) {
				continue
			}
			score := ninetynine.Contribution(c, a)
			if ninetynine.CardEffect(c.Rank) == ninetynine.SetTo99 {
				score = 1000
			}
			if best < 0 || score < bestScore {
				best, bestScore, bestAce = i, score, a
			}
			if c.Rank != deck.Ace {
				break
			}
		}
	}
	if best < 0 {
		return 0, 1
	}
	return best, bestAce
}

// playHorseRace has every player back a random horse for 1 to 5 sips
func playHorseRace(names []string, seed int64, settings *config.Config) (run, error) {
	shuffle, rng := streams(seed)
	race, err := horserace.New(names,
		horserace.WithSource(shuffle),
		horserace.WithFinish(settings.HorseRace.Finish),
	)
	if err != nil {
		return run{}, err
	}
	for _, p := range race.Players() {
		horse := horserace.Lanes[rng.IntN(len(horserace.Lanes))]
		if err := race.PlaceBet(p.ID, horse, 1+rng.IntN(5)); err != nil {
			return run{}, err
		}
	}
	if err := race.StartRace(); err != nil {
		return run{}, err
	}

	var r run
	for race.Phase() == horserace.Racing {
		r.steps++
		step, err := race.DrawNext()
		if err != nil {
			return r, err
		}
		if step.Exhausted {
			r.outcomes = append(r.outcomes, "no winner")
		}
	}
	if suit, ok := race.Winner(); ok {
		r.outcomes = append(r.outcomes, suit.String())
	}
	for _, p := range race.Results() {
		r.penalties = append(r.penalties, p.Penalty)
	}
	return r, nil
}

// playPalmTree flips the circle in random order then the trunk
func playPalmTree(names []string, seed int64, settings *config.Config) (run, error) {
	shuffle, rng := streams(seed)
	g, err := palmtree.New(names,
		palmtree.WithSource(shuffle),
		palmtree.WithCircle(settings.PalmTree.CircleCards),
	)
	if err != nil {
		return run{}, err
	}

	var r run
	for g.Phase() == palmtree.Playing {
		r.steps++
		var open []int
		for _, s := range g.Circle() {
			if !s.Drawn {
				open = append(open, s.Position)
			}
		}
		rev, err := g.DrawCircle(open[rng.IntN(len(open))])
		if err != nil {
			return r, err
		}
		r.penalties = append(r.penalties, rev.Penalty)
		r.outcomes = append(r.outcomes, rev.Penalty.Action.String())
	}
	rev, err := g.RevealTrunk()
	if err != nil {
		return r, err
	}
	r.steps++
	r.penalties = append(r.penalties, rev.Penalty)
	r.outcomes = append(r.outcomes, "trunk")
	return r, nil
}
