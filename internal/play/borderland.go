package play

import (
	"fmt"

	"github.com/lox/blackout/internal/borderland"
	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/session"
)

type borderlandDriver struct {
	base
	g *borderland.Game
}

func newBorderland(s *session.Session) (*borderlandDriver, error) {
	g, err := s.Borderland()
	if err != nil {
		return nil, err
	}
	d := &borderlandDriver{g: g}
	d.base = base{
		s:     s,
		kind:  game.Borderland,
		phase: func() string { return g.Phase().String() },
		done:  func() bool { return g.Phase() == borderland.Ended },
		loser: noLoser,
		reset: g.Reset,
	}
	d.cmds = newCommandSet(
		&Command{Name: "draw", Aliases: []string{"d"}, Description: "Draw a card for the current player", Handler: d.draw},
		&Command{Name: "reveal", Aliases: []string{"r"}, Description: "Turn a face-down card over", Handler: d.reveal},
		&Command{Name: "contest", Aliases: []string{"c"}, Usage: "<player>", Description: "Challenge the card at level 1", Handler: d.contest},
		&Command{Name: "raise", Aliases: []string{"e"}, Usage: "<player>", Description: "Escalate the contest and pass it on", Handler: d.raise},
		&Command{Name: "accept", Aliases: []string{"a"}, Usage: "<player>", Description: "Accept the stake and drink it", Handler: d.accept},
		&Command{Name: "cancel", Description: "Drop the contest", Handler: d.cancel},
		&Command{Name: "next", Aliases: []string{"n"}, Description: "Pass the turn", Handler: d.next},
		&Command{Name: "restart", Description: "Start over with a fresh deck", Handler: d.restart},
	)
	return d, nil
}

func (d *borderlandDriver) Title() string { return "Borderland" }

func (d *borderlandDriver) Status() []string {
	out := []string{"Turn: " + d.g.CurrentPlayer().Name}
	if c, ok := d.g.CurrentCard(); ok {
		rule := borderland.RuleFor(c.Suit)
		if d.g.IsRevealed() {
			out = append(out, fmt.Sprintf("Card: %s (%s, %s)", c, rule, Amount(c.Value, c.Unit)))
		} else {
			out = append(out, fmt.Sprintf("Card: face down (%s)", rule))
		}
	} else {
		out = append(out, "Card: none")
	}
	if c := d.g.Contest(); c.Active {
		stake, _ := d.g.CurrentPenalty()
		out = append(out, fmt.Sprintf("Contest: level %d, %s challenging for %s", c.Level, c.Challenger.Name, Amount(stake.Amount, stake.Unit)))
	}
	out = append(out, fmt.Sprintf("Deck: %d left", d.g.CardsRemaining()))
	if d.g.Phase() == borderland.Ended {
		out = append(out, "Game over")
	}
	return out
}

func (d *borderlandDriver) draw([]string) (Response, error) {
	p := d.g.CurrentPlayer()
	dr, err := d.g.DrawCard()
	if err != nil {
		return Response{}, err
	}
	switch {
	case dr.Ended:
		return reply("The deck is empty, game over"), nil
	case dr.Hidden:
		return reply("%s draws a face-down card (%s)", p.Name, dr.Rule), nil
	}
	return reply("%s draws %s (%s, %s)", p.Name, dr.Card, dr.Rule, Amount(dr.Card.Value, dr.Card.Unit)), nil
}

func (d *borderlandDriver) reveal([]string) (Response, error) {
	if err := d.g.Reveal(); err != nil {
		return Response{}, err
	}
	c, _ := d.g.CurrentCard()
	return reply("The card is %s", c), nil
}

func (d *borderlandDriver) contest(args []string) (Response, error) {
	if len(args) != 1 {
		return Response{}, usage("contest <player>")
	}
	p, err := d.player(args[0])
	if err != nil {
		return Response{}, err
	}
	if err := d.g.StartContest(p.ID); err != nil {
		return Response{}, err
	}
	stake, _ := d.g.CurrentPenalty()
	return reply("%s contests, the stake is %s", p.Name, Amount(stake.Amount, stake.Unit)), nil
}

func (d *borderlandDriver) raise(args []string) (Response, error) {
	if len(args) != 1 {
		return Response{}, usage("raise <player>")
	}
	p, err := d.player(args[0])
	if err != nil {
		return Response{}, err
	}
	if err := d.g.EscalateContest(p.ID); err != nil {
		return Response{}, err
	}
	stake, _ := d.g.CurrentPenalty()
	return reply("%s raises to level %d, the stake is %s", p.Name, d.g.Contest().Level, Amount(stake.Amount, stake.Unit)), nil
}

func (d *borderlandDriver) accept(args []string) (Response, error) {
	if len(args) != 1 {
		return Response{}, usage("accept <player>")
	}
	p, err := d.player(args[0])
	if err != nil {
		return Response{}, err
	}
	penalty, err := d.g.ResolveContest(p.ID)
	if err != nil {
		return Response{}, err
	}
	var resp Response
	d.pay(&resp, penalty)
	return resp, nil
}

func (d *borderlandDriver) cancel([]string) (Response, error) {
	if err := d.g.CancelContest(); err != nil {
		return Response{}, err
	}
	return reply("Contest dropped"), nil
}

func (d *borderlandDriver) next([]string) (Response, error) {
	if err := d.g.NextTurn(); err != nil {
		return Response{}, err
	}
	return reply("%s's turn", d.g.CurrentPlayer().Name), nil
}
