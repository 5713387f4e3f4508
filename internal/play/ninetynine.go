package play

import (
	"fmt"
	"strings"

	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/ninetynine"
	"github.com/lox/blackout/internal/session"
)

type ninetyNineDriver struct {
	base
	g *ninetynine.Game
}

func newNinetyNine(s *session.Session) (*ninetyNineDriver, error) {
	g, err := s.NinetyNine()
	if err != nil {
		return nil, err
	}
	d := &ninetyNineDriver{g: g}
	d.base = base{
		s:     s,
		kind:  game.NinetyNine,
		phase: func() string { return g.Phase().String() },
		done:  func() bool { return g.Phase() == ninetynine.Ended },
		loser: g.Loser,
		reset: g.Reset,
	}
	d.cmds = newCommandSet(
		&Command{Name: "play", Aliases: []string{"p"}, Usage: "<card> [1|11]", Description: "Play a card from your hand; aces take a value", Handler: d.play},
		&Command{Name: "restart", Description: "Start over with a fresh deck", Handler: d.restart},
	)
	return d, nil
}

func (d *ninetyNineDriver) Title() string { return "99" }

func directionString(dir ninetynine.Direction) string {
	if dir == ninetynine.CounterClockwise {
		return "counter-clockwise"
	}
	return "clockwise"
}

func (d *ninetyNineDriver) Status() []string {
	out := []string{
		fmt.Sprintf("Total: %d / %d", d.g.Total(), d.g.MaxTotal()),
		"Direction: " + directionString(d.g.Direction()),
	}
	if d.g.Phase() == ninetynine.Ended {
		if w, ok := d.g.Winner(); ok {
			out = append(out, "Winner: "+w.Name)
		}
		return append(out, "Game over")
	}

	cur := d.g.CurrentPlayer()
	hand := make([]string, len(cur.Hand))
	for i, c := range cur.Hand {
		hand[i] = fmt.Sprintf("%d) %s", i+1, c)
	}
	out = append(out, "Turn: "+cur.Name, "Hand: "+strings.Join(hand, "  "))

	lives := make([]string, 0, len(d.g.Players()))
	for _, p := range d.g.Players() {
		if p.Out {
			lives = append(lives, p.Name+" out")
		} else {
			lives = append(lives, fmt.Sprintf("%s %d", p.Name, p.Lives))
		}
	}
	return append(out, "Lives: "+strings.Join(lives, ", "))
}

func (d *ninetyNineDriver) play(args []string) (Response, error) {
	const syn = "play <card> [1|11]"
	if len(args) < 1 || len(args) > 2 {
		return Response{}, usage(syn)
	}
	n, err := atoi(args[0], syn)
	if err != nil {
		return Response{}, err
	}
	ace := 1
	if len(args) == 2 {
		if ace, err = atoi(args[1], syn); err != nil {
			return Response{}, err
		}
	}

	p := d.g.CurrentPlayer()
	res, err := d.g.PlayCard(n-1, ace)
	if err != nil {
		return Response{}, err
	}

	var resp Response
	if res.Legal {
		line := fmt.Sprintf("%s plays %s, total %d", p.Name, res.Card, res.Total)
		switch res.Effect {
		case ninetynine.Reverse:
			line += ", play goes " + directionString(res.Direction)
		case ninetynine.SetTo99:
			line += ", straight to the top"
		}
		resp.add("%s", line)
		if res.GameOver {
			resp.add("Game over, nobody has a card left to play")
		}
		return resp, nil
	}

	resp.add("%s can't play %s on %d and loses a life", p.Name, res.Card, res.Total)
	d.pay(&resp, res.Penalty)
	if res.Eliminated {
		resp.add("%s is out", p.Name)
	}
	if res.GameOver {
		if w, ok := d.g.Winner(); ok {
			resp.add("Game over, %s wins", w.Name)
		}
	}
	return resp, nil
}
