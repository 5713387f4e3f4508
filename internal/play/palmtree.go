package play

import (
	"fmt"
	"strings"

	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/palmtree"
	"github.com/lox/blackout/internal/session"
)

type palmTreeDriver struct {
	base
	g *palmtree.Game
}

func newPalmTree(s *session.Session) (*palmTreeDriver, error) {
	g, err := s.PalmTree()
	if err != nil {
		return nil, err
	}
	d := &palmTreeDriver{g: g}
	d.base = base{
		s:     s,
		kind:  game.PalmTree,
		phase: func() string { return g.Phase().String() },
		done:  func() bool { return g.Phase() == palmtree.Ended },
		loser: noLoser,
		reset: g.Reset,
	}
	d.cmds = newCommandSet(
		&Command{Name: "flip", Aliases: []string{"f"}, Usage: "<position>", Description: "Flip a card in the circle", Handler: d.flip},
		&Command{Name: "trunk", Aliases: []string{"t"}, Description: "Reveal the trunk for double", Handler: d.trunk},
		&Command{Name: "restart", Description: "Start over with a fresh deck", Handler: d.restart},
	)
	return d, nil
}

func (d *palmTreeDriver) Title() string { return "Palm tree" }

func (d *palmTreeDriver) Status() []string {
	slots := d.g.Circle()
	parts := make([]string, len(slots))
	for i, s := range slots {
		face := "??"
		if s.Drawn {
			face = s.Card.String()
		}
		parts[i] = fmt.Sprintf("%d:%s", s.Position+1, face)
	}
	out := []string{"Circle: " + strings.Join(parts, " ")}

	switch d.g.Phase() {
	case palmtree.Playing:
		out = append(out, fmt.Sprintf("Turn: %s, %d left", d.g.CurrentPlayer().Name, d.g.Remaining()))
	case palmtree.Trunk:
		out = append(out, fmt.Sprintf("Trunk: %s reveals it", d.g.CurrentPlayer().Name))
	case palmtree.Ended:
		if c, ok := d.g.Trunk(); ok {
			out = append(out, "Trunk: "+c.String())
		}
		out = append(out, "Game over")
	}
	return out
}

func (d *palmTreeDriver) flip(args []string) (Response, error) {
	const syn = "flip <position>"
	if len(args) != 1 {
		return Response{}, usage(syn)
	}
	n, err := atoi(args[0], syn)
	if err != nil {
		return Response{}, err
	}
	p := d.g.CurrentPlayer()
	rev, err := d.g.DrawCircle(n - 1)
	if err != nil {
		return Response{}, err
	}
	resp := reply("%s flips %s", p.Name, rev.Card)
	d.pay(&resp, rev.Penalty)
	if d.g.Phase() == palmtree.Trunk {
		resp.add("Only the trunk is left")
	}
	return resp, nil
}

func (d *palmTreeDriver) trunk([]string) (Response, error) {
	p := d.g.CurrentPlayer()
	rev, err := d.g.RevealTrunk()
	if err != nil {
		return Response{}, err
	}
	resp := reply("%s reveals the trunk: %s, double!", p.Name, rev.Card)
	d.pay(&resp, rev.Penalty)
	return resp, nil
}
