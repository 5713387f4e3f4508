package play

import (
	"fmt"

	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/prompt"
	"github.com/lox/blackout/internal/session"
)

type promptsDriver struct {
	base
	deck *prompt.Deck
	game prompt.Game
}

func newPrompts(s *session.Session) (*promptsDriver, error) {
	d := &promptsDriver{}
	if err := d.open(s, prompt.NeverHaveIEver); err != nil {
		return nil, err
	}
	d.base = base{
		s:     s,
		kind:  game.Prompts,
		phase: func() string { return string(d.game.Kind) },
		done:  func() bool { return false },
		loser: noLoser,
	}
	d.cmds = newCommandSet(
		&Command{Name: "next", Aliases: []string{"n"}, Description: "Show the next prompt", Handler: d.next},
		&Command{Name: "game", Aliases: []string{"g"}, Usage: "<kind>", Description: "Switch prompt game", Handler: d.switchGame},
		&Command{Name: "games", Description: "List the prompt games", Handler: d.list},
	)
	return d, nil
}

func (d *promptsDriver) open(s *session.Session, kind prompt.Kind) error {
	deck, g, err := s.Prompts(kind)
	if err != nil {
		return err
	}
	d.deck, d.game = deck, g
	return nil
}

func (d *promptsDriver) Title() string { return d.game.Title }

func (d *promptsDriver) Status() []string {
	pos, total := d.deck.Position()
	out := []string{}
	if d.game.Description != "" {
		out = append(out, d.game.Description)
	}
	return append(out, "", d.deck.Current(), "", fmt.Sprintf("%d/%d", pos, total))
}

func (d *promptsDriver) next([]string) (Response, error) {
	return reply("%s", d.deck.Next()), nil
}

func (d *promptsDriver) switchGame(args []string) (Response, error) {
	if len(args) != 1 {
		return Response{}, usage("game <kind>")
	}
	kind, err := prompt.ParseKind(args[0])
	if err != nil {
		return Response{}, err
	}
	if err := d.open(d.s, kind); err != nil {
		return Response{}, err
	}
	return reply("%s", d.game.Title), nil
}

func (d *promptsDriver) list([]string) (Response, error) {
	var resp Response
	for _, k := range prompt.Kinds {
		resp.add("%s", k)
	}
	return resp, nil
}
