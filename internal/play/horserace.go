package play

import (
	"fmt"
	"strings"

	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/horserace"
	"github.com/lox/blackout/internal/session"
)

type horseRaceDriver struct {
	base
	r *horserace.Race
}

func newHorseRace(s *session.Session) (*horseRaceDriver, error) {
	r, err := s.HorseRace()
	if err != nil {
		return nil, err
	}
	d := &horseRaceDriver{r: r}
	d.base = base{
		s:     s,
		kind:  game.HorseRace,
		phase: func() string { return r.Phase().String() },
		done:  func() bool { return r.Phase() == horserace.Finished },
		loser: noLoser,
		reset: r.Reset,
	}
	d.cmds = newCommandSet(
		&Command{Name: "bet", Aliases: []string{"b"}, Usage: "<player> <suit> <sips>", Description: "Back a horse", Handler: d.bet},
		&Command{Name: "unbet", Usage: "<player>", Description: "Withdraw a bet", Handler: d.unbet},
		&Command{Name: "start", Description: "Close betting and start the race", Handler: d.start},
		&Command{Name: "draw", Aliases: []string{"d"}, Description: "Draw the next card", Handler: d.draw},
		&Command{Name: "restart", Description: "Start over with a fresh deck", Handler: d.restart},
	)
	return d, nil
}

func (d *horseRaceDriver) Title() string { return "Horse race" }

func (d *horseRaceDriver) Status() []string {
	finish := d.r.Finish()
	out := []string{fmt.Sprintf("Phase: %s, first to %d", d.r.Phase(), finish)}
	for _, h := range d.r.Horses() {
		pos := min(h.Position, finish)
		track := strings.Repeat("=", pos) + strings.Repeat(".", finish-pos)
		out = append(out, fmt.Sprintf("%s %-8s |%s|", h.Suit.Symbol(), h.Suit, track))
	}
	for _, b := range d.r.Bets() {
		out = append(out, fmt.Sprintf("%s backs %s for %s", d.s.Name(b.PlayerID), b.Horse, Amount(b.Amount, deck.Sips)))
	}
	return out
}

func (d *horseRaceDriver) bet(args []string) (Response, error) {
	const syn = "bet <player> <suit> <sips>"
	if len(args) != 3 {
		return Response{}, usage(syn)
	}
	p, err := d.player(args[0])
	if err != nil {
		return Response{}, err
	}
	suit, err := deck.ParseSuit(args[1])
	if err != nil {
		return Response{}, err
	}
	n, err := atoi(args[2], syn)
	if err != nil {
		return Response{}, err
	}
	if err := d.r.PlaceBet(p.ID, suit, n); err != nil {
		return Response{}, err
	}
	return reply("%s backs %s for %s", p.Name, suit, Amount(n, deck.Sips)), nil
}

func (d *horseRaceDriver) unbet(args []string) (Response, error) {
	if len(args) != 1 {
		return Response{}, usage("unbet <player>")
	}
	p, err := d.player(args[0])
	if err != nil {
		return Response{}, err
	}
	if err := d.r.RemoveBet(p.ID); err != nil {
		return Response{}, err
	}
	return reply("%s withdraws", p.Name), nil
}

func (d *horseRaceDriver) start([]string) (Response, error) {
	if err := d.r.StartRace(); err != nil {
		return Response{}, err
	}
	return reply("They're off!"), nil
}

func (d *horseRaceDriver) draw([]string) (Response, error) {
	step, err := d.r.DrawNext()
	if err != nil {
		return Response{}, err
	}
	if step.Exhausted {
		return reply("Out of cards, no winner"), nil
	}
	resp := reply("%s: %s moves to %d", step.Card, step.Card.Suit, step.Position)
	if step.Won {
		resp.add("%s wins!", step.Card.Suit)
		for _, p := range d.r.Results() {
			d.pay(&resp, p.Penalty)
		}
	}
	return resp, nil
}
