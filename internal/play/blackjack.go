package play

import (
	"fmt"

	"github.com/lox/blackout/internal/blackjack"
	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/session"
)

type blackjackDriver struct {
	base
	g *blackjack.Game
}

func newBlackjack(s *session.Session, opts ...blackjack.Option) (*blackjackDriver, error) {
	g, err := s.Blackjack(opts...)
	if err != nil {
		return nil, err
	}
	d := &blackjackDriver{g: g}
	d.base = base{
		s:     s,
		kind:  game.Blackjack,
		phase: func() string { return g.Phase().String() },
		done:  func() bool { return g.Phase() == blackjack.Finished },
		loser: noLoser,
		reset: g.Reset,
	}
	d.cmds = newCommandSet(
		&Command{Name: "bet", Aliases: []string{"b"}, Usage: "<player> <sips>", Description: "Place a bet", Handler: d.bet},
		&Command{Name: "deal", Description: "Deal two cards to everyone", Handler: d.deal},
		&Command{Name: "hit", Aliases: []string{"h"}, Description: "Take a card", Handler: d.hit},
		&Command{Name: "stand", Aliases: []string{"s"}, Description: "Stop taking cards", Handler: d.stand},
		&Command{Name: "double", Aliases: []string{"dd"}, Description: "Double the bet and take one card", Handler: d.double},
		&Command{Name: "round", Aliases: []string{"r"}, Description: "Start the next round", Handler: d.round},
		&Command{Name: "restart", Description: "Start over with a fresh deck", Handler: d.restart},
	)
	return d, nil
}

func (d *blackjackDriver) Title() string { return "Blackjack" }

func handString(h blackjack.Hand) string {
	s := fmt.Sprintf("%s = %d", cards(h.Cards), h.Value)
	switch {
	case h.IsBlackjack:
		s += " blackjack"
	case h.IsBusted:
		s += " bust"
	case h.IsSoft:
		s += " soft"
	}
	return s
}

func (d *blackjackDriver) Status() []string {
	minBet, maxBet := d.g.BetLimits()
	out := []string{fmt.Sprintf("Phase: %s (bets %d-%d)", d.g.Phase(), minBet, maxBet)}

	dealer := d.g.Dealer()
	switch {
	case dealer.Revealed:
		out = append(out, "Dealer: "+handString(dealer.Hand))
	default:
		if up, ok := d.g.DealerUpCard(); ok {
			out = append(out, fmt.Sprintf("Dealer: %s ??", up))
		}
	}

	cur, acting := d.g.CurrentPlayer()
	for _, p := range d.g.Players() {
		line := fmt.Sprintf("%s: bet %d", p.Name, p.Bet)
		if len(p.Hand.Cards) > 0 {
			line += ", " + handString(p.Hand)
		}
		if p.Result != blackjack.Pending {
			line += ", " + p.Result.String()
		}
		if acting && p.ID == cur.ID {
			line += " <"
		}
		out = append(out, line)
	}
	return append(out, fmt.Sprintf("Shoe: %d cards", d.g.ShoeRemaining()))
}

func (d *blackjackDriver) bet(args []string) (Response, error) {
	const syn = "bet <player> <sips>"
	if len(args) != 2 {
		return Response{}, usage(syn)
	}
	p, err := d.player(args[0])
	if err != nil {
		return Response{}, err
	}
	n, err := atoi(args[1], syn)
	if err != nil {
		return Response{}, err
	}
	placed, err := d.g.PlaceBet(p.ID, n)
	if err != nil {
		return Response{}, err
	}
	return reply("%s bets %s", p.Name, Amount(placed, deck.Sips)), nil
}

func (d *blackjackDriver) deal([]string) (Response, error) {
	if err := d.g.StartDealing(); err != nil {
		return Response{}, err
	}
	var resp Response
	for _, p := range d.g.Players() {
		resp.add("%s: %s", p.Name, handString(p.Hand))
	}
	if up, ok := d.g.DealerUpCard(); ok {
		resp.add("Dealer shows %s", up)
	}
	return resp, nil
}

// act runs a player action and settles the round if it handed over to the
// dealer
func (d *blackjackDriver) act(verb string, fn func() error) (Response, error) {
	p, ok := d.g.CurrentPlayer()
	if !ok {
		return Response{}, game.Invalid("blackjack", verb, d.g.Phase(), "nobody to act")
	}
	if err := fn(); err != nil {
		return Response{}, err
	}
	var resp Response
	for _, after := range d.g.Players() {
		if after.ID == p.ID {
			resp.add("%s %s: %s", p.Name, verb, handString(after.Hand))
		}
	}
	d.settle(&resp)
	return resp, nil
}

func (d *blackjackDriver) hit([]string) (Response, error) {
	return d.act("hits", func() error { _, err := d.g.Hit(); return err })
}

func (d *blackjackDriver) stand([]string) (Response, error) {
	return d.act("stands", d.g.Stand)
}

func (d *blackjackDriver) double([]string) (Response, error) {
	return d.act("doubles", func() error { _, err := d.g.DoubleDown(); return err })
}

func (d *blackjackDriver) settle(resp *Response) {
	outcomes := d.g.Outcomes()
	if outcomes == nil {
		return
	}
	resp.add("Dealer: %s", handString(d.g.Dealer().Hand))
	for _, o := range outcomes {
		resp.add("%s: %s", d.s.Name(o.PlayerID), o.Result)
		d.pay(resp, o.Penalty)
	}
}

func (d *blackjackDriver) round([]string) (Response, error) {
	d.g.NewRound()
	return reply("New round, place your bets"), nil
}
