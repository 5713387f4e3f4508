// Package play turns typed commands into engine calls. Each game has a
// driver that owns its engine, records penalties on the session and renders
// a plain-text status for whatever front-end is showing it.
package play

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/drink"
	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/session"
)

// Response is what a command produced
type Response struct {
	Lines     []string
	Penalties []drink.Penalty
}

func (r *Response) add(format string, args ...any) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

func reply(format string, args ...any) Response {
	var r Response
	r.add(format, args...)
	return r
}

// Driver runs one game from text commands
type Driver interface {
	Kind() game.Kind
	Title() string
	Status() []string
	Commands() []*Command
	Exec(line string) (Response, error)
	Done() bool
}

// New starts a driver for kind on the session
func New(s *session.Session, kind game.Kind) (Driver, error) {
	switch kind {
	case game.Borderland:
		return wrap(newBorderland(s))
	case game.Blackjack:
		return wrap(newBlackjack(s))
	case game.NinetyNine:
		return wrap(newNinetyNine(s))
	case game.HorseRace:
		return wrap(newHorseRace(s))
	case game.PalmTree:
		return wrap(newPalmTree(s))
	case game.Prompts:
		return wrap(newPrompts(s))
	}
	return nil, fmt.Errorf("no driver for %q", kind)
}

func wrap[D Driver](d D, err error) (Driver, error) {
	if err != nil {
		return nil, err
	}
	return d, nil
}

// base carries what every driver shares. Exec publishes phase changes and
// the end of a game on the session.
type base struct {
	s     *session.Session
	kind  game.Kind
	cmds  *commandSet
	phase func() string
	done  func() bool
	loser func() string
	reset func()
}

func (b *base) Kind() game.Kind      { return b.kind }
func (b *base) Commands() []*Command { return b.cmds.ordered }
func (b *base) Done() bool           { return b.done() }

func (b *base) Exec(line string) (Response, error) {
	before, wasDone := b.phase(), b.done()
	resp, err := b.cmds.exec(line)
	if err != nil {
		return resp, err
	}
	b.s.PhaseChanged(b.kind, before, b.phase())
	if !wasDone && b.done() {
		b.s.End(b.kind, b.loser())
	}
	return resp, nil
}

func (b *base) restart([]string) (Response, error) {
	b.reset()
	return reply("New game, same table"), nil
}

// pay records penalties on the session and describes the ones that count
func (b *base) pay(resp *Response, ps ...drink.Penalty) {
	for _, p := range b.s.Record(b.kind, ps...) {
		resp.Penalties = append(resp.Penalties, p)
		resp.Lines = append(resp.Lines, Describe(b.s.Name(p.Recipient), p))
	}
}

// player resolves a seat number (1-based) or a case-insensitive name
func (b *base) player(arg string) (game.Player, error) {
	players := b.s.Players()
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(players) {
			return game.Player{}, fmt.Errorf("seat %d: %w", n, game.ErrUnknownPlayer)
		}
		return players[n-1], nil
	}
	for _, p := range players {
		if strings.EqualFold(p.Name, arg) {
			return p, nil
		}
	}
	return game.Player{}, fmt.Errorf("%w: %q", game.ErrUnknownPlayer, arg)
}

func noLoser() string { return "" }

// Describe renders a penalty for the table, e.g. "Alice drinks 3 sips"
func Describe(name string, p drink.Penalty) string {
	verb := "drinks"
	if p.Action == drink.Give {
		verb = "hands out"
	}
	return fmt.Sprintf("%s %s %s", name, verb, Amount(p.Amount, p.Unit))
}

// Amount renders a quantity with its unit, e.g. "1 shot" or "4 sips"
func Amount(n int, u deck.Unit) string {
	word := "sip"
	if u == deck.Shot {
		word = "shot"
	}
	if n != 1 {
		word += "s"
	}
	return fmt.Sprintf("%d %s", n, word)
}

func atoi(s, synopsis string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, usage(synopsis)
	}
	return n, nil
}

func cards(cs []deck.Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
