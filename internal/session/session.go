// Package session owns one party: the roster, a clock, the event bus, the
// drink ledger and the engines created for that roster.
package session

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackout/internal/blackjack"
	"github.com/lox/blackout/internal/borderland"
	"github.com/lox/blackout/internal/config"
	"github.com/lox/blackout/internal/drink"
	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/gameid"
	"github.com/lox/blackout/internal/horserace"
	"github.com/lox/blackout/internal/ninetynine"
	"github.com/lox/blackout/internal/palmtree"
	"github.com/lox/blackout/internal/prompt"
	"github.com/lox/blackout/internal/randutil"
	"github.com/lox/blackout/internal/statistics"
)

// Session is a single party with a fixed roster
type Session struct {
	ID string

	players []game.Player
	names   []string
	cfg     *config.Config
	clock   quartz.Clock
	bus     *game.SimpleEventBus
	ledger  *statistics.Ledger
	logger  *log.Logger
	pack    *prompt.Pack
	seed    int64
	games   int
	started time.Time
}

// Option configures a Session
type Option func(*Session)

// WithClock injects the clock used for event timestamps
func WithClock(c quartz.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithConfig sets the game tunables
func WithConfig(c *config.Config) Option {
	return func(s *Session) { s.cfg = c }
}

// WithSeed makes every engine shuffle deterministically. Zero picks a seed
// from the clock.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.seed = seed }
}

// WithPromptPack replaces the built-in prompt pack
func WithPromptPack(p *prompt.Pack) Option {
	return func(s *Session) { s.pack = p }
}

// WithID fixes the session ID
func WithID(id string) Option {
	return func(s *Session) { s.ID = id }
}

// New validates the roster and starts a session
func New(names []string, opts ...Option) (*Session, error) {
	players, err := game.NewPlayers(names)
	if err != nil {
		return nil, err
	}

	s := &Session{players: players, bus: game.NewEventBus()}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = quartz.NewReal()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.cfg == nil {
		s.cfg = config.Default()
	}
	if s.pack == nil {
		s.pack = prompt.Default()
	}
	if s.seed == 0 {
		s.seed = s.clock.Now().UnixNano()
	}
	if s.ID == "" {
		s.ID = gameid.Generate()
	}
	for _, p := range players {
		s.names = append(s.names, p.Name)
	}
	s.logger = s.logger.WithPrefix("session")
	s.started = s.clock.Now()
	s.ledger = statistics.NewLedger(players)
	s.bus.Subscribe(s.ledger)

	s.logger.Info("Session started", "id", s.ID, "players", len(players), "seed", s.seed)
	return s, nil
}

// nextSource hands every engine its own deterministic stream
func (s *Session) nextSource() randutil.Source {
	src := randutil.New(randutil.Derive(s.seed, s.games))
	s.games++
	return src
}

func (s *Session) announce(kind game.Kind) {
	s.logger.Debug("Game started", "game", kind)
	s.bus.Publish(game.NewGameStartEvent(kind, s.players, s.clock.Now()))
}

// Borderland starts a Borderland game for the roster
func (s *Session) Borderland() (*borderland.Game, error) {
	g, err := borderland.New(s.names, borderland.WithSource(s.nextSource()))
	if err != nil {
		return nil, err
	}
	s.announce(game.Borderland)
	return g, nil
}

// Blackjack opens a blackjack table for the roster
func (s *Session) Blackjack(opts ...blackjack.Option) (*blackjack.Game, error) {
	c := s.cfg.Blackjack
	base := []blackjack.Option{
		blackjack.WithSource(s.nextSource()),
		blackjack.WithDecks(c.Decks),
		blackjack.WithBetLimits(c.MinBet, c.MaxBet),
		blackjack.WithReshuffleBelow(c.ReshuffleBelow),
	}
	g, err := blackjack.New(s.names, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	s.announce(game.Blackjack)
	return g, nil
}

// NinetyNine deals a game of 99 for the roster
func (s *Session) NinetyNine() (*ninetynine.Game, error) {
	c := s.cfg.NinetyNine
	g, err := ninetynine.New(s.names,
		ninetynine.WithSource(s.nextSource()),
		ninetynine.WithLives(c.Lives),
		ninetynine.WithHandSize(c.HandSize),
		ninetynine.WithMaxTotal(c.MaxTotal),
	)
	if err != nil {
		return nil, err
	}
	s.announce(game.NinetyNine)
	return g, nil
}

// HorseRace opens betting on a race for the roster
func (s *Session) HorseRace() (*horserace.Race, error) {
	r, err := horserace.New(s.names,
		horserace.WithSource(s.nextSource()),
		horserace.WithFinish(s.cfg.HorseRace.Finish),
	)
	if err != nil {
		return nil, err
	}
	s.announce(game.HorseRace)
	return r, nil
}

// PalmTree lays out a palm tree for the roster
func (s *Session) PalmTree() (*palmtree.Game, error) {
	g, err := palmtree.New(s.names,
		palmtree.WithSource(s.nextSource()),
		palmtree.WithCircle(s.cfg.PalmTree.CircleCards),
	)
	if err != nil {
		return nil, err
	}
	s.announce(game.PalmTree)
	return g, nil
}

// Prompts shuffles the prompts of one prompt game
func (s *Session) Prompts(kind prompt.Kind) (*prompt.Deck, prompt.Game, error) {
	pg, ok := s.pack.Game(kind)
	if !ok {
		return nil, prompt.Game{}, fmt.Errorf("%w: prompt game %q is not in the pack", game.ErrOutOfRange, kind)
	}
	s.announce(game.Prompts)
	return prompt.NewDeck(pg.Lines(), s.nextSource()), pg, nil
}

// Record publishes every displayable penalty and returns those it published
func (s *Session) Record(kind game.Kind, penalties ...drink.Penalty) []drink.Penalty {
	var out []drink.Penalty
	for _, p := range penalties {
		if !p.Displayable || p.IsZero() {
			continue
		}
		s.logger.Debug("Penalty", "game", kind, "penalty", p.String())
		s.bus.Publish(game.NewPenaltyEvent(kind, p, s.clock.Now()))
		out = append(out, p)
	}
	return out
}

// PhaseChanged announces an engine phase transition
func (s *Session) PhaseChanged(kind game.Kind, from, to string) {
	if from == to {
		return
	}
	s.bus.Publish(game.NewPhaseChangeEvent(kind, from, to, s.clock.Now()))
}

// End announces that a game finished. loser is a player ID or empty.
func (s *Session) End(kind game.Kind, loser string) {
	s.logger.Debug("Game ended", "game", kind, "loser", loser)
	s.bus.Publish(game.NewGameEndEvent(kind, loser, s.clock.Now()))
}

// Subscribe registers a listener on the session's events
func (s *Session) Subscribe(sub game.EventSubscriber) { s.bus.Subscribe(sub) }

// Players returns the seated players
func (s *Session) Players() []game.Player {
	return append([]game.Player(nil), s.players...)
}

// Names returns the normalised roster
func (s *Session) Names() []string {
	return append([]string(nil), s.names...)
}

// Name resolves a player ID to a display name
func (s *Session) Name(id string) string {
	for _, p := range s.players {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}

// Ledger is the running drink tally
func (s *Session) Ledger() *statistics.Ledger { return s.ledger }

// Seed is the seed every engine stream derives from
func (s *Session) Seed() int64 { return s.seed }

// Elapsed is how long the session has been running
func (s *Session) Elapsed() time.Duration { return s.clock.Since(s.started) }

// Clock returns the session clock
func (s *Session) Clock() quartz.Clock { return s.clock }

// Config returns the tunables the engines are built with
func (s *Session) Config() *config.Config { return s.cfg }
