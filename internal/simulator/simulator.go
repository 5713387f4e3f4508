// Package simulator plays many seeded games with automatic strategies so the
// drink load of each game can be measured.
package simulator

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackout/internal/config"
	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/drink"
	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/randutil"
	"github.com/lox/blackout/internal/statistics"
)

// ShotInSips weighs a shot against sips when picking a game's loser
const ShotInSips = 5

// maxSteps stops games whose strategies never reach an end state
const maxSteps = 5000

// Config holds configuration for running simulations
type Config struct {
	Kind     game.Kind
	Games    int
	Players  []string
	Seed     int64
	Workers  int
	Settings *config.Config
	Clock    quartz.Clock
	Logger   *log.Logger
}

// Result is the aggregate of a simulation run
type Result struct {
	Kind     game.Kind
	Stats    *statistics.Statistics
	Ledger   *statistics.Ledger
	Outcomes map[string]int
	Elapsed  time.Duration
}

// OutcomeNames returns the outcome keys in a stable order
func (r *Result) OutcomeNames() []string {
	names := make([]string, 0, len(r.Outcomes))
	for k := range r.Outcomes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// run is what one simulated game produced
type run struct {
	steps     int
	penalties []drink.Penalty
	outcomes  []string
	loser     string // player ID, empty if the strategy leaves it to the drink count
}

type playFunc func(names []string, seed int64, settings *config.Config) (run, error)

var players = map[game.Kind]playFunc{
	game.Borderland: playBorderland,
	game.Blackjack:  playBlackjack,
	game.NinetyNine: playNinetyNine,
	game.HorseRace:  playHorseRace,
	game.PalmTree:   playPalmTree,
}

// Supported lists the game kinds that can be simulated
func Supported() []game.Kind {
	var kinds []game.Kind
	for _, k := range game.Kinds {
		if _, ok := players[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// DefaultRoster names n seats "Player 1".."Player n"
func DefaultRoster(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Player %d", i+1)
	}
	return names
}

// Run executes the simulation across a pool of workers. Every game derives
// its own seed from cfg.Seed, so results do not depend on the worker count.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	play, ok := players[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("cannot simulate %q", cfg.Kind)
	}
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("invalid games count: %d", cfg.Games)
	}
	if len(cfg.Players) == 0 {
		cfg.Players = DefaultRoster(4)
	}
	roster, err := game.NewPlayers(cfg.Players)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(roster))
	seats := make(map[string]int, len(roster))
	for i, p := range roster {
		names[i] = p.Name
		seats[p.ID] = i
	}
	if cfg.Settings == nil {
		cfg.Settings = config.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	logger := cfg.Logger.WithPrefix("simulator")

	workers := cfg.Workers
	if workers <= 0 {
		workers = min(runtime.NumCPU(), 8)
	}
	workers = min(workers, cfg.Games)

	logger.Info("Starting simulation", "game", cfg.Kind, "games", cfg.Games, "players", len(names), "workers", workers, "seed", cfg.Seed)
	start := cfg.Clock.Now()

	runs := make([]run, cfg.Games)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			for i := w; i < cfg.Games; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				seed := randutil.Derive(cfg.Seed, i)
				r, err := play(names, seed, cfg.Settings)
				if err != nil {
					return fmt.Errorf("game %d (seed %d): %w", i, seed, err)
				}
				runs[i] = r
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Kind:     cfg.Kind,
		Stats:    &statistics.Statistics{},
		Ledger:   statistics.NewLedger(roster),
		Outcomes: make(map[string]int),
	}
	for i, r := range runs {
		for _, p := range r.penalties {
			res.Ledger.Record(p)
		}
		for _, o := range r.outcomes {
			res.Outcomes[o]++
		}
		res.Stats.Add(summarise(r, randutil.Derive(cfg.Seed, i), seats))
	}
	res.Elapsed = cfg.Clock.Since(start)

	if err := res.Stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	logger.Info("Simulation complete", "games", res.Stats.Games, "mean_sips", res.Stats.Mean(), "elapsed", res.Elapsed)
	return res, nil
}

// summarise turns one run into a statistics row. Without an explicit loser
// the seat that drank the most loses, and a tie means nobody did.
func summarise(r run, seed int64, seats map[string]int) statistics.GameResult {
	res := statistics.GameResult{Seed: seed, Rounds: r.steps, Loser: -1}
	drank := make(map[string]int)
	for _, p := range r.penalties {
		if p.Unit == deck.Shot {
			res.Shots += p.Amount
		} else {
			res.Sips += float64(p.Amount)
		}
		if p.Action != drink.Drink {
			continue
		}
		if p.Unit == deck.Shot {
			drank[p.Recipient] += p.Amount * ShotInSips
		} else {
			drank[p.Recipient] += p.Amount
		}
	}

	if r.loser != "" {
		if seat, ok := seats[r.loser]; ok {
			res.Loser = seat
		}
		return res
	}

	best, tied := 0, false
	for id, amount := range drank {
		switch {
		case amount > best:
			best, tied = amount, false
			res.Loser = seats[id]
		case amount == best:
			tied = true
		}
	}
	if tied || best == 0 {
		res.Loser = -1
	}
	return res
}
