package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/simulator"
)

// SimulateCmd plays seeded games without a table full of people
type SimulateCmd struct {
	Game    string   `arg:"" help:"Game to simulate (borderland, blackjack, ninetynine, horserace, palmtree)"`
	Games   int      `short:"n" default:"1000" help:"Number of games"`
	Players int      `short:"p" default:"4" help:"Number of generated players when no names are given"`
	Names   []string `help:"Player names to seat instead of generated ones"`
	Workers int      `default:"0" help:"Parallel workers (0 = number of CPUs)"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	kind, err := game.ParseKind(strings.ToLower(c.Game))
	if err != nil {
		return err
	}

	a, err := g.open(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	names := c.Names
	if len(names) == 0 {
		names = simulator.DefaultRoster(c.Players)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := simulator.Run(ctx, simulator.Config{
		Kind:     kind,
		Games:    c.Games,
		Players:  names,
		Seed:     a.cfg.Blackout.Seed,
		Workers:  c.Workers,
		Settings: a.cfg,
		Logger:   a.logger,
	})
	if err != nil {
		return err
	}
	printSummary(os.Stdout, res, names)
	return nil
}

func printSummary(w io.Writer, res *simulator.Result, names []string) {
	s := res.Stats
	low, high := s.ConfidenceInterval95()

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("=== %s: %d GAMES ===", strings.ToUpper(res.Kind.String()), s.Games)))
	fmt.Fprintf(w, "Sips per game: %.2f ± %.2f SE (95%% CI [%.2f, %.2f])\n", s.Mean(), s.StdError(), low, high)
	fmt.Fprintf(w, "Median %.1f, p90 %.1f, worst %.0f sips\n", s.Median(), s.Percentile(0.9), s.MaxSips)
	fmt.Fprintf(w, "Shots: %d total, %.2f per game\n", s.Shots, float64(s.Shots)/float64(max(s.Games, 1)))
	fmt.Fprintf(w, "Steps per game: %.1f\n", s.MeanRounds())
	fmt.Fprintf(w, "Decisive games: %d (%.1f%%)\n", s.Decisive, 100*float64(s.Decisive)/float64(max(s.Games, 1)))
	fmt.Fprintf(w, "Elapsed: %s\n\n", res.Elapsed.Round(time.Millisecond))

	seats := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Seat", "Player", "Lost", "Rate")
	for i, name := range names {
		seats.Row(strconv.Itoa(i+1), name, strconv.Itoa(s.SeatLoses[i].Losses), fmt.Sprintf("%.1f%%", 100*s.LossRate(i)))
	}
	fmt.Fprintln(w, seats.Render())

	outcomes := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Outcome", "Count")
	for _, name := range res.OutcomeNames() {
		outcomes.Row(name, strconv.Itoa(res.Outcomes[name]))
	}
	fmt.Fprintln(w, outcomes.Render())

	printLeaderboard(w, res.Ledger.Leaderboard())
}
