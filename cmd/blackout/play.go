package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/prompt"
	"github.com/lox/blackout/internal/session"
	"github.com/lox/blackout/internal/store"
	"github.com/lox/blackout/internal/tui"
)

// PlayCmd opens the interactive hub for a roster
type PlayCmd struct {
	Players []string `arg:"" optional:"" help:"Player names (2-8); defaults to the remembered roster"`
	Pack    string   `help:"TOML prompt pack to use instead of the built-in one" type:"existingfile"`
	LogFile string   `help:"Write logs to this file while the TUI is running"`
}

func (c *PlayCmd) Run(g *Globals) error {
	w, err := openLogFile(c.LogFile)
	if err != nil {
		return err
	}
	defer w.Close()

	a, err := g.open(w)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	names, err := c.roster(ctx, a)
	if err != nil {
		return err
	}

	opts := []session.Option{
		session.WithConfig(a.cfg),
		session.WithLogger(a.logger),
		session.WithSeed(a.cfg.Blackout.Seed),
	}
	if c.Pack != "" {
		pack, err := loadPack(c.Pack)
		if err != nil {
			return err
		}
		opts = append(opts, session.WithPromptPack(pack))
	}

	s, err := session.New(names, opts...)
	if err != nil {
		return err
	}
	if err := a.store.SaveRoster(ctx, s.Names()); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}
	s.Subscribe(historyWriter(ctx, s, a.store, a.logger))

	a.logger.Info("Starting session", "id", s.ID, "players", len(names), "seed", s.Seed())
	return tui.Run(s, a.logger)
}

// roster prefers names on the command line, then the config, then the store
func (c *PlayCmd) roster(ctx context.Context, a *app) ([]string, error) {
	if len(c.Players) > 0 {
		return c.Players, nil
	}
	if len(a.cfg.Blackout.Players) > 0 {
		return a.cfg.Blackout.Players, nil
	}
	names, err := a.store.LoadRoster(ctx)
	if errors.Is(err, store.ErrNoRoster) {
		return nil, errors.New("no players given and no roster remembered; run `blackout play Alice Bob ...`")
	}
	return names, err
}

// historyWriter appends every penalty to the store as it is published
func historyWriter(ctx context.Context, s *session.Session, st store.Store, logger *log.Logger) game.EventSubscriber {
	return game.SubscriberFunc(func(event game.GameEvent) {
		e, ok := event.(game.PenaltyEvent)
		if !ok {
			return
		}
		entry := store.NewEntry(s.ID, e.Kind, s.Name(e.Penalty.Recipient), e.Penalty, e.Timestamp())
		if err := st.AppendPenalties(ctx, []store.Entry{entry}); err != nil {
			logger.Warn("Failed to record penalty", "player", entry.Player, "error", err)
		}
	})
}

func loadPack(path string) (*prompt.Pack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return prompt.Load(f)
}
