package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/store"
)

// RosterCmd manages the remembered roster
type RosterCmd struct {
	Show RosterShowCmd `cmd:"" default:"1" help:"Print the remembered roster"`
	Set  RosterSetCmd  `cmd:"" help:"Replace the remembered roster"`
}

type RosterShowCmd struct{}

func (c *RosterShowCmd) Run(g *Globals) error {
	a, err := g.open(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	names, err := a.store.LoadRoster(context.Background())
	if errors.Is(err, store.ErrNoRoster) {
		fmt.Println("No roster remembered yet")
		return nil
	}
	if err != nil {
		return err
	}
	for i, name := range names {
		fmt.Printf("%d. %s\n", i+1, name)
	}
	return nil
}

type RosterSetCmd struct {
	Players []string `arg:"" help:"Player names (2-8)"`
}

func (c *RosterSetCmd) Run(g *Globals) error {
	players, err := game.NewPlayers(c.Players)
	if err != nil {
		return err
	}
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}

	a, err := g.open(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.SaveRoster(context.Background(), names); err != nil {
		return err
	}
	fmt.Printf("Remembered %s\n", strings.Join(names, ", "))
	return nil
}
