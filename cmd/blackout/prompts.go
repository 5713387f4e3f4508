package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/blackout/internal/prompt"
)

// PromptsCmd works with prompt packs
type PromptsCmd struct {
	List   PromptsListCmd   `cmd:"" default:"1" help:"List the games in a pack"`
	Show   PromptsShowCmd   `cmd:"" help:"Print every prompt of one game"`
	Export PromptsExportCmd `cmd:"" help:"Write the pack as TOML, a starting point for your own"`
}

// PackFlag selects the pack a prompts command reads
type PackFlag struct {
	Pack string `help:"TOML prompt pack to read instead of the built-in one" type:"existingfile"`
}

func (c PackFlag) load() (*prompt.Pack, error) {
	if c.Pack == "" {
		return prompt.Default(), nil
	}
	return loadPack(c.Pack)
}

type PromptsListCmd struct {
	PackFlag
}

func (c *PromptsListCmd) Run() error {
	pack, err := c.load()
	if err != nil {
		return err
	}
	for _, g := range pack.Games {
		fmt.Printf("%-20s %-24s %3d prompts\n", g.Kind, g.Title, len(g.Lines()))
	}
	return nil
}

type PromptsShowCmd struct {
	PackFlag
	Game string `arg:"" help:"Prompt game, e.g. never-have-i-ever"`
}

func (c *PromptsShowCmd) Run() error {
	kind, err := prompt.ParseKind(c.Game)
	if err != nil {
		return err
	}
	pack, err := c.load()
	if err != nil {
		return err
	}
	g, ok := pack.Game(kind)
	if !ok {
		return fmt.Errorf("pack has no %s game", kind)
	}
	fmt.Println(headerStyle.Render(g.Title))
	if g.Description != "" {
		fmt.Println(g.Description)
	}
	for _, line := range g.Lines() {
		fmt.Println("  " + line)
	}
	return nil
}

type PromptsExportCmd struct {
	PackFlag
	Output string `short:"o" help:"File to write, stdout when empty"`
}

func (c *PromptsExportCmd) Run() error {
	pack, err := c.load()
	if err != nil {
		return err
	}
	var w io.Writer = os.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return prompt.Encode(w, pack)
}
