package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/blackout/internal/statistics"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

// LeaderboardCmd prints all-time totals from the store
type LeaderboardCmd struct {
	Limit int `help:"Show only the top N players (0 = all)" default:"0"`
}

func (c *LeaderboardCmd) Run(g *Globals) error {
	a, err := g.open(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	totals, err := a.store.Totals(context.Background())
	if err != nil {
		return err
	}
	if len(totals) == 0 {
		fmt.Println("Nobody has had a drink yet")
		return nil
	}
	if c.Limit > 0 && c.Limit < len(totals) {
		totals = totals[:c.Limit]
	}
	printLeaderboard(os.Stdout, totals)
	return nil
}

func printLeaderboard(w io.Writer, totals []statistics.Tally) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Player", "Sips", "Shots", "Gave sips", "Gave shots").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for i, tally := range totals {
		t.Row(
			strconv.Itoa(i+1),
			tally.Name,
			strconv.Itoa(tally.DrankSips),
			strconv.Itoa(tally.DrankShots),
			strconv.Itoa(tally.GaveSips),
			strconv.Itoa(tally.GaveShots),
		)
	}
	fmt.Fprintln(w, t.Render())
}
