package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Play        PlayCmd          `cmd:"" default:"withargs" help:"Start a party in the terminal"`
	Simulate    SimulateCmd      `cmd:"" help:"Play many seeded games and report drink statistics"`
	Roster      RosterCmd        `cmd:"" help:"Show or change the remembered roster"`
	Leaderboard LeaderboardCmd   `cmd:"" help:"Show all-time drink totals"`
	Prompts     PromptsCmd       `cmd:"" help:"Inspect and export prompt packs"`
}

func main() {
	_ = godotenv.Load()

	lipgloss.SetColorProfile(termenv.EnvColorProfile())

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackout"),
		kong.Description("Party drinking games for the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
