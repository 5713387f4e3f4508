// Package config loads the HCL configuration file that tunes the games,
// logging and local storage.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete configuration
type Config struct {
	Blackout   Settings
	Blackjack  BlackjackSettings
	NinetyNine NinetyNineSettings
	HorseRace  HorseRaceSettings
	PalmTree   PalmTreeSettings
	Storage    StorageSettings
}

// Settings contains top-level configuration
type Settings struct {
	LogLevel string   `hcl:"log_level,optional"`
	Seed     int64    `hcl:"seed,optional"`
	Players  []string `hcl:"players,optional"`
}

// BlackjackSettings tunes the blackjack table
type BlackjackSettings struct {
	Decks          int `hcl:"decks,optional"`
	MinBet         int `hcl:"min_bet,optional"`
	MaxBet         int `hcl:"max_bet,optional"`
	ReshuffleBelow int `hcl:"reshuffle_below,optional"`
}

// NinetyNineSettings tunes the counting game
type NinetyNineSettings struct {
	Lives    int `hcl:"lives,optional"`
	HandSize int `hcl:"hand_size,optional"`
	MaxTotal int `hcl:"max_total,optional"`
}

// HorseRaceSettings tunes the race
type HorseRaceSettings struct {
	Finish int `hcl:"finish,optional"`
}

// PalmTreeSettings tunes the palm tree
type PalmTreeSettings struct {
	CircleCards int `hcl:"circle_cards,optional"`
}

// StorageSettings selects where the roster and drink history are kept
type StorageSettings struct {
	Driver string `hcl:"driver,optional"` // "file", "sqlite" or "none"
	Path   string `hcl:"path,optional"`
}

// file mirrors the HCL layout; every block is optional
type file struct {
	Blackout   *Settings           `hcl:"blackout,block"`
	Blackjack  *BlackjackSettings  `hcl:"blackjack,block"`
	NinetyNine *NinetyNineSettings `hcl:"ninety_nine,block"`
	HorseRace  *HorseRaceSettings  `hcl:"horse_race,block"`
	PalmTree   *PalmTreeSettings   `hcl:"palm_tree,block"`
	Storage    *StorageSettings    `hcl:"storage,block"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Blackout: Settings{
			LogLevel: "info",
		},
		Blackjack: BlackjackSettings{
			Decks:          6,
			MinBet:         1,
			MaxBet:         10,
			ReshuffleBelow: 52,
		},
		NinetyNine: NinetyNineSettings{
			Lives:    3,
			HandSize: 3,
			MaxTotal: 99,
		},
		HorseRace: HorseRaceSettings{Finish: 7},
		PalmTree:  PalmTreeSettings{CircleCards: 10},
		Storage: StorageSettings{
			Driver: "file",
			Path:   defaultStoragePath(),
		},
	}
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "blackout.yaml"
	}
	return filepath.Join(dir, "blackout", "blackout.yaml")
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, filling defaults for anything left unset
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if raw.Blackout != nil {
		config.Blackout = *raw.Blackout
	}
	if raw.Blackjack != nil {
		config.Blackjack = *raw.Blackjack
	}
	if raw.NinetyNine != nil {
		config.NinetyNine = *raw.NinetyNine
	}
	if raw.HorseRace != nil {
		config.HorseRace = *raw.HorseRace
	}
	if raw.PalmTree != nil {
		config.PalmTree = *raw.PalmTree
	}
	if raw.Storage != nil {
		config.Storage = *raw.Storage
	}
	config.applyDefaults()
	return config, nil
}

// applyDefaults fills zero values left by partially specified blocks
func (c *Config) applyDefaults() {
	def := Default()

	if c.Blackout.LogLevel == "" {
		c.Blackout.LogLevel = def.Blackout.LogLevel
	}
	if c.Blackjack.Decks == 0 {
		c.Blackjack.Decks = def.Blackjack.Decks
	}
	if c.Blackjack.MinBet == 0 {
		c.Blackjack.MinBet = def.Blackjack.MinBet
	}
	if c.Blackjack.MaxBet == 0 {
		c.Blackjack.MaxBet = def.Blackjack.MaxBet
	}
	if c.Blackjack.ReshuffleBelow == 0 {
		c.Blackjack.ReshuffleBelow = def.Blackjack.ReshuffleBelow
	}
	if c.NinetyNine.Lives == 0 {
		c.NinetyNine.Lives = def.NinetyNine.Lives
	}
	if c.NinetyNine.HandSize == 0 {
		c.NinetyNine.HandSize = def.NinetyNine.HandSize
	}
	if c.NinetyNine.MaxTotal == 0 {
		c.NinetyNine.MaxTotal = def.NinetyNine.MaxTotal
	}
	if c.HorseRace.Finish == 0 {
		c.HorseRace.Finish = def.HorseRace.Finish
	}
	if c.PalmTree.CircleCards == 0 {
		c.PalmTree.CircleCards = def.PalmTree.CircleCards
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = def.Storage.Driver
	}
	if c.Storage.Path == "" && c.Storage.Driver != "none" {
		c.Storage.Path = def.Storage.Path
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Blackout.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.Blackout.LogLevel)
	}

	if c.Blackjack.Decks < 1 || c.Blackjack.Decks > 8 {
		return fmt.Errorf("blackjack: decks must be between 1 and 8, got %d", c.Blackjack.Decks)
	}
	if c.Blackjack.MinBet < 1 {
		return fmt.Errorf("blackjack: min_bet must be positive")
	}
	if c.Blackjack.MaxBet < c.Blackjack.MinBet {
		return fmt.Errorf("blackjack: max_bet must not be less than min_bet")
	}
	if c.Blackjack.ReshuffleBelow < 0 {
		return fmt.Errorf("blackjack: reshuffle_below must not be negative")
	}

	if c.NinetyNine.Lives < 1 {
		return fmt.Errorf("ninety_nine: lives must be positive")
	}
	if c.NinetyNine.HandSize < 1 || c.NinetyNine.HandSize > 6 {
		return fmt.Errorf("ninety_nine: hand_size must be between 1 and 6, got %d", c.NinetyNine.HandSize)
	}
	if c.NinetyNine.MaxTotal < 11 {
		return fmt.Errorf("ninety_nine: max_total must be at least 11, got %d", c.NinetyNine.MaxTotal)
	}

	if c.HorseRace.Finish < 1 || c.HorseRace.Finish > 12 {
		return fmt.Errorf("horse_race: finish must be between 1 and 12, got %d", c.HorseRace.Finish)
	}
	if c.PalmTree.CircleCards < 6 || c.PalmTree.CircleCards > 12 {
		return fmt.Errorf("palm_tree: circle_cards must be between 6 and 12, got %d", c.PalmTree.CircleCards)
	}

	switch c.Storage.Driver {
	case "file", "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage: path is required for driver %s", c.Storage.Driver)
		}
	case "none":
	default:
		return fmt.Errorf("storage: invalid driver %s", c.Storage.Driver)
	}

	return nil
}
