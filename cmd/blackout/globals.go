package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/blackout/internal/config"
	"github.com/lox/blackout/internal/store"
)

// Globals are flags shared by every command
type Globals struct {
	Config string `help:"Path to the HCL config file" default:"blackout.hcl" env:"BLACKOUT_CONFIG" type:"path"`
	Seed   int64  `help:"RNG seed, 0 picks one from the clock" env:"BLACKOUT_SEED"`
	Debug  bool   `help:"Enable debug logging" env:"BLACKOUT_DEBUG"`
}

// app is what a command needs once flags and config are resolved
type app struct {
	cfg    *config.Config
	logger *log.Logger
	store  store.Store
}

// loadConfig reads and validates the config, applying flag overrides
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Seed != 0 {
		cfg.Blackout.Seed = g.Seed
	}
	if g.Debug {
		cfg.Blackout.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", g.Config, err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	logger.SetColorProfile(termenv.EnvColorProfile())
	return logger
}

// open resolves config, logging and storage for a command. Logs go to w.
func (g *Globals) open(w io.Writer) (*app, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(w, cfg.Blackout.LogLevel)
	logger.Debug("Loaded config", "path", g.Config, "storage", cfg.Storage.Driver)

	st, err := store.Open(cfg.Storage.Driver, cfg.Storage.Path, logger)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, store: st}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// openLogFile opens path for appending, or discards when path is empty
func openLogFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{io.Discard}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
