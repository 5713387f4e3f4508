package store

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackout/internal/drink"
	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/statistics"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

type opener func(t *testing.T, path string) Store

func backends() map[string]struct {
	file string
	open opener
} {
	return map[string]struct {
		file string
		open opener
	}{
		"file": {"blackout.yaml", func(t *testing.T, path string) Store {
			s, err := OpenFile(path, testLogger())
			require.NoError(t, err)
			return s
		}},
		"sqlite": {"blackout.db", func(t *testing.T, path string) Store {
			s, err := OpenSQLite(path, testLogger())
			require.NoError(t, err)
			return s
		}},
	}
}

func sampleEntries(at time.Time) []Entry {
	return []Entry{
		NewEntry("s1", game.Blackjack, "Alice", drink.Sips("player-0", 4, drink.Drink), at),
		NewEntry("s1", game.Blackjack, "Bob", drink.Sips("player-1", 6, drink.Give), at),
		NewEntry("s1", game.NinetyNine, "Bob", drink.Shots("player-1", 1), at),
		NewEntry("s2", game.Borderland, "Alice", drink.Sips("player-0", 3, drink.Drink), at),
	}
}

func TestStoreBackends(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 21, 0, 0, 0, time.UTC)

	for name, b := range backends() {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", b.file)
			s := b.open(t, path)

			_, err := s.LoadRoster(ctx)
			assert.ErrorIs(t, err, ErrNoRoster)

			require.NoError(t, s.SaveRoster(ctx, []string{"Alice", "Bob", "Chloé"}))
			require.NoError(t, s.SaveRoster(ctx, []string{"Alice", "Bob"}))
			require.NoError(t, s.AppendPenalties(ctx, sampleEntries(at)))
			require.NoError(t, s.AppendPenalties(ctx, nil))
			require.NoError(t, s.Close())

			reopened := b.open(t, path)
			defer reopened.Close()

			roster, err := reopened.LoadRoster(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"Alice", "Bob"}, roster)

			totals, err := reopened.Totals(ctx)
			require.NoError(t, err)
			assert.Equal(t, []statistics.Tally{
				{Name: "Bob", DrankShots: 1, GaveSips: 6},
				{Name: "Alice", DrankSips: 7},
			}, totals)
		})
	}
}

func TestOpenDrivers(t *testing.T) {
	s, err := Open("none", "", testLogger())
	require.NoError(t, err)
	assert.IsType(t, Nop{}, s)
	_, err = s.LoadRoster(context.Background())
	assert.ErrorIs(t, err, ErrNoRoster)

	_, err = Open("redis", "", testLogger())
	assert.Error(t, err)
}

func TestOpenFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, writeAtomic(path, []byte("roster: [unclosed"), 0o644))
	_, err := OpenFile(path, testLogger())
	assert.Error(t, err)
}

func TestEntryFromPenalty(t *testing.T) {
	at := time.Date(2025, 6, 1, 23, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	e := NewEntry("s1", game.PalmTree, "Alice", drink.Sips("player-0", 2, drink.Give), at)
	assert.Equal(t, "give", e.Action)
	assert.Equal(t, time.UTC, e.At.Location())
	assert.Equal(t, statistics.Tally{Name: "Alice", GaveSips: 2}, e.tally())
}
