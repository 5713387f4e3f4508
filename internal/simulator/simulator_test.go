package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackout/internal/blackjack"
	"github.com/lox/blackout/internal/drink"
	"github.com/lox/blackout/internal/game"
)

func testConfig(kind game.Kind, games int) Config {
	return Config{
		Kind:    kind,
		Games:   games,
		Players: DefaultRoster(4),
		Seed:    12345,
		Logger:  log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel}),
	}
}

func TestRunEverySupportedKind(t *testing.T) {
	for _, kind := range Supported() {
		t.Run(kind.String(), func(t *testing.T) {
			res, err := Run(context.Background(), testConfig(kind, 20))
			require.NoError(t, err)
			assert.Equal(t, 20, res.Stats.Games)
			assert.NoError(t, res.Stats.Validate())
			assert.NotEmpty(t, res.Outcomes)
			assert.Len(t, res.Ledger.Leaderboard(), 4)
		})
	}
}

func TestPromptsCannotBeSimulated(t *testing.T) {
	_, err := Run(context.Background(), testConfig(game.Prompts, 1))
	assert.Error(t, err)
	assert.NotContains(t, Supported(), game.Prompts)
}

func TestInvalidConfig(t *testing.T) {
	_, err := Run(context.Background(), testConfig(game.Blackjack, 0))
	assert.Error(t, err)

	cfg := testConfig(game.Blackjack, 1)
	cfg.Players = []string{"Solo"}
	_, err = Run(context.Background(), cfg)
	assert.ErrorIs(t, err, game.ErrInvalidRoster)
}

func TestResultsIndependentOfWorkers(t *testing.T) {
	one := testConfig(game.NinetyNine, 40)
	one.Workers = 1
	many := testConfig(game.NinetyNine, 40)
	many.Workers = 4

	a, err := Run(context.Background(), one)
	require.NoError(t, err)
	b, err := Run(context.Background(), many)
	require.NoError(t, err)

	assert.Equal(t, a.Stats.Values, b.Stats.Values)
	assert.Equal(t, a.Stats.SeatLoses, b.Stats.SeatLoses)
	assert.Equal(t, a.Outcomes, b.Outcomes)
	assert.Equal(t, a.Ledger.Leaderboard(), b.Ledger.Leaderboard())
}

func TestBlackjackSettlesEveryHand(t *testing.T) {
	res, err := Run(context.Background(), testConfig(game.Blackjack, 10))
	require.NoError(t, err)

	settled := 0
	for _, k := range []blackjack.Result{blackjack.Win, blackjack.Lose, blackjack.Push, blackjack.BlackjackWin} {
		settled += res.Outcomes[k.String()]
	}
	assert.Equal(t, 10*BlackjackRounds*4, settled)
}

func TestHorseRaceAlwaysHasWinner(t *testing.T) {
	res, err := Run(context.Background(), testConfig(game.HorseRace, 25))
	require.NoError(t, err)

	assert.Zero(t, res.Outcomes["no winner"])
	won := 0
	for _, name := range []string{"hearts", "diamonds", "clubs", "spades"} {
		won += res.Outcomes[name]
	}
	assert.Equal(t, 25, won)
}

func TestNinetyNineEndsWithLoser(t *testing.T) {
	res, err := Run(context.Background(), testConfig(game.NinetyNine, 30))
	require.NoError(t, err)
	assert.Positive(t, res.Stats.Decisive)
	assert.Positive(t, res.Stats.Shots)
	assert.Positive(t, res.Outcomes["eliminated"])
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, testConfig(game.PalmTree, 10))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarise(t *testing.T) {
	seats := map[string]int{"player-0": 0, "player-1": 1, "player-2": 2}

	tests := []struct {
		name      string
		run       run
		wantLoser int
		wantSips  float64
		wantShots int
	}{
		{
			name: "most sips loses",
			run: run{penalties: []drink.Penalty{
				drink.Sips("player-0", 3, drink.Drink),
				drink.Sips("player-1", 4, drink.Drink),
				drink.Sips("player-2", 9, drink.Give),
			}},
			wantLoser: 1,
			wantSips:  16,
		},
		{
			name: "a shot outweighs sips",
			run: run{penalties: []drink.Penalty{
				drink.Sips("player-0", 4, drink.Drink),
				drink.Shots("player-2", 1),
			}},
			wantLoser: 2,
			wantSips:  4,
			wantShots: 1,
		},
		{
			name: "tie means nobody",
			run: run{penalties: []drink.Penalty{
				drink.Sips("player-0", 2, drink.Drink),
				drink.Sips("player-1", 2, drink.Drink),
			}},
			wantLoser: -1,
			wantSips:  4,
		},
		{
			name:      "explicit loser wins over the count",
			run:       run{loser: "player-2", penalties: []drink.Penalty{drink.Sips("player-0", 5, drink.Drink)}},
			wantLoser: 2,
			wantSips:  5,
		},
		{
			name:      "nothing drunk",
			run:       run{},
			wantLoser: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summarise(tt.run, 7, seats)
			if got.Loser != tt.wantLoser {
				t.Errorf("loser = %d, want %d", got.Loser, tt.wantLoser)
			}
			if got.Sips != tt.wantSips {
				t.Errorf("sips = %v, want %v", got.Sips, tt.wantSips)
			}
			if got.Shots != tt.wantShots {
				t.Errorf("shots = %d, want %d", got.Shots, tt.wantShots)
			}
			if got.Seed != 7 {
				t.Errorf("seed = %d, want 7", got.Seed)
			}
		})
	}
}
