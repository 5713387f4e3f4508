package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackout/internal/game"
)

// GameResult is the outcome of one simulated game
type GameResult struct {
	Seed   int64   // RNG seed for this game (for replay)
	Rounds int     // engine steps until the game ended
	Sips   float64 // sips drunk across the table
	Shots  int     // shots drunk across the table
	Loser  int     // seat that drank the most or busted out, -1 if nobody
}

// SeatStats tracks how often a seat ended up as the loser
type SeatStats struct {
	Losses int
}

// Statistics keeps running sums over simulated games
type Statistics struct {
	Games   int
	SumSips float64
	SumSqr  float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	Shots     int
	Rounds    int
	MaxSips   float64
	Decisive  int // games that produced a loser
	SeatLoses [game.MaxPlayers]SeatStats
}

// Mean returns the average sips drunk per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumSips / float64(s.Games)
}

// Variance returns the sample variance of sips per game
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSqr - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// MeanRounds is the average game length in engine steps
func (s *Statistics) MeanRounds() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Rounds) / float64(s.Games)
}

// Add incorporates a new game result
func (s *Statistics) Add(result GameResult) {
	s.Games++
	s.SumSips += result.Sips
	s.SumSqr += result.Sips * result.Sips
	s.Values = append(s.Values, result.Sips)
	s.Shots += result.Shots
	s.Rounds += result.Rounds

	if result.Sips > s.MaxSips {
		s.MaxSips = result.Sips
	}

	if result.Loser >= 0 && result.Loser < len(s.SeatLoses) {
		s.Decisive++
		s.SeatLoses[result.Loser].Losses++
	}
}

// Merge folds another worker's statistics into s
func (s *Statistics) Merge(o *Statistics) {
	s.Games += o.Games
	s.SumSips += o.SumSips
	s.SumSqr += o.SumSqr
	s.Values = append(s.Values, o.Values...)
	s.Shots += o.Shots
	s.Rounds += o.Rounds
	s.MaxSips = max(s.MaxSips, o.MaxSips)
	s.Decisive += o.Decisive
	for i := range s.SeatLoses {
		s.SeatLoses[i].Losses += o.SeatLoses[i].Losses
	}
}

// Median returns the median sips per game
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// LossRate returns how often a seat lost, out of decisive games
func (s *Statistics) LossRate(seat int) float64 {
	if seat < 0 || seat >= len(s.SeatLoses) || s.Decisive == 0 {
		return 0
	}
	return float64(s.SeatLoses[seat].Losses) / float64(s.Decisive)
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	var sum float64
	for _, v := range s.Values {
		sum += v
	}
	if math.Abs(sum-s.SumSips) > 1e-6 {
		return fmt.Errorf("sip total mismatch: values=%.6f sum=%.6f", sum, s.SumSips)
	}

	if s.Decisive > s.Games {
		return fmt.Errorf("decisive games (%d) exceeds total games (%d)", s.Decisive, s.Games)
	}

	losses := 0
	for _, seat := range s.SeatLoses {
		losses += seat.Losses
	}
	if losses != s.Decisive {
		return fmt.Errorf("seat losses total (%d) does not match decisive games (%d)", losses, s.Decisive)
	}

	return nil
}
