package statistics

import (
	"math"
	"strings"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.Percentile(0.5) != 0 {
		t.Errorf("Expected percentile of 0 for empty stats, got %f", stats.Percentile(0.5))
	}
	if stats.LossRate(0) != 0 {
		t.Errorf("Expected loss rate of 0 for empty stats, got %f", stats.LossRate(0))
	}
}

func TestStatistics_SingleValue(t *testing.T) {
	stats := &Statistics{}
	stats.Add(GameResult{Seed: 12345, Rounds: 30, Sips: 14, Shots: 2, Loser: 1})

	if stats.Games != 1 {
		t.Errorf("Expected 1 game, got %d", stats.Games)
	}
	if stats.Mean() != 14 {
		t.Errorf("Expected mean of 14, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", stats.Variance())
	}
	if stats.Median() != 14 {
		t.Errorf("Expected median of 14, got %f", stats.Median())
	}
	if stats.Shots != 2 || stats.MeanRounds() != 30 {
		t.Errorf("Expected 2 shots and 30 rounds, got %d and %f", stats.Shots, stats.MeanRounds())
	}
	if stats.LossRate(1) != 1 {
		t.Errorf("Expected seat 1 to lose every decisive game, got %f", stats.LossRate(1))
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(GameResult{Sips: float64(i), Loser: -1})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{1.0, 5.0},
	}

	for _, test := range tests {
		result := stats.Percentile(test.percentile)
		if math.Abs(result-test.expected) > 1e-9 {
			t.Errorf("Percentile %.2f: expected %f, got %f", test.percentile, test.expected, result)
		}
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []float64{1, 2, 3, 4, 5} {
		stats.Add(GameResult{Sips: v, Loser: -1})
	}

	low, high := stats.ConfidenceInterval95()
	mean := stats.Mean()

	if math.Abs((low+high)/2-mean) > 1e-9 {
		t.Errorf("Confidence interval not symmetric around mean. Low: %f, High: %f, Mean: %f", low, high, mean)
	}
	if high-low <= 0 {
		t.Errorf("Confidence interval should be positive width, got %f", high-low)
	}
}

func TestStatistics_Variance(t *testing.T) {
	stats := &Statistics{}

	// [1, 3, 5] has sample variance 4
	for _, v := range []float64{1, 3, 5} {
		stats.Add(GameResult{Sips: v, Loser: -1})
	}

	if math.Abs(stats.Variance()-4.0) > 1e-9 {
		t.Errorf("Expected variance of 4, got %f", stats.Variance())
	}
	if math.Abs(stats.StdDev()-2.0) > 1e-9 {
		t.Errorf("Expected stddev of 2, got %f", stats.StdDev())
	}
	if stats.MaxSips != 5 {
		t.Errorf("Expected max of 5, got %f", stats.MaxSips)
	}
}

func TestStatistics_LossRates(t *testing.T) {
	stats := &Statistics{}
	stats.Add(GameResult{Sips: 1, Loser: 0})
	stats.Add(GameResult{Sips: 1, Loser: 0})
	stats.Add(GameResult{Sips: 1, Loser: 2})
	stats.Add(GameResult{Sips: 1, Loser: -1})

	if stats.Decisive != 3 {
		t.Errorf("Expected 3 decisive games, got %d", stats.Decisive)
	}
	if math.Abs(stats.LossRate(0)-2.0/3.0) > 1e-9 {
		t.Errorf("Seat 0 loss rate: got %f", stats.LossRate(0))
	}
	if stats.LossRate(99) != 0 {
		t.Errorf("Expected 0 for an invalid seat, got %f", stats.LossRate(99))
	}
}

func TestStatistics_Merge(t *testing.T) {
	a := &Statistics{}
	b := &Statistics{}
	a.Add(GameResult{Sips: 2, Shots: 1, Rounds: 10, Loser: 0})
	b.Add(GameResult{Sips: 6, Rounds: 20, Loser: 1})
	b.Add(GameResult{Sips: 4, Rounds: 30, Loser: -1})

	a.Merge(b)
	if a.Games != 3 || a.Mean() != 4 {
		t.Errorf("Expected 3 games with mean 4, got %d and %f", a.Games, a.Mean())
	}
	if a.MaxSips != 6 || a.Decisive != 2 || a.MeanRounds() != 20 {
		t.Errorf("merge lost data: %+v", a)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("merged stats failed validation: %v", err)
	}
}

func TestStatistics_Validate(t *testing.T) {
	valid := func() *Statistics {
		s := &Statistics{}
		s.Add(GameResult{Sips: 1, Loser: 0})
		s.Add(GameResult{Sips: 3, Loser: -1})
		return s
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("Expected valid stats to pass validation, got error: %v", err)
	}

	tests := []struct {
		name    string
		corrupt func(*Statistics)
		want    string
	}{
		{"no games", func(s *Statistics) { *s = Statistics{} }, "invalid games count"},
		{"values mismatch", func(s *Statistics) { s.Values = s.Values[:1] }, "does not match games count"},
		{"sum mismatch", func(s *Statistics) { s.SumSips += 10 }, "sip total mismatch"},
		{"too many decisive", func(s *Statistics) { s.Decisive = 5 }, "exceeds total games"},
		{"seat mismatch", func(s *Statistics) { s.SeatLoses[3].Losses++ }, "seat losses total"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.corrupt(s)
			err := s.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
