package game

import (
	"fmt"
	"strings"
)

const (
	MinPlayers = 2
	MaxPlayers = 8
)

// Player is the generic seat every engine starts from
type Player struct {
	ID     string
	Name   string
	Active bool
}

// PlayerID returns the stable ID for a seat index
func PlayerID(seat int) string {
	return fmt.Sprintf("player-%d", seat)
}

// NormalizeRoster trims names and checks the 2..8 non-empty rule
func NormalizeRoster(names []string) ([]string, error) {
	if len(names) < MinPlayers || len(names) > MaxPlayers {
		return nil, fmt.Errorf("%w: need %d-%d players, got %d", ErrInvalidRoster, MinPlayers, MaxPlayers, len(names))
	}
	out := make([]string, len(names))
	for i, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, fmt.Errorf("%w: player %d has an empty name", ErrInvalidRoster, i+1)
		}
		out[i] = n
	}
	return out, nil
}

// NewPlayers maps a validated roster onto active players with seat IDs
func NewPlayers(names []string) ([]Player, error) {
	names, err := NormalizeRoster(names)
	if err != nil {
		return nil, err
	}
	players := make([]Player, len(names))
	for i, n := range names {
		players[i] = Player{ID: PlayerID(i), Name: n, Active: true}
	}
	return players, nil
}
