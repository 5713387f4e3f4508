package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOperation marks an action called outside its valid phase.
	// It always indicates a caller bug, never a game event.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrOutOfRange is returned for indices or amounts outside the legal range.
	ErrOutOfRange = errors.New("out of range")

	// ErrInvalidRoster is returned when a player roster cannot start a game.
	ErrInvalidRoster = errors.New("invalid roster")

	// ErrUnknownPlayer is returned when an operation names a player ID that
	// is not seated in the game.
	ErrUnknownPlayer = errors.New("unknown player")
)

// InvalidOperationError describes which operation was rejected and why
type InvalidOperationError struct {
	Game   string
	Op     string
	Phase  string
	Reason string
}

func (e *InvalidOperationError) Error() string {
	msg := fmt.Sprintf("%s: %s not allowed in phase %s", e.Game, e.Op, e.Phase)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Is lets errors.Is(err, ErrInvalidOperation) match
func (e *InvalidOperationError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// Invalid is shorthand for building an *InvalidOperationError
func Invalid(gameName, op string, phase fmt.Stringer, reason string) error {
	return &InvalidOperationError{Game: gameName, Op: op, Phase: phase.String(), Reason: reason}
}
