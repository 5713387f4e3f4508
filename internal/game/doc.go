// Package game holds what every drinking-game engine shares: the roster,
// the error taxonomy and the event bus a session publishes on.
//
// # Basic Usage
//
// Build a roster and hand it to an engine:
//
//	players, err := game.NewPlayers([]string{"Alice", "Bob", "Charlie"})
//	if err != nil {
//	    // fewer than 2 or more than 8 names, or a blank one
//	}
//
// Engines take the names directly and build their own players:
//
//	g, err := borderland.New(names, borderland.WithSource(randutil.New(42)))
//
// Operations called in the wrong phase return an error matching
// ErrInvalidOperation:
//
//	if _, err := g.DrawCard(); errors.Is(err, game.ErrInvalidOperation) {
//	    // a card is already in play
//	}
//
// # Events
//
// Engines never log or publish. A session wraps them and publishes
// GameStartEvent, PhaseChangeEvent, PenaltyEvent and GameEndEvent on a
// SimpleEventBus; the drink ledger and the history store subscribe to it.
package game
