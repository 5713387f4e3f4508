package game

import (
	"sync"
	"time"

	"github.com/lox/blackout/internal/drink"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeGameStart   EventType = "game_start"
	EventTypeGameEnd     EventType = "game_end"
	EventTypePhaseChange EventType = "phase_change"
	EventTypePenalty     EventType = "penalty"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens during a session
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartEvent is published when an engine is created for the session
type GameStartEvent struct {
	Kind      Kind
	Players   []Player
	timestamp time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// NewGameStartEvent creates a new game start event
func NewGameStartEvent(kind Kind, players []Player, at time.Time) GameStartEvent {
	cp := make([]Player, len(players))
	copy(cp, players)
	return GameStartEvent{Kind: kind, Players: cp, timestamp: at}
}

// GameEndEvent is published when an engine reaches its terminal phase
type GameEndEvent struct {
	Kind      Kind
	Loser     string // player ID, empty when the game has none
	timestamp time.Time
}

func (e GameEndEvent) EventType() EventType { return EventTypeGameEnd }
func (e GameEndEvent) Timestamp() time.Time { return e.timestamp }

// NewGameEndEvent creates a new game end event
func NewGameEndEvent(kind Kind, loser string, at time.Time) GameEndEvent {
	return GameEndEvent{Kind: kind, Loser: loser, timestamp: at}
}

// PhaseChangeEvent is published when an engine moves between phases
type PhaseChangeEvent struct {
	Kind      Kind
	From, To  string
	timestamp time.Time
}

func (e PhaseChangeEvent) EventType() EventType { return EventTypePhaseChange }
func (e PhaseChangeEvent) Timestamp() time.Time { return e.timestamp }

// NewPhaseChangeEvent creates a new phase change event
func NewPhaseChangeEvent(kind Kind, from, to string, at time.Time) PhaseChangeEvent {
	return PhaseChangeEvent{Kind: kind, From: from, To: to, timestamp: at}
}

// PenaltyEvent is published for every displayable penalty
type PenaltyEvent struct {
	Kind      Kind
	Penalty   drink.Penalty
	timestamp time.Time
}

func (e PenaltyEvent) EventType() EventType { return EventTypePenalty }
func (e PenaltyEvent) Timestamp() time.Time { return e.timestamp }

// NewPenaltyEvent creates a new penalty event
func NewPenaltyEvent(kind Kind, p drink.Penalty, at time.Time) PenaltyEvent {
	return PenaltyEvent{Kind: kind, Penalty: p, timestamp: at}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber
type SubscriberFunc func(GameEvent)

func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a synchronous in-memory event bus
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. Only comparable subscribers can be
// removed; SubscriberFunc values stay registered for the bus lifetime.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, isFunc := subscriber.(SubscriberFunc); isFunc {
		return
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if _, isFunc := sub.(SubscriberFunc); isFunc {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			return
		}
	}
}

// Publish delivers an event to every subscriber in subscription order
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := make([]EventSubscriber, len(bus.subscribers))
	copy(subs, bus.subscribers)
	bus.mu.RUnlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}
