package events

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBatchCompleted EventType = "batch_completed"
	EventTypeTargetReached  EventType = "target_reached"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BatchCompletedEvent is published after a full recomputation pass finishes
type BatchCompletedEvent struct {
	Month          time.Time
	TotalCreators  int
	TotalProcessed int
	FailedCount    int
}

func (e BatchCompletedEvent) Type() EventType {
	return EventTypeBatchCompleted
}

// TargetReachedEvent is published when a creator's active graduation target
// is met during an evaluation
type TargetReachedEvent struct {
	CreatorID    int64
	CreatorName  string
	Month        time.Time
	DiamondsLive int64
}

func (e TargetReachedEvent) Type() EventType {
	return EventTypeTargetReached
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Publish delivers an event to all registered handlers. Handlers run
// asynchronously so a slow subscriber never blocks the batch.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}
