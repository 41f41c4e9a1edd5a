package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeGuildSubscribed   EventType = "guild_subscribed"
	EventTypeGuildUnsubscribed EventType = "guild_unsubscribed"
	EventTypeGuildRemoved      EventType = "guild_removed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// GuildSubscribedEvent fires when a guild gains a notification channel
type GuildSubscribedEvent struct {
	GuildID   int64
	ChannelID int64
}

func (e GuildSubscribedEvent) Type() EventType {
	return EventTypeGuildSubscribed
}

// GuildUnsubscribedEvent fires when a guild clears its notification channel
type GuildUnsubscribedEvent struct {
	GuildID int64
}

func (e GuildUnsubscribedEvent) Type() EventType {
	return EventTypeGuildUnsubscribed
}

// GuildRemovedEvent fires when the bot leaves or is kicked from a guild
type GuildRemovedEvent struct {
	GuildID int64
}

func (e GuildRemovedEvent) Type() EventType {
	return EventTypeGuildRemoved
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

// Emit publishes an event to all registered handlers. Handlers run
// asynchronously so a slow handler never blocks the caller.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

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
