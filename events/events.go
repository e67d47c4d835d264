package events

import (
	"context"
	"sync"

	"github.com/Hiroshi025/Nebura-sub000/models"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange EventType = "balance_change"
	EventTypeLedgerCreated EventType = "ledger_created"
	EventTypeLoanIssued    EventType = "loan_issued"
	EventTypeDuelResolved  EventType = "duel_resolved"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID          string
	GuildID         string
	OldBalance      float64
	NewBalance      float64
	TransactionType models.TransactionType
	ChangeAmount    float64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// LedgerCreatedEvent represents a lazily created balance record
type LedgerCreatedEvent struct {
	UserID  string
	GuildID string
}

func (e LedgerCreatedEvent) Type() EventType {
	return EventTypeLedgerCreated
}

// LoanIssuedEvent represents a newly disbursed loan
type LoanIssuedEvent struct {
	LoanID  int64
	UserID  string
	GuildID string
	Amount  float64
}

func (e LoanIssuedEvent) Type() EventType {
	return EventTypeLoanIssued
}

// DuelResolvedEvent represents a resolved duel
type DuelResolvedEvent struct {
	GuildID  string
	WinnerID string
	LoserID  string
	Stake    float64
}

func (e DuelResolvedEvent) Type() EventType {
	return EventTypeDuelResolved
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
// asynchronously so a slow subscriber cannot block the emitter.
func (b *Bus) Emit(ctx context.Context, event Event) {
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

// TransactionalBus holds pending events coupled to a unit of work and
// flushes them to the underlying bus only after a successful commit.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events. Called after a successful DB commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// Events outlive the transaction context.
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events. Called after a rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
