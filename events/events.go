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
	EventTypeBetPlaced        EventType = "bet_placed"
	EventTypeBetSettled       EventType = "bet_settled"
	EventTypeChallengeSettled EventType = "challenge_settled"
	EventTypeContribution     EventType = "wallet_contribution"
	EventTypeWalletCharged    EventType = "wallet_charged"
	EventTypeWalletFrozen     EventType = "wallet_frozen"
	EventTypeLeagueDowngraded EventType = "league_downgraded"
	EventTypeMemberJoined     EventType = "member_joined"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BetPlacedEvent represents a bet that was placed
type BetPlacedEvent struct {
	BetID    int64
	UserID   int64
	LeagueID int64
	MatchID  int64
	Amount   int64
}

func (e BetPlacedEvent) Type() EventType {
	return EventTypeBetPlaced
}

// BetSettledEvent represents a bet that reached a terminal state
type BetSettledEvent struct {
	BetID     int64
	UserID    int64
	LeagueID  int64
	Status    string
	ActualWin int64
}

func (e BetSettledEvent) Type() EventType {
	return EventTypeBetSettled
}

// ChallengeSettledEvent represents a challenge that was settled
type ChallengeSettledEvent struct {
	ChallengeID int64
	LeagueID    int64
	MatchID     int64
}

func (e ChallengeSettledEvent) Type() EventType {
	return EventTypeChallengeSettled
}

// ContributionEvent represents a completed wallet contribution
type ContributionEvent struct {
	LeagueID    int64
	UserID      int64
	AmountCents int64
	NewBalance  int64
	Unfroze     bool
}

func (e ContributionEvent) Type() EventType {
	return EventTypeContribution
}

// WalletChargedEvent represents a successful monthly charge
type WalletChargedEvent struct {
	LeagueID        int64
	AmountCents     int64
	NewBalance      int64
	NextPaymentDate time.Time
}

func (e WalletChargedEvent) Type() EventType {
	return EventTypeWalletCharged
}

// WalletFrozenEvent represents a wallet lockout after a failed charge
type WalletFrozenEvent struct {
	LeagueID int64
	Shortage int64
}

func (e WalletFrozenEvent) Type() EventType {
	return EventTypeWalletFrozen
}

// LeagueDowngradedEvent represents an automatic demotion to the free plan
type LeagueDowngradedEvent struct {
	LeagueID   int64
	FromPlanID string
	ToPlanID   string
}

func (e LeagueDowngradedEvent) Type() EventType {
	return EventTypeLeagueDowngraded
}

// MemberJoinedEvent represents an invite-code redemption
type MemberJoinedEvent struct {
	LeagueID int64
	UserID   int64
}

func (e MemberJoinedEvent) Type() EventType {
	return EventTypeMemberJoined
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

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make([]Handler, 0)
	}
	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking
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

// NewTransactionalBus creates a transactional wrapper around a bus
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish stashes an event until the surrounding transaction commits
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events. Called after a successful DB commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// Events outlive the transaction context deliberately.
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
