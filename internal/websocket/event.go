package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event (created, updated, deleted...)
type EventType string

const (
	EventTypeCreated  EventType = "created"
	EventTypeUpdated  EventType = "updated"
	EventTypeDeleted  EventType = "deleted"
	EventTypePaid     EventType = "paid"
	EventTypeFunded   EventType = "funded"
	EventTypeAchieved EventType = "achieved"
	EventTypeImported EventType = "imported"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeTransaction EntityType = "transaction"
	EntityTypeBudget      EntityType = "budget"
	EntityTypeGoal        EntityType = "goal"
	EntityTypePayment     EntityType = "payment"
	EntityTypeMilestone   EntityType = "milestone"
	EntityTypeBillSplit   EntityType = "billsplit"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "transaction.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "transaction"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionCreated creates a transaction.created event
func TransactionCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeTransaction, payload)
}

// TransactionUpdated creates a transaction.updated event
func TransactionUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeTransaction, payload)
}

// TransactionDeleted creates a transaction.deleted event
func TransactionDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeTransaction, payload)
}

// TransactionsImported creates a transaction.imported event for batch
// statement imports
func TransactionsImported(payload interface{}) Event {
	return NewEvent(EventTypeImported, EntityTypeTransaction, payload)
}

// BudgetUpdated creates a budget.updated event
func BudgetUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeBudget, payload)
}

// GoalFunded creates a goal.funded event
func GoalFunded(payload interface{}) Event {
	return NewEvent(EventTypeFunded, EntityTypeGoal, payload)
}

// PaymentPaid creates a payment.paid event
func PaymentPaid(payload interface{}) Event {
	return NewEvent(EventTypePaid, EntityTypePayment, payload)
}

// MilestoneAchieved creates a milestone.achieved event
func MilestoneAchieved(payload interface{}) Event {
	return NewEvent(EventTypeAchieved, EntityTypeMilestone, payload)
}

// BillSplitUpdated creates a billsplit.updated event
func BillSplitUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeBillSplit, payload)
}
