// Package events publishes transaction lifecycle notifications for downstream
// consumers. Publishing is fire-and-forget from the caller's point of view.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"campuscash/internal/models"
)

// EventType names what happened to a transaction.
type EventType string

const (
	TransactionCreated EventType = "transaction.created"
	TransactionUpdated EventType = "transaction.updated"
	TransactionDeleted EventType = "transaction.deleted"
)

// TransactionEvent is the message body sent for every transaction mutation.
type TransactionEvent struct {
	Type          EventType              `json:"type"`
	TransactionID string                 `json:"transactionId"`
	UserID        string                 `json:"userId"`
	Kind          models.TransactionType `json:"kind"`
	Amount        decimal.Decimal        `json:"amount"`
	Category      string                 `json:"category"`
	Timestamp     time.Time              `json:"timestamp"`
}

// NewTransactionEvent snapshots t into an event of the given type.
func NewTransactionEvent(eventType EventType, t *models.Transaction, at time.Time) TransactionEvent {
	return TransactionEvent{
		Type:          eventType,
		TransactionID: t.ID,
		UserID:        t.UserID,
		Kind:          t.Type,
		Amount:        t.Amount,
		Category:      t.Category,
		Timestamp:     at,
	}
}

// ToJSON encodes the event body.
func (e TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers transaction events.
type Publisher interface {
	Publish(ctx context.Context, event TransactionEvent) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, TransactionEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
