package service

import (
	"context"
)

// Account event types published by the auth flows.
const (
	EventAccountRegistered = "account.registered"
	EventAccountVerified   = "account.verified"
)

// AccountEvent represents an account lifecycle event for async consumers
// (analytics, CRM sync, audit trail).
type AccountEvent struct {
	EventID    string `json:"event_id"`
	Type       string `json:"type"`
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	OccurredAt string `json:"occurred_at"`
	RequestID  string `json:"request_id,omitempty"` // For distributed tracing
}

// EventPublisher defines the interface for publishing events to a message queue.
type EventPublisher interface {
	// PublishAccountEvent publishes an account lifecycle event for async processing.
	PublishAccountEvent(ctx context.Context, event *AccountEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
