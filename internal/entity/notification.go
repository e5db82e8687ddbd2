package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Notification types emitted by the backend.
const (
	NotificationEnrichmentFailed = "enrichment_failed"
	NotificationEmailFailed      = "email_failed"
	NotificationLeadUpdated      = "lead_updated"
	NotificationLeadAssigned     = "lead_assigned"
	NotificationUsageLimit       = "usage_limit"
	NotificationSubscription     = "subscription_upgraded"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNotification(userID, typ, message string) *Notification {
	return &Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      typ,
		Message:   message,
		CreatedAt: time.Now(),
	}
}

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string) ([]*Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	Delete(ctx context.Context, userID, id string) error
	HasUnread(ctx context.Context, userID, typ string) (bool, error)
}
