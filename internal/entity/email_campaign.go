package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// EmailCampaign holds a subject/body template dispatched over a transactional
// email API. Shares the campaign status state machine.
type EmailCampaign struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body"`
	Status      string     `json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewEmailCampaign(userID, name, subject, body string) (*EmailCampaign, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	if name == "" {
		return nil, errors.New("name is required")
	}
	return &EmailCampaign{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Subject:   subject,
		Body:      body,
		Status:    CampaignStatusDraft,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

type EmailCampaignRepositoryInterface interface {
	Create(ctx context.Context, c *EmailCampaign) error
	FindByID(ctx context.Context, userID, id string) (*EmailCampaign, error)
	ListByUser(ctx context.Context, userID string) ([]*EmailCampaign, error)
	Update(ctx context.Context, c *EmailCampaign) error
	Delete(ctx context.Context, userID, id string) error
}
