package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
)

func ValidCampaignStatus(s string) bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusPaused, CampaignStatusCompleted:
		return true
	}
	return false
}

// CanTransition encodes the campaign status state machine:
// draft -> active, active <-> paused, {active,paused} -> completed.
// A no-op transition is always allowed; nothing regresses out of completed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case CampaignStatusDraft:
		return to == CampaignStatusActive
	case CampaignStatusActive, CampaignStatusPaused:
		return to == CampaignStatusActive || to == CampaignStatusPaused || to == CampaignStatusCompleted
	}
	return false
}

// Campaign is an outreach (LinkedIn-style) campaign. It owns a message
// template applied to every lead it contacts.
type Campaign struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Body        string    `json:"body"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewCampaign(userID, name, description, body string) (*Campaign, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	if name == "" {
		return nil, errors.New("name is required")
	}
	return &Campaign{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        name,
		Description: description,
		Body:        body,
		Status:      CampaignStatusDraft,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

type CampaignRepositoryInterface interface {
	Create(ctx context.Context, c *Campaign) error
	FindByID(ctx context.Context, userID, id string) (*Campaign, error)
	ListByUser(ctx context.Context, userID string) ([]*Campaign, error)
	Update(ctx context.Context, c *Campaign) error
	Delete(ctx context.Context, userID, id string) error
}
