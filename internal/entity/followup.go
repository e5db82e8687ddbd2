package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	FollowUpStatusPending   = "pending"
	FollowUpStatusScheduled = "scheduled"
	FollowUpStatusSent      = "sent"
	FollowUpStatusFailed    = "failed"
)

// FollowUpEmail is a delayed follow-up attached to an email campaign. It
// becomes due DelayDays after the campaign is sent (or after the previous
// follow-up in the chain).
type FollowUpEmail struct {
	ID          string     `json:"id"`
	CampaignID  string     `json:"campaign_id"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body"`
	DelayDays   int        `json:"delay_days"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewFollowUpEmail(campaignID, subject, body string, delayDays int) (*FollowUpEmail, error) {
	if campaignID == "" {
		return nil, errors.New("campaign_id is required")
	}
	if delayDays < 1 {
		return nil, errors.New("delay_days must be at least 1")
	}
	return &FollowUpEmail{
		ID:         uuid.New().String(),
		CampaignID: campaignID,
		Subject:    subject,
		Body:       body,
		DelayDays:  delayDays,
		Status:     FollowUpStatusPending,
		CreatedAt:  time.Now(),
	}, nil
}

// Schedule stamps the follow-up relative to the moment the parent campaign
// went out.
func (f *FollowUpEmail) Schedule(sentAt time.Time) {
	due := sentAt.AddDate(0, 0, f.DelayDays)
	f.ScheduledAt = &due
	f.Status = FollowUpStatusScheduled
}

type FollowUpRepositoryInterface interface {
	Create(ctx context.Context, f *FollowUpEmail) error
	ListByCampaign(ctx context.Context, campaignID string) ([]*FollowUpEmail, error)
	Update(ctx context.Context, f *FollowUpEmail) error
	// ScheduleForCampaign promotes the campaign's pending follow-ups and stamps
	// their due dates relative to sentAt.
	ScheduleForCampaign(ctx context.Context, campaignID string, sentAt time.Time) error
	// ListDue returns scheduled follow-ups whose due date has passed.
	ListDue(ctx context.Context, now time.Time) ([]*FollowUpEmail, error)
}
