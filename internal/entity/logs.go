package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	DeliveryStatusSent   = "sent"
	DeliveryStatusFailed = "failed"
)

// OutreachLog records one outreach touch against a lead. Immutable once written.
type OutreachLog struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func NewOutreachLog(leadID, status, message string) *OutreachLog {
	return &OutreachLog{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		Status:    status,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// EmailLog records one email dispatch attempt for a (campaign, lead) pair.
// Exactly one row is written per lead per dispatch call.
type EmailLog struct {
	ID         string     `json:"id"`
	CampaignID string     `json:"campaign_id"`
	LeadID     string     `json:"lead_id"`
	ToEmail    string     `json:"to_email"`
	Status     string     `json:"status"`
	Error      string     `json:"error,omitempty"`
	SentAt     time.Time  `json:"sent_at"`
	OpenedAt   *time.Time `json:"opened_at,omitempty"`
}

func NewEmailLog(campaignID, leadID, toEmail, status, errText string) *EmailLog {
	return &EmailLog{
		ID:         uuid.New().String(),
		CampaignID: campaignID,
		LeadID:     leadID,
		ToEmail:    toEmail,
		Status:     status,
		Error:      errText,
		SentAt:     time.Now(),
	}
}

type OutreachLogRepositoryInterface interface {
	Create(ctx context.Context, l *OutreachLog) error
	// ListRecentByUser returns the owner's latest logs, newest first.
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]*OutreachLog, error)
}

type EmailLogRepositoryInterface interface {
	CreateBatch(ctx context.Context, logs []*EmailLog) error
	ListByCampaign(ctx context.Context, campaignID string) ([]*EmailLog, error)
}
