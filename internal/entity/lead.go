package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Lead lifecycle labels. Status is free text; these are the values the app
// itself writes.
const (
	LeadStatusPending   = "pending"
	LeadStatusContacted = "contacted"
	LeadStatusSent      = "sent"
	LeadStatusReplied   = "replied"
	LeadStatusConnected = "connected"
	LeadStatusFailed    = "failed"
)

// MessagedStatuses are the lead statuses that count as a consumed message for
// usage accounting.
var MessagedStatuses = []string{LeadStatusContacted, LeadStatusSent, LeadStatusReplied, LeadStatusConnected}

type Lead struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	CampaignID      *string   `json:"campaign_id,omitempty"` // nil = unassigned
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	JobTitle        string    `json:"job_title"`
	Company         string    `json:"company"`
	ProfileURL      string    `json:"profile_url"`
	Status          string    `json:"status"`
	Email           string    `json:"email,omitempty"`
	EmailConfidence *int      `json:"email_confidence,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DedupKey identifies a unique lead within one owner's lead set.
type DedupKey struct {
	FirstName  string
	LastName   string
	Company    string
	ProfileURL string
}

func (l *Lead) Key() DedupKey {
	return DedupKey{
		FirstName:  l.FirstName,
		LastName:   l.LastName,
		Company:    l.Company,
		ProfileURL: l.ProfileURL,
	}
}

func NewLead(userID, campaignID, firstName, lastName, jobTitle, company, profileURL string) (*Lead, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	lead := &Lead{
		ID:         uuid.New().String(),
		UserID:     userID,
		FirstName:  firstName,
		LastName:   lastName,
		JobTitle:   jobTitle,
		Company:    company,
		ProfileURL: profileURL,
		Status:     LeadStatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if campaignID != "" {
		lead.CampaignID = &campaignID
	}
	return lead, nil
}

func (l *Lead) FullName() string {
	return l.FirstName + " " + l.LastName
}

type LeadFilter struct {
	UnassignedOnly bool
	Limit          int // 0 = no cap
}

type LeadRepositoryInterface interface {
	CreateBatch(ctx context.Context, leads []*Lead) error
	FindByID(ctx context.Context, userID, id string) (*Lead, error)
	List(ctx context.Context, userID string, filter LeadFilter) ([]*Lead, error)
	ListByIDs(ctx context.Context, userID string, ids []string) ([]*Lead, error)
	Update(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, userID, id string) error
	// AssignToCampaign attaches the given unassigned leads to a campaign and
	// returns how many rows were actually moved.
	AssignToCampaign(ctx context.Context, userID, campaignID string, leadIDs []string) (int, error)
}
