package worker

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/leadpilot/leadpilot/internal/entity"
	"github.com/leadpilot/leadpilot/internal/infra/integration/apollo"
	"github.com/leadpilot/leadpilot/internal/infra/queue"
)

type EmailGateway interface {
	SendEmail(ctx context.Context, input apollo.SendEmailInput) error
}

// FollowUpWorker wakes up periodically and dispatches follow-up emails whose
// due date has passed. Recipients are the leads the parent campaign already
// reached; each send gets its own delivery log row, same as a manual dispatch.
type FollowUpWorker struct {
	db           *sql.DB
	followUps    entity.FollowUpRepositoryInterface
	gateway      EmailGateway
	notifier     queue.NotificationPublisherInterface
	tickInterval time.Duration
}

func NewFollowUpWorker(db *sql.DB, followUps entity.FollowUpRepositoryInterface, gateway EmailGateway, notifier queue.NotificationPublisherInterface) *FollowUpWorker {
	return &FollowUpWorker{
		db:           db,
		followUps:    followUps,
		gateway:      gateway,
		notifier:     notifier,
		tickInterval: time.Minute,
	}
}

func (w *FollowUpWorker) Start(ctx context.Context) {
	log.Println("[FOLLOWUP] worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.dispatchDue(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("[FOLLOWUP] worker stopped")
			return
		case <-ticker.C:
			w.dispatchDue(ctx)
		}
	}
}

func (w *FollowUpWorker) dispatchDue(ctx context.Context) {
	due, err := w.followUps.ListDue(ctx, time.Now())
	if err != nil {
		log.Printf("[FOLLOWUP] listing due follow-ups: %v", err)
		return
	}

	for _, f := range due {
		if err := w.dispatchOne(ctx, f); err != nil {
			log.Printf("[FOLLOWUP] follow-up %s: %v", f.ID, err)
		}
	}
}

type campaignOwner struct {
	UserID       string
	CampaignName string
	ApolloAPIKey string
}

func (w *FollowUpWorker) dispatchOne(ctx context.Context, f *entity.FollowUpEmail) error {
	owner, err := w.campaignOwner(ctx, f.CampaignID)
	if err != nil {
		return fmt.Errorf("resolve campaign owner: %w", err)
	}

	if owner.ApolloAPIKey == "" {
		f.Status = entity.FollowUpStatusFailed
		return w.followUps.Update(ctx, f)
	}

	recipients, err := w.recipients(ctx, f.CampaignID)
	if err != nil {
		return fmt.Errorf("load recipients: %w", err)
	}

	failed := 0
	for _, rcpt := range recipients {
		sendErr := w.gateway.SendEmail(ctx, apollo.SendEmailInput{
			APIKey:  owner.ApolloAPIKey,
			To:      rcpt.Email,
			Subject: f.Subject,
			Body:    f.Body,
		})

		status := entity.DeliveryStatusSent
		errText := ""
		if sendErr != nil {
			status = entity.DeliveryStatusFailed
			errText = sendErr.Error()
			failed++
		}

		if err := w.writeLog(ctx, f.CampaignID, rcpt.LeadID, rcpt.Email, status, errText); err != nil {
			log.Printf("[FOLLOWUP] writing delivery log for lead %s: %v", rcpt.LeadID, err)
		}
	}

	f.Status = entity.FollowUpStatusSent
	if len(recipients) > 0 && failed == len(recipients) {
		f.Status = entity.FollowUpStatusFailed
	}
	if err := w.followUps.Update(ctx, f); err != nil {
		return err
	}

	if failed > 0 {
		event := queue.NotificationEvent{
			UserID:  owner.UserID,
			Type:    entity.NotificationEmailFailed,
			Message: fmt.Sprintf("%d follow-up emails failed to send in campaign '%s'.", failed, owner.CampaignName),
		}
		if err := w.notifier.PublishNotification(ctx, event); err != nil {
			log.Printf("[FOLLOWUP] publishing notification: %v", err)
		}
	}

	log.Printf("[FOLLOWUP] dispatched follow-up %s to %d recipients (%d failed)", f.ID, len(recipients), failed)
	return nil
}

func (w *FollowUpWorker) campaignOwner(ctx context.Context, campaignID string) (*campaignOwner, error) {
	query := `
		SELECT u.id, c.name, COALESCE(u.apollo_api_key, '')
		FROM email_campaigns c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`
	var owner campaignOwner
	err := w.db.QueryRowContext(ctx, query, campaignID).Scan(&owner.UserID, &owner.CampaignName, &owner.ApolloAPIKey)
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

type recipient struct {
	LeadID string
	Email  string
}

// recipients are leads that already received the parent campaign successfully.
func (w *FollowUpWorker) recipients(ctx context.Context, campaignID string) ([]recipient, error) {
	query := `
		SELECT DISTINCT l.id, l.email
		FROM email_logs el
		JOIN leads l ON l.id = el.lead_id
		WHERE el.campaign_id = $1 AND el.status = 'sent' AND l.email IS NOT NULL
	`
	rows, err := w.db.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipients []recipient
	for rows.Next() {
		var r recipient
		if err := rows.Scan(&r.LeadID, &r.Email); err != nil {
			return nil, err
		}
		recipients = append(recipients, r)
	}
	return recipients, rows.Err()
}

func (w *FollowUpWorker) writeLog(ctx context.Context, campaignID, leadID, toEmail, status, errText string) error {
	query := `
		INSERT INTO email_logs (id, campaign_id, lead_id, to_email, status, error, sent_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NOW())
	`
	_, err := w.db.ExecContext(ctx, query, uuid.New().String(), campaignID, leadID, toEmail, status, errText)
	return err
}
