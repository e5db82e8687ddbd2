package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/leadpilot/leadpilot/internal/entity"
)

type FollowUpRepository struct {
	DB *sql.DB
}

func NewFollowUpRepository(db *sql.DB) *FollowUpRepository {
	return &FollowUpRepository{DB: db}
}

const followUpColumns = `id, campaign_id, subject, body, delay_days, scheduled_at, status, created_at`

func (r *FollowUpRepository) Create(ctx context.Context, f *entity.FollowUpEmail) error {
	query := `
		INSERT INTO followup_emails (` + followUpColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query,
		f.ID, f.CampaignID, f.Subject, f.Body, f.DelayDays, f.ScheduledAt, f.Status, f.CreatedAt,
	)
	return err
}

func (r *FollowUpRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*entity.FollowUpEmail, error) {
	query := `SELECT ` + followUpColumns + ` FROM followup_emails WHERE campaign_id = $1 ORDER BY delay_days`
	rows, err := r.DB.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFollowUps(rows)
}

func (r *FollowUpRepository) Update(ctx context.Context, f *entity.FollowUpEmail) error {
	query := `
		UPDATE followup_emails
		SET subject = $1, body = $2, delay_days = $3, scheduled_at = $4, status = $5
		WHERE id = $6
	`
	_, err := r.DB.ExecContext(ctx, query, f.Subject, f.Body, f.DelayDays, f.ScheduledAt, f.Status, f.ID)
	return err
}

// ScheduleForCampaign stamps each pending follow-up's due date relative to
// the dispatch time, chaining delays in delay_days order.
func (r *FollowUpRepository) ScheduleForCampaign(ctx context.Context, campaignID string, sentAt time.Time) error {
	pending, err := r.ListByCampaign(ctx, campaignID)
	if err != nil {
		return err
	}

	base := sentAt
	for _, f := range pending {
		if f.Status != entity.FollowUpStatusPending {
			continue
		}
		f.Schedule(base)
		base = *f.ScheduledAt
		if err := r.Update(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

func (r *FollowUpRepository) ListDue(ctx context.Context, now time.Time) ([]*entity.FollowUpEmail, error) {
	query := `
		SELECT ` + followUpColumns + `
		FROM followup_emails
		WHERE status = $1 AND scheduled_at <= $2
		ORDER BY scheduled_at
	`
	rows, err := r.DB.QueryContext(ctx, query, entity.FollowUpStatusScheduled, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFollowUps(rows)
}

func collectFollowUps(rows *sql.Rows) ([]*entity.FollowUpEmail, error) {
	var followUps []*entity.FollowUpEmail
	for rows.Next() {
		var f entity.FollowUpEmail
		if err := rows.Scan(&f.ID, &f.CampaignID, &f.Subject, &f.Body, &f.DelayDays, &f.ScheduledAt, &f.Status, &f.CreatedAt); err != nil {
			return nil, err
		}
		followUps = append(followUps, &f)
	}
	return followUps, rows.Err()
}
