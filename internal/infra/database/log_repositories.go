package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/leadpilot/leadpilot/internal/entity"
)

type OutreachLogRepository struct {
	DB *sql.DB
}

func NewOutreachLogRepository(db *sql.DB) *OutreachLogRepository {
	return &OutreachLogRepository{DB: db}
}

func (r *OutreachLogRepository) Create(ctx context.Context, l *entity.OutreachLog) error {
	query := `
		INSERT INTO outreach_logs (id, lead_id, status, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.ExecContext(ctx, query, l.ID, l.LeadID, l.Status, l.Message, l.Timestamp)
	return err
}

func (r *OutreachLogRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]*entity.OutreachLog, error) {
	query := `
		SELECT ol.id, ol.lead_id, ol.status, ol.message, ol.created_at
		FROM outreach_logs ol
		JOIN leads l ON l.id = ol.lead_id
		WHERE l.user_id = $1
		ORDER BY ol.created_at DESC
		LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*entity.OutreachLog
	for rows.Next() {
		var l entity.OutreachLog
		if err := rows.Scan(&l.ID, &l.LeadID, &l.Status, &l.Message, &l.Timestamp); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}

type EmailLogRepository struct {
	DB *sql.DB
}

func NewEmailLogRepository(db *sql.DB) *EmailLogRepository {
	return &EmailLogRepository{DB: db}
}

func (r *EmailLogRepository) CreateBatch(ctx context.Context, logs []*entity.EmailLog) error {
	if len(logs) == 0 {
		return nil
	}
	query := `
		INSERT INTO email_logs (id, campaign_id, lead_id, to_email, status, error, sent_at, opened_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
	`
	for _, l := range logs {
		if _, err := r.DB.ExecContext(ctx, query, l.ID, l.CampaignID, l.LeadID, l.ToEmail, l.Status, l.Error, l.SentAt, l.OpenedAt); err != nil {
			return fmt.Errorf("insert email log %s: %w", l.ID, err)
		}
	}
	return nil
}

func (r *EmailLogRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*entity.EmailLog, error) {
	query := `
		SELECT id, campaign_id, lead_id, to_email, status, COALESCE(error, ''), sent_at, opened_at
		FROM email_logs
		WHERE campaign_id = $1
		ORDER BY sent_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*entity.EmailLog
	for rows.Next() {
		var l entity.EmailLog
		if err := rows.Scan(&l.ID, &l.CampaignID, &l.LeadID, &l.ToEmail, &l.Status, &l.Error, &l.SentAt, &l.OpenedAt); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
