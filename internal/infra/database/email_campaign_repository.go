package database

import (
	"context"
	"database/sql"

	"github.com/leadpilot/leadpilot/internal/entity"
)

type EmailCampaignRepository struct {
	DB *sql.DB
}

func NewEmailCampaignRepository(db *sql.DB) *EmailCampaignRepository {
	return &EmailCampaignRepository{DB: db}
}

func (r *EmailCampaignRepository) Create(ctx context.Context, c *entity.EmailCampaign) error {
	query := `
		INSERT INTO email_campaigns (id, user_id, name, subject, body, status, scheduled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.UserID, c.Name, c.Subject, c.Body, c.Status, c.ScheduledAt, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *EmailCampaignRepository) FindByID(ctx context.Context, userID, id string) (*entity.EmailCampaign, error) {
	query := `
		SELECT id, user_id, name, subject, body, status, scheduled_at, created_at, updated_at
		FROM email_campaigns
		WHERE id = $1 AND user_id = $2
	`
	var c entity.EmailCampaign
	err := r.DB.QueryRowContext(ctx, query, id, userID).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Subject, &c.Body, &c.Status, &c.ScheduledAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *EmailCampaignRepository) ListByUser(ctx context.Context, userID string) ([]*entity.EmailCampaign, error) {
	query := `
		SELECT id, user_id, name, subject, body, status, scheduled_at, created_at, updated_at
		FROM email_campaigns
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []*entity.EmailCampaign
	for rows.Next() {
		var c entity.EmailCampaign
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Subject, &c.Body, &c.Status, &c.ScheduledAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, &c)
	}
	return campaigns, rows.Err()
}

func (r *EmailCampaignRepository) Update(ctx context.Context, c *entity.EmailCampaign) error {
	query := `
		UPDATE email_campaigns
		SET name = $1, subject = $2, body = $3, status = $4, scheduled_at = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7
	`
	_, err := r.DB.ExecContext(ctx, query, c.Name, c.Subject, c.Body, c.Status, c.ScheduledAt, c.ID, c.UserID)
	return err
}

func (r *EmailCampaignRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM email_campaigns WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
