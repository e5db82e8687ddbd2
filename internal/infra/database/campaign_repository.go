package database

import (
	"context"
	"database/sql"

	"github.com/leadpilot/leadpilot/internal/entity"
)

type CampaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

func (r *CampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	query := `
		INSERT INTO campaigns (id, user_id, name, description, body, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.UserID, c.Name, c.Description, c.Body, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *CampaignRepository) FindByID(ctx context.Context, userID, id string) (*entity.Campaign, error) {
	query := `
		SELECT id, user_id, name, description, body, status, created_at, updated_at
		FROM campaigns
		WHERE id = $1 AND user_id = $2
	`
	var c entity.Campaign
	err := r.DB.QueryRowContext(ctx, query, id, userID).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Description, &c.Body, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Campaign, error) {
	query := `
		SELECT id, user_id, name, description, body, status, created_at, updated_at
		FROM campaigns
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []*entity.Campaign
	for rows.Next() {
		var c entity.Campaign
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.Body, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, &c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) Update(ctx context.Context, c *entity.Campaign) error {
	query := `
		UPDATE campaigns
		SET name = $1, description = $2, body = $3, status = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
	`
	_, err := r.DB.ExecContext(ctx, query, c.Name, c.Description, c.Body, c.Status, c.ID, c.UserID)
	return err
}

func (r *CampaignRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
