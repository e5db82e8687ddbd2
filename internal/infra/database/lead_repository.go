package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/leadpilot/leadpilot/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, user_id, campaign_id, first_name, last_name, job_title, company, profile_url, status, email, email_confidence, created_at, updated_at`

func (r *LeadRepository) CreateBatch(ctx context.Context, leads []*entity.Lead) error {
	if len(leads) == 0 {
		return nil
	}

	// One statement per row, no wrapping transaction: a crash mid-batch keeps
	// the rows already written, and the next upload dedups against them.
	query := fmt.Sprintf(`INSERT INTO leads (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12, $13)`, leadColumns)

	for _, l := range leads {
		_, err := r.DB.ExecContext(ctx, query,
			l.ID,
			l.UserID,
			l.CampaignID,
			l.FirstName,
			l.LastName,
			l.JobTitle,
			l.Company,
			l.ProfileURL,
			l.Status,
			l.Email,
			l.EmailConfidence,
			l.CreatedAt,
			l.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert lead %s: %w", l.ID, err)
		}
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, userID, id string) (*entity.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE id = $1 AND user_id = $2`, leadColumns)
	return scanLead(r.DB.QueryRowContext(ctx, query, id, userID))
}

func (r *LeadRepository) List(ctx context.Context, userID string, filter entity.LeadFilter) ([]*entity.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE user_id = $1`, leadColumns)
	if filter.UnassignedOnly {
		query += ` AND campaign_id IS NULL`
	}
	query += ` ORDER BY created_at`
	args := []any{userID}
	if filter.Limit > 0 {
		query += ` LIMIT $2`
		args = append(args, filter.Limit)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeads(rows)
}

func (r *LeadRepository) ListByIDs(ctx context.Context, userID string, ids []string) ([]*entity.Lead, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE user_id = $1 AND id = ANY($2) ORDER BY created_at`, leadColumns)

	rows, err := r.DB.QueryContext(ctx, query, userID, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeads(rows)
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET status = $1, email = NULLIF($2, ''), email_confidence = $3, job_title = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
	`
	_, err := r.DB.ExecContext(ctx, query,
		lead.Status,
		lead.Email,
		lead.EmailConfidence,
		lead.JobTitle,
		lead.ID,
		lead.UserID,
	)
	return err
}

func (r *LeadRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *LeadRepository) AssignToCampaign(ctx context.Context, userID, campaignID string, leadIDs []string) (int, error) {
	query := `
		UPDATE leads
		SET campaign_id = $1, updated_at = NOW()
		WHERE user_id = $2 AND id = ANY($3) AND campaign_id IS NULL
	`
	result, err := r.DB.ExecContext(ctx, query, campaignID, userID, pq.Array(leadIDs))
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	return int(n), err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var l entity.Lead
	var email sql.NullString
	err := row.Scan(
		&l.ID,
		&l.UserID,
		&l.CampaignID,
		&l.FirstName,
		&l.LastName,
		&l.JobTitle,
		&l.Company,
		&l.ProfileURL,
		&l.Status,
		&email,
		&l.EmailConfidence,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Email = email.String
	return &l, nil
}

func collectLeads(rows *sql.Rows) ([]*entity.Lead, error) {
	var leads []*entity.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}
