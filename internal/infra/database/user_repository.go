package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/leadpilot/leadpilot/internal/entity"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, email, COALESCE(name, ''), subscription_tier, subscription_status, subscription_expires_at, COALESCE(apollo_api_key, ''), created_at, updated_at`

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) UpdateSubscription(ctx context.Context, userID, tier, status string, expiresAt *time.Time) error {
	query := `
		UPDATE users
		SET subscription_tier = $1, subscription_status = $2, subscription_expires_at = $3, updated_at = NOW()
		WHERE id = $4
	`
	result, err := r.DB.ExecContext(ctx, query, tier, status, expiresAt, userID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.SubscriptionTier,
		&u.SubscriptionStatus,
		&u.SubscriptionExpiresAt,
		&u.ApolloAPIKey,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
