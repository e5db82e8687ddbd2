package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

type User struct {
	ID                    string     `json:"id"`
	Email                 string     `json:"email"`
	Name                  string     `json:"name,omitempty"`
	SubscriptionTier      string     `json:"subscription_tier"`
	SubscriptionStatus    string     `json:"subscription_status"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
	ApolloAPIKey          string     `json:"-"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func NewUser(email, name string) *User {
	return &User{
		ID:                 uuid.New().String(),
		Email:              email,
		Name:               name,
		SubscriptionTier:   TierFree,
		SubscriptionStatus: SubscriptionActive,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
}

// SubscriptionIsActive reports whether the user's subscription entitles them
// to their tier right now.
func (u *User) SubscriptionIsActive() bool {
	if u.SubscriptionStatus != SubscriptionActive {
		return false
	}
	return u.SubscriptionExpiresAt == nil || u.SubscriptionExpiresAt.After(time.Now())
}

type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	UpdateSubscription(ctx context.Context, userID, tier, status string, expiresAt *time.Time) error
}
