package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/leadpilot/leadpilot/internal/entity"
	"github.com/leadpilot/leadpilot/internal/infra/queue"
)

// ApplySubscriptionUseCase upgrades a user's tier after a confirmed payment
// webhook. Billing itself is the processor's problem; by the time we run, the
// charge has already succeeded.
type ApplySubscriptionUseCase struct {
	Users    entity.UserRepositoryInterface
	Notifier NotificationPublisher
}

func NewApplySubscriptionUseCase(users entity.UserRepositoryInterface, notifier NotificationPublisher) *ApplySubscriptionUseCase {
	return &ApplySubscriptionUseCase{Users: users, Notifier: notifier}
}

func (uc *ApplySubscriptionUseCase) Execute(ctx context.Context, userID, planTier string) error {
	if !entity.KnownTier(planTier) {
		return NewValidation("invalid subscription plan")
	}

	user, err := uc.Users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return NewNotFound("user")
	}

	expiresAt := time.Now().AddDate(0, 0, 30)
	if err := uc.Users.UpdateSubscription(ctx, user.ID, planTier, entity.SubscriptionActive, &expiresAt); err != nil {
		return fmt.Errorf("apply subscription: %w", err)
	}

	event := queue.NotificationEvent{
		UserID:  user.ID,
		Type:    entity.NotificationSubscription,
		Message: fmt.Sprintf("Your subscription was upgraded to the %s plan.", entity.PlanFor(planTier).Name),
	}
	if err := uc.Notifier.PublishNotification(ctx, event); err != nil {
		log.Printf("[SUBSCRIPTION] failed to publish notification: %v", err)
	}

	log.Printf("[SUBSCRIPTION] user %s upgraded to %s", user.ID, planTier)
	return nil
}
