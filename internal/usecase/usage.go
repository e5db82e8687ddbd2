package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/leadpilot/leadpilot/internal/entity"
	"github.com/leadpilot/leadpilot/internal/infra/queue"
)

type UsageOutput struct {
	SubscriptionTier string `json:"subscription_tier"`
	LeadsUsed        int    `json:"leads_used"`
	LeadsLimit       int    `json:"leads_limit"`
	MessagesSent     int    `json:"messages_sent"`
	MessagesLimit    int    `json:"messages_limit"`
	Remaining        int    `json:"remaining"`
}

// UsageUseCase reports quota consumption and raises a usage_limit alert when
// the owner crosses the 80% threshold (once per unread alert, to avoid spam).
type UsageUseCase struct {
	Leads         entity.LeadRepositoryInterface
	Notifications entity.NotificationRepositoryInterface
	Notifier      NotificationPublisher
}

func NewUsageUseCase(leads entity.LeadRepositoryInterface, notifications entity.NotificationRepositoryInterface, notifier NotificationPublisher) *UsageUseCase {
	return &UsageUseCase{Leads: leads, Notifications: notifications, Notifier: notifier}
}

func (uc *UsageUseCase) Execute(ctx context.Context, user *entity.User) (*UsageOutput, error) {
	leads, err := uc.Leads.List(ctx, user.ID, entity.LeadFilter{})
	if err != nil {
		return nil, fmt.Errorf("load leads: %w", err)
	}

	messaged := make(map[string]bool, len(entity.MessagedStatuses))
	for _, s := range entity.MessagedStatuses {
		messaged[s] = true
	}

	messagesSent := 0
	for _, l := range leads {
		if messaged[l.Status] {
			messagesSent++
		}
	}

	plan := entity.PlanFor(user.SubscriptionTier)
	used := len(leads)

	remaining := plan.LeadLimit - used
	if remaining < 0 {
		remaining = 0
	}

	if float64(used) >= float64(plan.LeadLimit)*0.8 && used < plan.LeadLimit {
		uc.alertOnce(ctx, user.ID, used, plan.LeadLimit)
	}

	return &UsageOutput{
		SubscriptionTier: user.SubscriptionTier,
		LeadsUsed:        used,
		LeadsLimit:       plan.LeadLimit,
		MessagesSent:     messagesSent,
		MessagesLimit:    plan.MessageLimit,
		Remaining:        remaining,
	}, nil
}

func (uc *UsageUseCase) alertOnce(ctx context.Context, userID string, used, limit int) {
	unread, err := uc.Notifications.HasUnread(ctx, userID, entity.NotificationUsageLimit)
	if err != nil || unread {
		return
	}
	event := queue.NotificationEvent{
		UserID:  userID,
		Type:    entity.NotificationUsageLimit,
		Message: fmt.Sprintf("You are approaching your usage limit (%d/%d leads).", used, limit),
	}
	if err := uc.Notifier.PublishNotification(ctx, event); err != nil {
		log.Printf("[USAGE] failed to publish notification: %v", err)
	}
}
