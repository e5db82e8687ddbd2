package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/leadpilot/leadpilot/internal/entity"
	"github.com/leadpilot/leadpilot/internal/infra/queue"
)

// AssignLeadsUseCase attaches unassigned leads to a campaign owned by the
// same user. Leads already sitting in a campaign are left alone.
type AssignLeadsUseCase struct {
	Campaigns entity.CampaignRepositoryInterface
	Leads     entity.LeadRepositoryInterface
	Notifier  NotificationPublisher
}

func NewAssignLeadsUseCase(campaigns entity.CampaignRepositoryInterface, leads entity.LeadRepositoryInterface, notifier NotificationPublisher) *AssignLeadsUseCase {
	return &AssignLeadsUseCase{Campaigns: campaigns, Leads: leads, Notifier: notifier}
}

func (uc *AssignLeadsUseCase) Execute(ctx context.Context, userID, campaignID string, leadIDs []string) (int, error) {
	if len(leadIDs) == 0 || campaignID == "" {
		return 0, NewValidation("leadIds and campaignId are required")
	}

	campaign, err := uc.Campaigns.FindByID(ctx, userID, campaignID)
	if err != nil || campaign == nil {
		return 0, NewNotFound("campaign")
	}

	assigned, err := uc.Leads.AssignToCampaign(ctx, userID, campaignID, leadIDs)
	if err != nil {
		return 0, fmt.Errorf("assign leads: %w", err)
	}

	if assigned > 0 {
		event := queue.NotificationEvent{
			UserID:  userID,
			Type:    entity.NotificationLeadAssigned,
			Message: fmt.Sprintf("%d leads assigned to campaign '%s'.", assigned, campaign.Name),
		}
		if err := uc.Notifier.PublishNotification(ctx, event); err != nil {
			log.Printf("[LEADS] failed to publish notification: %v", err)
		}
	}

	return assigned, nil
}

// UpdateLeadUseCase mutates a lead's lifecycle status and surfaces the change
// as a notification.
type UpdateLeadUseCase struct {
	Leads    entity.LeadRepositoryInterface
	Notifier NotificationPublisher
}

func NewUpdateLeadUseCase(leads entity.LeadRepositoryInterface, notifier NotificationPublisher) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{Leads: leads, Notifier: notifier}
}

func (uc *UpdateLeadUseCase) Execute(ctx context.Context, userID, leadID, status string) (*entity.Lead, error) {
	lead, err := uc.Leads.FindByID(ctx, userID, leadID)
	if err != nil || lead == nil {
		return nil, NewNotFound("lead")
	}

	statusBefore := lead.Status
	if status != "" {
		lead.Status = status
	}

	if err := uc.Leads.Update(ctx, lead); err != nil {
		return nil, fmt.Errorf("update lead: %w", err)
	}

	if statusBefore != lead.Status {
		event := queue.NotificationEvent{
			UserID:  userID,
			Type:    entity.NotificationLeadUpdated,
			Message: fmt.Sprintf("Lead '%s' status updated to '%s'.", lead.FullName(), lead.Status),
		}
		if err := uc.Notifier.PublishNotification(ctx, event); err != nil {
			log.Printf("[LEADS] failed to publish notification: %v", err)
		}
	}

	return lead, nil
}
