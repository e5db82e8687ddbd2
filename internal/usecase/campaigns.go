package usecase

import (
	"context"
	"fmt"

	"github.com/leadpilot/leadpilot/internal/entity"
)

// UpdateCampaignInput carries partial edits; nil pointers leave a field alone.
type UpdateCampaignInput struct {
	Name        *string
	Description *string
	Subject     *string
	Body        *string
	Status      *string
}

func validateTransition(current string, next *string) (string, error) {
	if next == nil {
		return current, nil
	}
	if !entity.ValidCampaignStatus(*next) {
		return "", NewValidation("invalid status")
	}
	if !entity.CanTransition(current, *next) {
		return "", NewValidation("invalid status transition")
	}
	return *next, nil
}

// UpdateEmailCampaignUseCase edits a draft's fields and walks the status
// state machine.
type UpdateEmailCampaignUseCase struct {
	Campaigns entity.EmailCampaignRepositoryInterface
}

func NewUpdateEmailCampaignUseCase(campaigns entity.EmailCampaignRepositoryInterface) *UpdateEmailCampaignUseCase {
	return &UpdateEmailCampaignUseCase{Campaigns: campaigns}
}

func (uc *UpdateEmailCampaignUseCase) Execute(ctx context.Context, userID, campaignID string, input UpdateCampaignInput) (*entity.EmailCampaign, error) {
	campaign, err := uc.Campaigns.FindByID(ctx, userID, campaignID)
	if err != nil || campaign == nil {
		return nil, NewNotFound("email campaign")
	}

	if input.Name != nil {
		campaign.Name = *input.Name
	}
	if input.Subject != nil {
		campaign.Subject = *input.Subject
	}
	if input.Body != nil {
		campaign.Body = *input.Body
	}

	status, err := validateTransition(campaign.Status, input.Status)
	if err != nil {
		return nil, err
	}
	campaign.Status = status

	if err := uc.Campaigns.Update(ctx, campaign); err != nil {
		return nil, fmt.Errorf("update email campaign: %w", err)
	}
	return campaign, nil
}

// DeleteEmailCampaignUseCase removes a campaign, drafts only.
type DeleteEmailCampaignUseCase struct {
	Campaigns entity.EmailCampaignRepositoryInterface
}

func NewDeleteEmailCampaignUseCase(campaigns entity.EmailCampaignRepositoryInterface) *DeleteEmailCampaignUseCase {
	return &DeleteEmailCampaignUseCase{Campaigns: campaigns}
}

func (uc *DeleteEmailCampaignUseCase) Execute(ctx context.Context, userID, campaignID string) error {
	campaign, err := uc.Campaigns.FindByID(ctx, userID, campaignID)
	if err != nil || campaign == nil {
		return NewNotFound("email campaign")
	}
	if campaign.Status != entity.CampaignStatusDraft {
		return NewValidation("only draft campaigns can be deleted")
	}
	return uc.Campaigns.Delete(ctx, userID, campaignID)
}

// UpdateCampaignUseCase is the outreach-campaign twin of the email variant.
type UpdateCampaignUseCase struct {
	Campaigns entity.CampaignRepositoryInterface
}

func NewUpdateCampaignUseCase(campaigns entity.CampaignRepositoryInterface) *UpdateCampaignUseCase {
	return &UpdateCampaignUseCase{Campaigns: campaigns}
}

func (uc *UpdateCampaignUseCase) Execute(ctx context.Context, userID, campaignID string, input UpdateCampaignInput) (*entity.Campaign, error) {
	campaign, err := uc.Campaigns.FindByID(ctx, userID, campaignID)
	if err != nil || campaign == nil {
		return nil, NewNotFound("campaign")
	}

	if input.Name != nil {
		campaign.Name = *input.Name
	}
	if input.Description != nil {
		campaign.Description = *input.Description
	}
	if input.Body != nil {
		campaign.Body = *input.Body
	}

	status, err := validateTransition(campaign.Status, input.Status)
	if err != nil {
		return nil, err
	}
	campaign.Status = status

	if err := uc.Campaigns.Update(ctx, campaign); err != nil {
		return nil, fmt.Errorf("update campaign: %w", err)
	}
	return campaign, nil
}

// DeleteCampaignUseCase removes an outreach campaign, drafts only.
type DeleteCampaignUseCase struct {
	Campaigns entity.CampaignRepositoryInterface
}

func NewDeleteCampaignUseCase(campaigns entity.CampaignRepositoryInterface) *DeleteCampaignUseCase {
	return &DeleteCampaignUseCase{Campaigns: campaigns}
}

func (uc *DeleteCampaignUseCase) Execute(ctx context.Context, userID, campaignID string) error {
	campaign, err := uc.Campaigns.FindByID(ctx, userID, campaignID)
	if err != nil || campaign == nil {
		return NewNotFound("campaign")
	}
	if campaign.Status != entity.CampaignStatusDraft {
		return NewValidation("only draft campaigns can be deleted")
	}
	return uc.Campaigns.Delete(ctx, userID, campaignID)
}
