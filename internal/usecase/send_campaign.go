package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/leadpilot/leadpilot/internal/entity"
	"github.com/leadpilot/leadpilot/internal/infra/integration/apollo"
	"github.com/leadpilot/leadpilot/internal/infra/queue"
	"github.com/leadpilot/leadpilot/internal/retry"
)

type SendEmailCampaignInput struct {
	User            *entity.User
	CampaignID      string
	LeadIDs         []string
	Personalization map[string]map[string]string // leadID -> field -> value
}

type SendResult struct {
	LeadID string `json:"lead_id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type SendEmailCampaignOutput struct {
	Message string       `json:"message"`
	Sent    int          `json:"sent"`
	Failed  int          `json:"failed"`
	Results []SendResult `json:"results"`
}

// SendEmailCampaignUseCase dispatches a templated email to every target
// lead. Recipients are isolated: one bad address or throttled send never
// aborts the batch, and every lead ends up with exactly one delivery log row.
type SendEmailCampaignUseCase struct {
	Campaigns entity.EmailCampaignRepositoryInterface
	Leads     entity.LeadRepositoryInterface
	Logs      entity.EmailLogRepositoryInterface
	FollowUps entity.FollowUpRepositoryInterface
	Gateway   EmailGateway
	Notifier  NotificationPublisher
	Retry     retry.Policy
}

func NewSendEmailCampaignUseCase(
	campaigns entity.EmailCampaignRepositoryInterface,
	leads entity.LeadRepositoryInterface,
	logs entity.EmailLogRepositoryInterface,
	followUps entity.FollowUpRepositoryInterface,
	gateway EmailGateway,
	notifier NotificationPublisher,
	policy retry.Policy,
) *SendEmailCampaignUseCase {
	return &SendEmailCampaignUseCase{
		Campaigns: campaigns,
		Leads:     leads,
		Logs:      logs,
		FollowUps: followUps,
		Gateway:   gateway,
		Notifier:  notifier,
		Retry:     policy,
	}
}

func (uc *SendEmailCampaignUseCase) Execute(ctx context.Context, input SendEmailCampaignInput) (*SendEmailCampaignOutput, error) {
	if input.User.ApolloAPIKey == "" {
		return nil, &UpstreamError{Service: "apollo", Message: "API key missing for this user"}
	}

	campaign, err := uc.Campaigns.FindByID(ctx, input.User.ID, input.CampaignID)
	if err != nil || campaign == nil {
		return nil, NewNotFound("email campaign")
	}

	leads, err := uc.Leads.ListByIDs(ctx, input.User.ID, input.LeadIDs)
	if err != nil {
		return nil, fmt.Errorf("load target leads: %w", err)
	}

	logs := make([]*entity.EmailLog, 0, len(leads))
	failed := 0

	for _, lead := range leads {
		entry := uc.dispatchOne(ctx, input.User, campaign, lead, input.Personalization[lead.ID])
		if entry.Status == entity.DeliveryStatusFailed {
			failed++
		}
		logs = append(logs, entry)
	}

	if len(logs) > 0 {
		if err := uc.Logs.CreateBatch(ctx, logs); err != nil {
			return nil, fmt.Errorf("persist delivery logs: %w", err)
		}
	}

	if uc.FollowUps != nil {
		if err := uc.FollowUps.ScheduleForCampaign(ctx, campaign.ID, time.Now()); err != nil {
			log.Printf("[DISPATCH] scheduling follow-ups for %s: %v", campaign.ID, err)
		}
	}

	if failed > 0 {
		event := queue.NotificationEvent{
			UserID:  input.User.ID,
			Type:    entity.NotificationEmailFailed,
			Message: fmt.Sprintf("%d emails failed to send in campaign '%s'.", failed, campaign.Name),
		}
		if err := uc.Notifier.PublishNotification(ctx, event); err != nil {
			log.Printf("[DISPATCH] failed to publish notification: %v", err)
		}
	}

	out := &SendEmailCampaignOutput{
		Message: fmt.Sprintf("Sent %d emails", len(logs)),
		Sent:    len(logs) - failed,
		Failed:  failed,
		Results: make([]SendResult, 0, len(logs)),
	}
	for _, l := range logs {
		out.Results = append(out.Results, SendResult{LeadID: l.LeadID, Status: l.Status, Error: l.Error})
	}
	return out, nil
}

// dispatchOne renders, validates and sends for a single lead, always
// producing exactly one log entry.
func (uc *SendEmailCampaignUseCase) dispatchOne(ctx context.Context, user *entity.User, campaign *entity.EmailCampaign, lead *entity.Lead, vars map[string]string) *entity.EmailLog {
	subject, err := RenderTemplate(campaign.Subject, vars)
	if err != nil {
		return entity.NewEmailLog(campaign.ID, lead.ID, lead.Email, entity.DeliveryStatusFailed, err.Error())
	}
	body, err := RenderTemplate(campaign.Body, vars)
	if err != nil {
		return entity.NewEmailLog(campaign.ID, lead.ID, lead.Email, entity.DeliveryStatusFailed, err.Error())
	}
	return uc.send(ctx, user, campaign, lead, subject, body)
}

func (uc *SendEmailCampaignUseCase) send(ctx context.Context, user *entity.User, campaign *entity.EmailCampaign, lead *entity.Lead, subject, body string) *entity.EmailLog {
	if !ValidEmailAddress(lead.Email) {
		return entity.NewEmailLog(campaign.ID, lead.ID, lead.Email, entity.DeliveryStatusFailed,
			"Missing or invalid email address")
	}

	sendInput := apollo.SendEmailInput{
		APIKey:  user.ApolloAPIKey,
		To:      lead.Email,
		Subject: subject,
		Body:    body,
	}

	var errText string
	for attempt := 0; attempt < uc.Retry.MaxAttempts; attempt++ {
		err := uc.Gateway.SendEmail(ctx, sendInput)
		if err == nil {
			return entity.NewEmailLog(campaign.ID, lead.ID, lead.Email, entity.DeliveryStatusSent, "")
		}

		// 429 means back off entirely for this recipient: burning the
		// remaining attempt would only dig the hole deeper.
		if errors.Is(err, apollo.ErrRateLimited) {
			return entity.NewEmailLog(campaign.ID, lead.ID, lead.Email, entity.DeliveryStatusFailed,
				"Apollo rate limit exceeded")
		}

		var apiErr *apollo.APIError
		if errors.As(err, &apiErr) {
			errText = apiErr.Body
		} else {
			errText = err.Error()
		}

		if !uc.Retry.Last(attempt) {
			uc.Retry.Wait(attempt)
		}
	}

	return entity.NewEmailLog(campaign.ID, lead.ID, lead.Email, entity.DeliveryStatusFailed, errText)
}

// RenderTemplate substitutes {field} placeholders. Any placeholder left
// unresolved is a hard error for that recipient.
func RenderTemplate(tmpl string, vars map[string]string) (string, error) {
	out := tmpl
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	if start := strings.Index(out, "{"); start >= 0 {
		rest := out[start:]
		if end := strings.Index(rest, "}"); end > 0 {
			return "", fmt.Errorf("unresolved placeholder %s", rest[:end+1])
		}
		return "", fmt.Errorf("unterminated placeholder %s", rest)
	}
	return out, nil
}

// ValidEmailAddress requires a non-empty local and domain part.
func ValidEmailAddress(addr string) bool {
	local, domain, ok := strings.Cut(addr, "@")
	return ok && local != "" && domain != "" && !strings.Contains(domain, "@")
}
