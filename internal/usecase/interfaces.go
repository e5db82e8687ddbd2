package usecase

import (
	"context"

	"github.com/leadpilot/leadpilot/internal/infra/integration/apollo"
	"github.com/leadpilot/leadpilot/internal/infra/integration/paystack"
	"github.com/leadpilot/leadpilot/internal/infra/queue"
)

// EnrichmentGateway resolves a missing contact email from identity attributes.
type EnrichmentGateway interface {
	MatchPerson(ctx context.Context, input apollo.MatchInput) (*apollo.MatchOutput, error)
}

// EmailGateway delivers one transactional email. Errors are apollo.ErrRateLimited,
// *apollo.APIError, or transport failures.
type EmailGateway interface {
	SendEmail(ctx context.Context, input apollo.SendEmailInput) error
}

// NotificationPublisher pushes a structured alert onto the notification queue.
type NotificationPublisher interface {
	PublishNotification(ctx context.Context, event queue.NotificationEvent) error
}

// CheckoutGateway opens a hosted payment page for a plan upgrade.
type CheckoutGateway interface {
	InitializeTransaction(ctx context.Context, input paystack.InitializeInput) (*paystack.InitializeOutput, error)
}

// MessageDrafter is the AI text-completion collaborator. Prompt construction
// is its business, not ours.
type MessageDrafter interface {
	Draft(ctx context.Context, input DraftInput) (string, error)
}

type DraftInput struct {
	LeadInfo        string
	Tone            string
	Goal            string
	Length          int
	CTA             string
	Personalization string
	Type            string // "linkedin" or "email"
}
