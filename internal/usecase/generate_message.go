package usecase

import (
	"context"
	"strings"
)

type GenerateMessageOutput struct {
	Message string `json:"message"`
}

// GenerateMessageUseCase drafts an outreach message through the AI
// collaborator. The prompt is the drafter's concern; we only validate input.
type GenerateMessageUseCase struct {
	Drafter MessageDrafter
}

func NewGenerateMessageUseCase(drafter MessageDrafter) *GenerateMessageUseCase {
	return &GenerateMessageUseCase{Drafter: drafter}
}

func (uc *GenerateMessageUseCase) Execute(ctx context.Context, input DraftInput) (*GenerateMessageOutput, error) {
	if uc.Drafter == nil {
		return nil, &UpstreamError{Service: "openai", Message: "AI drafting is not configured"}
	}

	input.LeadInfo = strings.TrimSpace(input.LeadInfo)
	if input.LeadInfo == "" {
		return nil, NewValidation("lead information is required")
	}

	if input.Tone == "" {
		input.Tone = "professional"
	}
	if input.Goal == "" {
		input.Goal = "connect"
	}
	if input.Length <= 0 {
		input.Length = 300
	}
	if input.Type == "" {
		input.Type = "linkedin"
	}

	message, err := uc.Drafter.Draft(ctx, input)
	if err != nil {
		return nil, &UpstreamError{Service: "openai", Message: err.Error()}
	}

	return &GenerateMessageOutput{Message: strings.TrimSpace(message)}, nil
}
