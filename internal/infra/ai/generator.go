// Package ai wraps the OpenAI chat-completion API for outreach message
// drafting. The prompt shape is owned here; callers hand over campaign
// context and get prose back.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/leadpilot/leadpilot/internal/usecase"
)

const model = openai.GPT4oMini

type Generator struct {
	client *openai.Client
}

func NewGenerator(apiKey string) (*Generator, error) {
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY not configured")
	}
	return &Generator{client: openai.NewClient(apiKey)}, nil
}

func (g *Generator) Draft(ctx context.Context, input usecase.DraftInput) (string, error) {
	persona := "You are a seasoned LinkedIn outreach specialist, skilled in building professional relationships and starting meaningful conversations through LinkedIn messaging."
	channel := "LinkedIn"
	if input.Type == "email" {
		persona = "You are an expert email marketer with a proven track record in crafting high-converting cold email campaigns for B2B clients."
		channel = "email"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Write a %s %s outreach message for the following campaign: %s. ", persona, input.Tone, channel, input.LeadInfo)
	fmt.Fprintf(&b, "Goal: %s. ", input.Goal)
	if input.Personalization != "" {
		fmt.Fprintf(&b, "Personalization: %s. ", input.Personalization)
	}
	if input.CTA != "" {
		fmt.Fprintf(&b, "Include this call-to-action: %s. ", input.CTA)
	}
	fmt.Fprintf(&b, "Keep it professional, personalized, and under %d characters.", input.Length)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: b.String()},
		},
		MaxTokens:   input.Length * 7 / 10,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
