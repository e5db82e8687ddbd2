package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrRateLimited signals an HTTP 429 from Apollo. Callers decide whether to
// back off (enrichment) or give up on the recipient (dispatch).
var ErrRateLimited = errors.New("apollo rate limit exceeded")

// APIError is any non-2xx, non-429 response. Body is kept for delivery logs.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("apollo api error (status %d): %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.apollo.io/v1"
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// MatchPerson looks up a contact email by name and company.
func (c *Client) MatchPerson(ctx context.Context, input MatchInput) (*MatchOutput, error) {
	url := fmt.Sprintf("%s/people/match", c.baseURL)

	payload := matchRequest{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Company:   input.Company,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal match request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, input.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apollo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var response matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode apollo response: %w", err)
	}

	if response.Person == nil || response.Person.Email == "" {
		return &MatchOutput{Found: false}, nil
	}

	return &MatchOutput{
		Email:      response.Person.Email,
		Confidence: response.Person.Confidence,
		Found:      true,
	}, nil
}

// SendEmail delivers one transactional email. A nil return means Apollo
// accepted the message.
func (c *Client) SendEmail(ctx context.Context, input SendEmailInput) error {
	url := fmt.Sprintf("%s/email/send", c.baseURL)

	payload := sendEmailRequest{
		To:      input.To,
		Subject: input.Subject,
		Body:    input.Body,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	c.setHeaders(req, input.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("apollo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", apiKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "LeadPilot/1.0")
}
