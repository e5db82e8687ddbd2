package paystack

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const EventChargeSuccess = "charge.success"

type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

func NewClient(secretKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// InitializeTransaction opens a hosted checkout page for a plan upgrade.
func (c *Client) InitializeTransaction(ctx context.Context, input InitializeInput) (*InitializeOutput, error) {
	url := fmt.Sprintf("%s/transaction/initialize", c.baseURL)

	payload := initializeRequest{
		Email:       input.Email,
		Amount:      input.AmountKobo,
		CallbackURL: input.CallbackURL,
		Metadata: Metadata{
			UserID:   input.UserID,
			PlanTier: input.PlanTier,
			Type:     "subscription",
		},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal initialize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.secretKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("paystack rejected initialize (status %d): %s", resp.StatusCode, string(body))
	}

	var response initializeResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode paystack response: %w", err)
	}
	if !response.Status {
		return nil, fmt.Errorf("paystack initialize failed: %s", response.Msg)
	}

	return &InitializeOutput{
		AuthorizationURL: response.Data.AuthorizationURL,
		AccessCode:       response.Data.AccessCode,
		Reference:        response.Data.Reference,
	}, nil
}

// VerifySignature checks the X-Paystack-Signature header: HMAC-SHA512 of the
// raw body keyed with the secret.
func (c *Client) VerifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ParseWebhook decodes the event envelope.
func ParseWebhook(body []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("decode webhook payload: %w", err)
	}
	return &event, nil
}
