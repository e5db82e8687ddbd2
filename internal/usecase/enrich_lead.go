package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/leadpilot/leadpilot/internal/entity"
	"github.com/leadpilot/leadpilot/internal/infra/integration/apollo"
	"github.com/leadpilot/leadpilot/internal/infra/queue"
	"github.com/leadpilot/leadpilot/internal/retry"
)

// EnrichmentKey identifies a person independent of which lead row (or owner)
// asked. Profile URL is deliberately excluded: the directory API matches on
// name and company only.
type EnrichmentKey struct {
	FirstName string
	LastName  string
	Company   string
}

type enrichmentEntry struct {
	Email      string
	Confidence int
	Found      bool // false = not-found tombstone
}

// EnrichmentCache is process-wide and lives only for the process lifetime.
// Last write wins; two concurrent misses for the same person may both call
// upstream, which is wasteful but harmless.
type EnrichmentCache struct {
	mu      sync.RWMutex
	entries map[EnrichmentKey]enrichmentEntry
}

func NewEnrichmentCache() *EnrichmentCache {
	return &EnrichmentCache{entries: make(map[EnrichmentKey]enrichmentEntry)}
}

func (c *EnrichmentCache) get(key EnrichmentKey) (enrichmentEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

func (c *EnrichmentCache) put(key EnrichmentKey, e enrichmentEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e
}

type EnrichLeadOutput struct {
	Email      string `json:"email,omitempty"`
	Confidence int    `json:"confidence,omitempty"`
	Cached     bool   `json:"cached,omitempty"`
	Found      bool   `json:"-"`
	Message    string `json:"message,omitempty"`
}

// EnrichLeadUseCase resolves a missing contact email through the directory
// API, with cache, bounded retries and a notification on exhaustion.
type EnrichLeadUseCase struct {
	Leads    entity.LeadRepositoryInterface
	Gateway  EnrichmentGateway
	Notifier NotificationPublisher
	Cache    *EnrichmentCache
	Retry    retry.Policy
}

func NewEnrichLeadUseCase(
	leads entity.LeadRepositoryInterface,
	gateway EnrichmentGateway,
	notifier NotificationPublisher,
	cache *EnrichmentCache,
	policy retry.Policy,
) *EnrichLeadUseCase {
	return &EnrichLeadUseCase{
		Leads:    leads,
		Gateway:  gateway,
		Notifier: notifier,
		Cache:    cache,
		Retry:    policy,
	}
}

func (uc *EnrichLeadUseCase) Execute(ctx context.Context, user *entity.User, leadID string) (*EnrichLeadOutput, error) {
	lead, err := uc.Leads.FindByID(ctx, user.ID, leadID)
	if err != nil || lead == nil {
		return nil, NewNotFound("lead")
	}

	// Idempotent short-circuit: never re-resolve an email we already have.
	if lead.Email != "" {
		out := &EnrichLeadOutput{Email: lead.Email, Found: true, Message: "Lead already has email"}
		if lead.EmailConfidence != nil {
			out.Confidence = *lead.EmailConfidence
		}
		return out, nil
	}

	key := EnrichmentKey{FirstName: lead.FirstName, LastName: lead.LastName, Company: lead.Company}
	if cached, ok := uc.Cache.get(key); ok && cached.Found {
		lead.Email = cached.Email
		confidence := cached.Confidence
		lead.EmailConfidence = &confidence
		if err := uc.Leads.Update(ctx, lead); err != nil {
			return nil, fmt.Errorf("persist enriched lead: %w", err)
		}
		return &EnrichLeadOutput{Email: cached.Email, Confidence: cached.Confidence, Cached: true, Found: true}, nil
	}

	if user.ApolloAPIKey == "" {
		return nil, &UpstreamError{Service: "apollo", Message: "API key not configured for this user"}
	}

	matchInput := apollo.MatchInput{
		APIKey:    user.ApolloAPIKey,
		FirstName: lead.FirstName,
		LastName:  lead.LastName,
		Company:   lead.Company,
	}

	for attempt := 0; attempt < uc.Retry.MaxAttempts; attempt++ {
		match, err := uc.Gateway.MatchPerson(ctx, matchInput)
		if err == nil {
			return uc.applyMatch(ctx, lead, key, match)
		}

		if errors.Is(err, apollo.ErrRateLimited) {
			if !uc.Retry.Last(attempt) {
				uc.Retry.Wait(attempt)
				continue
			}
			uc.notify(ctx, user.ID, entity.NotificationEnrichmentFailed,
				fmt.Sprintf("Apollo rate limit exceeded for lead %s.", lead.FullName()))
			return nil, &RateLimitedError{Message: "Apollo rate limit exceeded. Try later."}
		}

		if uc.Retry.Last(attempt) {
			uc.notify(ctx, user.ID, entity.NotificationEnrichmentFailed,
				fmt.Sprintf("Apollo error for lead %s: %v", lead.FullName(), err))
			return nil, &UpstreamError{Service: "apollo", Message: err.Error()}
		}
		uc.Retry.Wait(attempt)
	}

	// unreachable with MaxAttempts >= 1
	return nil, &UpstreamError{Service: "apollo", Message: "no attempts configured"}
}

func (uc *EnrichLeadUseCase) applyMatch(ctx context.Context, lead *entity.Lead, key EnrichmentKey, match *apollo.MatchOutput) (*EnrichLeadOutput, error) {
	if !match.Found {
		uc.Cache.put(key, enrichmentEntry{Found: false})
		return &EnrichLeadOutput{Found: false, Message: "No email found via Apollo.io."}, nil
	}

	lead.Email = match.Email
	confidence := match.Confidence
	lead.EmailConfidence = &confidence
	if err := uc.Leads.Update(ctx, lead); err != nil {
		return nil, fmt.Errorf("persist enriched lead: %w", err)
	}

	uc.Cache.put(key, enrichmentEntry{Email: match.Email, Confidence: match.Confidence, Found: true})
	return &EnrichLeadOutput{Email: match.Email, Confidence: match.Confidence, Found: true}, nil
}

func (uc *EnrichLeadUseCase) notify(ctx context.Context, userID, typ, message string) {
	event := queue.NotificationEvent{UserID: userID, Type: typ, Message: message}
	if err := uc.Notifier.PublishNotification(ctx, event); err != nil {
		// The caller still gets the error; losing the alert is not fatal.
		log.Printf("[ENRICH] failed to publish notification: %v", err)
	}
}
