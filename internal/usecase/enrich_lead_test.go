package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/leadpilot/leadpilot/internal/entity"
	"github.com/leadpilot/leadpilot/internal/infra/integration/apollo"
	"github.com/leadpilot/leadpilot/internal/infra/queue"
	"github.com/leadpilot/leadpilot/internal/retry"
	"github.com/leadpilot/leadpilot/internal/usecase"
)

// testRetryPolicy keeps the production attempt count but never sleeps.
func testRetryPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 3, Base: 2, Interval: time.Second, Sleep: func(time.Duration) {}}
}

func enrichUser() *entity.User {
	return &entity.User{ID: "user-1", Email: "owner@example.com", ApolloAPIKey: "apollo-key"}
}

func pendingLead() *entity.Lead {
	return &entity.Lead{
		ID:        "lead-1",
		UserID:    "user-1",
		FirstName: "Jane",
		LastName:  "Doe",
		Company:   "Globex",
		Status:    entity.LeadStatusPending,
	}
}

func TestEnrichLead_LeadNotFound(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	gateway := new(MockEnrichmentGateway)
	notifier := new(MockNotifier)
	uc := usecase.NewEnrichLeadUseCase(leadRepo, gateway, notifier, usecase.NewEnrichmentCache(), testRetryPolicy())

	leadRepo.On("FindByID", mock.Anything, "user-1", "missing").Return(nil, nil)

	_, err := uc.Execute(context.Background(), enrichUser(), "missing")

	assert.True(t, usecase.IsNotFound(err))
	gateway.AssertNotCalled(t, "MatchPerson", mock.Anything, mock.Anything)
}

func TestEnrichLead_AlreadyHasEmail(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	gateway := new(MockEnrichmentGateway)
	notifier := new(MockNotifier)
	uc := usecase.NewEnrichLeadUseCase(leadRepo, gateway, notifier, usecase.NewEnrichmentCache(), testRetryPolicy())

	confidence := 91
	lead := pendingLead()
	lead.Email = "jane@globex.com"
	lead.EmailConfidence = &confidence
	leadRepo.On("FindByID", mock.Anything, "user-1", "lead-1").Return(lead, nil)

	out, err := uc.Execute(context.Background(), enrichUser(), "lead-1")

	assert.NoError(t, err)
	assert.Equal(t, "jane@globex.com", out.Email)
	assert.Equal(t, 91, out.Confidence)
	assert.Equal(t, "Lead already has email", out.Message)
	gateway.AssertNotCalled(t, "MatchPerson", mock.Anything, mock.Anything)
	leadRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestEnrichLead_FoundAndCached(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	gateway := new(MockEnrichmentGateway)
	notifier := new(MockNotifier)
	uc := usecase.NewEnrichLeadUseCase(leadRepo, gateway, notifier, usecase.NewEnrichmentCache(), testRetryPolicy())

	leadRepo.On("FindByID", mock.Anything, "user-1", "lead-1").Return(pendingLead(), nil).Once()
	gateway.On("MatchPerson", mock.Anything, mock.MatchedBy(func(in apollo.MatchInput) bool {
		return in.APIKey == "apollo-key" && in.FirstName == "Jane" && in.Company == "Globex"
	})).Return(&apollo.MatchOutput{Email: "jane@globex.com", Confidence: 85, Found: true}, nil).Once()
	leadRepo.On("Update", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.Email == "jane@globex.com" && l.EmailConfidence != nil && *l.EmailConfidence == 85
	})).Return(nil).Twice()

	out, err := uc.Execute(context.Background(), enrichUser(), "lead-1")
	assert.NoError(t, err)
	assert.Equal(t, "jane@globex.com", out.Email)
	assert.Equal(t, 85, out.Confidence)
	assert.False(t, out.Cached)

	// A second lead for the same person resolves from cache, no upstream call.
	leadRepo.On("FindByID", mock.Anything, "user-1", "lead-2").Return(&entity.Lead{
		ID:        "lead-2",
		UserID:    "user-1",
		FirstName: "Jane",
		LastName:  "Doe",
		Company:   "Globex",
	}, nil).Once()

	out2, err := uc.Execute(context.Background(), enrichUser(), "lead-2")
	assert.NoError(t, err)
	assert.True(t, out2.Cached)
	assert.Equal(t, "jane@globex.com", out2.Email)
	gateway.AssertNumberOfCalls(t, "MatchPerson", 1)
}

func TestEnrichLead_NoMatchTombstone(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	gateway := new(MockEnrichmentGateway)
	notifier := new(MockNotifier)
	uc := usecase.NewEnrichLeadUseCase(leadRepo, gateway, notifier, usecase.NewEnrichmentCache(), testRetryPolicy())

	leadRepo.On("FindByID", mock.Anything, "user-1", "lead-1").Return(pendingLead(), nil)
	gateway.On("MatchPerson", mock.Anything, mock.Anything).
		Return(&apollo.MatchOutput{Found: false}, nil)

	out, err := uc.Execute(context.Background(), enrichUser(), "lead-1")
	assert.NoError(t, err)
	assert.Equal(t, "No email found via Apollo.io.", out.Message)
	assert.Empty(t, out.Email)
	leadRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	// A tombstone never short-circuits: asking again hits upstream again.
	_, err = uc.Execute(context.Background(), enrichUser(), "lead-1")
	assert.NoError(t, err)
	gateway.AssertNumberOfCalls(t, "MatchPerson", 2)
}

func TestEnrichLead_RateLimitExhaustsRetries(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	gateway := new(MockEnrichmentGateway)
	notifier := new(MockNotifier)
	uc := usecase.NewEnrichLeadUseCase(leadRepo, gateway, notifier, usecase.NewEnrichmentCache(), testRetryPolicy())

	leadRepo.On("FindByID", mock.Anything, "user-1", "lead-1").Return(pendingLead(), nil)
	gateway.On("MatchPerson", mock.Anything, mock.Anything).Return(nil, apollo.ErrRateLimited)
	notifier.On("PublishNotification", mock.Anything, mock.MatchedBy(func(e queue.NotificationEvent) bool {
		return e.UserID == "user-1" && e.Type == entity.NotificationEnrichmentFailed
	})).Return(nil)

	_, err := uc.Execute(context.Background(), enrichUser(), "lead-1")

	assert.True(t, usecase.IsRateLimited(err))
	gateway.AssertNumberOfCalls(t, "MatchPerson", 3)
	notifier.AssertNumberOfCalls(t, "PublishNotification", 1)
}

func TestEnrichLead_TransientErrorThenSuccess(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	gateway := new(MockEnrichmentGateway)
	notifier := new(MockNotifier)
	uc := usecase.NewEnrichLeadUseCase(leadRepo, gateway, notifier, usecase.NewEnrichmentCache(), testRetryPolicy())

	leadRepo.On("FindByID", mock.Anything, "user-1", "lead-1").Return(pendingLead(), nil)
	gateway.On("MatchPerson", mock.Anything, mock.Anything).
		Return(nil, &apollo.APIError{StatusCode: 500, Body: "server error"}).Twice()
	gateway.On("MatchPerson", mock.Anything, mock.Anything).
		Return(&apollo.MatchOutput{Email: "jane@globex.com", Confidence: 70, Found: true}, nil).Once()
	leadRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.Execute(context.Background(), enrichUser(), "lead-1")

	assert.NoError(t, err)
	assert.Equal(t, "jane@globex.com", out.Email)
	gateway.AssertNumberOfCalls(t, "MatchPerson", 3)
	notifier.AssertNotCalled(t, "PublishNotification", mock.Anything, mock.Anything)
}

func TestEnrichLead_UpstreamErrorExhaustsRetries(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	gateway := new(MockEnrichmentGateway)
	notifier := new(MockNotifier)
	uc := usecase.NewEnrichLeadUseCase(leadRepo, gateway, notifier, usecase.NewEnrichmentCache(), testRetryPolicy())

	leadRepo.On("FindByID", mock.Anything, "user-1", "lead-1").Return(pendingLead(), nil)
	gateway.On("MatchPerson", mock.Anything, mock.Anything).
		Return(nil, &apollo.APIError{StatusCode: 500, Body: "server error"})
	notifier.On("PublishNotification", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.Execute(context.Background(), enrichUser(), "lead-1")

	assert.True(t, usecase.IsUpstream(err))
	gateway.AssertNumberOfCalls(t, "MatchPerson", 3)
	notifier.AssertNumberOfCalls(t, "PublishNotification", 1)
}

func TestEnrichLead_MissingAPIKey(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	gateway := new(MockEnrichmentGateway)
	notifier := new(MockNotifier)
	uc := usecase.NewEnrichLeadUseCase(leadRepo, gateway, notifier, usecase.NewEnrichmentCache(), testRetryPolicy())

	leadRepo.On("FindByID", mock.Anything, "user-1", "lead-1").Return(pendingLead(), nil)

	user := enrichUser()
	user.ApolloAPIKey = ""
	_, err := uc.Execute(context.Background(), user, "lead-1")

	assert.True(t, usecase.IsUpstream(err))
	gateway.AssertNotCalled(t, "MatchPerson", mock.Anything, mock.Anything)
}
