package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/leadpilot/leadpilot/internal/entity"
	"github.com/leadpilot/leadpilot/internal/infra/integration/apollo"
	"github.com/leadpilot/leadpilot/internal/infra/queue"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) CreateBatch(ctx context.Context, leads []*entity.Lead) error {
	args := m.Called(ctx, leads)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, userID, id string) (*entity.Lead, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, userID string, filter entity.LeadFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) ListByIDs(ctx context.Context, userID string, ids []string) ([]*entity.Lead, error) {
	args := m.Called(ctx, userID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockLeadRepository) AssignToCampaign(ctx context.Context, userID, campaignID string, leadIDs []string) (int, error) {
	args := m.Called(ctx, userID, campaignID, leadIDs)
	return args.Int(0), args.Error(1)
}

type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCampaignRepository) FindByID(ctx context.Context, userID, id string) (*entity.Campaign, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Campaign, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) Update(ctx context.Context, c *entity.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCampaignRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockEmailCampaignRepository struct {
	mock.Mock
}

func (m *MockEmailCampaignRepository) Create(ctx context.Context, c *entity.EmailCampaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockEmailCampaignRepository) FindByID(ctx context.Context, userID, id string) (*entity.EmailCampaign, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.EmailCampaign), args.Error(1)
}

func (m *MockEmailCampaignRepository) ListByUser(ctx context.Context, userID string) ([]*entity.EmailCampaign, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.EmailCampaign), args.Error(1)
}

func (m *MockEmailCampaignRepository) Update(ctx context.Context, c *entity.EmailCampaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockEmailCampaignRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockEmailLogRepository struct {
	mock.Mock
}

func (m *MockEmailLogRepository) CreateBatch(ctx context.Context, logs []*entity.EmailLog) error {
	args := m.Called(ctx, logs)
	return args.Error(0)
}

func (m *MockEmailLogRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*entity.EmailLog, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.EmailLog), args.Error(1)
}

type MockFollowUpRepository struct {
	mock.Mock
}

func (m *MockFollowUpRepository) Create(ctx context.Context, f *entity.FollowUpEmail) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFollowUpRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*entity.FollowUpEmail, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.FollowUpEmail), args.Error(1)
}

func (m *MockFollowUpRepository) Update(ctx context.Context, f *entity.FollowUpEmail) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFollowUpRepository) ScheduleForCampaign(ctx context.Context, campaignID string, sentAt time.Time) error {
	args := m.Called(ctx, campaignID, sentAt)
	return args.Error(0)
}

func (m *MockFollowUpRepository) ListDue(ctx context.Context, now time.Time) ([]*entity.FollowUpEmail, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.FollowUpEmail), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) HasUnread(ctx context.Context, userID, typ string) (bool, error) {
	args := m.Called(ctx, userID, typ)
	return args.Bool(0), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdateSubscription(ctx context.Context, userID, tier, status string, expiresAt *time.Time) error {
	args := m.Called(ctx, userID, tier, status, expiresAt)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PublishNotification(ctx context.Context, event queue.NotificationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockEnrichmentGateway struct {
	mock.Mock
}

func (m *MockEnrichmentGateway) MatchPerson(ctx context.Context, input apollo.MatchInput) (*apollo.MatchOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apollo.MatchOutput), args.Error(1)
}

type MockEmailGateway struct {
	mock.Mock
}

func (m *MockEmailGateway) SendEmail(ctx context.Context, input apollo.SendEmailInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}
