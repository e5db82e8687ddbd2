package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/leadpilot/leadpilot/internal/entity"
	"github.com/leadpilot/leadpilot/internal/infra/queue"
	"github.com/leadpilot/leadpilot/internal/usecase"
)

func TestApplySubscription(t *testing.T) {
	t.Run("upgrades and notifies", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		notifier := new(MockNotifier)
		uc := usecase.NewApplySubscriptionUseCase(userRepo, notifier)

		userRepo.On("FindByID", mock.Anything, "user-1").Return(freeUser(), nil)
		userRepo.On("UpdateSubscription", mock.Anything, "user-1", entity.TierPro, entity.SubscriptionActive,
			mock.MatchedBy(func(expiresAt *time.Time) bool {
				return expiresAt != nil && time.Until(*expiresAt) > 29*24*time.Hour
			})).Return(nil)
		notifier.On("PublishNotification", mock.Anything, mock.MatchedBy(func(e queue.NotificationEvent) bool {
			return e.Type == entity.NotificationSubscription && e.Message == "Your subscription was upgraded to the Pro plan."
		})).Return(nil)

		assert.NoError(t, uc.Execute(context.Background(), "user-1", entity.TierPro))
		userRepo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("unknown tier rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		uc := usecase.NewApplySubscriptionUseCase(userRepo, new(MockNotifier))

		err := uc.Execute(context.Background(), "user-1", "platinum")
		assert.True(t, usecase.IsValidation(err))
		userRepo.AssertNotCalled(t, "UpdateSubscription", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		uc := usecase.NewApplySubscriptionUseCase(userRepo, new(MockNotifier))

		userRepo.On("FindByID", mock.Anything, "ghost").Return(nil, nil)

		err := uc.Execute(context.Background(), "ghost", entity.TierPro)
		assert.True(t, usecase.IsNotFound(err))
	})
}
