package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/leadpilot/leadpilot/internal/entity"
	"github.com/leadpilot/leadpilot/internal/usecase"
)

func freeUser() *entity.User {
	return &entity.User{
		ID:               "user-1",
		Email:            "owner@example.com",
		SubscriptionTier: entity.TierFree,
	}
}

func existingLeads(n int) []*entity.Lead {
	leads := make([]*entity.Lead, 0, n)
	for i := 0; i < n; i++ {
		leads = append(leads, &entity.Lead{
			ID:         fmt.Sprintf("lead-%d", i),
			UserID:     "user-1",
			FirstName:  fmt.Sprintf("First%d", i),
			LastName:   fmt.Sprintf("Last%d", i),
			Company:    "Acme",
			ProfileURL: fmt.Sprintf("https://linkedin.com/in/first%d", i),
		})
	}
	return leads
}

const csvHeader = "first_name,last_name,company,profile_url,job_title\n"

func TestUploadLeads_CampaignNotFound(t *testing.T) {
	campaignRepo := new(MockCampaignRepository)
	leadRepo := new(MockLeadRepository)
	uc := usecase.NewUploadLeadsUseCase(campaignRepo, leadRepo)

	campaignRepo.On("FindByID", mock.Anything, "user-1", "missing").Return(nil, nil)

	_, err := uc.Execute(context.Background(), usecase.UploadLeadsInput{
		User:       freeUser(),
		CampaignID: "missing",
		CSVData:    csvHeader,
	})

	assert.True(t, usecase.IsNotFound(err))
	leadRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestUploadLeads_LimitReached(t *testing.T) {
	campaignRepo := new(MockCampaignRepository)
	leadRepo := new(MockLeadRepository)
	uc := usecase.NewUploadLeadsUseCase(campaignRepo, leadRepo)

	campaignRepo.On("FindByID", mock.Anything, "user-1", "camp-1").
		Return(&entity.Campaign{ID: "camp-1", UserID: "user-1"}, nil)
	// Free plan caps at 10 leads and the owner already holds them all.
	leadRepo.On("List", mock.Anything, "user-1", mock.Anything).Return(existingLeads(10), nil)

	out, err := uc.Execute(context.Background(), usecase.UploadLeadsInput{
		User:       freeUser(),
		CampaignID: "camp-1",
		CSVData:    csvHeader + "Jane,Doe,Acme,https://linkedin.com/in/janedoe,CTO\n",
	})

	assert.NoError(t, err)
	assert.Equal(t, usecase.WarningLimitReached, out.Warning)
	assert.True(t, out.UpgradeRequired)
	assert.Equal(t, 0, out.LeadsCreated)
	assert.Equal(t, 10, out.CurrentUsage)
	assert.Contains(t, out.Message, "reached your free plan limit of 10 leads")
	leadRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestUploadLeads_EmptyCSV(t *testing.T) {
	campaignRepo := new(MockCampaignRepository)
	leadRepo := new(MockLeadRepository)
	uc := usecase.NewUploadLeadsUseCase(campaignRepo, leadRepo)

	campaignRepo.On("FindByID", mock.Anything, "user-1", "camp-1").
		Return(&entity.Campaign{ID: "camp-1", UserID: "user-1"}, nil)
	leadRepo.On("List", mock.Anything, "user-1", mock.Anything).Return([]*entity.Lead{}, nil)

	_, err := uc.Execute(context.Background(), usecase.UploadLeadsInput{
		User:       freeUser(),
		CampaignID: "camp-1",
		CSVData:    "   ",
	})

	assert.True(t, usecase.IsValidation(err))
}

func TestUploadLeads_MissingColumns(t *testing.T) {
	campaignRepo := new(MockCampaignRepository)
	leadRepo := new(MockLeadRepository)
	uc := usecase.NewUploadLeadsUseCase(campaignRepo, leadRepo)

	campaignRepo.On("FindByID", mock.Anything, "user-1", "camp-1").
		Return(&entity.Campaign{ID: "camp-1", UserID: "user-1"}, nil)
	leadRepo.On("List", mock.Anything, "user-1", mock.Anything).Return([]*entity.Lead{}, nil)

	out, err := uc.Execute(context.Background(), usecase.UploadLeadsInput{
		User:       freeUser(),
		CampaignID: "camp-1",
		CSVData:    "first_name,last_name,job_title\nJane,Doe,CTO\n",
	})

	assert.NoError(t, err)
	assert.Equal(t, usecase.WarningCSVInvalid, out.Warning)
	assert.Equal(t, 0, out.LeadsCreated)
	assert.Equal(t, "CSV missing required columns: company, profile_url", out.Message)
	leadRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestUploadLeads_DedupAndApproachingLimit(t *testing.T) {
	campaignRepo := new(MockCampaignRepository)
	leadRepo := new(MockLeadRepository)
	uc := usecase.NewUploadLeadsUseCase(campaignRepo, leadRepo)

	existing := existingLeads(7)
	campaignRepo.On("FindByID", mock.Anything, "user-1", "camp-1").
		Return(&entity.Campaign{ID: "camp-1", UserID: "user-1"}, nil)
	leadRepo.On("List", mock.Anything, "user-1", mock.Anything).Return(existing, nil)

	var created []*entity.Lead
	leadRepo.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).([]*entity.Lead)
		}).
		Return(nil)

	// Row 1 duplicates an existing lead, row 3 duplicates row 2 in-file.
	csvData := csvHeader +
		"First0,Last0,Acme,https://linkedin.com/in/first0,CEO\n" +
		"Jane,Doe,Globex,https://linkedin.com/in/janedoe,CTO\n" +
		"Jane,Doe,Globex,https://linkedin.com/in/janedoe,CTO\n" +
		"Bob,Ray,Initech,https://linkedin.com/in/bobray,VP Sales\n"

	out, err := uc.Execute(context.Background(), usecase.UploadLeadsInput{
		User:       freeUser(),
		CampaignID: "camp-1",
		CSVData:    csvData,
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, out.LeadsCreated)
	assert.Equal(t, 9, out.CurrentUsage)
	assert.Equal(t, usecase.WarningApproachingLimit, out.Warning)
	assert.Contains(t, out.Message, "approaching your free plan limit (9/10 leads)")

	assert.Len(t, created, 2)
	assert.Equal(t, "Jane", created[0].FirstName)
	assert.Equal(t, "Bob", created[1].FirstName)
	for _, lead := range created {
		assert.Equal(t, "user-1", lead.UserID)
		assert.Equal(t, entity.LeadStatusPending, lead.Status)
		if assert.NotNil(t, lead.CampaignID) {
			assert.Equal(t, "camp-1", *lead.CampaignID)
		}
	}
}

func TestUploadLeads_PartialStopAtLimit(t *testing.T) {
	campaignRepo := new(MockCampaignRepository)
	leadRepo := new(MockLeadRepository)
	uc := usecase.NewUploadLeadsUseCase(campaignRepo, leadRepo)

	campaignRepo.On("FindByID", mock.Anything, "user-1", "camp-1").
		Return(&entity.Campaign{ID: "camp-1", UserID: "user-1"}, nil)
	leadRepo.On("List", mock.Anything, "user-1", mock.Anything).Return(existingLeads(9), nil)

	var created []*entity.Lead
	leadRepo.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).([]*entity.Lead)
		}).
		Return(nil)

	csvData := csvHeader +
		"Jane,Doe,Globex,https://linkedin.com/in/janedoe,CTO\n" +
		"Bob,Ray,Initech,https://linkedin.com/in/bobray,VP Sales\n" +
		"Ann,Lee,Umbrella,https://linkedin.com/in/annlee,CFO\n"

	out, err := uc.Execute(context.Background(), usecase.UploadLeadsInput{
		User:       freeUser(),
		CampaignID: "camp-1",
		CSVData:    csvData,
	})

	assert.NoError(t, err)
	// Only one slot left; rows keep file order, so Jane gets it.
	assert.Equal(t, 1, out.LeadsCreated)
	assert.Equal(t, 10, out.CurrentUsage)
	assert.Empty(t, out.Warning)
	assert.Len(t, created, 1)
	assert.Equal(t, "Jane", created[0].FirstName)
}
