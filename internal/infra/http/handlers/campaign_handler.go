package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leadpilot/leadpilot/internal/entity"
	"github.com/leadpilot/leadpilot/internal/infra/http/middleware"
	"github.com/leadpilot/leadpilot/internal/usecase"
)

// CampaignHandler serves the outreach (LinkedIn-style) campaign surface.
type CampaignHandler struct {
	campaignRepo entity.CampaignRepositoryInterface
	leadRepo     entity.LeadRepositoryInterface
	updateUC     *usecase.UpdateCampaignUseCase
	deleteUC     *usecase.DeleteCampaignUseCase
}

func NewCampaignHandler(
	campaignRepo entity.CampaignRepositoryInterface,
	leadRepo entity.LeadRepositoryInterface,
	updateUC *usecase.UpdateCampaignUseCase,
	deleteUC *usecase.DeleteCampaignUseCase,
) *CampaignHandler {
	return &CampaignHandler{
		campaignRepo: campaignRepo,
		leadRepo:     leadRepo,
		updateUC:     updateUC,
		deleteUC:     deleteUC,
	}
}

type CreateCampaignRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Body        string `json:"body"`
}

func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req CreateCampaignRequest
	if !decodeBody(w, r, &req) {
		return
	}

	campaign, err := entity.NewCampaign(user.ID, req.Name, req.Description, req.Body)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.campaignRepo.Create(r.Context(), campaign); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, campaign)
}

func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	campaigns, err := h.campaignRepo.ListByUser(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"campaigns": campaigns, "count": len(campaigns)})
}

func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	campaignID := chi.URLParam(r, "campaignID")

	campaign, err := h.campaignRepo.FindByID(r.Context(), user.ID, campaignID)
	if err != nil || campaign == nil {
		respondError(w, usecase.NewNotFound("campaign"))
		return
	}

	respondJSON(w, http.StatusOK, campaign)
}

type UpdateCampaignRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Body        *string `json:"body"`
	Status      *string `json:"status"`
}

func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	campaignID := chi.URLParam(r, "campaignID")

	var req UpdateCampaignRequest
	if !decodeBody(w, r, &req) {
		return
	}

	campaign, err := h.updateUC.Execute(r.Context(), user.ID, campaignID, usecase.UpdateCampaignInput{
		Name:        req.Name,
		Description: req.Description,
		Body:        req.Body,
		Status:      req.Status,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	campaignID := chi.URLParam(r, "campaignID")

	if err := h.deleteUC.Execute(r.Context(), user.ID, campaignID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Campaign deleted"})
}

type CampaignPerformance struct {
	CampaignID   string  `json:"campaign_id"`
	TotalLeads   int     `json:"total_leads"`
	Pending      int     `json:"pending"`
	Contacted    int     `json:"contacted"`
	Replied      int     `json:"replied"`
	Connected    int     `json:"connected"`
	Failed       int     `json:"failed"`
	ResponseRate float64 `json:"response_rate"`
}

// Performance aggregates the campaign's lead statuses. Response rate is
// replies plus connections over every lead that was contacted at all.
func (h *CampaignHandler) Performance(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	campaignID := chi.URLParam(r, "campaignID")

	campaign, err := h.campaignRepo.FindByID(r.Context(), user.ID, campaignID)
	if err != nil || campaign == nil {
		respondError(w, usecase.NewNotFound("campaign"))
		return
	}

	leads, err := h.leadRepo.List(r.Context(), user.ID, entity.LeadFilter{})
	if err != nil {
		respondError(w, err)
		return
	}

	perf := CampaignPerformance{CampaignID: campaignID}
	for _, lead := range leads {
		if lead.CampaignID == nil || *lead.CampaignID != campaignID {
			continue
		}
		perf.TotalLeads++
		switch lead.Status {
		case entity.LeadStatusPending:
			perf.Pending++
		case entity.LeadStatusContacted, entity.LeadStatusSent:
			perf.Contacted++
		case entity.LeadStatusReplied:
			perf.Replied++
		case entity.LeadStatusConnected:
			perf.Connected++
		case entity.LeadStatusFailed:
			perf.Failed++
		}
	}

	reached := perf.Contacted + perf.Replied + perf.Connected
	if reached > 0 {
		perf.ResponseRate = float64(perf.Replied+perf.Connected) / float64(reached)
	}

	respondJSON(w, http.StatusOK, perf)
}
