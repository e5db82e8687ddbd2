package handlers

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/leadpilot/leadpilot/internal/entity"
	"github.com/leadpilot/leadpilot/internal/infra/http/middleware"
	"github.com/leadpilot/leadpilot/internal/usecase"
)

type EmailCampaignHandler struct {
	campaignRepo entity.EmailCampaignRepositoryInterface
	logRepo      entity.EmailLogRepositoryInterface
	leadRepo     entity.LeadRepositoryInterface
	followUpRepo entity.FollowUpRepositoryInterface
	sendUC       *usecase.SendEmailCampaignUseCase
	updateUC     *usecase.UpdateEmailCampaignUseCase
	deleteUC     *usecase.DeleteEmailCampaignUseCase
}

func NewEmailCampaignHandler(
	campaignRepo entity.EmailCampaignRepositoryInterface,
	logRepo entity.EmailLogRepositoryInterface,
	leadRepo entity.LeadRepositoryInterface,
	followUpRepo entity.FollowUpRepositoryInterface,
	sendUC *usecase.SendEmailCampaignUseCase,
	updateUC *usecase.UpdateEmailCampaignUseCase,
	deleteUC *usecase.DeleteEmailCampaignUseCase,
) *EmailCampaignHandler {
	return &EmailCampaignHandler{
		campaignRepo: campaignRepo,
		logRepo:      logRepo,
		leadRepo:     leadRepo,
		followUpRepo: followUpRepo,
		sendUC:       sendUC,
		updateUC:     updateUC,
		deleteUC:     deleteUC,
	}
}

type CreateEmailCampaignRequest struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (h *EmailCampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req CreateEmailCampaignRequest
	if !decodeBody(w, r, &req) {
		return
	}

	campaign, err := entity.NewEmailCampaign(user.ID, req.Name, req.Subject, req.Body)
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

func (h *EmailCampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	campaigns, err := h.campaignRepo.ListByUser(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"campaigns": campaigns, "count": len(campaigns)})
}

func (h *EmailCampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	campaignID := chi.URLParam(r, "campaignID")

	campaign, err := h.campaignRepo.FindByID(r.Context(), user.ID, campaignID)
	if err != nil || campaign == nil {
		respondError(w, usecase.NewNotFound("email campaign"))
		return
	}

	respondJSON(w, http.StatusOK, campaign)
}

type UpdateEmailCampaignRequest struct {
	Name    *string `json:"name"`
	Subject *string `json:"subject"`
	Body    *string `json:"body"`
	Status  *string `json:"status"`
}

func (h *EmailCampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	campaignID := chi.URLParam(r, "campaignID")

	var req UpdateEmailCampaignRequest
	if !decodeBody(w, r, &req) {
		return
	}

	campaign, err := h.updateUC.Execute(r.Context(), user.ID, campaignID, usecase.UpdateCampaignInput{
		Name:    req.Name,
		Subject: req.Subject,
		Body:    req.Body,
		Status:  req.Status,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, campaign)
}

func (h *EmailCampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	campaignID := chi.URLParam(r, "campaignID")

	if err := h.deleteUC.Execute(r.Context(), user.ID, campaignID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Email campaign deleted"})
}

type SendEmailCampaignRequest struct {
	LeadIDs         []string                     `json:"lead_ids"`
	Personalization map[string]map[string]string `json:"personalization"`
}

func (h *EmailCampaignHandler) Send(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	campaignID := chi.URLParam(r, "campaignID")

	var req SendEmailCampaignRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := h.sendUC.Execute(r.Context(), usecase.SendEmailCampaignInput{
		User:            user,
		CampaignID:      campaignID,
		LeadIDs:         req.LeadIDs,
		Personalization: req.Personalization,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.RecordEmailDispatched(entity.DeliveryStatusSent, out.Sent)
	middleware.RecordEmailDispatched(entity.DeliveryStatusFailed, out.Failed)

	respondJSON(w, http.StatusOK, out)
}

type EmailLogEntry struct {
	*entity.EmailLog
	LeadName string `json:"lead_name,omitempty"`
}

// Logs returns the campaign's delivery history annotated with lead names.
func (h *EmailCampaignHandler) Logs(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	campaignID := chi.URLParam(r, "campaignID")

	campaign, err := h.campaignRepo.FindByID(r.Context(), user.ID, campaignID)
	if err != nil || campaign == nil {
		respondError(w, usecase.NewNotFound("email campaign"))
		return
	}

	logs, err := h.logRepo.ListByCampaign(r.Context(), campaignID)
	if err != nil {
		respondError(w, err)
		return
	}

	leadIDs := make([]string, 0, len(logs))
	for _, l := range logs {
		leadIDs = append(leadIDs, l.LeadID)
	}

	names := make(map[string]string)
	if len(leadIDs) > 0 {
		leads, err := h.leadRepo.ListByIDs(r.Context(), user.ID, leadIDs)
		if err != nil {
			respondError(w, err)
			return
		}
		for _, lead := range leads {
			names[lead.ID] = lead.FullName()
		}
	}

	entries := make([]EmailLogEntry, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, EmailLogEntry{EmailLog: l, LeadName: names[l.LeadID]})
	}

	respondJSON(w, http.StatusOK, map[string]any{"logs": entries, "count": len(entries)})
}

type DailyDeliveryStat struct {
	Date   string `json:"date"`
	Sent   int    `json:"sent"`
	Failed int    `json:"failed"`
	Opened int    `json:"opened"`
}

// Performance buckets the campaign's delivery history by calendar day.
func (h *EmailCampaignHandler) Performance(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	campaignID := chi.URLParam(r, "campaignID")

	campaign, err := h.campaignRepo.FindByID(r.Context(), user.ID, campaignID)
	if err != nil || campaign == nil {
		respondError(w, usecase.NewNotFound("email campaign"))
		return
	}

	logs, err := h.logRepo.ListByCampaign(r.Context(), campaignID)
	if err != nil {
		respondError(w, err)
		return
	}

	byDay := make(map[string]*DailyDeliveryStat)
	var days []string
	totalSent, totalFailed := 0, 0
	for _, l := range logs {
		day := l.SentAt.Format("2006-01-02")
		stat, ok := byDay[day]
		if !ok {
			stat = &DailyDeliveryStat{Date: day}
			byDay[day] = stat
			days = append(days, day)
		}
		switch l.Status {
		case entity.DeliveryStatusSent:
			stat.Sent++
			totalSent++
		case entity.DeliveryStatusFailed:
			stat.Failed++
			totalFailed++
		}
		if l.OpenedAt != nil {
			stat.Opened++
		}
	}

	sort.Strings(days)
	daily := make([]DailyDeliveryStat, 0, len(days))
	for _, day := range days {
		daily = append(daily, *byDay[day])
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"campaign_id": campaignID,
		"sent":        totalSent,
		"failed":      totalFailed,
		"daily":       daily,
	})
}

type CreateFollowUpRequest struct {
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	DelayDays int    `json:"delay_days"`
}

func (h *EmailCampaignHandler) CreateFollowUp(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	campaignID := chi.URLParam(r, "campaignID")

	campaign, err := h.campaignRepo.FindByID(r.Context(), user.ID, campaignID)
	if err != nil || campaign == nil {
		respondError(w, usecase.NewNotFound("email campaign"))
		return
	}

	var req CreateFollowUpRequest
	if !decodeBody(w, r, &req) {
		return
	}

	followUp, err := entity.NewFollowUpEmail(campaignID, req.Subject, req.Body, req.DelayDays)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.followUpRepo.Create(r.Context(), followUp); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, followUp)
}

func (h *EmailCampaignHandler) ListFollowUps(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	campaignID := chi.URLParam(r, "campaignID")

	campaign, err := h.campaignRepo.FindByID(r.Context(), user.ID, campaignID)
	if err != nil || campaign == nil {
		respondError(w, usecase.NewNotFound("email campaign"))
		return
	}

	followUps, err := h.followUpRepo.ListByCampaign(r.Context(), campaignID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"follow_ups": followUps, "count": len(followUps)})
}
