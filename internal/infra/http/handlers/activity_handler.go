package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leadpilot/leadpilot/internal/entity"
	"github.com/leadpilot/leadpilot/internal/infra/http/middleware"
	"github.com/leadpilot/leadpilot/internal/usecase"
)

const activityFeedLimit = 50

type ActivityHandler struct {
	logRepo  entity.OutreachLogRepositoryInterface
	leadRepo entity.LeadRepositoryInterface
}

func NewActivityHandler(logRepo entity.OutreachLogRepositoryInterface, leadRepo entity.LeadRepositoryInterface) *ActivityHandler {
	return &ActivityHandler{logRepo: logRepo, leadRepo: leadRepo}
}

type ActivityEntry struct {
	*entity.OutreachLog
	LeadName string `json:"lead_name,omitempty"`
}

// Feed returns the owner's most recent outreach activity, newest first,
// annotated with lead names.
func (h *ActivityHandler) Feed(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	logs, err := h.logRepo.ListRecentByUser(r.Context(), user.ID, activityFeedLimit)
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

	entries := make([]ActivityEntry, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, ActivityEntry{OutreachLog: l, LeadName: names[l.LeadID]})
	}

	respondJSON(w, http.StatusOK, map[string]any{"activity": entries, "count": len(entries)})
}

type CreateLogRequest struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CreateLog records a manual outreach touch against an owned lead.
func (h *ActivityHandler) CreateLog(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	leadID := chi.URLParam(r, "leadID")

	lead, err := h.leadRepo.FindByID(r.Context(), user.ID, leadID)
	if err != nil || lead == nil {
		respondError(w, usecase.NewNotFound("lead"))
		return
	}

	var req CreateLogRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Status == "" {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "status is required"})
		return
	}

	entry := entity.NewOutreachLog(lead.ID, req.Status, req.Message)
	if err := h.logRepo.Create(r.Context(), entry); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}
