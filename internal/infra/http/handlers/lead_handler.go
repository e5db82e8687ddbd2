package handlers

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/leadpilot/leadpilot/internal/entity"
	"github.com/leadpilot/leadpilot/internal/infra/http/middleware"
	"github.com/leadpilot/leadpilot/internal/usecase"
)

type LeadHandler struct {
	leadRepo    entity.LeadRepositoryInterface
	uploadUC    *usecase.UploadLeadsUseCase
	enrichUC    *usecase.EnrichLeadUseCase
	assignUC    *usecase.AssignLeadsUseCase
	updateUC    *usecase.UpdateLeadUseCase
}

func NewLeadHandler(
	leadRepo entity.LeadRepositoryInterface,
	uploadUC *usecase.UploadLeadsUseCase,
	enrichUC *usecase.EnrichLeadUseCase,
	assignUC *usecase.AssignLeadsUseCase,
	updateUC *usecase.UpdateLeadUseCase,
) *LeadHandler {
	return &LeadHandler{
		leadRepo: leadRepo,
		uploadUC: uploadUC,
		enrichUC: enrichUC,
		assignUC: assignUC,
		updateUC: updateUC,
	}
}

type UploadLeadsRequest struct {
	CSVData string `json:"csv_data"`
}

// Upload ingests leads from CSV data into a campaign. The file can arrive as
// a raw text/csv body or wrapped in a JSON envelope.
func (h *LeadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	campaignID := chi.URLParam(r, "campaignID")

	csvData, ok := h.readCSVPayload(w, r)
	if !ok {
		return
	}

	out, err := h.uploadUC.Execute(r.Context(), usecase.UploadLeadsInput{
		User:       user,
		CampaignID: campaignID,
		CSVData:    csvData,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	if out.LeadsCreated > 0 {
		middleware.RecordLeadsIngested(user.SubscriptionTier, out.LeadsCreated)
	}

	respondJSON(w, http.StatusOK, out)
}

func (h *LeadHandler) readCSVPayload(w http.ResponseWriter, r *http.Request) (string, bool) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "text/csv") {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
			return "", false
		}
		return string(body), true
	}

	var req UploadLeadsRequest
	if !decodeBody(w, r, &req) {
		return "", false
	}
	return req.CSVData, true
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	// Listings never exceed the plan's lead allowance, so a downgraded
	// account only sees what its current tier pays for.
	planCap := entity.PlanFor(user.SubscriptionTier).LeadLimit
	filter := entity.LeadFilter{
		UnassignedOnly: r.URL.Query().Get("unassigned") == "true",
		Limit:          planCap,
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		if limit > 0 && limit < planCap {
			filter.Limit = limit
		}
	}

	leads, err := h.leadRepo.List(r.Context(), user.ID, filter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"leads": leads, "count": len(leads)})
}

func (h *LeadHandler) Enrich(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	leadID := chi.URLParam(r, "leadID")

	out, err := h.enrichUC.Execute(r.Context(), user, leadID)
	if err != nil {
		middleware.RecordEnrichment("error")
		respondError(w, err)
		return
	}

	result := "not_found"
	if out.Found {
		result = "found"
	}
	middleware.RecordEnrichment(result)

	respondJSON(w, http.StatusOK, out)
}

type UpdateLeadRequest struct {
	Status string `json:"status"`
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	leadID := chi.URLParam(r, "leadID")

	var req UpdateLeadRequest
	if !decodeBody(w, r, &req) {
		return
	}

	lead, err := h.updateUC.Execute(r.Context(), user.ID, leadID, req.Status)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	leadID := chi.URLParam(r, "leadID")

	if err := h.leadRepo.Delete(r.Context(), user.ID, leadID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, usecase.NewNotFound("lead"))
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Lead deleted"})
}

type AssignLeadsRequest struct {
	LeadIDs []string `json:"lead_ids"`
}

func (h *LeadHandler) Assign(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	campaignID := chi.URLParam(r, "campaignID")

	var req AssignLeadsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	assigned, err := h.assignUC.Execute(r.Context(), user.ID, campaignID, req.LeadIDs)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":  fmt.Sprintf("%d leads assigned", assigned),
		"assigned": assigned,
	})
}

var exportHeader = []string{"First Name", "Last Name", "Job Title", "Company", "Profile URL", "Status", "Email", "Email Confidence"}

// Export streams the owner's full lead list as a CSV attachment.
func (h *LeadHandler) Export(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	leads, err := h.leadRepo.List(r.Context(), user.ID, entity.LeadFilter{})
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="leads_export.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	cw.Write(exportHeader)
	for _, lead := range leads {
		confidence := ""
		if lead.EmailConfidence != nil {
			confidence = strconv.Itoa(*lead.EmailConfidence)
		}
		cw.Write([]string{
			lead.FirstName,
			lead.LastName,
			lead.JobTitle,
			lead.Company,
			lead.ProfileURL,
			lead.Status,
			lead.Email,
			confidence,
		})
	}
	cw.Flush()
}
