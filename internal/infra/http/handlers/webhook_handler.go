package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/leadpilot/leadpilot/internal/infra/http/middleware"
	"github.com/leadpilot/leadpilot/internal/infra/integration/paystack"
	"github.com/leadpilot/leadpilot/internal/usecase"
)

// WebhookHandler receives payment processor callbacks. This endpoint is
// unauthenticated; trust comes from the HMAC signature alone.
type WebhookHandler struct {
	paystack *paystack.Client
	applyUC  *usecase.ApplySubscriptionUseCase
}

func NewWebhookHandler(client *paystack.Client, applyUC *usecase.ApplySubscriptionUseCase) *WebhookHandler {
	return &WebhookHandler{paystack: client, applyUC: applyUC}
}

func (h *WebhookHandler) HandlePaystack(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}

	signature := r.Header.Get("X-Paystack-Signature")
	if !h.paystack.VerifySignature(body, signature) {
		log.Println("[WEBHOOK] rejected paystack event: bad signature")
		respondJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid signature"})
		return
	}

	event, err := paystack.ParseWebhook(body)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid event payload"})
		return
	}

	if event.Event != paystack.EventChargeSuccess {
		// Acknowledge everything else so the processor stops retrying.
		respondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	meta := event.Data.Metadata
	if meta.Type != "subscription" || meta.UserID == "" {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	if err := h.applyUC.Execute(r.Context(), meta.UserID, meta.PlanTier); err != nil {
		log.Printf("[WEBHOOK] applying subscription for user %s: %v", meta.UserID, err)
		respondError(w, err)
		return
	}

	middleware.RecordSubscriptionActivation()
	log.Printf("[WEBHOOK] subscription %s activated for user %s (ref %s)", meta.PlanTier, meta.UserID, event.Data.Reference)

	respondJSON(w, http.StatusOK, map[string]string{"status": "processed"})
}
