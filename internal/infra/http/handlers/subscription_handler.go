package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/leadpilot/leadpilot/internal/entity"
	"github.com/leadpilot/leadpilot/internal/infra/http/middleware"
	"github.com/leadpilot/leadpilot/internal/infra/integration/paystack"
	"github.com/leadpilot/leadpilot/internal/usecase"
)

type SubscriptionHandler struct {
	userRepo entity.UserRepositoryInterface
	checkout usecase.CheckoutGateway
	usageUC  *usecase.UsageUseCase
}

func NewSubscriptionHandler(userRepo entity.UserRepositoryInterface, checkout usecase.CheckoutGateway, usageUC *usecase.UsageUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{
		userRepo: userRepo,
		checkout: checkout,
		usageUC:  usageUC,
	}
}

func (h *SubscriptionHandler) Plans(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"plans": entity.AllPlans()})
}

type CurrentSubscriptionResponse struct {
	Tier      string      `json:"tier"`
	Status    string      `json:"status"`
	Active    bool        `json:"active"`
	ExpiresAt *time.Time  `json:"expires_at,omitempty"`
	Plan      entity.Plan `json:"plan"`
}

func (h *SubscriptionHandler) Current(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	respondJSON(w, http.StatusOK, CurrentSubscriptionResponse{
		Tier:      user.SubscriptionTier,
		Status:    user.SubscriptionStatus,
		Active:    user.SubscriptionIsActive(),
		ExpiresAt: user.SubscriptionExpiresAt,
		Plan:      entity.PlanFor(user.SubscriptionTier),
	})
}

func (h *SubscriptionHandler) Usage(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	usage, err := h.usageUC.Execute(r.Context(), user)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, usage)
}

type CheckoutRequest struct {
	PlanTier string `json:"plan_tier"`
}

type CheckoutResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
}

// Checkout opens a hosted payment page for a paid plan. The subscription
// itself is only applied once the processor confirms the charge via webhook.
func (h *SubscriptionHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req CheckoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if !entity.KnownTier(req.PlanTier) {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid subscription plan"})
		return
	}
	plan := entity.PlanFor(req.PlanTier)
	if plan.PriceKobo == 0 {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "free plan does not require checkout"})
		return
	}

	out, err := h.checkout.InitializeTransaction(r.Context(), paystack.InitializeInput{
		Email:       user.Email,
		AmountKobo:  plan.PriceKobo,
		CallbackURL: os.Getenv("PAYSTACK_CALLBACK_URL"),
		UserID:      user.ID,
		PlanTier:    plan.Tier,
	})
	if err != nil {
		middleware.RecordIntegrationError("paystack")
		respondError(w, &usecase.UpstreamError{Service: "paystack", Message: "failed to initialize checkout"})
		return
	}

	respondJSON(w, http.StatusOK, CheckoutResponse{
		AuthorizationURL: out.AuthorizationURL,
		Reference:        out.Reference,
	})
}

// Cancel keeps the paid tier until the current period expires; it only flips
// the status so the subscription stops renewing.
func (h *SubscriptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	if user.SubscriptionTier == entity.TierFree {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "no paid subscription to cancel"})
		return
	}

	err := h.userRepo.UpdateSubscription(r.Context(), user.ID, user.SubscriptionTier, entity.SubscriptionCancelled, user.SubscriptionExpiresAt)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Subscription cancelled"})
}
