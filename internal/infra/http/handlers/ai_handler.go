package handlers

import (
	"net/http"

	"github.com/leadpilot/leadpilot/internal/usecase"
)

type AIHandler struct {
	generateUC *usecase.GenerateMessageUseCase
}

func NewAIHandler(generateUC *usecase.GenerateMessageUseCase) *AIHandler {
	return &AIHandler{generateUC: generateUC}
}

type GenerateMessageRequest struct {
	LeadInfo        string `json:"lead_info"`
	Tone            string `json:"tone"`
	Goal            string `json:"goal"`
	Length          int    `json:"length"`
	CTA             string `json:"cta"`
	Personalization string `json:"personalization"`
	Type            string `json:"type"`
}

func (h *AIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := h.generateUC.Execute(r.Context(), usecase.DraftInput{
		LeadInfo:        req.LeadInfo,
		Tone:            req.Tone,
		Goal:            req.Goal,
		Length:          req.Length,
		CTA:             req.CTA,
		Personalization: req.Personalization,
		Type:            req.Type,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, out)
}
