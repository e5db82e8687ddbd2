package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/leadpilot/leadpilot/internal/usecase"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError translates the use case error taxonomy into HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case usecase.IsNotFound(err):
		respondJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case usecase.IsValidation(err):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case usecase.IsRateLimited(err):
		respondJSON(w, http.StatusTooManyRequests, ErrorResponse{Error: err.Error()})
	case usecase.IsUpstream(err):
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	default:
		log.Printf("[HTTP] internal error: %v", err)
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}
