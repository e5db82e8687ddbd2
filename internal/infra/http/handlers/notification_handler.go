package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leadpilot/leadpilot/internal/entity"
	"github.com/leadpilot/leadpilot/internal/infra/http/middleware"
	"github.com/leadpilot/leadpilot/internal/usecase"
)

type NotificationHandler struct {
	repo entity.NotificationRepositoryInterface
}

func NewNotificationHandler(repo entity.NotificationRepositoryInterface) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	notifications, err := h.repo.ListByUser(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"unread":        unread,
	})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	notificationID := chi.URLParam(r, "notificationID")

	if err := h.repo.MarkRead(r.Context(), user.ID, notificationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, usecase.NewNotFound("notification"))
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	notificationID := chi.URLParam(r, "notificationID")

	if err := h.repo.Delete(r.Context(), user.ID, notificationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, usecase.NewNotFound("notification"))
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Notification deleted"})
}
