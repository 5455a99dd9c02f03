package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/veritaslogistics/veritas-api/internal/http/middleware"
	"github.com/veritaslogistics/veritas-api/internal/http/response"
	"github.com/veritaslogistics/veritas-api/internal/store"
)

type NotificationsHandler struct {
	Store *store.UserStore
}

func NewNotificationsHandler(s *store.UserStore) *NotificationsHandler {
	return &NotificationsHandler{Store: s}
}

func (h *NotificationsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/{id}/read", h.markRead)
	return r
}

func (h *NotificationsHandler) list(w http.ResponseWriter, r *http.Request) {
	notifs, err := h.Store.UserNotifications(r.Context(), mw.UserID(r.Context()))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, notifs)
}

func (h *NotificationsHandler) markRead(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Store.ReadNotification(r.Context(), mw.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !ok {
		response.NotFound(w, "notification not found")
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "notification marked read"})
}
