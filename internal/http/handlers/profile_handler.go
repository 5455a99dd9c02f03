package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veritaslogistics/veritas-api/internal/domain"
	mw "github.com/veritaslogistics/veritas-api/internal/http/middleware"
	"github.com/veritaslogistics/veritas-api/internal/http/response"
	"github.com/veritaslogistics/veritas-api/internal/store"
)

type ProfileHandler struct {
	Store *store.UserStore
}

func NewProfileHandler(s *store.UserStore) *ProfileHandler {
	return &ProfileHandler{Store: s}
}

func (h *ProfileHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.get)
	r.Patch("/", h.update)
	return r
}

func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request) {
	user, err := h.Store.GetUserByID(r.Context(), mw.UserID(r.Context()))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if user == nil {
		response.NotFound(w, "user not found")
		return
	}
	response.JSON(w, http.StatusOK, user.Profile())
}

func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request) {
	var patch domain.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	userID := mw.UserID(r.Context())
	ok, err := h.Store.UpdateUser(r.Context(), userID, patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !ok {
		response.NotFound(w, "user not found")
		return
	}

	user, err := h.Store.GetUserByID(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, user.Profile())
}
