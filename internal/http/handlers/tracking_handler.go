package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/veritaslogistics/veritas-api/internal/http/response"
	"github.com/veritaslogistics/veritas-api/internal/store"
)

// TrackingHandler resolves the human-shareable tracking codes printed on
// booking confirmations. It is public: anyone holding a code may check the
// shipment, so the view exposes no account data.
type TrackingHandler struct {
	Store *store.UserStore
}

func NewTrackingHandler(s *store.UserStore) *TrackingHandler {
	return &TrackingHandler{Store: s}
}

func (h *TrackingHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{code}", h.track)
	return r
}

type trackingView struct {
	TrackingID string    `json:"tracking_id"`
	Status     string    `json:"status"`
	Pickup     string    `json:"pickup"`
	Delivery   string    `json:"delivery"`
	ItemType   string    `json:"item_type"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *TrackingHandler) track(w http.ResponseWriter, r *http.Request) {
	booking, found, err := h.Store.LookupTracking(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !found {
		response.NotFound(w, "no shipment with that tracking code")
		return
	}
	response.JSON(w, http.StatusOK, trackingView{
		TrackingID: booking.TrackingID,
		Status:     string(booking.Status),
		Pickup:     booking.Pickup,
		Delivery:   booking.Delivery,
		ItemType:   booking.ItemType,
		CreatedAt:  booking.CreatedAt,
	})
}
