package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veritaslogistics/veritas-api/internal/domain"
	mw "github.com/veritaslogistics/veritas-api/internal/http/middleware"
	"github.com/veritaslogistics/veritas-api/internal/http/response"
	"github.com/veritaslogistics/veritas-api/internal/store"
)

type DashboardHandler struct {
	Store *store.UserStore
}

func NewDashboardHandler(s *store.UserStore) *DashboardHandler {
	return &DashboardHandler{Store: s}
}

func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/stats", h.stats)
	return r
}

// Stats are the four dashboard counters: shipments still moving, shipments
// delivered, quotes awaiting an answer and unread notifications.
type Stats struct {
	ActiveBookings      int `json:"active_bookings"`
	DeliveredBookings   int `json:"delivered_bookings"`
	PendingQuotes       int `json:"pending_quotes"`
	UnreadNotifications int `json:"unread_notifications"`
}

func (h *DashboardHandler) stats(w http.ResponseWriter, r *http.Request) {
	user, err := h.Store.GetUserByID(r.Context(), mw.UserID(r.Context()))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if user == nil {
		response.NotFound(w, "user not found")
		return
	}

	var stats Stats
	for _, b := range user.Bookings {
		switch b.Status {
		case domain.BookingPending, domain.BookingInTransit:
			stats.ActiveBookings++
		case domain.BookingDelivered:
			stats.DeliveredBookings++
		}
	}
	for _, q := range user.Quotes {
		if q.Status == domain.QuotePending {
			stats.PendingQuotes++
		}
	}
	for _, n := range user.Notifications {
		if !n.Read {
			stats.UnreadNotifications++
		}
	}

	response.JSON(w, http.StatusOK, stats)
}
