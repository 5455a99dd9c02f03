package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veritaslogistics/veritas-api/internal/domain"
	mw "github.com/veritaslogistics/veritas-api/internal/http/middleware"
	"github.com/veritaslogistics/veritas-api/internal/http/response"
	"github.com/veritaslogistics/veritas-api/internal/store"
	"github.com/veritaslogistics/veritas-api/pkg/events"
	"github.com/veritaslogistics/veritas-api/pkg/logger"
)

type BookingsHandler struct {
	Store *store.UserStore
	Bus   events.Publisher
}

func NewBookingsHandler(s *store.UserStore, bus events.Publisher) *BookingsHandler {
	return &BookingsHandler{Store: s, Bus: bus}
}

func (h *BookingsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.create)
	r.Get("/", h.list)
	return r
}

func (h *BookingsHandler) create(w http.ResponseWriter, r *http.Request) {
	var in domain.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	switch {
	case in.Pickup == "":
		response.BadRequest(w, "pickup is required")
		return
	case in.Delivery == "":
		response.BadRequest(w, "delivery is required")
		return
	case in.ItemType == "":
		response.BadRequest(w, "item_type is required")
		return
	case in.WeightKG <= 0:
		response.BadRequest(w, "weight_kg must be positive")
		return
	}

	userID := mw.UserID(r.Context())
	booking, err := h.Store.AddBooking(r.Context(), userID, in)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	notif, err := h.Store.AddNotification(r.Context(), userID, domain.NotificationRequest{
		Title:   "Booking confirmed",
		Message: fmt.Sprintf("Your shipment from %s to %s is booked. Tracking ID: %s", booking.Pickup, booking.Delivery, booking.TrackingID),
		Type:    domain.NotifyBooking,
	})
	if err != nil {
		logger.WarnContext(r.Context(), "booking notification failed", "error", err)
	} else {
		publishNotification(r.Context(), h.Bus, userID, notif)
	}

	if err := h.Bus.Publish(r.Context(), events.BookingCreated, events.BookingCreatedEvent{
		UserID:     userID,
		BookingID:  booking.ID,
		TrackingID: booking.TrackingID,
		Pickup:     booking.Pickup,
		Delivery:   booking.Delivery,
		ItemType:   booking.ItemType,
		WeightKG:   booking.WeightKG,
		CreatedAt:  booking.CreatedAt,
	}); err != nil {
		logger.WarnContext(r.Context(), "publish booking.created failed", "error", err)
	}

	response.JSON(w, http.StatusCreated, booking)
}

func (h *BookingsHandler) list(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Store.UserBookings(r.Context(), mw.UserID(r.Context()))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, bookings)
}
