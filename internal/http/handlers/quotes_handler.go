package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veritaslogistics/veritas-api/internal/domain"
	mw "github.com/veritaslogistics/veritas-api/internal/http/middleware"
	"github.com/veritaslogistics/veritas-api/internal/http/response"
	"github.com/veritaslogistics/veritas-api/internal/quote"
	"github.com/veritaslogistics/veritas-api/internal/store"
	"github.com/veritaslogistics/veritas-api/pkg/events"
	"github.com/veritaslogistics/veritas-api/pkg/logger"
)

type QuotesHandler struct {
	Store *store.UserStore
	Bus   events.Publisher
}

func NewQuotesHandler(s *store.UserStore, bus events.Publisher) *QuotesHandler {
	return &QuotesHandler{Store: s, Bus: bus}
}

func (h *QuotesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/estimate", h.estimate) // public
	r.Post("/", h.create)
	r.Get("/", h.list)
	return r
}

// estimate prices a shipment without storing anything. It backs the quote
// widget on the marketing pages, so it stays public.
func (h *QuotesHandler) estimate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Pickup   string  `json:"pickup"`
		Delivery string  `json:"delivery"`
		ItemType string  `json:"item_type"`
		WeightKG float64 `json:"weight_kg"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if in.Pickup == "" || in.Delivery == "" || in.ItemType == "" || in.WeightKG <= 0 {
		response.BadRequest(w, "pickup, delivery, item_type and weight_kg are required")
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"estimated_price": quote.Estimate(in.ItemType, in.WeightKG),
		"currency":        "NGN",
	})
}

func (h *QuotesHandler) create(w http.ResponseWriter, r *http.Request) {
	var in domain.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if in.Pickup == "" || in.Delivery == "" || in.ItemType == "" {
		response.BadRequest(w, "pickup, delivery and item_type are required")
		return
	}
	if in.EstimatedPrice == nil && in.WeightKG > 0 {
		price := quote.Estimate(in.ItemType, in.WeightKG)
		in.EstimatedPrice = &price
	}

	userID := mw.UserID(r.Context())
	q, err := h.Store.AddQuote(r.Context(), userID, in)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if err := h.Bus.Publish(r.Context(), events.QuoteRequested, events.QuoteRequestedEvent{
		UserID:         userID,
		QuoteID:        q.ID,
		Pickup:         q.Pickup,
		Delivery:       q.Delivery,
		EstimatedPrice: q.EstimatedPrice,
	}); err != nil {
		logger.WarnContext(r.Context(), "publish quote.requested failed", "error", err)
	}

	response.JSON(w, http.StatusCreated, q)
}

func (h *QuotesHandler) list(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.Store.UserQuotes(r.Context(), mw.UserID(r.Context()))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, quotes)
}
