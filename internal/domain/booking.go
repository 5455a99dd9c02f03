package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingInTransit BookingStatus = "in-transit"
	BookingDelivered BookingStatus = "delivered"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingInTransit, BookingDelivered:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// Booking is a shipment owned by exactly one user. TrackingID is the
// human-shareable code, a separate namespace from the internal ID.
type Booking struct {
	ID         string            `json:"id"`
	TrackingID string            `json:"tracking_id"`
	Pickup     string            `json:"pickup"`
	Delivery   string            `json:"delivery"`
	ItemType   string            `json:"item_type"`
	WeightKG   float64           `json:"weight_kg"`
	Status     BookingStatus     `json:"status"`
	Extra      map[string]string `json:"extra,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// BookingRequest is the caller-supplied part of a new booking. Extra keeps
// the open attribute set (sender name, delivery notes, and so on) without
// widening the typed fields.
type BookingRequest struct {
	Pickup   string            `json:"pickup"`
	Delivery string            `json:"delivery"`
	ItemType string            `json:"item_type"`
	WeightKG float64           `json:"weight_kg"`
	Extra    map[string]string `json:"extra,omitempty"`
}
