package domain

import "time"

// Notification types are free-form tags; the front end only uses them to
// pick an icon.
const (
	NotifyWelcome = "welcome"
	NotifyBooking = "booking"
	NotifyQuote   = "quote"
)

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationRequest is the caller-supplied part of a new notification.
type NotificationRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}
