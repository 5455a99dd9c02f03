package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/veritaslogistics/veritas-api/pkg/logger"
)

// Publisher fans domain events out to interested services. Publishing is
// best effort; store operations never fail because an event did.
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

// Subjects.
const (
	UserRegistered      = "user.registered"
	BookingCreated      = "booking.created"
	QuoteRequested      = "quote.requested"
	NotificationCreated = "notification.created"
)

type UserRegisteredEvent struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type BookingCreatedEvent struct {
	UserID     string    `json:"user_id"`
	BookingID  string    `json:"booking_id"`
	TrackingID string    `json:"tracking_id"`
	Pickup     string    `json:"pickup"`
	Delivery   string    `json:"delivery"`
	ItemType   string    `json:"item_type"`
	WeightKG   float64   `json:"weight_kg"`
	CreatedAt  time.Time `json:"created_at"`
}

type QuoteRequestedEvent struct {
	UserID         string   `json:"user_id"`
	QuoteID        string   `json:"quote_id"`
	Pickup         string   `json:"pickup"`
	Delivery       string   `json:"delivery"`
	EstimatedPrice *float64 `json:"estimated_price"`
}

type NotificationCreatedEvent struct {
	UserID         string `json:"user_id"`
	NotificationID string `json:"notification_id"`
	Type           string `json:"type"`
	Title          string `json:"title"`
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	logger.DebugContext(ctx, "publishing event", "subject", subject)
	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// Noop is used when no NATS URL is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, interface{}) error { return nil }
func (Noop) Close() error                                       { return nil }
