package domain

import "time"

type QuoteStatus string

const (
	QuotePending  QuoteStatus = "pending"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteRejected QuoteStatus = "rejected"
)

func ParseQuoteStatus(s string) (QuoteStatus, bool) {
	switch QuoteStatus(s) {
	case QuotePending, QuoteAccepted, QuoteRejected:
		return QuoteStatus(s), true
	default:
		return "", false
	}
}

// Quote is a price enquiry owned by one user. EstimatedPrice is nil until
// an estimate has been computed or supplied.
type Quote struct {
	ID             string            `json:"id"`
	Pickup         string            `json:"pickup"`
	Delivery       string            `json:"delivery"`
	ItemType       string            `json:"item_type"`
	WeightKG       float64           `json:"weight_kg"`
	EstimatedPrice *float64          `json:"estimated_price"`
	Status         QuoteStatus       `json:"status"`
	Extra          map[string]string `json:"extra,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

type QuoteRequest struct {
	Pickup         string            `json:"pickup"`
	Delivery       string            `json:"delivery"`
	ItemType       string            `json:"item_type"`
	WeightKG       float64           `json:"weight_kg"`
	EstimatedPrice *float64          `json:"estimated_price,omitempty"`
	Extra          map[string]string `json:"extra,omitempty"`
}
