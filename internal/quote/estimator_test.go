package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name     string
		itemType string
		weightKG float64
		want     float64
	}{
		{"standard 10kg", "documents", 10, 2000 + 10*500},
		{"fragile 10kg", "fragile", 10, 2000*1.5 + 10*500},
		{"fragile is case-insensitive", "Fragile", 2, 2000*1.5 + 2*500},
		{"zero weight counts as one kg", "documents", 0, 2000 + 500},
		{"negative weight counts as one kg", "fragile", -3, 2000*1.5 + 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Estimate(tt.itemType, tt.weightKG))
		})
	}
}
