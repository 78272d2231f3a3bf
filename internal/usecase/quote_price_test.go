package usecase

import (
	"testing"

	"logistics-crm/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotePrice_ComputesBreakdown(t *testing.T) {
	uc := NewQuotePrice()

	b, err := uc.Execute(pricing.Quote{
		BasePrice:   1000,
		DistanceKm:  100,
		VehicleType: "truck",
		Operable:    false,
		Season:      "winter",
	})
	require.NoError(t, err)
	assert.Equal(t, 2050.0, b.FinalPrice)
}

func TestQuotePrice_Validation(t *testing.T) {
	uc := NewQuotePrice()

	tests := []struct {
		name string
		q    pricing.Quote
	}{
		{"negative base price", pricing.Quote{BasePrice: -1, DistanceKm: 10, VehicleType: "sedan"}},
		{"negative distance", pricing.Quote{BasePrice: 100, DistanceKm: -1, VehicleType: "sedan"}},
		{"unknown vehicle type", pricing.Quote{BasePrice: 100, DistanceKm: 10, VehicleType: "hovercraft"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(tt.q)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
