package usecase

import (
	"fmt"

	"logistics-crm/internal/domain/lead"
	"logistics-crm/internal/pricing"
)

// QuotePrice runs the deterministic price calculator for the synchronous
// quote endpoint. The async worker invokes the very same function.
type QuotePrice struct{}

func NewQuotePrice() *QuotePrice {
	return &QuotePrice{}
}

func (uc *QuotePrice) Execute(q pricing.Quote) (pricing.Breakdown, error) {
	if q.BasePrice < 0 {
		return pricing.Breakdown{}, fmt.Errorf("%w: base_price must not be negative", ErrValidation)
	}
	if q.DistanceKm < 0 {
		return pricing.Breakdown{}, fmt.Errorf("%w: distance_km must not be negative", ErrValidation)
	}
	if !lead.ValidVehicleType(q.VehicleType) {
		return pricing.Breakdown{}, fmt.Errorf("%w: vehicle_type must be sedan, suv or truck", ErrValidation)
	}

	return pricing.Calculate(q), nil
}
