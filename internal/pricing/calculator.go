// Package pricing computes transport quotes. Calculate is deterministic:
// no clock, no randomness, no hidden state, so the synchronous quote
// endpoint and the async reprice worker always agree.
package pricing

import (
	"math"
)

const (
	SeasonWinter = "winter"
	SeasonSummer = "summer"
	SeasonNormal = "normal"
)

type Quote struct {
	BasePrice   float64 `json:"base_price"`
	DistanceKm  float64 `json:"distance_km"`
	VehicleType string  `json:"vehicle_type"` // sedan | suv | truck
	Operable    bool    `json:"operable"`
	Season      string  `json:"season"`
}

type Breakdown struct {
	BasePrice          float64 `json:"base_price"`
	DistanceCost       float64 `json:"distance_cost"`
	VehicleTypeBonus   float64 `json:"vehicle_type_bonus"`
	SeasonBonus        float64 `json:"season_bonus"`
	OperableAdjustment float64 `json:"operable_adjustment"`
	FinalPrice         float64 `json:"final_price"`
}

func Calculate(q Quote) Breakdown {
	distanceCost := q.DistanceKm * 1.5

	var vehicleBonus float64
	switch q.VehicleType {
	case "suv":
		vehicleBonus = 200
	case "truck":
		vehicleBonus = 400
	}

	var seasonBonus float64
	switch q.Season {
	case SeasonWinter:
		seasonBonus = 300
	case SeasonSummer:
		seasonBonus = 150
	}

	operableAdj := 200.0
	if q.Operable {
		operableAdj = -100.0
	}

	return Breakdown{
		BasePrice:          Round2(q.BasePrice),
		DistanceCost:       Round2(distanceCost),
		VehicleTypeBonus:   vehicleBonus,
		SeasonBonus:        seasonBonus,
		OperableAdjustment: operableAdj,
		FinalPrice:         Round2(q.BasePrice + distanceCost + vehicleBonus + seasonBonus + operableAdj),
	}
}

// Round2 rounds half-up to two decimal places. Prices are non-negative
// in practice, where half away from zero and half-up coincide.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
