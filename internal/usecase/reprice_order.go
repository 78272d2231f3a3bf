package usecase

import (
	"context"
	"fmt"

	"logistics-crm/internal/pricing"
)

type RepriceOrder struct {
	orderRepo OrderRepo
	leadRepo  LeadRepo
	enqueuer  Enqueuer
}

func NewRepriceOrder(orderRepo OrderRepo, leadRepo LeadRepo, enqueuer Enqueuer) *RepriceOrder {
	return &RepriceOrder{orderRepo: orderRepo, leadRepo: leadRepo, enqueuer: enqueuer}
}

type RepriceOrderParams struct {
	DistanceKm float64 `json:"distance_km"`
	Season     string  `json:"season"`
}

// Execute snapshots the order's pricing inputs into a task message and
// enqueues it. The caller gets the task id back immediately; the recompute
// happens in the worker process.
func (uc *RepriceOrder) Execute(ctx context.Context, orderID string, params RepriceOrderParams) (string, error) {
	if params.DistanceKm < 0 {
		return "", fmt.Errorf("%w: distance_km must not be negative", ErrValidation)
	}

	o, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}

	l, err := uc.leadRepo.GetByID(ctx, o.LeadID)
	if err != nil {
		return "", fmt.Errorf("load lead for order %s: %w", orderID, err)
	}

	basePrice := 0.0
	if o.BasePrice != nil {
		basePrice = *o.BasePrice
	}
	season := params.Season
	if season == "" {
		season = pricing.SeasonNormal
	}

	quote := pricing.Quote{
		BasePrice:   basePrice,
		DistanceKm:  params.DistanceKm,
		VehicleType: l.VehicleType,
		Operable:    l.Operable,
		Season:      season,
	}

	taskID, err := uc.enqueuer.Enqueue(ctx, orderID, quote)
	if err != nil {
		return "", fmt.Errorf("enqueue reprice: %w", err)
	}

	return taskID, nil
}
