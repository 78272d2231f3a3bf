package usecase

import (
	"context"
	"testing"
	"time"

	"logistics-crm/internal/domain/lead"
	"logistics-crm/internal/domain/order"
	"logistics-crm/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repriceFixture(t *testing.T) (*fakeOrderRepo, *fakeLeadRepo) {
	t.Helper()

	leadRepo := newFakeLeadRepo()
	require.NoError(t, leadRepo.Create(context.Background(), &lead.Lead{
		ID:          "lead-1",
		Name:        "A",
		VehicleType: lead.VehicleTruck,
		Operable:    false,
		CreatedBy:   "u1",
	}))

	orderRepo := newFakeOrderRepo()
	base := 1000.0
	require.NoError(t, orderRepo.Create(context.Background(), &order.Order{
		ID:        "order-1",
		LeadID:    "lead-1",
		Status:    order.StatusDraft,
		BasePrice: &base,
		CreatedAt: time.Now().UTC(),
	}))

	return orderRepo, leadRepo
}

func TestRepriceOrder_EnqueuesSnapshotOfPricingInputs(t *testing.T) {
	orderRepo, leadRepo := repriceFixture(t)
	enq := &fakeEnqueuer{taskID: "task-42"}

	uc := NewRepriceOrder(orderRepo, leadRepo, enq)
	taskID, err := uc.Execute(context.Background(), "order-1", RepriceOrderParams{
		DistanceKm: 100,
		Season:     pricing.SeasonWinter,
	})
	require.NoError(t, err)
	assert.Equal(t, "task-42", taskID)
	assert.Equal(t, "order-1", enq.orderID)

	quote, ok := enq.data.(pricing.Quote)
	require.True(t, ok)
	assert.Equal(t, pricing.Quote{
		BasePrice:   1000,
		DistanceKm:  100,
		VehicleType: lead.VehicleTruck,
		Operable:    false,
		Season:      pricing.SeasonWinter,
	}, quote)
}

func TestRepriceOrder_DefaultsSeasonToNormal(t *testing.T) {
	orderRepo, leadRepo := repriceFixture(t)
	enq := &fakeEnqueuer{}

	uc := NewRepriceOrder(orderRepo, leadRepo, enq)
	_, err := uc.Execute(context.Background(), "order-1", RepriceOrderParams{DistanceKm: 10})
	require.NoError(t, err)

	assert.Equal(t, pricing.SeasonNormal, enq.data.(pricing.Quote).Season)
}

func TestRepriceOrder_MissingOrder(t *testing.T) {
	_, leadRepo := repriceFixture(t)

	uc := NewRepriceOrder(newFakeOrderRepo(), leadRepo, &fakeEnqueuer{})
	_, err := uc.Execute(context.Background(), "nope", RepriceOrderParams{})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepriceOrder_RejectsNegativeDistance(t *testing.T) {
	orderRepo, leadRepo := repriceFixture(t)

	uc := NewRepriceOrder(orderRepo, leadRepo, &fakeEnqueuer{})
	_, err := uc.Execute(context.Background(), "order-1", RepriceOrderParams{DistanceKm: -1})

	assert.ErrorIs(t, err, ErrValidation)
}
