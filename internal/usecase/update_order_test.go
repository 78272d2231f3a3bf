package usecase

import (
	"context"
	"testing"
	"time"

	"logistics-crm/internal/domain/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, repo *fakeOrderRepo, status string, finalPrice *float64) *order.Order {
	t.Helper()

	o := &order.Order{
		ID:         "order-1",
		LeadID:     "lead-1",
		Status:     status,
		FinalPrice: finalPrice,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), o))
	return o
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestUpdateOrder_FiresWebhookOnQuotedTransition(t *testing.T) {
	repo := newFakeOrderRepo()
	notifier := &fakeNotifier{}
	seedOrder(t, repo, order.StatusDraft, nil)

	uc := NewUpdateOrder(repo, notifier)
	got, err := uc.Execute(context.Background(), "order-1", UpdateOrderParams{
		Status:     strPtr(order.StatusQuoted),
		FinalPrice: f64Ptr(2050),
	})
	require.NoError(t, err)
	assert.Equal(t, order.StatusQuoted, got.Status)

	sent := notifier.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "order-1", sent[0].OrderID)
	assert.Equal(t, 2050.0, sent[0].FinalPrice)
}

func TestUpdateOrder_FiresWebhookOnBookedTransition(t *testing.T) {
	repo := newFakeOrderRepo()
	notifier := &fakeNotifier{}
	seedOrder(t, repo, order.StatusQuoted, f64Ptr(1500))

	uc := NewUpdateOrder(repo, notifier)
	_, err := uc.Execute(context.Background(), "order-1", UpdateOrderParams{
		Status: strPtr(order.StatusBooked),
	})
	require.NoError(t, err)

	require.Len(t, notifier.sent(), 1)
	assert.Equal(t, 1500.0, notifier.sent()[0].FinalPrice)
}

func TestUpdateOrder_NoWebhookWithoutTransition(t *testing.T) {
	repo := newFakeOrderRepo()
	notifier := &fakeNotifier{}
	seedOrder(t, repo, order.StatusQuoted, nil)

	uc := NewUpdateOrder(repo, notifier)

	// same status: no transition
	_, err := uc.Execute(context.Background(), "order-1", UpdateOrderParams{
		Status: strPtr(order.StatusQuoted),
	})
	require.NoError(t, err)

	// notes only: no transition
	_, err = uc.Execute(context.Background(), "order-1", UpdateOrderParams{
		Notes: strPtr("call customer"),
	})
	require.NoError(t, err)

	// delivered is not an announced state
	_, err = uc.Execute(context.Background(), "order-1", UpdateOrderParams{
		Status: strPtr(order.StatusDelivered),
	})
	require.NoError(t, err)

	assert.Empty(t, notifier.sent())
}

func TestUpdateOrder_PartialPatchKeepsOtherFields(t *testing.T) {
	repo := newFakeOrderRepo()
	notifier := &fakeNotifier{}
	o := seedOrder(t, repo, order.StatusDraft, nil)
	o.BasePrice = f64Ptr(900)
	require.NoError(t, repo.Update(context.Background(), o))

	uc := NewUpdateOrder(repo, notifier)
	got, err := uc.Execute(context.Background(), "order-1", UpdateOrderParams{
		Notes: strPtr("rush"),
	})
	require.NoError(t, err)

	assert.Equal(t, order.StatusDraft, got.Status)
	require.NotNil(t, got.BasePrice)
	assert.Equal(t, 900.0, *got.BasePrice)
	assert.Equal(t, "rush", got.Notes)
}

func TestUpdateOrder_RejectsUnknownStatus(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(t, repo, order.StatusDraft, nil)

	uc := NewUpdateOrder(repo, &fakeNotifier{})
	_, err := uc.Execute(context.Background(), "order-1", UpdateOrderParams{
		Status: strPtr("shipped"),
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateOrder_MissingOrder(t *testing.T) {
	uc := NewUpdateOrder(newFakeOrderRepo(), &fakeNotifier{})

	_, err := uc.Execute(context.Background(), "nope", UpdateOrderParams{})
	assert.ErrorIs(t, err, ErrNotFound)
}
