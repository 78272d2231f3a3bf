package usecase

import (
	"context"
	"fmt"

	"logistics-crm/internal/domain/order"
	"logistics-crm/internal/webhook"
)

type UpdateOrder struct {
	orderRepo OrderRepo
	notifier  Notifier
}

func NewUpdateOrder(orderRepo OrderRepo, notifier Notifier) *UpdateOrder {
	return &UpdateOrder{orderRepo: orderRepo, notifier: notifier}
}

// UpdateOrderParams is a partial update: nil fields are left untouched.
type UpdateOrderParams struct {
	Status     *string  `json:"status"`
	BasePrice  *float64 `json:"base_price"`
	FinalPrice *float64 `json:"final_price"`
	Notes      *string  `json:"notes"`
}

// Execute applies the patch and, when the status transitions into quoted
// or booked, fires the outbound webhook. The notification is fire and
// forget; the caller's response never waits on it.
func (uc *UpdateOrder) Execute(ctx context.Context, id string, params UpdateOrderParams) (*order.Order, error) {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Status != nil && !order.ValidStatus(*params.Status) {
		return nil, fmt.Errorf("%w: status must be draft, quoted, booked or delivered", ErrValidation)
	}
	if err := validatePrice(params.BasePrice); err != nil {
		return nil, err
	}
	if err := validatePrice(params.FinalPrice); err != nil {
		return nil, err
	}

	prevStatus := o.Status
	if params.Status != nil {
		o.Status = *params.Status
	}
	if params.BasePrice != nil {
		o.BasePrice = params.BasePrice
	}
	if params.FinalPrice != nil {
		o.FinalPrice = params.FinalPrice
	}
	if params.Notes != nil {
		o.Notes = *params.Notes
	}

	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	if transitioned(prevStatus, o.Status) {
		finalPrice := 0.0
		if o.FinalPrice != nil {
			finalPrice = *o.FinalPrice
		}
		uc.notifier.Notify(webhook.Payload{OrderID: o.ID, FinalPrice: finalPrice})
	}

	return o, nil
}

// transitioned reports whether the update moved the order into a state
// external systems are told about.
func transitioned(prev, next string) bool {
	if prev == next {
		return false
	}
	return next == order.StatusQuoted || next == order.StatusBooked
}
