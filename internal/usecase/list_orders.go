package usecase

import (
	"context"
	"fmt"

	"logistics-crm/internal/domain/order"
)

type ListOrders struct {
	orderRepo OrderRepo
}

func NewListOrders(orderRepo OrderRepo) *ListOrders {
	return &ListOrders{orderRepo: orderRepo}
}

type ListOrdersParams struct {
	LeadID string
	Status string
	Limit  int
	Offset int
}

func (uc *ListOrders) Execute(ctx context.Context, params ListOrdersParams) ([]*order.Order, error) {
	if params.Status != "" && !order.ValidStatus(params.Status) {
		return nil, fmt.Errorf("%w: status must be draft, quoted, booked or delivered", ErrValidation)
	}

	limit, offset := clampPage(params.Limit, params.Offset)

	orders, err := uc.orderRepo.List(ctx, order.Filter{
		LeadID: params.LeadID,
		Status: params.Status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}
