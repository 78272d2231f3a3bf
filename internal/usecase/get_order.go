package usecase

import (
	"context"

	"logistics-crm/internal/domain/order"
)

type GetOrder struct {
	orderRepo OrderRepo
}

func NewGetOrder(orderRepo OrderRepo) *GetOrder {
	return &GetOrder{orderRepo: orderRepo}
}

func (uc *GetOrder) Execute(ctx context.Context, id string) (*order.Order, error) {
	return uc.orderRepo.GetByID(ctx, id)
}
