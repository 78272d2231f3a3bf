package usecase

import (
	"context"
)

type DeleteOrder struct {
	orderRepo OrderRepo
}

func NewDeleteOrder(orderRepo OrderRepo) *DeleteOrder {
	return &DeleteOrder{orderRepo: orderRepo}
}

func (uc *DeleteOrder) Execute(ctx context.Context, id string) error {
	return uc.orderRepo.Delete(ctx, id)
}
