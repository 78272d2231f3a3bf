package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"logistics-crm/internal/domain/order"

	"github.com/google/uuid"
)

type CreateOrder struct {
	orderRepo OrderRepo
	leadRepo  LeadRepo
	tx        Transactor
}

func NewCreateOrder(orderRepo OrderRepo, leadRepo LeadRepo, tx Transactor) *CreateOrder {
	return &CreateOrder{orderRepo: orderRepo, leadRepo: leadRepo, tx: tx}
}

type CreateOrderParams struct {
	LeadID     string   `json:"lead_id"`
	Status     string   `json:"status"`
	BasePrice  *float64 `json:"base_price"`
	FinalPrice *float64 `json:"final_price"`
	Notes      string   `json:"notes"`
}

func (uc *CreateOrder) Execute(ctx context.Context, params CreateOrderParams) (*order.Order, error) {
	if params.LeadID == "" {
		return nil, fmt.Errorf("%w: lead_id is required", ErrValidation)
	}

	status := params.Status
	if status == "" {
		status = order.StatusDraft
	}
	if !order.ValidStatus(status) {
		return nil, fmt.Errorf("%w: status must be draft, quoted, booked or delivered", ErrValidation)
	}
	if err := validatePrice(params.BasePrice); err != nil {
		return nil, err
	}
	if err := validatePrice(params.FinalPrice); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o := &order.Order{
		ID:         uuid.New().String(),
		LeadID:     params.LeadID,
		Status:     status,
		BasePrice:  params.BasePrice,
		FinalPrice: params.FinalPrice,
		Notes:      params.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// The lead check and the insert run in one transaction so the lead
	// cannot disappear between them.
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := uc.leadRepo.GetByID(ctx, params.LeadID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return fmt.Errorf("%w: lead %s", ErrNotFound, params.LeadID)
			}
			return fmt.Errorf("check lead: %w", err)
		}

		if err := uc.orderRepo.Create(ctx, o); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return o, nil
}

func validatePrice(p *float64) error {
	if p != nil && *p < 0 {
		return fmt.Errorf("%w: prices must not be negative", ErrValidation)
	}
	return nil
}
