package usecase

import (
	"context"
	"fmt"

	"logistics-crm/internal/domain/lead"
)

type ListLeads struct {
	leadRepo LeadRepo
}

func NewListLeads(leadRepo LeadRepo) *ListLeads {
	return &ListLeads{leadRepo: leadRepo}
}

type ListLeadsParams struct {
	OriginZip   string
	DestZip     string
	VehicleType string
	Operable    *bool
	Limit       int
	Offset      int
}

// Execute lists the caller's own leads with optional filters.
func (uc *ListLeads) Execute(ctx context.Context, userID string, params ListLeadsParams) ([]*lead.Lead, error) {
	if params.VehicleType != "" && !lead.ValidVehicleType(params.VehicleType) {
		return nil, fmt.Errorf("%w: vehicle_type must be sedan, suv or truck", ErrValidation)
	}

	limit, offset := clampPage(params.Limit, params.Offset)

	leads, err := uc.leadRepo.List(ctx, lead.Filter{
		CreatedBy:   userID,
		OriginZip:   params.OriginZip,
		DestZip:     params.DestZip,
		VehicleType: params.VehicleType,
		Operable:    params.Operable,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}

	return leads, nil
}
