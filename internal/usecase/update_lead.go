package usecase

import (
	"context"
	"fmt"

	"logistics-crm/internal/domain/lead"
)

type UpdateLead struct {
	leadRepo LeadRepo
}

func NewUpdateLead(leadRepo LeadRepo) *UpdateLead {
	return &UpdateLead{leadRepo: leadRepo}
}

// UpdateLeadParams is a partial update: nil fields are left untouched.
type UpdateLeadParams struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	OriginZip   *string `json:"origin_zip"`
	DestZip     *string `json:"dest_zip"`
	VehicleType *string `json:"vehicle_type"`
	Operable    *bool   `json:"operable"`
}

func (uc *UpdateLead) Execute(ctx context.Context, id string, params UpdateLeadParams) (*lead.Lead, error) {
	l, err := uc.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.VehicleType != nil && !lead.ValidVehicleType(*params.VehicleType) {
		return nil, fmt.Errorf("%w: vehicle_type must be sedan, suv or truck", ErrValidation)
	}

	if params.Name != nil {
		l.Name = *params.Name
	}
	if params.Phone != nil {
		l.Phone = *params.Phone
	}
	if params.Email != nil {
		l.Email = *params.Email
	}
	if params.OriginZip != nil {
		l.OriginZip = *params.OriginZip
	}
	if params.DestZip != nil {
		l.DestZip = *params.DestZip
	}
	if params.VehicleType != nil {
		l.VehicleType = *params.VehicleType
	}
	if params.Operable != nil {
		l.Operable = *params.Operable
	}

	if err := uc.leadRepo.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("update lead: %w", err)
	}

	return l, nil
}
