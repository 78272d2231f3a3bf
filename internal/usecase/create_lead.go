package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"logistics-crm/internal/domain/lead"

	"github.com/google/uuid"
)

type CreateLead struct {
	leadRepo LeadRepo
}

func NewCreateLead(leadRepo LeadRepo) *CreateLead {
	return &CreateLead{leadRepo: leadRepo}
}

type CreateLeadParams struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	OriginZip   string `json:"origin_zip"`
	DestZip     string `json:"dest_zip"`
	VehicleType string `json:"vehicle_type"`
	Operable    *bool  `json:"operable"`
}

func (p CreateLeadParams) validate() error {
	switch {
	case p.Name == "" || len(p.Name) > 128:
		return fmt.Errorf("%w: name is required and at most 128 chars", ErrValidation)
	case p.Phone == "" || len(p.Phone) > 15:
		return fmt.Errorf("%w: phone is required and at most 15 chars", ErrValidation)
	case p.Email == "" || len(p.Email) > 254 || !strings.Contains(p.Email, "@"):
		return fmt.Errorf("%w: a valid email is required", ErrValidation)
	case p.OriginZip == "" || len(p.OriginZip) > 20:
		return fmt.Errorf("%w: origin_zip is required and at most 20 chars", ErrValidation)
	case p.DestZip == "" || len(p.DestZip) > 20:
		return fmt.Errorf("%w: dest_zip is required and at most 20 chars", ErrValidation)
	case !lead.ValidVehicleType(p.VehicleType):
		return fmt.Errorf("%w: vehicle_type must be sedan, suv or truck", ErrValidation)
	}
	return nil
}

func (uc *CreateLead) Execute(ctx context.Context, params CreateLeadParams, userID string) (*lead.Lead, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	operable := true
	if params.Operable != nil {
		operable = *params.Operable
	}

	now := time.Now().UTC()
	l := &lead.Lead{
		ID:          uuid.New().String(),
		Name:        params.Name,
		Phone:       params.Phone,
		Email:       params.Email,
		OriginZip:   params.OriginZip,
		DestZip:     params.DestZip,
		VehicleType: params.VehicleType,
		Operable:    operable,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.leadRepo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}

	return l, nil
}
