package usecase

import (
	"context"

	"logistics-crm/internal/domain/lead"
)

type GetLead struct {
	leadRepo LeadRepo
}

func NewGetLead(leadRepo LeadRepo) *GetLead {
	return &GetLead{leadRepo: leadRepo}
}

func (uc *GetLead) Execute(ctx context.Context, id string) (*lead.Lead, error) {
	return uc.leadRepo.GetByID(ctx, id)
}
