package usecase

import (
	"context"
)

type DeleteLead struct {
	leadRepo LeadRepo
}

func NewDeleteLead(leadRepo LeadRepo) *DeleteLead {
	return &DeleteLead{leadRepo: leadRepo}
}

func (uc *DeleteLead) Execute(ctx context.Context, id string) error {
	return uc.leadRepo.Delete(ctx, id)
}
