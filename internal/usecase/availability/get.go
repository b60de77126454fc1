package availability

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	id uuid.UUID,
) (*dto.AvailabilitySummary, error) {

	av, err := uc.repo.GetAvailabilityByID(ctx, id)
	if err != nil {
		return nil, err
	}

	out := dto.NewAvailabilitySummary(av)
	return &out, nil
}
