package availability

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
)

type ListAvailabilitiesByDoctor struct {
	repo domain.Repository
}

func NewListAvailabilitiesByDoctor(repo domain.Repository) *ListAvailabilitiesByDoctor {
	return &ListAvailabilitiesByDoctor{repo: repo}
}

// Execute returns the doctor's slots ordered by start time.
func (uc *ListAvailabilitiesByDoctor) Execute(
	ctx context.Context,
	doctorID uuid.UUID,
) ([]dto.AvailabilitySummary, error) {

	if _, err := uc.repo.GetDoctorByID(ctx, doctorID); err != nil {
		return nil, err
	}

	list, err := uc.repo.ListAvailabilitiesByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	return dto.NewAvailabilitySummaries(list), nil
}
