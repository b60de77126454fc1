package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	id uuid.UUID,
) (*dto.AppointmentDetail, error) {

	ap, err := uc.repo.GetAppointmentDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	out := dto.NewAppointmentDetail(ap)
	return &out, nil
}
