package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
)

// ======================================================
// BY CLIENT
// ======================================================

type ListAppointmentsByClient struct {
	repo domain.Repository
}

func NewListAppointmentsByClient(repo domain.Repository) *ListAppointmentsByClient {
	return &ListAppointmentsByClient{repo: repo}
}

// Execute returns every appointment of the client, any status, oldest first.
func (uc *ListAppointmentsByClient) Execute(
	ctx context.Context,
	clientID uuid.UUID,
) ([]dto.AppointmentDetail, error) {

	if _, err := uc.repo.GetClientByID(ctx, clientID); err != nil {
		return nil, err
	}

	list, err := uc.repo.ListDetailsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentDetails(list), nil
}

// ======================================================
// BY DOCTOR
// ======================================================

type ListAppointmentsByDoctor struct {
	repo domain.Repository
}

func NewListAppointmentsByDoctor(repo domain.Repository) *ListAppointmentsByDoctor {
	return &ListAppointmentsByDoctor{repo: repo}
}

func (uc *ListAppointmentsByDoctor) Execute(
	ctx context.Context,
	doctorID uuid.UUID,
) ([]dto.AppointmentDetail, error) {

	if _, err := uc.repo.GetDoctorByID(ctx, doctorID); err != nil {
		return nil, err
	}

	list, err := uc.repo.ListDetailsByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentDetails(list), nil
}
