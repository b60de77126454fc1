package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Client / Doctor --------
	GetClientByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	GetDoctorByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error)

	// -------- Appointment (create / update) --------
	// CreateAppointment returns ErrSlotTaken when the availability already
	// has a non-deleted appointment.
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointmentByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// -------- Appointment (detail projection) --------
	// Detail reads preload Doctor.User, Client.User and Availability.
	GetAppointmentDetail(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	ListDetailsByClient(ctx context.Context, clientID uuid.UUID) ([]models.Appointment, error)
	ListDetailsByDoctor(ctx context.Context, doctorID uuid.UUID) ([]models.Appointment, error)
}
