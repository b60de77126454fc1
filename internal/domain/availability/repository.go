package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Doctor --------
	// LockDoctor loads the doctor and, inside a transaction, serializes
	// slot creation for that doctor.
	LockDoctor(ctx context.Context, doctorID uuid.UUID) (*models.Doctor, error)
	GetDoctorByID(ctx context.Context, doctorID uuid.UUID) (*models.Doctor, error)

	// -------- Availability --------
	CreateAvailability(ctx context.Context, av *models.Availability) error
	GetAvailabilityByID(ctx context.Context, id uuid.UUID) (*models.Availability, error)
	ListAvailabilitiesByDoctor(ctx context.Context, doctorID uuid.UUID) ([]models.Availability, error)
	DeleteAvailability(ctx context.Context, id uuid.UUID) error

	// HasOverlap reports whether a non-deleted slot of the doctor intersects [start, end).
	HasOverlap(ctx context.Context, doctorID uuid.UUID, start, end time.Time) (bool, error)

	// MarkBooked persists IsBooked=true only if av.Version still matches the
	// stored row; otherwise it returns ErrBookingConflict.
	MarkBooked(ctx context.Context, av *models.Availability) error
}

// SlotLocker guards the booking critical section of one availability across
// service instances.
type SlotLocker interface {
	WithSlotLock(ctx context.Context, availabilityID uuid.UUID, fn func(ctx context.Context) error) error
}

type NoopLocker struct{}

func (NoopLocker) WithSlotLock(ctx context.Context, _ uuid.UUID, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
