package availability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/uow"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAvailabilityInput struct {
	DoctorID        uuid.UUID
	SlotDateTime    time.Time
	DurationMinutes int
}

// ======================================================
// USE CASE
// ======================================================

type CreateAvailability struct {
	repo  domain.Repository
	uow   uow.UnitOfWork
	clock timezone.Clock
	audit audit.Recorder
	log   *zap.Logger
}

func NewCreateAvailability(
	repo domain.Repository,
	uow uow.UnitOfWork,
	clock timezone.Clock,
	audit audit.Recorder,
	log *zap.Logger,
) *CreateAvailability {
	return &CreateAvailability{
		repo:  repo,
		uow:   uow,
		clock: clock,
		audit: audit,
		log:   log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAvailability) Execute(
	ctx context.Context,
	in CreateAvailabilityInput,
) (*dto.AvailabilitySummary, error) {

	if in.DoctorID == uuid.Nil {
		return nil, domain.ErrInvalidDoctorID
	}
	if !domain.ValidDuration(in.DurationMinutes) {
		return nil, domain.ErrInvalidDuration
	}

	var av *models.Availability

	err := uc.uow.Do(ctx, func(ctx context.Context) error {
		// --------------------------------------------------
		// Doctor (row lock serializes slot creation)
		// --------------------------------------------------
		doctor, err := uc.repo.LockDoctor(ctx, in.DoctorID)
		if err != nil {
			return err
		}

		start := timezone.TruncateToMinute(in.SlotDateTime)
		end := domain.SlotEnd(start, in.DurationMinutes)

		if start.Before(uc.clock.Now()) {
			return domain.ErrSlotInPast
		}

		// --------------------------------------------------
		// Overlap
		// --------------------------------------------------
		overlaps, err := uc.repo.HasOverlap(ctx, in.DoctorID, start, end)
		if err != nil {
			return err
		}
		if overlaps {
			return domain.ErrSlotOverlaps
		}

		av = &models.Availability{
			DoctorID:        in.DoctorID,
			SlotStart:       start,
			DurationMinutes: in.DurationMinutes,
			IsBooked:        false,
		}
		if err := uc.repo.CreateAvailability(ctx, av); err != nil {
			return err
		}

		av.Doctor = *doctor
		return nil
	})
	if err != nil {
		logFailure(uc.log, "create availability rejected", err,
			zap.String("doctor_id", in.DoctorID.String()),
		)
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   audit.ActionAvailabilityCreated,
		Entity:   "availability",
		EntityID: &av.ID,
		Metadata: map[string]any{
			"doctor_id":        av.DoctorID,
			"slot_start":       av.SlotStart,
			"duration_minutes": av.DurationMinutes,
		},
	})

	uc.log.Info("availability created",
		zap.String("availability_id", av.ID.String()),
		zap.String("doctor_id", av.DoctorID.String()),
	)

	out := dto.NewAvailabilitySummary(av)
	return &out, nil
}
