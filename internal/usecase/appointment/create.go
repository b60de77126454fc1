package appointment

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/uow"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID       uuid.UUID
	AvailabilityID uuid.UUID
	Notes          *string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	slots  availability.Repository
	uow    uow.UnitOfWork
	locker availability.SlotLocker
	clock  timezone.Clock
	audit  audit.Recorder
	log    *zap.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	slots availability.Repository,
	uow uow.UnitOfWork,
	locker availability.SlotLocker,
	clock timezone.Clock,
	audit audit.Recorder,
	log *zap.Logger,
) *CreateAppointment {
	if locker == nil {
		locker = availability.NoopLocker{}
	}
	return &CreateAppointment{
		repo:   repo,
		slots:  slots,
		uow:    uow,
		locker: locker,
		clock:  clock,
		audit:  audit,
		log:    log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute books the client onto the availability. The appointment insert and
// the slot flip commit together; a concurrent booking of the same slot fails
// with a Conflict or InvalidState error.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*dto.AppointmentDetail, error) {

	if in.ClientID == uuid.Nil {
		return nil, domain.ErrInvalidClientID
	}
	if in.AvailabilityID == uuid.Nil {
		return nil, domain.ErrInvalidAvailableID
	}
	if err := domain.ValidateNotes(in.Notes); err != nil {
		return nil, err
	}

	var ap *models.Appointment

	err := uc.locker.WithSlotLock(ctx, in.AvailabilityID, func(ctx context.Context) error {
		return uc.uow.Do(ctx, func(ctx context.Context) error {
			// --------------------------------------------------
			// 1. Slot
			// --------------------------------------------------
			av, err := uc.slots.GetAvailabilityByID(ctx, in.AvailabilityID)
			if err != nil {
				return err
			}

			now := uc.clock.Now()
			if err := availability.CanBook(av, now); err != nil {
				return err
			}

			// --------------------------------------------------
			// 2. Client / Doctor
			// --------------------------------------------------
			client, err := uc.repo.GetClientByID(ctx, in.ClientID)
			if err != nil {
				return err
			}

			doctor, err := uc.repo.GetDoctorByID(ctx, av.DoctorID)
			if err != nil {
				return err
			}

			// --------------------------------------------------
			// 3. Appointment + slot flip
			// --------------------------------------------------
			ap = &models.Appointment{
				ClientID:            client.ID,
				DoctorID:            doctor.ID,
				AvailabilityID:      av.ID,
				AppointmentDateTime: av.SlotStart,
				Status:              string(domain.InitialStatus()),
				Notes:               in.Notes,
			}
			if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
				return err
			}

			if err := availability.Book(av, now); err != nil {
				return err
			}
			if err := uc.slots.MarkBooked(ctx, av); err != nil {
				return err
			}

			ap.Client = *client
			ap.Doctor = *doctor
			ap.Availability = *av
			return nil
		})
	})
	if err != nil {
		fields := []zap.Field{
			zap.String("availability_id", in.AvailabilityID.String()),
			zap.String("client_id", in.ClientID.String()),
		}
		if httperr.KindOf(err) == httperr.KindConflict {
			uc.audit.Dispatch(audit.Event{
				UserID:   audit.ActorFrom(ctx),
				Action:   audit.ActionAppointmentConflict,
				Entity:   "availability",
				EntityID: &in.AvailabilityID,
				Metadata: map[string]any{"client_id": in.ClientID},
			})
		}
		logFailure(uc.log, "create appointment rejected", err, fields...)
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"availability_id": ap.AvailabilityID,
			"client_id":       ap.ClientID,
			"doctor_id":       ap.DoctorID,
		},
	})

	uc.log.Info("appointment created",
		zap.String("appointment_id", ap.ID.String()),
		zap.String("availability_id", ap.AvailabilityID.String()),
	)

	// Already committed: fall back to the rows loaded in the transaction.
	detail, err := uc.repo.GetAppointmentDetail(ctx, ap.ID)
	if err != nil {
		uc.log.Warn("appointment detail read failed, using loaded rows",
			zap.String("appointment_id", ap.ID.String()),
			zap.Error(err),
		)
		detail = ap
	}

	out := dto.NewAppointmentDetail(detail)
	return &out, nil
}
