package appointment

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/uow"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// UpdateAppointmentInput leaves a field unchanged when it is nil.
type UpdateAppointmentInput struct {
	ID     uuid.UUID
	Notes  *string
	Status *string
}

type UpdateAppointment struct {
	repo  domain.Repository
	uow   uow.UnitOfWork
	clock timezone.Clock
	audit audit.Recorder
	log   *zap.Logger
}

func NewUpdateAppointment(
	repo domain.Repository,
	uow uow.UnitOfWork,
	clock timezone.Clock,
	audit audit.Recorder,
	log *zap.Logger,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		uow:   uow,
		clock: clock,
		audit: audit,
		log:   log,
	}
}

func (uc *UpdateAppointment) Execute(ctx context.Context, in UpdateAppointmentInput) error {
	var status *domain.Status
	if in.Status != nil {
		s, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return err
		}
		status = &s
	}

	var previous string

	err := uc.uow.Do(ctx, func(ctx context.Context) error {
		ap, err := uc.repo.GetAppointmentByID(ctx, in.ID)
		if err != nil {
			return err
		}

		previous = ap.Status
		if err := domain.ApplyUpdate(ap, in.Notes, status, uc.clock.Now()); err != nil {
			return err
		}

		return uc.repo.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		logFailure(uc.log, "update appointment rejected", err,
			zap.String("appointment_id", in.ID.String()),
		)
		return err
	}

	meta := map[string]any{"notes_changed": in.Notes != nil}
	if status != nil {
		meta["from"] = previous
		meta["to"] = status.String()
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   audit.ActionAppointmentUpdated,
		Entity:   "appointment",
		EntityID: &in.ID,
		Metadata: meta,
	})

	return nil
}
