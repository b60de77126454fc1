package availability

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/uow"
)

type DeleteAvailability struct {
	repo  domain.Repository
	uow   uow.UnitOfWork
	audit audit.Recorder
	log   *zap.Logger
}

func NewDeleteAvailability(
	repo domain.Repository,
	uow uow.UnitOfWork,
	audit audit.Recorder,
	log *zap.Logger,
) *DeleteAvailability {
	return &DeleteAvailability{
		repo:  repo,
		uow:   uow,
		audit: audit,
		log:   log,
	}
}

// Execute soft-deletes an unbooked slot.
func (uc *DeleteAvailability) Execute(ctx context.Context, id uuid.UUID) error {
	err := uc.uow.Do(ctx, func(ctx context.Context) error {
		av, err := uc.repo.GetAvailabilityByID(ctx, id)
		if err != nil {
			return err
		}
		if err := domain.CanDelete(av); err != nil {
			return err
		}
		return uc.repo.DeleteAvailability(ctx, id)
	})
	if err != nil {
		logFailure(uc.log, "delete availability rejected", err,
			zap.String("availability_id", id.String()),
		)
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   audit.ActionAvailabilityDeleted,
		Entity:   "availability",
		EntityID: &id,
	})

	return nil
}
