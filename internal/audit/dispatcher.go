package audit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ActionAvailabilityCreated = "availability_created"
	ActionAvailabilityDeleted = "availability_deleted"
	ActionAppointmentCreated  = "appointment_created"
	ActionAppointmentUpdated  = "appointment_updated"
	ActionAppointmentConflict = "appointment_conflict"
)

type Event struct {
	UserID   *uuid.UUID
	Action   string
	Entity   string
	EntityID *uuid.UUID
	Metadata any
}

// Recorder accepts audit events without blocking the caller.
type Recorder interface {
	Dispatch(ev Event)
}

// Store persists one audit event.
type Store interface {
	Log(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	store Store
	log   *zap.Logger
	queue chan Event
	done  chan struct{}
}

func NewDispatcher(store Store, log *zap.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}

	d := &Dispatcher{
		store: store,
		log:   log,
		queue: make(chan Event, size),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.store.Log(context.Background(), ev); err != nil {
			d.log.Error("audit store failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
	}
}

// Dispatch drops the event when the queue is full; auditing never fails a request.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains pending events. Dispatch must not be called afterwards.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}

type Discard struct{}

func (Discard) Dispatch(Event) {}

type actorKey struct{}

func WithActor(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

func ActorFrom(ctx context.Context) *uuid.UUID {
	if id, ok := ctx.Value(actorKey{}).(uuid.UUID); ok {
		return &id
	}
	return nil
}
