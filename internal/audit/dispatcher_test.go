package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memStore struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (m *memStore) Log(_ context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("db down")
	}
	m.events = append(m.events, ev)
	return nil
}

type blockingStore struct {
	release chan struct{}
}

func (b *blockingStore) Log(context.Context, Event) error {
	<-b.release
	return nil
}

func TestDispatcher_PersistsEvents(t *testing.T) {
	store := &memStore{}
	d := NewDispatcher(store, zap.NewNop(), 10)

	id := uuid.New()
	d.Dispatch(Event{Action: ActionAppointmentCreated, Entity: "appointment", EntityID: &id})
	d.Dispatch(Event{Action: ActionAppointmentUpdated, Entity: "appointment", EntityID: &id})
	d.Close()

	require.Len(t, store.events, 2)
	assert.Equal(t, ActionAppointmentCreated, store.events[0].Action)
	assert.Equal(t, ActionAppointmentUpdated, store.events[1].Action)
}

func TestDispatcher_StoreErrorsAreSwallowed(t *testing.T) {
	store := &memStore{fail: true}
	d := NewDispatcher(store, zap.NewNop(), 1)

	d.Dispatch(Event{Action: ActionAvailabilityCreated})
	d.Close()

	assert.Empty(t, store.events)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	store := &blockingStore{release: make(chan struct{})}
	d := NewDispatcher(store, zap.NewNop(), 1)

	// The worker may hold one event and the queue one more; the rest must not block.
	for i := 0; i < 10; i++ {
		d.Dispatch(Event{Action: ActionAvailabilityCreated})
	}

	close(store.release)
	d.Close()
}

func TestActorContext(t *testing.T) {
	assert.Nil(t, ActorFrom(context.Background()))

	id := uuid.New()
	got := ActorFrom(WithActor(context.Background(), id))
	require.NotNil(t, got)
	assert.Equal(t, id, *got)
}
