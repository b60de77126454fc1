package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apdomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	avdomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func newAppointment(client models.Client, slot models.Availability) *models.Appointment {
	return &models.Appointment{
		ClientID:            client.ID,
		DoctorID:            slot.DoctorID,
		AvailabilityID:      slot.ID,
		AppointmentDateTime: slot.SlotStart,
		Status:              string(apdomain.StatusScheduled),
	}
}

func TestAppointmentGorm_UniqueSlotConflict(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewAppointmentGormRepository(testDB)

	doc := createDoctor(t, "Dr. Grey")
	client := createClient(t, "Ana Souza")
	slot := createSlot(t, doc.ID, slotBase(), 30)

	first := newAppointment(client, slot)
	require.NoError(t, repo.CreateAppointment(ctx, first))

	err := repo.CreateAppointment(ctx, newAppointment(client, slot))
	require.Error(t, err)
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
	assert.True(t, httperr.IsUniqueViolation(err))

	t.Run("soft-deleted appointment frees the slot", func(t *testing.T) {
		require.NoError(t, testDB.Delete(&models.Appointment{}, "id = ?", first.ID).Error)
		assert.NoError(t, repo.CreateAppointment(ctx, newAppointment(client, slot)))
	})
}

func TestAppointmentGorm_DetailAndUpdate(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewAppointmentGormRepository(testDB)

	doc := createDoctor(t, "Dr. House")
	client := createClient(t, "Ana Souza")
	base := slotBase()
	later := createSlot(t, doc.ID, base.Add(time.Hour), 45)
	earlier := createSlot(t, doc.ID, base, 30)

	apLater := newAppointment(client, later)
	require.NoError(t, repo.CreateAppointment(ctx, apLater))
	apEarlier := newAppointment(client, earlier)
	require.NoError(t, repo.CreateAppointment(ctx, apEarlier))

	detail, err := repo.GetAppointmentDetail(ctx, apLater.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. House", detail.Doctor.User.Name)
	assert.Equal(t, "Ana Souza", detail.Client.User.Name)
	assert.Equal(t, 45, detail.Availability.DurationMinutes)

	byClient, err := repo.ListDetailsByClient(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, byClient, 2)
	assert.Equal(t, apEarlier.ID, byClient[0].ID)

	byDoctor, err := repo.ListDetailsByDoctor(ctx, doc.ID)
	require.NoError(t, err)
	assert.Len(t, byDoctor, 2)

	notes := "bring exams"
	updatedAt := time.Now().UTC().Truncate(time.Second)
	apLater.Notes = &notes
	apLater.Status = string(apdomain.StatusCompleted)
	apLater.UpdatedAt = updatedAt
	require.NoError(t, repo.UpdateAppointment(ctx, apLater))

	stored, err := repo.GetAppointmentByID(ctx, apLater.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Notes)
	assert.Equal(t, "bring exams", *stored.Notes)
	assert.Equal(t, "Completed", stored.Status)
	assert.True(t, updatedAt.Equal(stored.UpdatedAt))

	assert.ErrorIs(t, repo.UpdateAppointment(ctx, &models.Appointment{ID: uuid.New()}), apdomain.ErrNotFound)
	_, err = repo.GetAppointmentDetail(ctx, uuid.New())
	assert.ErrorIs(t, err, apdomain.ErrNotFound)
}

func TestGormUnitOfWork_RollsBack(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	uow := NewGormUnitOfWork(testDB)
	appointments := NewAppointmentGormRepository(testDB)

	doc := createDoctor(t, "Dr. Grey")
	client := createClient(t, "Ana Souza")
	slot := createSlot(t, doc.ID, slotBase(), 30)

	boom := errors.New("boom")
	ap := newAppointment(client, slot)
	err := uow.Do(ctx, func(ctx context.Context) error {
		if err := appointments.CreateAppointment(ctx, ap); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = appointments.GetAppointmentByID(ctx, ap.ID)
	assert.ErrorIs(t, err, apdomain.ErrNotFound)
}

// Bookings race through the same steps as the booking use case; Postgres
// must let exactly one commit.
func TestGorm_ConcurrentBookingHasOneWinner(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	uow := NewGormUnitOfWork(testDB)
	slots := NewAvailabilityGormRepository(testDB)
	appointments := NewAppointmentGormRepository(testDB)

	doc := createDoctor(t, "Dr. Grey")
	client := createClient(t, "Ana Souza")
	slot := createSlot(t, doc.ID, slotBase(), 30)

	const attempts = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	start := make(chan struct{})

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			err := uow.Do(ctx, func(ctx context.Context) error {
				av, err := slots.GetAvailabilityByID(ctx, slot.ID)
				if err != nil {
					return err
				}
				now := time.Now()
				if err := avdomain.CanBook(av, now); err != nil {
					return err
				}
				if err := appointments.CreateAppointment(ctx, newAppointment(client, *av)); err != nil {
					return err
				}
				if err := avdomain.Book(av, now); err != nil {
					return err
				}
				return slots.MarkBooked(ctx, av)
			})

			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}

	close(start)
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		kind := httperr.KindOf(err)
		assert.Contains(t, []httperr.Kind{httperr.KindConflict, httperr.KindInvalidState}, kind, err.Error())
	}
	assert.Equal(t, 1, winners)

	var live int64
	require.NoError(t, testDB.Model(&models.Appointment{}).
		Where("availability_id = ?", slot.ID).
		Count(&live).Error)
	assert.Equal(t, int64(1), live)

	stored, err := slots.GetAvailabilityByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsBooked)
	assert.Equal(t, 2, stored.Version)
}
