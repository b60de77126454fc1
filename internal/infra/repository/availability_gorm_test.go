package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func TestAvailabilityGorm_HasOverlap(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewAvailabilityGormRepository(testDB)

	doc := createDoctor(t, "Dr. Grey")
	other := createDoctor(t, "Dr. Shepherd")
	base := slotBase()
	slot := createSlot(t, doc.ID, base, 30)

	at := func(minutes int) time.Time {
		return base.Add(time.Duration(minutes) * time.Minute)
	}

	cases := []struct {
		name       string
		doctorID   uuid.UUID
		start, end time.Time
		want       bool
	}{
		{"identical", doc.ID, at(0), at(30), true},
		{"starts inside", doc.ID, at(15), at(45), true},
		{"ends inside", doc.ID, at(-15), at(15), true},
		{"covers", doc.ID, at(-60), at(60), true},
		{"touching after", doc.ID, at(30), at(60), false},
		{"touching before", doc.ID, at(-30), at(0), false},
		{"other doctor", other.ID, at(0), at(30), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.HasOverlap(ctx, tc.doctorID, tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("soft-deleted slots are ignored", func(t *testing.T) {
		require.NoError(t, repo.DeleteAvailability(ctx, slot.ID))

		got, err := repo.HasOverlap(ctx, doc.ID, at(0), at(30))
		require.NoError(t, err)
		assert.False(t, got)
	})
}

func TestAvailabilityGorm_GetAndList(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewAvailabilityGormRepository(testDB)

	doc := createDoctor(t, "Dr. Grey")
	base := slotBase()
	late := createSlot(t, doc.ID, base.Add(2*time.Hour), 30)
	early := createSlot(t, doc.ID, base, 30)

	got, err := repo.GetAvailabilityByID(ctx, early.ID)
	require.NoError(t, err)
	assert.True(t, base.Equal(got.SlotStart))
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, "Dr. Grey", got.Doctor.User.Name)
	assert.Equal(t, doc.Speciality.Name, got.Doctor.Speciality.Name)

	list, err := repo.ListAvailabilitiesByDoctor(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, early.ID, list[0].ID)
	assert.Equal(t, late.ID, list[1].ID)

	_, err = repo.GetAvailabilityByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.LockDoctor(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrDoctorNotFound)
}

func TestAvailabilityGorm_MarkBookedVersionConflict(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewAvailabilityGormRepository(testDB)

	doc := createDoctor(t, "Dr. Grey")
	slot := createSlot(t, doc.ID, slotBase(), 30)

	first, err := repo.GetAvailabilityByID(ctx, slot.ID)
	require.NoError(t, err)
	second, err := repo.GetAvailabilityByID(ctx, slot.ID)
	require.NoError(t, err)

	bookedAt := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, domain.Book(first, bookedAt))
	require.NoError(t, repo.MarkBooked(ctx, first))
	assert.Equal(t, 2, first.Version)

	err = repo.MarkBooked(ctx, second)
	assert.ErrorIs(t, err, domain.ErrBookingConflict)
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))

	stored, err := repo.GetAvailabilityByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsBooked)
	assert.Equal(t, 2, stored.Version)
	assert.True(t, bookedAt.Equal(stored.UpdatedAt))
}

func TestAvailabilityGorm_Delete(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewAvailabilityGormRepository(testDB)

	doc := createDoctor(t, "Dr. Grey")
	base := slotBase()
	free := createSlot(t, doc.ID, base, 30)
	booked := createSlot(t, doc.ID, base.Add(time.Hour), 30)
	require.NoError(t, testDB.Model(&models.Availability{}).
		Where("id = ?", booked.ID).
		Update("is_booked", true).Error)

	t.Run("booked slot is refused", func(t *testing.T) {
		err := repo.DeleteAvailability(ctx, booked.ID)
		assert.ErrorIs(t, err, domain.ErrDeleteBookedSlot)

		_, err = repo.GetAvailabilityByID(ctx, booked.ID)
		assert.NoError(t, err)
	})

	t.Run("free slot is soft-deleted", func(t *testing.T) {
		require.NoError(t, repo.DeleteAvailability(ctx, free.ID))

		_, err := repo.GetAvailabilityByID(ctx, free.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		var rows int64
		require.NoError(t, testDB.Unscoped().Model(&models.Availability{}).
			Where("id = ?", free.ID).
			Count(&rows).Error)
		assert.Equal(t, int64(1), rows)
	})

	t.Run("deleting twice or unknown id", func(t *testing.T) {
		assert.ErrorIs(t, repo.DeleteAvailability(ctx, free.ID), domain.ErrNotFound)
		assert.ErrorIs(t, repo.DeleteAvailability(ctx, uuid.New()), domain.ErrNotFound)
	})
}
