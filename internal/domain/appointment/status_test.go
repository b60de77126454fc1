package appointment

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"Scheduled":         StatusScheduled,
		"completed":         StatusCompleted,
		"cancelledByClient": StatusCancelledByClient,
		"CANCELLEDBYDOCTOR": StatusCancelledByDoctor,
		"0":                 StatusScheduled,
		"1":                 StatusCompleted,
		"2":                 StatusCancelledByClient,
		"3":                 StatusCancelledByDoctor,
	}

	for raw, want := range cases {
		got, err := ParseStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"", "4", "-1", "cancelled", "Booked"} {
		_, err := ParseStatus(raw)
		assert.ErrorIs(t, err, ErrInvalidStatus, raw)
	}
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusScheduled, InitialStatus())
	assert.True(t, InitialStatus().Valid())
	assert.False(t, Status("Unknown").Valid())
}

func TestApplyUpdate(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	old := "old"

	t.Run("replaces both fields", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusScheduled), Notes: &old}
		notes := "Updated notes"
		status := StatusCompleted

		require.NoError(t, ApplyUpdate(ap, &notes, &status, now))

		assert.Equal(t, "Updated notes", *ap.Notes)
		assert.Equal(t, "Completed", ap.Status)
		assert.Equal(t, now, ap.UpdatedAt)
	})

	t.Run("omitted fields stay unchanged", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusCompleted), Notes: &old}

		require.NoError(t, ApplyUpdate(ap, nil, nil, now))

		assert.Equal(t, "old", *ap.Notes)
		assert.Equal(t, "Completed", ap.Status)
		assert.Equal(t, now, ap.UpdatedAt)
	})

	t.Run("any transition is accepted", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusCompleted)}
		status := StatusScheduled

		require.NoError(t, ApplyUpdate(ap, nil, &status, now))
		assert.Equal(t, "Scheduled", ap.Status)
	})

	t.Run("notes too long", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusScheduled)}
		long := strings.Repeat("a", models.NotesMaxLength+1)

		assert.ErrorIs(t, ApplyUpdate(ap, &long, nil, now), ErrNotesTooLong)
		assert.Nil(t, ap.Notes)
		assert.True(t, ap.UpdatedAt.IsZero())
	})
}
