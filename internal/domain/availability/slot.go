package availability

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Overlaps uses half-open intervals: touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// MaxDurationMinutes caps a single slot at one day.
const MaxDurationMinutes = 24 * 60

func ValidDuration(minutes int) bool {
	return minutes > 0 && minutes <= MaxDurationMinutes
}

func SlotEnd(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}

func AnyOverlap(existing []models.Availability, start, end time.Time) bool {
	for i := range existing {
		if Overlaps(existing[i].SlotStart, existing[i].SlotEnd(), start, end) {
			return true
		}
	}
	return false
}

// ===============================
// Domain Actions
// ===============================

func CanBook(av *models.Availability, now time.Time) error {
	if av.IsBooked {
		return ErrAlreadyBooked
	}
	if av.SlotStart.Before(now) {
		return ErrBookInPast
	}
	return nil
}

// Book flips the slot to booked. Unbooked -> Booked is one-way.
func Book(av *models.Availability, now time.Time) error {
	if err := CanBook(av, now); err != nil {
		return err
	}
	av.IsBooked = true
	av.UpdatedAt = now
	return nil
}

func CanDelete(av *models.Availability) error {
	if av.IsBooked {
		return ErrDeleteBookedSlot
	}
	return nil
}
