package appointment

import (
	"time"
	"unicode/utf8"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func ValidateNotes(notes *string) error {
	if notes != nil && utf8.RuneCountInString(*notes) > models.NotesMaxLength {
		return ErrNotesTooLong
	}
	return nil
}

// ApplyUpdate replaces the provided fields only. Any status may move to any
// other status; UpdatedAt is always refreshed.
func ApplyUpdate(ap *models.Appointment, notes *string, status *Status, now time.Time) error {
	if err := ValidateNotes(notes); err != nil {
		return err
	}
	if status != nil && !status.Valid() {
		return ErrInvalidStatus
	}

	if notes != nil {
		n := *notes
		ap.Notes = &n
	}
	if status != nil {
		ap.Status = string(*status)
	}
	ap.UpdatedAt = now
	return nil
}
