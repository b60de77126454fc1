package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AvailabilitySummary struct {
	ID              uuid.UUID `json:"id"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name"`
	SpecialityName  string    `json:"speciality_name"`
	SlotDateTime    time.Time `json:"slot_date_time"`
	DurationMinutes int       `json:"duration_minutes"`
	IsBooked        bool      `json:"is_booked"`
}

// NewAvailabilitySummary expects av.Doctor.User and av.Doctor.Speciality loaded;
// missing associations leave the display names empty.
func NewAvailabilitySummary(av *models.Availability) AvailabilitySummary {
	return AvailabilitySummary{
		ID:              av.ID,
		DoctorID:        av.DoctorID,
		DoctorName:      av.Doctor.User.Name,
		SpecialityName:  av.Doctor.Speciality.Name,
		SlotDateTime:    av.SlotStart,
		DurationMinutes: av.DurationMinutes,
		IsBooked:        av.IsBooked,
	}
}

func NewAvailabilitySummaries(avs []models.Availability) []AvailabilitySummary {
	out := make([]AvailabilitySummary, 0, len(avs))
	for i := range avs {
		out = append(out, NewAvailabilitySummary(&avs[i]))
	}
	return out
}
