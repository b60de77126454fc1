package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentDetail struct {
	ID              uuid.UUID `json:"id"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	ClientID        uuid.UUID `json:"client_id"`
	AvailabilityID  uuid.UUID `json:"availability_id"`
	AppointmentDate time.Time `json:"appointment_date"`
	Duration        int       `json:"duration"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes"`
	DoctorName      string    `json:"doctor_name"`
	ClientName      string    `json:"client_name"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewAppointmentDetail flattens an appointment with Doctor.User, Client.User
// and Availability loaded.
func NewAppointmentDetail(ap *models.Appointment) AppointmentDetail {
	return AppointmentDetail{
		ID:              ap.ID,
		DoctorID:        ap.DoctorID,
		ClientID:        ap.ClientID,
		AvailabilityID:  ap.AvailabilityID,
		AppointmentDate: ap.AppointmentDateTime,
		Duration:        ap.Availability.DurationMinutes,
		Status:          ap.Status,
		Notes:           ap.Notes,
		DoctorName:      ap.Doctor.User.Name,
		ClientName:      ap.Client.User.Name,
		CreatedAt:       ap.CreatedAt,
		UpdatedAt:       ap.UpdatedAt,
	}
}

func NewAppointmentDetails(aps []models.Appointment) []AppointmentDetail {
	out := make([]AppointmentDetail, 0, len(aps))
	for i := range aps {
		out = append(out, NewAppointmentDetail(&aps[i]))
	}
	return out
}
