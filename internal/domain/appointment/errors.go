package appointment

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

var (
	ErrNotFound       = httperr.NotFound("appointment_not_found", "Appointment not found")
	ErrClientNotFound = httperr.NotFound("client_not_found", "Client not found")
	ErrDoctorNotFound = httperr.NotFound("doctor_not_found", "Doctor not found")

	ErrSlotTaken = httperr.Conflict("slot_already_taken", "time slot already has an appointment", nil)

	ErrNotesTooLong       = httperr.Validation("notes_too_long", "notes must be at most 500 characters")
	ErrInvalidClientID    = httperr.Validation("invalid_client_id", "client id is required")
	ErrInvalidAvailableID = httperr.Validation("invalid_availability_id", "availability id is required")
)
