package availability

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

var (
	ErrNotFound       = httperr.NotFound("availability_not_found", "Availability not found")
	ErrDoctorNotFound = httperr.NotFound("doctor_not_found", "Doctor not found")

	ErrSlotInPast       = httperr.InvalidState("slot_in_past", "time slot is in the past")
	ErrSlotOverlaps     = httperr.InvalidState("slot_overlaps", "overlaps with an existing availability")
	ErrAlreadyBooked    = httperr.InvalidState("slot_already_booked", "time slot is already booked")
	ErrBookInPast       = httperr.InvalidState("booking_in_past", "cannot book an appointment in the past")
	ErrDeleteBookedSlot = httperr.InvalidState("slot_booked", "cannot delete a booked availability")

	ErrInvalidDuration = httperr.Validation("invalid_duration", "duration must be between 1 and 1440 minutes")
	ErrInvalidDoctorID = httperr.Validation("invalid_doctor_id", "doctor id is required")

	ErrBookingConflict = httperr.Conflict("slot_booking_conflict", "time slot was booked by a concurrent request", nil)
	ErrSlotBusy        = httperr.Conflict("slot_being_booked", "time slot is being booked, please retry", nil)
)
