package appointment

import (
	"strconv"
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled         Status = "Scheduled"
	StatusCompleted         Status = "Completed"
	StatusCancelledByClient Status = "CancelledByClient"
	StatusCancelledByDoctor Status = "CancelledByDoctor"
)

// statusCodes keeps the numeric wire codes stable.
var statusCodes = []Status{
	StatusScheduled,
	StatusCompleted,
	StatusCancelledByClient,
	StatusCancelledByDoctor,
}

func InitialStatus() Status {
	return StatusScheduled
}

func (s Status) Valid() bool {
	for _, known := range statusCodes {
		if s == known {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus accepts a status name (case-insensitive) or its numeric code.
func ParseStatus(raw string) (Status, error) {
	raw = strings.TrimSpace(raw)

	if n, err := strconv.Atoi(raw); err == nil {
		if n >= 0 && n < len(statusCodes) {
			return statusCodes[n], nil
		}
		return "", ErrInvalidStatus
	}

	for _, known := range statusCodes {
		if strings.EqualFold(raw, string(known)) {
			return known, nil
		}
	}
	return "", ErrInvalidStatus
}

var ErrInvalidStatus = httperr.Validation("invalid_status", "status must be one of Scheduled, Completed, CancelledByClient, CancelledByDoctor")
