package validators

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
)

const TagAppointmentStatus = "appointment_status"

// Register adds the custom tags to v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(TagAppointmentStatus, appointmentStatus); err != nil {
		return fmt.Errorf("register %s: %w", TagAppointmentStatus, err)
	}
	return nil
}

// RegisterWithGin installs the custom tags on gin's binding engine.
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return Register(v)
}

func appointmentStatus(fl validator.FieldLevel) bool {
	_, err := appointment.ParseStatus(fl.Field().String())
	return err == nil
}
