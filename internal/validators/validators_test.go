package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type updateBody struct {
	Status *string `validate:"omitempty,appointment_status"`
}

func TestAppointmentStatusTag(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	cases := map[string]bool{
		"Scheduled":         true,
		"cancelledbydoctor": true,
		"3":                 true,
		"4":                 false,
		"Postponed":         false,
	}

	for raw, valid := range cases {
		raw := raw
		err := v.Struct(updateBody{Status: &raw})
		if valid {
			assert.NoError(t, err, raw)
		} else {
			assert.Error(t, err, raw)
		}
	}

	assert.NoError(t, v.Struct(updateBody{}))
}

func TestRegisterWithGin(t *testing.T) {
	require.NoError(t, RegisterWithGin())
}
