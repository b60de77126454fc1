package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const NotesMaxLength = 500

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   Client    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	DoctorID uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Doctor   Doctor    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	// Unique among non-deleted rows, see db.ensureIndexes.
	AvailabilityID uuid.UUID    `gorm:"type:uuid;not null" json:"availability_id"`
	Availability   Availability `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	AppointmentDateTime time.Time `gorm:"not null" json:"appointment_date_time"`

	Status string  `gorm:"size:30;not null;default:'Scheduled'" json:"status"`
	Notes  *string `gorm:"size:500" json:"notes"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
