package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Availability struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	DoctorID uuid.UUID `gorm:"type:uuid;not null;index:idx_availability_doctor_start" json:"doctor_id"`
	Doctor   Doctor    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	SlotStart       time.Time `gorm:"not null;index:idx_availability_doctor_start" json:"slot_start"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	IsBooked        bool      `gorm:"not null;default:false" json:"is_booked"`

	// Version guards the IsBooked flip against concurrent bookings.
	Version int `gorm:"not null;default:1" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Availability) SlotEnd() time.Time {
	return a.SlotStart.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
