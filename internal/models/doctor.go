package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Doctor struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"user"`

	SpecialityID uuid.UUID  `gorm:"type:uuid;not null" json:"speciality_id"`
	Speciality   Speciality `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"speciality"`

	// CRM registration number.
	CRM string `gorm:"size:20;not null" json:"crm"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
