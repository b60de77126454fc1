package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error {
	assignID(&u.ID)
	return nil
}

func (s *Speciality) BeforeCreate(*gorm.DB) error {
	assignID(&s.ID)
	return nil
}

func (d *Doctor) BeforeCreate(*gorm.DB) error {
	assignID(&d.ID)
	return nil
}

func (c *Client) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	return nil
}

func (a *Availability) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}
