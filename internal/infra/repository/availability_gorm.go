package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

var _ domain.Repository = (*AvailabilityGormRepository)(nil)

// --------------------------------------------------
// Doctor
// --------------------------------------------------

func (r *AvailabilityGormRepository) LockDoctor(
	ctx context.Context,
	doctorID uuid.UUID,
) (*models.Doctor, error) {

	var doc models.Doctor
	if err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("User").
		Preload("Speciality").
		Where("id = ?", doctorID).
		First(&doc).Error; err != nil {
		return nil, translateDoctorErr(err)
	}
	return &doc, nil
}

func (r *AvailabilityGormRepository) GetDoctorByID(
	ctx context.Context,
	doctorID uuid.UUID,
) (*models.Doctor, error) {

	var doc models.Doctor
	if err := conn(ctx, r.db).
		Preload("User").
		Preload("Speciality").
		Where("id = ?", doctorID).
		First(&doc).Error; err != nil {
		return nil, translateDoctorErr(err)
	}
	return &doc, nil
}

func translateDoctorErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrDoctorNotFound
	}
	return err
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AvailabilityGormRepository) CreateAvailability(
	ctx context.Context,
	av *models.Availability,
) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(av).Error
}

func (r *AvailabilityGormRepository) GetAvailabilityByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Availability, error) {

	var av models.Availability
	if err := conn(ctx, r.db).
		Preload("Doctor.User").
		Preload("Doctor.Speciality").
		Where("id = ?", id).
		First(&av).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &av, nil
}

func (r *AvailabilityGormRepository) ListAvailabilitiesByDoctor(
	ctx context.Context,
	doctorID uuid.UUID,
) ([]models.Availability, error) {

	var list []models.Availability
	if err := conn(ctx, r.db).
		Preload("Doctor.User").
		Preload("Doctor.Speciality").
		Where("doctor_id = ?", doctorID).
		Order("slot_start ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteAvailability soft-deletes the slot unless it has been booked meanwhile.
func (r *AvailabilityGormRepository) DeleteAvailability(
	ctx context.Context,
	id uuid.UUID,
) error {

	res := conn(ctx, r.db).Delete(&models.Availability{}, "id = ? AND is_booked = ?", id, false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var booked int64
	if err := conn(ctx, r.db).
		Model(&models.Availability{}).
		Where("id = ?", id).
		Count(&booked).Error; err != nil {
		return err
	}
	if booked > 0 {
		return domain.ErrDeleteBookedSlot
	}
	return domain.ErrNotFound
}

// HasOverlap applies the half-open test existing.start < end AND existing.end > start.
func (r *AvailabilityGormRepository) HasOverlap(
	ctx context.Context,
	doctorID uuid.UUID,
	start time.Time,
	end time.Time,
) (bool, error) {

	var count int64
	if err := conn(ctx, r.db).
		Model(&models.Availability{}).
		Where(
			"doctor_id = ? AND slot_start < ? AND slot_start + (duration_minutes * interval '1 minute') > ?",
			doctorID,
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// MarkBooked flips is_booked only if the row still carries av.Version.
// updated_at comes from av, which Book stamps with the use case clock.
func (r *AvailabilityGormRepository) MarkBooked(
	ctx context.Context,
	av *models.Availability,
) error {

	res := conn(ctx, r.db).
		Model(&models.Availability{}).
		Where("id = ? AND version = ? AND is_booked = ?", av.ID, av.Version, false).
		UpdateColumns(map[string]any{
			"is_booked":  true,
			"version":    gorm.Expr("version + 1"),
			"updated_at": av.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrBookingConflict
	}

	av.IsBooked = true
	av.Version++
	return nil
}
