package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)

// --------------------------------------------------
// Client / Doctor
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClientByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Client, error) {

	var client models.Client
	if err := conn(ctx, r.db).
		Preload("User").
		Where("id = ?", id).
		First(&client).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetDoctorByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Doctor, error) {

	var doc models.Doctor
	if err := conn(ctx, r.db).
		Preload("User").
		Where("id = ?", id).
		First(&doc).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := conn(ctx, r.db).Omit(clause.Associations).Create(ap).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.Conflict("slot_already_taken", domain.ErrSlotTaken.Error(), err)
	}
	return err
}

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := conn(ctx, r.db).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, translateAppointmentErr(err)
	}
	return &ap, nil
}

// UpdateAppointment writes notes, status and updated_at as set by the caller.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	res := conn(ctx, r.db).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		UpdateColumns(map[string]any{
			"notes":      ap.Notes,
			"status":     ap.Status,
			"updated_at": ap.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Appointment (detail projection)
// --------------------------------------------------

func (r *AppointmentGormRepository) details(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).
		Preload("Doctor.User").
		Preload("Client.User").
		Preload("Availability", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		})
}

func (r *AppointmentGormRepository) GetAppointmentDetail(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.details(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, translateAppointmentErr(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListDetailsByClient(
	ctx context.Context,
	clientID uuid.UUID,
) ([]models.Appointment, error) {

	var list []models.Appointment
	if err := r.details(ctx).
		Where("client_id = ?", clientID).
		Order("appointment_date_time ASC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *AppointmentGormRepository) ListDetailsByDoctor(
	ctx context.Context,
	doctorID uuid.UUID,
) ([]models.Appointment, error) {

	var list []models.Appointment
	if err := r.details(ctx).
		Where("doctor_id = ?", doctorID).
		Order("appointment_date_time ASC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func translateAppointmentErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
