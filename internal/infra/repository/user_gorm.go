package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var ErrUserNotFound = httperr.NotFound("user_not_found", "User not found")

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		return nil, translateUserErr(err)
	}
	return &user, nil
}

func (r *UserGormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, translateUserErr(err)
	}
	return &user, nil
}

// ProfileIDs returns the doctor and client ids linked to the user, if any.
func (r *UserGormRepository) ProfileIDs(ctx context.Context, userID uuid.UUID) (doctorID, clientID *uuid.UUID, err error) {
	var doc models.Doctor
	err = r.db.WithContext(ctx).Select("id").Where("user_id = ?", userID).First(&doc).Error
	switch {
	case err == nil:
		doctorID = &doc.ID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, err
	}

	var client models.Client
	err = r.db.WithContext(ctx).Select("id").Where("user_id = ?", userID).First(&client).Error
	switch {
	case err == nil:
		clientID = &client.ID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, err
	}

	return doctorID, clientID, nil
}

func translateUserErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}
