package repository

import (
	"context"
	"errors"

	"clinic-booking-service/internal/domain/entity"
	domainRepo "clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type clinicianProfileRepository struct {
	db *gorm.DB
}

func NewClinicianProfileRepository(db *gorm.DB) domainRepo.ClinicianProfileRepository {
	return &clinicianProfileRepository{db: db}
}

func (r *clinicianProfileRepository) Create(ctx context.Context, profile *entity.ClinicianProfile) error {
	return dbFromContext(ctx, r.db).Create(profile).Error
}

func (r *clinicianProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ClinicianProfile, error) {
	var profile entity.ClinicianProfile
	err := dbFromContext(ctx, r.db).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *clinicianProfileRepository) FindAll(ctx context.Context) ([]entity.ClinicianProfile, error) {
	var profiles []entity.ClinicianProfile
	err := dbFromContext(ctx, r.db).
		Preload("User").
		Joins("JOIN users ON users.id = clinician_profiles.user_id").
		Where("users.is_active = true").
		Order("clinician_profiles.specialization ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
