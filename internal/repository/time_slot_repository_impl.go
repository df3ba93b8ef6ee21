package repository

import (
	"context"
	"errors"
	"time"

	"clinic-booking-service/internal/domain/entity"
	domainRepo "clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type timeSlotRepository struct {
	db *gorm.DB
}

func NewTimeSlotRepository(db *gorm.DB) domainRepo.TimeSlotRepository {
	return &timeSlotRepository{db: db}
}

func (r *timeSlotRepository) Create(ctx context.Context, slot *entity.TimeSlot) error {
	return dbFromContext(ctx, r.db).Create(slot).Error
}

func (r *timeSlotRepository) CreateBatch(ctx context.Context, slots []entity.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}
	return dbFromContext(ctx, r.db).Create(&slots).Error
}

func (r *timeSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TimeSlot, error) {
	var slot entity.TimeSlot
	err := dbFromContext(ctx, r.db).Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *timeSlotRepository) FindByClinicianID(ctx context.Context, clinicianID uuid.UUID) ([]entity.TimeSlot, error) {
	var slots []entity.TimeSlot
	err := dbFromContext(ctx, r.db).
		Where("clinician_id = ? AND retired = false", clinicianID).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *timeSlotRepository) FindAvailableByClinicianAndDate(ctx context.Context, clinicianID uuid.UUID, date time.Time) ([]entity.TimeSlot, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var slots []entity.TimeSlot
	err := dbFromContext(ctx, r.db).
		Where("clinician_id = ? AND is_available = true AND retired = false", clinicianID).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// Update writes availability and retirement with a check-and-increment on the
// conflict token. RowsAffected == 0 means another transaction won the race on
// this row since it was loaded.
func (r *timeSlotRepository) Update(ctx context.Context, slot *entity.TimeSlot) error {
	result := dbFromContext(ctx, r.db).Model(&entity.TimeSlot{}).
		Where("id = ? AND version = ?", slot.ID, slot.Version).
		Updates(map[string]interface{}{
			"is_available": slot.IsAvailable,
			"retired":      slot.Retired,
			"version":      slot.Version + 1,
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrConcurrentModification
	}
	slot.Version++
	return nil
}
