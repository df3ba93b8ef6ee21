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

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return dbFromContext(ctx, r.db).Omit("Patient", "TimeSlot").Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := dbFromContext(ctx, r.db).
		Preload("TimeSlot").
		Preload("Patient.User").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := dbFromContext(ctx, r.db).
		Preload("TimeSlot").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// Update persists the status and slot binding under the same conflict-token
// check as the slot repository.
func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	result := dbFromContext(ctx, r.db).Model(&entity.Appointment{}).
		Where("id = ? AND version = ?", appointment.ID, appointment.Version).
		Updates(map[string]interface{}{
			"status":       appointment.Status,
			"time_slot_id": appointment.TimeSlotID,
			"clinician_id": appointment.ClinicianID,
			"notes":        appointment.Notes,
			"version":      appointment.Version + 1,
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrConcurrentModification
	}
	appointment.Version++
	return nil
}
