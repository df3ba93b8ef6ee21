package repository

import (
	"context"
	"time"

	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
)

type TimeSlotRepository interface {
	Create(ctx context.Context, slot *entity.TimeSlot) error
	CreateBatch(ctx context.Context, slots []entity.TimeSlot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TimeSlot, error)
	FindByClinicianID(ctx context.Context, clinicianID uuid.UUID) ([]entity.TimeSlot, error)
	FindAvailableByClinicianAndDate(ctx context.Context, clinicianID uuid.UUID, date time.Time) ([]entity.TimeSlot, error)
	// Update persists availability and retirement changes. The write succeeds
	// only if the slot's conflict token still matches the stored row;
	// otherwise ErrConcurrentModification is returned.
	Update(ctx context.Context, slot *entity.TimeSlot) error
}
