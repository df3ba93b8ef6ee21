package repository

import (
	"context"

	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
)

type ClinicianProfileRepository interface {
	Create(ctx context.Context, profile *entity.ClinicianProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ClinicianProfile, error)
	FindAll(ctx context.Context) ([]entity.ClinicianProfile, error)
}
