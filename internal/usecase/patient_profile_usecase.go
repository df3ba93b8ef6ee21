package usecase

import (
	"context"

	"clinic-booking-service/internal/converter"
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type PatientProfileUsecase interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error)
}

type patientProfileUsecase struct {
	log         *logrus.Logger
	patientRepo repository.PatientProfileRepository
}

func NewPatientProfileUsecase(log *logrus.Logger, patientRepo repository.PatientProfileRepository) PatientProfileUsecase {
	return &patientProfileUsecase{
		log:         log,
		patientRepo: patientRepo,
	}
}

func (u *patientProfileUsecase) GetByUserID(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error) {
	profile, err := u.patientRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(profile), nil
}
