package usecase

import (
	"context"

	"clinic-booking-service/internal/converter"
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ClinicianProfileUsecase interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*dto.ClinicianResponse, error)
	GetAll(ctx context.Context) (*dto.ClinicianListResponse, error)
}

type clinicianProfileUsecase struct {
	log           *logrus.Logger
	clinicianRepo repository.ClinicianProfileRepository
}

func NewClinicianProfileUsecase(log *logrus.Logger, clinicianRepo repository.ClinicianProfileRepository) ClinicianProfileUsecase {
	return &clinicianProfileUsecase{
		log:           log,
		clinicianRepo: clinicianRepo,
	}
}

func (u *clinicianProfileUsecase) GetByUserID(ctx context.Context, userID uuid.UUID) (*dto.ClinicianResponse, error) {
	profile, err := u.clinicianRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find clinician profile %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrClinicianNotFound
	}

	return converter.ClinicianToResponse(profile), nil
}

func (u *clinicianProfileUsecase) GetAll(ctx context.Context) (*dto.ClinicianListResponse, error) {
	profiles, err := u.clinicianRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list clinicians: %+v", err)
		return nil, err
	}

	return &dto.ClinicianListResponse{
		Clinicians: converter.CliniciansToResponses(profiles),
		Total:      len(profiles),
	}, nil
}
