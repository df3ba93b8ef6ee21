package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-booking-service/internal/converter"
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"
	"clinic-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrClinicianNotFound = errors.New("clinician not found")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrSlotReserved      = errors.New("time slot is reserved and cannot be retired")
)

type TimeSlotUsecase interface {
	GenerateSlots(ctx context.Context, clinicianID uuid.UUID, req *dto.GenerateTimeSlotsRequest) (*dto.TimeSlotListResponse, error)
	GetByClinician(ctx context.Context, clinicianID uuid.UUID) (*dto.TimeSlotListResponse, error)
	GetAvailableByClinicianAndDate(ctx context.Context, clinicianID uuid.UUID, date string) (*dto.TimeSlotListResponse, error)
	RetireSlot(ctx context.Context, id uuid.UUID) error
}

type timeSlotUsecase struct {
	log           *logrus.Logger
	txm           repository.Transactioner
	slotRepo      repository.TimeSlotRepository
	clinicianRepo repository.ClinicianProfileRepository
	strategy      service.SlotGenerationStrategy
	auditService  service.AuditService
	slotCache     service.SlotCache
}

func NewTimeSlotUsecase(
	log *logrus.Logger,
	txm repository.Transactioner,
	slotRepo repository.TimeSlotRepository,
	clinicianRepo repository.ClinicianProfileRepository,
	strategy service.SlotGenerationStrategy,
	auditService service.AuditService,
	slotCache service.SlotCache,
) TimeSlotUsecase {
	return &timeSlotUsecase{
		log:           log,
		txm:           txm,
		slotRepo:      slotRepo,
		clinicianRepo: clinicianRepo,
		strategy:      strategy,
		auditService:  auditService,
		slotCache:     slotCache,
	}
}

// GenerateSlots produces a full day of bookable slots for the clinician using
// the configured generation strategy and persists them in one transaction.
func (u *timeSlotUsecase) GenerateSlots(ctx context.Context, clinicianID uuid.UUID, req *dto.GenerateTimeSlotsRequest) (*dto.TimeSlotListResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	clinician, err := u.clinicianRepo.FindByUserID(ctx, clinicianID)
	if err != nil {
		u.log.Warnf("Failed to find clinician %s: %+v", clinicianID, err)
		return nil, err
	}
	if clinician == nil {
		return nil, ErrClinicianNotFound
	}

	offset := time.Duration(req.UTCOffsetMinutes) * time.Minute
	slots := u.strategy.GenerateSlots(clinicianID, date, offset)

	err = u.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := u.slotRepo.CreateBatch(txCtx, slots); err != nil {
			u.log.Warnf("Failed to persist generated slots for clinician %s: %+v", clinicianID, err)
			return err
		}
		return u.auditService.Record(txCtx, &clinicianID, entity.AuditActionTimeSlotGenerate, entity.JSON{
			"clinician_id": clinicianID.String(),
			"date":         req.Date,
			"count":        len(slots),
		})
	})
	if err != nil {
		return nil, err
	}

	u.slotCache.Invalidate(ctx, clinicianID, date)
	u.log.Infof("Generated %d slots for clinician %s on %s", len(slots), clinicianID, req.Date)

	return &dto.TimeSlotListResponse{
		TimeSlots: converter.TimeSlotsToResponses(slots),
		Total:     len(slots),
	}, nil
}

func (u *timeSlotUsecase) GetByClinician(ctx context.Context, clinicianID uuid.UUID) (*dto.TimeSlotListResponse, error) {
	slots, err := u.slotRepo.FindByClinicianID(ctx, clinicianID)
	if err != nil {
		u.log.Warnf("Failed to find slots for clinician %s: %+v", clinicianID, err)
		return nil, err
	}

	return &dto.TimeSlotListResponse{
		TimeSlots: converter.TimeSlotsToResponses(slots),
		Total:     len(slots),
	}, nil
}

// GetAvailableByClinicianAndDate serves the booking calendar. Listings are
// cached; booking mutations invalidate the affected day.
func (u *timeSlotUsecase) GetAvailableByClinicianAndDate(ctx context.Context, clinicianID uuid.UUID, date string) (*dto.TimeSlotListResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	if cached, ok := u.slotCache.GetAvailable(ctx, clinicianID, day); ok {
		return &dto.TimeSlotListResponse{
			TimeSlots: converter.TimeSlotsToResponses(cached),
			Total:     len(cached),
		}, nil
	}

	slots, err := u.slotRepo.FindAvailableByClinicianAndDate(ctx, clinicianID, day)
	if err != nil {
		u.log.Warnf("Failed to find available slots for clinician %s: %+v", clinicianID, err)
		return nil, err
	}

	u.slotCache.SetAvailable(ctx, clinicianID, day, slots)

	return &dto.TimeSlotListResponse{
		TimeSlots: converter.TimeSlotsToResponses(slots),
		Total:     len(slots),
	}, nil
}

// RetireSlot soft-retires an available slot so it no longer shows up as
// bookable. Reserved slots cannot be retired while an appointment is bound to
// them.
func (u *timeSlotUsecase) RetireSlot(ctx context.Context, id uuid.UUID) error {
	var slot *entity.TimeSlot

	err := u.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		slot, err = u.slotRepo.FindByID(txCtx, id)
		if err != nil {
			u.log.Warnf("Failed to find time slot %s: %+v", id, err)
			return err
		}
		if slot == nil || slot.Retired {
			return ErrSlotNotFound
		}
		if !slot.IsAvailable {
			return ErrSlotReserved
		}

		slot.Retire()
		if err := u.slotRepo.Update(txCtx, slot); err != nil {
			return err
		}

		return u.auditService.Record(txCtx, nil, entity.AuditActionTimeSlotRetire, entity.JSON{
			"time_slot_id": slot.ID.String(),
		})
	})
	if err != nil {
		return err
	}

	u.slotCache.Invalidate(ctx, slot.ClinicianID, slot.StartTime)
	u.log.Infof("Time slot retired: id=%s", id)
	return nil
}
