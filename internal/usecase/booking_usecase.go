package usecase

import (
	"context"
	"errors"

	"clinic-booking-service/internal/converter"
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"
	"clinic-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotNotFound        = errors.New("time slot not found")
	ErrPatientNotFound     = errors.New("patient not found")
)

// BookingUsecase orchestrates the appointment lifecycle. Every mutating
// operation follows the same shape: load the entities inside one transaction,
// apply the state-machine transition in memory, persist everything touched.
// Concurrent reservations of the same slot are serialized by the conflict
// token at commit time; the loser gets ErrConcurrentModification and is
// expected to retry the whole operation, no lock is ever held across I/O.
type BookingUsecase interface {
	CreateAppointment(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	Confirm(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Complete(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Reschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
}

type bookingUsecase struct {
	log          *logrus.Logger
	txm          repository.Transactioner
	apptRepo     repository.AppointmentRepository
	slotRepo     repository.TimeSlotRepository
	patientRepo  repository.PatientProfileRepository
	auditService service.AuditService
	slotCache    service.SlotCache
}

func NewBookingUsecase(
	log *logrus.Logger,
	txm repository.Transactioner,
	apptRepo repository.AppointmentRepository,
	slotRepo repository.TimeSlotRepository,
	patientRepo repository.PatientProfileRepository,
	auditService service.AuditService,
	slotCache service.SlotCache,
) BookingUsecase {
	return &bookingUsecase{
		log:          log,
		txm:          txm,
		apptRepo:     apptRepo,
		slotRepo:     slotRepo,
		patientRepo:  patientRepo,
		auditService: auditService,
		slotCache:    slotCache,
	}
}

// CreateAppointment reserves the slot and creates a pending appointment bound
// to it, atomically. If another request reserved the slot after our read, the
// conflict-token check aborts the transaction and nothing persists.
func (u *bookingUsecase) CreateAppointment(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	var created *entity.Appointment
	var slot *entity.TimeSlot

	err := u.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		slot, err = u.slotRepo.FindByID(txCtx, req.TimeSlotID)
		if err != nil {
			u.log.Warnf("Failed to find time slot %s: %+v", req.TimeSlotID, err)
			return err
		}
		if slot == nil || slot.Retired {
			return ErrSlotNotFound
		}

		patient, err := u.patientRepo.FindByUserID(txCtx, patientID)
		if err != nil {
			u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		appointment, err := entity.NewAppointment(patientID, slot, req.Notes)
		if err != nil {
			return err
		}

		if err := u.slotRepo.Update(txCtx, slot); err != nil {
			return err
		}
		if err := u.apptRepo.Create(txCtx, appointment); err != nil {
			u.log.Warnf("Failed to create appointment for slot %s: %+v", slot.ID, err)
			return err
		}

		created = appointment
		return u.auditService.Record(txCtx, &patientID, entity.AuditActionAppointmentCreate, entity.JSON{
			"appointment_id": appointment.ID.String(),
			"time_slot_id":   slot.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	u.slotCache.Invalidate(ctx, slot.ClinicianID, slot.StartTime)
	u.log.Infof("Appointment created: id=%s, slot=%s, patient=%s", created.ID, slot.ID, patientID)

	return u.refresh(ctx, created)
}

func (u *bookingUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.apptRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *bookingUsecase) ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.apptRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// Confirm moves a pending appointment to confirmed. The slot binding does not
// change.
func (u *bookingUsecase) Confirm(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	var confirmed *entity.Appointment

	err := u.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		appointment, err := u.apptRepo.FindByID(txCtx, id)
		if err != nil {
			u.log.Warnf("Failed to find appointment %s: %+v", id, err)
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		if err := appointment.Confirm(); err != nil {
			return err
		}
		if err := u.apptRepo.Update(txCtx, appointment); err != nil {
			return err
		}

		confirmed = appointment
		return u.auditService.Record(txCtx, nil, entity.AuditActionAppointmentConfirm, entity.JSON{
			"appointment_id": appointment.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Appointment confirmed: id=%s", id)
	return u.refresh(ctx, confirmed)
}

// Complete marks a confirmed appointment as completed once the visit has taken
// place. The slot stays reserved, completed appointments keep their history.
func (u *bookingUsecase) Complete(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	var completed *entity.Appointment

	err := u.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		appointment, err := u.apptRepo.FindByID(txCtx, id)
		if err != nil {
			u.log.Warnf("Failed to find appointment %s: %+v", id, err)
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		if err := appointment.Complete(); err != nil {
			return err
		}
		if err := u.apptRepo.Update(txCtx, appointment); err != nil {
			return err
		}

		completed = appointment
		return u.auditService.Record(txCtx, nil, entity.AuditActionAppointmentComplete, entity.JSON{
			"appointment_id": appointment.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Appointment completed: id=%s", id)
	return u.refresh(ctx, completed)
}

// Cancel moves the appointment to cancelled and releases its slot in the same
// transaction, so the slot can never end up available while the appointment is
// still active, or reserved while it is cancelled.
func (u *bookingUsecase) Cancel(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	var cancelled *entity.Appointment
	var slot *entity.TimeSlot

	err := u.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		appointment, err := u.apptRepo.FindByID(txCtx, id)
		if err != nil {
			u.log.Warnf("Failed to find appointment %s: %+v", id, err)
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		if err := appointment.Cancel(); err != nil {
			return err
		}

		slot, err = u.slotRepo.FindByID(txCtx, appointment.TimeSlotID)
		if err != nil {
			u.log.Warnf("Failed to find time slot %s: %+v", appointment.TimeSlotID, err)
			return err
		}
		if slot == nil {
			return ErrSlotNotFound
		}
		slot.Release()

		if err := u.apptRepo.Update(txCtx, appointment); err != nil {
			return err
		}
		if err := u.slotRepo.Update(txCtx, slot); err != nil {
			return err
		}

		cancelled = appointment
		return u.auditService.Record(txCtx, &appointment.PatientID, entity.AuditActionAppointmentCancel, entity.JSON{
			"appointment_id": appointment.ID.String(),
			"time_slot_id":   slot.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	u.slotCache.Invalidate(ctx, slot.ClinicianID, slot.StartTime)
	u.log.Infof("Appointment cancelled: id=%s, slot=%s", id, slot.ID)

	return u.refresh(ctx, cancelled)
}

// Reschedule atomically swaps the appointment onto a new slot: the new slot is
// reserved first and the binding updated only once that succeeds, then the old
// slot is released. If the new slot is taken the transaction aborts and the
// old reservation stands untouched.
func (u *bookingUsecase) Reschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	var rescheduled *entity.Appointment
	var oldSlot, newSlot *entity.TimeSlot

	err := u.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		appointment, err := u.apptRepo.FindByID(txCtx, id)
		if err != nil {
			u.log.Warnf("Failed to find appointment %s: %+v", id, err)
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		newSlot, err = u.slotRepo.FindByID(txCtx, req.NewTimeSlotID)
		if err != nil {
			u.log.Warnf("Failed to find time slot %s: %+v", req.NewTimeSlotID, err)
			return err
		}
		if newSlot == nil || newSlot.Retired {
			return ErrSlotNotFound
		}

		oldSlot, err = u.slotRepo.FindByID(txCtx, appointment.TimeSlotID)
		if err != nil {
			u.log.Warnf("Failed to find time slot %s: %+v", appointment.TimeSlotID, err)
			return err
		}
		if oldSlot == nil {
			return ErrSlotNotFound
		}

		if err := appointment.Reschedule(newSlot); err != nil {
			return err
		}
		oldSlot.Release()

		if err := u.slotRepo.Update(txCtx, newSlot); err != nil {
			return err
		}
		if err := u.slotRepo.Update(txCtx, oldSlot); err != nil {
			return err
		}
		if err := u.apptRepo.Update(txCtx, appointment); err != nil {
			return err
		}

		rescheduled = appointment
		return u.auditService.Record(txCtx, &appointment.PatientID, entity.AuditActionAppointmentReschedule, entity.JSON{
			"appointment_id":   appointment.ID.String(),
			"old_time_slot_id": oldSlot.ID.String(),
			"new_time_slot_id": newSlot.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	u.slotCache.Invalidate(ctx, oldSlot.ClinicianID, oldSlot.StartTime)
	u.slotCache.Invalidate(ctx, newSlot.ClinicianID, newSlot.StartTime)
	u.log.Infof("Appointment rescheduled: id=%s, old_slot=%s, new_slot=%s", id, oldSlot.ID, newSlot.ID)

	return u.refresh(ctx, rescheduled)
}

// refresh reloads the appointment with its relations for the response view,
// falling back to the in-memory entity if the reload fails.
func (u *bookingUsecase) refresh(ctx context.Context, appointment *entity.Appointment) (*dto.AppointmentResponse, error) {
	full, err := u.apptRepo.FindByID(ctx, appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}
