package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidTransition is returned when an appointment status change violates
// the state machine rules.
var ErrInvalidTransition = errors.New("invalid appointment status transition")

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// IsTerminal reports whether no further transition is permitted from the status.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCancelled || s == AppointmentStatusCompleted
}

// Appointment binds a patient to exactly one time slot at any instant.
// Status is mutated only through Confirm/Cancel/Complete/Reschedule; the slot
// coupling (reserve on create, release on cancel, swap on reschedule) is
// coordinated by the booking usecase inside a single transaction.
type Appointment struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	ClinicianID uuid.UUID         `gorm:"type:uuid;not null;index" json:"clinician_id"`
	TimeSlotID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"time_slot_id"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes       string            `gorm:"type:text" json:"notes,omitempty"`
	Version     int64             `gorm:"not null;default:0" json:"-"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient  PatientProfile `gorm:"foreignKey:PatientID;references:UserID" json:"patient,omitempty"`
	TimeSlot TimeSlot       `gorm:"foreignKey:TimeSlotID" json:"time_slot,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// NewAppointment reserves the slot and creates a pending appointment bound to
// it. The clinician is derived from the slot.
func NewAppointment(patientID uuid.UUID, slot *TimeSlot, notes string) (*Appointment, error) {
	if err := slot.Reserve(); err != nil {
		return nil, err
	}

	return &Appointment{
		ID:          uuid.New(),
		PatientID:   patientID,
		ClinicianID: slot.ClinicianID,
		TimeSlotID:  slot.ID,
		Status:      AppointmentStatusPending,
		Notes:       notes,
	}, nil
}

// Confirm moves the appointment from pending to confirmed.
func (a *Appointment) Confirm() error {
	if a.Status != AppointmentStatusPending {
		return ErrInvalidTransition
	}
	a.Status = AppointmentStatusConfirmed
	return nil
}

// Cancel moves the appointment to its cancelled terminal state. The caller is
// responsible for releasing the bound slot in the same transaction.
func (a *Appointment) Cancel() error {
	if a.Status.IsTerminal() {
		return ErrInvalidTransition
	}
	a.Status = AppointmentStatusCancelled
	return nil
}

// Complete moves a confirmed appointment to its completed terminal state.
// Completion is driven by an external trigger, not by the booking flow.
func (a *Appointment) Complete() error {
	if a.Status != AppointmentStatusConfirmed {
		return ErrInvalidTransition
	}
	a.Status = AppointmentStatusCompleted
	return nil
}

// Reschedule reserves newSlot and rebinds the appointment to it. The binding
// is updated only after the reservation succeeds, so a failed reservation
// leaves the appointment untouched. Releasing the previously bound slot is the
// caller's responsibility.
func (a *Appointment) Reschedule(newSlot *TimeSlot) error {
	if a.Status.IsTerminal() {
		return ErrInvalidTransition
	}
	if err := newSlot.Reserve(); err != nil {
		return err
	}
	a.TimeSlotID = newSlot.ID
	a.ClinicianID = newSlot.ClinicianID
	return nil
}

// IsPending checks if the appointment is in pending status
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsConfirmed checks if the appointment is confirmed
func (a *Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}
