package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewAppointment(t *testing.T) {
	t.Run("Creates Pending Appointment And Reserves Slot", func(t *testing.T) {
		slot := newAvailableSlot()
		patientID := uuid.New()

		appointment, err := NewAppointment(patientID, slot, "first visit")

		assert.NoError(t, err)
		assert.Equal(t, AppointmentStatusPending, appointment.Status)
		assert.Equal(t, patientID, appointment.PatientID)
		assert.Equal(t, slot.ID, appointment.TimeSlotID)
		assert.Equal(t, slot.ClinicianID, appointment.ClinicianID)
		assert.False(t, slot.IsAvailable)
	})

	t.Run("Fails On Reserved Slot", func(t *testing.T) {
		slot := newAvailableSlot()
		assert.NoError(t, slot.Reserve())

		appointment, err := NewAppointment(uuid.New(), slot, "")

		assert.ErrorIs(t, err, ErrSlotUnavailable)
		assert.Nil(t, appointment)
	})
}

func TestAppointmentConfirm(t *testing.T) {
	t.Run("Confirm Pending", func(t *testing.T) {
		appointment, _ := NewAppointment(uuid.New(), newAvailableSlot(), "")

		err := appointment.Confirm()

		assert.NoError(t, err)
		assert.True(t, appointment.IsConfirmed())
	})

	t.Run("Confirm Twice Fails", func(t *testing.T) {
		appointment, _ := NewAppointment(uuid.New(), newAvailableSlot(), "")
		assert.NoError(t, appointment.Confirm())

		err := appointment.Confirm()

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("Confirm Cancelled Fails", func(t *testing.T) {
		appointment, _ := NewAppointment(uuid.New(), newAvailableSlot(), "")
		assert.NoError(t, appointment.Cancel())

		err := appointment.Confirm()

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestAppointmentCancel(t *testing.T) {
	t.Run("Cancel Pending", func(t *testing.T) {
		appointment, _ := NewAppointment(uuid.New(), newAvailableSlot(), "")

		err := appointment.Cancel()

		assert.NoError(t, err)
		assert.True(t, appointment.IsCancelled())
	})

	t.Run("Cancel Confirmed", func(t *testing.T) {
		appointment, _ := NewAppointment(uuid.New(), newAvailableSlot(), "")
		assert.NoError(t, appointment.Confirm())

		err := appointment.Cancel()

		assert.NoError(t, err)
		assert.True(t, appointment.IsCancelled())
	})

	t.Run("Cancel From Terminal State Fails", func(t *testing.T) {
		appointment, _ := NewAppointment(uuid.New(), newAvailableSlot(), "")
		assert.NoError(t, appointment.Cancel())

		err := appointment.Cancel()

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestAppointmentComplete(t *testing.T) {
	t.Run("Complete Confirmed", func(t *testing.T) {
		appointment, _ := NewAppointment(uuid.New(), newAvailableSlot(), "")
		assert.NoError(t, appointment.Confirm())

		err := appointment.Complete()

		assert.NoError(t, err)
		assert.Equal(t, AppointmentStatusCompleted, appointment.Status)
	})

	t.Run("Complete Pending Fails", func(t *testing.T) {
		appointment, _ := NewAppointment(uuid.New(), newAvailableSlot(), "")

		err := appointment.Complete()

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestAppointmentReschedule(t *testing.T) {
	t.Run("Rebinds To New Slot", func(t *testing.T) {
		oldSlot := newAvailableSlot()
		newSlot := newAvailableSlot()
		appointment, _ := NewAppointment(uuid.New(), oldSlot, "")

		err := appointment.Reschedule(newSlot)

		assert.NoError(t, err)
		assert.Equal(t, newSlot.ID, appointment.TimeSlotID)
		assert.Equal(t, newSlot.ClinicianID, appointment.ClinicianID)
		assert.False(t, newSlot.IsAvailable)
	})

	t.Run("Failed Reservation Leaves Binding Untouched", func(t *testing.T) {
		oldSlot := newAvailableSlot()
		newSlot := newAvailableSlot()
		assert.NoError(t, newSlot.Reserve())
		appointment, _ := NewAppointment(uuid.New(), oldSlot, "")

		err := appointment.Reschedule(newSlot)

		assert.ErrorIs(t, err, ErrSlotUnavailable)
		assert.Equal(t, oldSlot.ID, appointment.TimeSlotID)
	})

	t.Run("Reschedule Terminal Appointment Fails", func(t *testing.T) {
		oldSlot := newAvailableSlot()
		newSlot := newAvailableSlot()
		appointment, _ := NewAppointment(uuid.New(), oldSlot, "")
		assert.NoError(t, appointment.Cancel())

		err := appointment.Reschedule(newSlot)

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.True(t, newSlot.IsAvailable)
	})
}

func TestAppointmentStatusIsTerminal(t *testing.T) {
	assert.False(t, AppointmentStatusPending.IsTerminal())
	assert.False(t, AppointmentStatusConfirmed.IsTerminal())
	assert.True(t, AppointmentStatusCancelled.IsTerminal())
	assert.True(t, AppointmentStatusCompleted.IsTerminal())
}
