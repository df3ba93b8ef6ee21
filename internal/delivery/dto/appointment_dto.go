package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	TimeSlotID uuid.UUID `json:"time_slot_id" validate:"required"`
	Notes      string    `json:"notes" validate:"omitempty,max=1000"`
}

type RescheduleAppointmentRequest struct {
	NewTimeSlotID uuid.UUID `json:"new_time_slot_id" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          uuid.UUID         `json:"id"`
	PatientID   uuid.UUID         `json:"patient_id"`
	ClinicianID uuid.UUID         `json:"clinician_id"`
	TimeSlotID  uuid.UUID         `json:"time_slot_id"`
	Status      string            `json:"status"`
	Notes       string            `json:"notes,omitempty"`
	TimeSlot    *TimeSlotResponse `json:"time_slot,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
