package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type GenerateTimeSlotsRequest struct {
	Date             string `json:"date" validate:"required"` // Format: YYYY-MM-DD
	UTCOffsetMinutes int    `json:"utc_offset_minutes" validate:"gte=-720,lte=840"`
}

// Response DTOs

type TimeSlotResponse struct {
	ID          uuid.UUID `json:"id"`
	ClinicianID uuid.UUID `json:"clinician_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
}

type TimeSlotListResponse struct {
	TimeSlots []TimeSlotResponse `json:"time_slots"`
	Total     int                `json:"total"`
}
