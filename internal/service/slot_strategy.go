package service

import (
	"time"

	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
)

// SlotGenerationStrategy produces the candidate time slots for one clinician
// on one day. Implementations are pure: they allocate fresh slots and leave
// persistence to the caller. The interface exists so clinics can swap in
// their own windows and intervals without touching the booking core.
type SlotGenerationStrategy interface {
	GenerateSlots(clinicianID uuid.UUID, date time.Time, utcOffset time.Duration) []entity.TimeSlot
}

// FixedWindowStrategy generates contiguous fixed-length slots inside a daily
// wall-clock window, expressed in the clinician's local offset.
type FixedWindowStrategy struct {
	StartHour int
	EndHour   int
	Interval  time.Duration
}

// NewDefaultSlotStrategy returns the stock policy: 08:00 to 18:00 local time
// in 30-minute slots, 20 slots per day.
func NewDefaultSlotStrategy() *FixedWindowStrategy {
	return &FixedWindowStrategy{
		StartHour: 8,
		EndHour:   18,
		Interval:  30 * time.Minute,
	}
}

func (s *FixedWindowStrategy) GenerateSlots(clinicianID uuid.UUID, date time.Time, utcOffset time.Duration) []entity.TimeSlot {
	zone := time.FixedZone("", int(utcOffset.Seconds()))

	windowStart := time.Date(date.Year(), date.Month(), date.Day(), s.StartHour, 0, 0, 0, zone)
	windowEnd := time.Date(date.Year(), date.Month(), date.Day(), s.EndHour, 0, 0, 0, zone)

	count := int(windowEnd.Sub(windowStart) / s.Interval)
	slots := make([]entity.TimeSlot, 0, count)

	for start := windowStart; start.Before(windowEnd); start = start.Add(s.Interval) {
		slots = append(slots, entity.TimeSlot{
			ID:          uuid.New(),
			ClinicianID: clinicianID,
			StartTime:   start,
			EndTime:     start.Add(s.Interval),
			IsAvailable: true,
		})
	}

	return slots
}
