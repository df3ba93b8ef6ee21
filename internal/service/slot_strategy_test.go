package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFixedWindowStrategyGenerateSlots(t *testing.T) {
	strategy := NewDefaultSlotStrategy()
	clinicianID := uuid.New()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Generates Full Day Of Slots", func(t *testing.T) {
		slots := strategy.GenerateSlots(clinicianID, date, 0)

		assert.Len(t, slots, 20)
		assert.Equal(t, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), slots[0].StartTime.UTC())
		assert.Equal(t, time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC), slots[len(slots)-1].EndTime.UTC())
	})

	t.Run("Slots Are Contiguous And Fixed Length", func(t *testing.T) {
		slots := strategy.GenerateSlots(clinicianID, date, 0)

		for i, slot := range slots {
			assert.Equal(t, 30*time.Minute, slot.Duration())
			if i > 0 {
				assert.True(t, slot.StartTime.Equal(slots[i-1].EndTime), "slot %d should start where slot %d ends", i, i-1)
			}
		}
	})

	t.Run("All Slots Start Available And Owned By Clinician", func(t *testing.T) {
		slots := strategy.GenerateSlots(clinicianID, date, 0)

		seen := map[uuid.UUID]bool{}
		for _, slot := range slots {
			assert.True(t, slot.IsAvailable)
			assert.False(t, slot.Retired)
			assert.Equal(t, clinicianID, slot.ClinicianID)
			assert.False(t, seen[slot.ID], "slot IDs must be unique")
			seen[slot.ID] = true
		}
	})

	t.Run("UTC Offset Shifts The Window", func(t *testing.T) {
		slots := strategy.GenerateSlots(clinicianID, date, 7*time.Hour)

		// 08:00 at UTC+7 is 01:00 UTC
		assert.Equal(t, time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC), slots[0].StartTime.UTC())
	})

	t.Run("Custom Window And Interval", func(t *testing.T) {
		custom := &FixedWindowStrategy{StartHour: 9, EndHour: 12, Interval: time.Hour}

		slots := custom.GenerateSlots(clinicianID, date, 0)

		assert.Len(t, slots, 3)
		assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), slots[0].StartTime.UTC())
		assert.Equal(t, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), slots[2].EndTime.UTC())
	})
}
