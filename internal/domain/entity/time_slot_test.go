package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newAvailableSlot() *TimeSlot {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	return &TimeSlot{
		ID:          uuid.New(),
		ClinicianID: uuid.New(),
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		IsAvailable: true,
	}
}

func TestTimeSlotReserve(t *testing.T) {
	t.Run("Reserve Available Slot", func(t *testing.T) {
		slot := newAvailableSlot()

		err := slot.Reserve()

		assert.NoError(t, err)
		assert.False(t, slot.IsAvailable)
	})

	t.Run("Reserve Already Reserved Slot", func(t *testing.T) {
		slot := newAvailableSlot()
		assert.NoError(t, slot.Reserve())

		err := slot.Reserve()

		assert.ErrorIs(t, err, ErrSlotUnavailable)
		assert.False(t, slot.IsAvailable)
	})
}

func TestTimeSlotRelease(t *testing.T) {
	t.Run("Release Reserved Slot", func(t *testing.T) {
		slot := newAvailableSlot()
		assert.NoError(t, slot.Reserve())

		slot.Release()

		assert.True(t, slot.IsAvailable)
	})

	t.Run("Release Is Idempotent", func(t *testing.T) {
		slot := newAvailableSlot()

		slot.Release()
		slot.Release()

		assert.True(t, slot.IsAvailable)
	})
}

func TestTimeSlotRetire(t *testing.T) {
	slot := newAvailableSlot()

	slot.Retire()

	assert.True(t, slot.Retired)
}

func TestTimeSlotDuration(t *testing.T) {
	slot := newAvailableSlot()

	assert.Equal(t, 30*time.Minute, slot.Duration())
}
