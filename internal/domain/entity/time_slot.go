package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrSlotUnavailable is returned when a reservation is attempted on a slot
// that is already reserved.
var ErrSlotUnavailable = errors.New("time slot is not available")

// TimeSlot represents a fixed-duration bookable interval owned by a clinician.
// The interval is half-open: [StartTime, EndTime). Version is the conflict
// token checked and incremented by the repository on every write; a stale
// token fails the write instead of silently overwriting.
type TimeSlot struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClinicianID uuid.UUID `gorm:"type:uuid;not null;index" json:"clinician_id"`
	StartTime   time.Time `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	IsAvailable bool      `gorm:"not null;default:true;index" json:"is_available"`
	Retired     bool      `gorm:"not null;default:false" json:"retired"`
	Version     int64     `gorm:"not null;default:0" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Clinician ClinicianProfile `gorm:"foreignKey:ClinicianID;references:UserID" json:"clinician,omitempty"`
}

func (TimeSlot) TableName() string {
	return "time_slots"
}

// Reserve marks the slot as taken. A slot is either fully available or fully
// reserved, so reserving an already reserved slot fails.
func (s *TimeSlot) Reserve() error {
	if !s.IsAvailable {
		return ErrSlotUnavailable
	}
	s.IsAvailable = false
	return nil
}

// Release marks the slot as available again. Releasing an already available
// slot is a no-op, not an error.
func (s *TimeSlot) Release() {
	s.IsAvailable = true
}

// Retire soft-retires the slot so it no longer shows up as bookable.
// Slots are never physically deleted.
func (s *TimeSlot) Retire() {
	s.Retired = true
}

// Duration returns the slot length.
func (s *TimeSlot) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
