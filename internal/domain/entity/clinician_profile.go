package entity

import "github.com/google/uuid"

// ClinicianProfile represents clinician-specific profile data
type ClinicianProfile struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization string    `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Biography      string    `gorm:"type:text" json:"biography,omitempty"`

	// Relationships
	User      User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TimeSlots []TimeSlot `gorm:"foreignKey:ClinicianID" json:"time_slots,omitempty"`
}

func (ClinicianProfile) TableName() string {
	return "clinician_profiles"
}
