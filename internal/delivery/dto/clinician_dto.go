package dto

import (
	"github.com/google/uuid"
)

type ClinicianResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	LicenseNumber  string    `json:"license_number"`
	Specialization string    `json:"specialization"`
	Biography      string    `json:"biography,omitempty"`
}

type ClinicianListResponse struct {
	Clinicians []ClinicianResponse `json:"clinicians"`
	Total      int                 `json:"total"`
}
