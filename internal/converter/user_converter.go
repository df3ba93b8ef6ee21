package converter

import (
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role.RoleName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// PatientToResponse converts a PatientProfile entity to PatientResponse DTO
func PatientToResponse(profile *entity.PatientProfile) *dto.PatientResponse {
	if profile == nil {
		return nil
	}

	return &dto.PatientResponse{
		UserID:      profile.UserID,
		FullName:    profile.User.FullName,
		Email:       profile.User.Email,
		PhoneNumber: profile.PhoneNumber,
		DateOfBirth: profile.DateOfBirth.Format("2006-01-02"),
		Gender:      profile.Gender,
		Address:     profile.Address,
		CreatedAt:   profile.User.CreatedAt,
	}
}

// ClinicianToResponse converts a ClinicianProfile entity to ClinicianResponse DTO
func ClinicianToResponse(profile *entity.ClinicianProfile) *dto.ClinicianResponse {
	if profile == nil {
		return nil
	}

	return &dto.ClinicianResponse{
		UserID:         profile.UserID,
		FullName:       profile.User.FullName,
		Email:          profile.User.Email,
		LicenseNumber:  profile.LicenseNumber,
		Specialization: profile.Specialization,
		Biography:      profile.Biography,
	}
}

// CliniciansToResponses converts a slice of ClinicianProfile entities to response DTOs
func CliniciansToResponses(profiles []entity.ClinicianProfile) []dto.ClinicianResponse {
	responses := make([]dto.ClinicianResponse, len(profiles))
	for i := range profiles {
		resp := ClinicianToResponse(&profiles[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
