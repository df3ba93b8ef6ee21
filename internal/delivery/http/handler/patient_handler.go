package handler

import (
	"net/http"

	"clinic-booking-service/internal/delivery/http/middleware"
	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/response"
)

type PatientHandler struct {
	patientUsecase usecase.PatientProfileUsecase
}

func NewPatientHandler(patientUsecase usecase.PatientProfileUsecase) *PatientHandler {
	return &PatientHandler{patientUsecase: patientUsecase}
}

func (h *PatientHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return
	}

	patient, err := h.patientUsecase.GetByUserID(r.Context(), userID)
	if err != nil {
		if err == usecase.ErrPatientNotFound {
			response.NotFound(w, "Patient profile not found")
			return
		}
		response.InternalServerError(w, "Failed to get patient profile")
		return
	}

	response.Success(w, http.StatusOK, "Patient profile retrieved successfully", patient)
}
