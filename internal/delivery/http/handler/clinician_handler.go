package handler

import (
	"net/http"

	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ClinicianHandler struct {
	clinicianUsecase usecase.ClinicianProfileUsecase
}

func NewClinicianHandler(clinicianUsecase usecase.ClinicianProfileUsecase) *ClinicianHandler {
	return &ClinicianHandler{clinicianUsecase: clinicianUsecase}
}

func (h *ClinicianHandler) GetAllClinicians(w http.ResponseWriter, r *http.Request) {
	clinicians, err := h.clinicianUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get clinicians")
		return
	}

	response.Success(w, http.StatusOK, "Clinicians retrieved successfully", clinicians)
}

func (h *ClinicianHandler) GetClinician(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid clinician ID", nil)
		return
	}

	clinician, err := h.clinicianUsecase.GetByUserID(r.Context(), id)
	if err != nil {
		if err == usecase.ErrClinicianNotFound {
			response.NotFound(w, "Clinician not found")
			return
		}
		response.InternalServerError(w, "Failed to get clinician")
		return
	}

	response.Success(w, http.StatusOK, "Clinician retrieved successfully", clinician)
}
