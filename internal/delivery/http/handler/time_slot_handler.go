package handler

import (
	"encoding/json"
	"net/http"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/response"
	"clinic-booking-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type TimeSlotHandler struct {
	timeSlotUsecase usecase.TimeSlotUsecase
	validator       *validator.CustomValidator
}

func NewTimeSlotHandler(timeSlotUsecase usecase.TimeSlotUsecase, validator *validator.CustomValidator) *TimeSlotHandler {
	return &TimeSlotHandler{
		timeSlotUsecase: timeSlotUsecase,
		validator:       validator,
	}
}

func (h *TimeSlotHandler) GenerateSlots(w http.ResponseWriter, r *http.Request) {
	clinicianID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid clinician ID", nil)
		return
	}

	var req dto.GenerateTimeSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slots, err := h.timeSlotUsecase.GenerateSlots(r.Context(), clinicianID, &req)
	if err != nil {
		switch err {
		case usecase.ErrClinicianNotFound:
			response.NotFound(w, "Clinician not found")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to generate time slots")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Time slots generated successfully", slots)
}

func (h *TimeSlotHandler) GetClinicianSlots(w http.ResponseWriter, r *http.Request) {
	clinicianID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid clinician ID", nil)
		return
	}

	// Optional date filter returns only available slots for that day
	if date := r.URL.Query().Get("date"); date != "" {
		slots, err := h.timeSlotUsecase.GetAvailableByClinicianAndDate(r.Context(), clinicianID, date)
		if err != nil {
			if err == usecase.ErrInvalidDateFormat {
				response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
				return
			}
			response.InternalServerError(w, "Failed to get time slots")
			return
		}
		response.Success(w, http.StatusOK, "Available time slots retrieved successfully", slots)
		return
	}

	slots, err := h.timeSlotUsecase.GetByClinician(r.Context(), clinicianID)
	if err != nil {
		response.InternalServerError(w, "Failed to get time slots")
		return
	}

	response.Success(w, http.StatusOK, "Time slots retrieved successfully", slots)
}

func (h *TimeSlotHandler) RetireSlot(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid time slot ID", nil)
		return
	}

	if err := h.timeSlotUsecase.RetireSlot(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Time slot not found")
		case usecase.ErrSlotReserved:
			response.Conflict(w, "Time slot is reserved and cannot be retired")
		default:
			response.InternalServerError(w, "Failed to retire time slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Time slot retired successfully", nil)
}
