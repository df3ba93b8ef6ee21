package http

import (
	"net/http"

	"clinic-booking-service/internal/delivery/http/handler"
	"clinic-booking-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	patientHandler     *handler.PatientHandler
	clinicianHandler   *handler.ClinicianHandler
	timeSlotHandler    *handler.TimeSlotHandler
	appointmentHandler *handler.AppointmentHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	clinicianHandler *handler.ClinicianHandler,
	timeSlotHandler *handler.TimeSlotHandler,
	appointmentHandler *handler.AppointmentHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		patientHandler:     patientHandler,
		clinicianHandler:   clinicianHandler,
		timeSlotHandler:    timeSlotHandler,
		appointmentHandler: appointmentHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/clinician", r.authHandler.RegisterClinician).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Patient routes (protected - patient only)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Use(middleware.RequirePatient)
	patients.HandleFunc("/me", r.patientHandler.GetMe).Methods(http.MethodGet)

	// Clinician directory (protected - any authenticated user)
	clinicians := api.PathPrefix("/clinicians").Subrouter()
	clinicians.Use(r.authMiddleware.Authenticate)
	clinicians.HandleFunc("", r.clinicianHandler.GetAllClinicians).Methods(http.MethodGet)
	clinicians.HandleFunc("/{id}", r.clinicianHandler.GetClinician).Methods(http.MethodGet)
	clinicians.HandleFunc("/{id}/timeslots", r.timeSlotHandler.GetClinicianSlots).Methods(http.MethodGet)

	// Schedule management (protected - clinician or admin)
	schedule := api.PathPrefix("/clinicians").Subrouter()
	schedule.Use(r.authMiddleware.Authenticate)
	schedule.Use(middleware.RequireClinicianOrAdmin)
	schedule.HandleFunc("/{id}/timeslots", r.timeSlotHandler.GenerateSlots).Methods(http.MethodPost)

	timeslots := api.PathPrefix("/timeslots").Subrouter()
	timeslots.Use(r.authMiddleware.Authenticate)
	timeslots.Use(middleware.RequireClinicianOrAdmin)
	timeslots.HandleFunc("/{id}", r.timeSlotHandler.RetireSlot).Methods(http.MethodDelete)

	// Appointment booking (protected - patient only)
	booking := api.PathPrefix("/appointments").Subrouter()
	booking.Use(r.authMiddleware.Authenticate)
	booking.Use(middleware.RequirePatient)
	booking.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	booking.HandleFunc("", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	booking.HandleFunc("/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	booking.HandleFunc("/{id}/reschedule", r.appointmentHandler.RescheduleAppointment).Methods(http.MethodPost)

	// Appointment lifecycle (protected - any authenticated user reads,
	// clinician or admin confirms)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)

	lifecycle := api.PathPrefix("/appointments").Subrouter()
	lifecycle.Use(r.authMiddleware.Authenticate)
	lifecycle.Use(middleware.RequireClinicianOrAdmin)
	lifecycle.HandleFunc("/{id}/confirm", r.appointmentHandler.ConfirmAppointment).Methods(http.MethodPost)
	lifecycle.HandleFunc("/{id}/complete", r.appointmentHandler.CompleteAppointment).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
