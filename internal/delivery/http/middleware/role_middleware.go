package middleware

import (
	"net/http"

	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the
// required roles. Role is read from context (set by AuthMiddleware from JWT
// claims).
func RequireRole(allowedRoleIDs ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			for _, allowedRoleID := range allowedRoleIDs {
				if roleID == allowedRoleID {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

// RequirePatient is a convenience middleware for patient-only endpoints
func RequirePatient(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDPatient)(next)
}

// RequireClinician is a convenience middleware for clinician-only endpoints
func RequireClinician(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDClinician)(next)
}

// RequireClinicianOrAdmin is a convenience middleware for schedule management endpoints
func RequireClinicianOrAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDClinician, entity.RoleIDAdmin)(next)
}
