package response

import (
	"errors"
	"net/http"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/auth"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/contract"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/healthrecord"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/leave"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/calendar"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var conflict *leave.ConflictError
	if errors.As(err, &conflict) {
		ValidationConflict(w, conflict)
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingSubject):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInsufficientRole):
		Forbidden(w, "Insufficient role for this action")
	case errors.Is(err, auth.ErrMissingWorkspace):
		Forbidden(w, "Token is not bound to a workspace")

	// Calendar
	case errors.Is(err, calendar.ErrMalformedDate):
		BadRequest(w, "Malformed date, expected YYYY-MM-DD", nil)

	// Contract domain errors
	case errors.Is(err, contract.ErrContractNotFound):
		NotFound(w, "Contract not found")
	case errors.Is(err, contract.ErrContractInactive):
		Conflict(w, "Contract is inactive")

	// Request domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, leave.ErrRequestAlreadyProcessed):
		Conflict(w, "Request already processed")
	case errors.Is(err, leave.ErrRequestInactive):
		Conflict(w, "Request is inactive")
	case errors.Is(err, leave.ErrRequestNotEditable):
		Conflict(w, "Only pending vacation requests can be edited")
	case errors.Is(err, leave.ErrResignationExists):
		Conflict(w, "Contract already has an open resignation")
	case errors.Is(err, leave.ErrNotBusinessDay):
		BadRequest(w, "Start date is not a business day", nil)
	case errors.Is(err, leave.ErrInvertedRange):
		BadRequest(w, "End date is before start date", nil)

	// Health record domain errors
	case errors.Is(err, healthrecord.ErrHealthRecordNotFound):
		NotFound(w, "Health record not found")
	case errors.Is(err, healthrecord.ErrInvalidExportWindow):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
