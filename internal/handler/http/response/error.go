package response

import (
	"errors"
	"net/http"

	"github.com/ladangworks/estate-backend-go/internal/domain/deduction"
	"github.com/ladangworks/estate-backend-go/internal/domain/paycalc"
	"github.com/ladangworks/estate-backend-go/internal/domain/worker"
	"github.com/ladangworks/estate-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Deduction domain errors
	case errors.Is(err, deduction.ErrDeductionTypeNotFound):
		NotFound(w, "Deduction type not found")
	case errors.Is(err, deduction.ErrEffectiveWindowOverlap):
		Conflict(w, err.Error())
	case errors.Is(err, deduction.ErrConfigurationConflict):
		Conflict(w, err.Error())
	case errors.Is(err, deduction.ErrInvalidBracketTable):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, deduction.ErrMissingWageRanges):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, deduction.ErrSalaryOutOfRange):
		BadRequest(w, err.Error(), nil)

	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrWorkerCodeExists):
		Conflict(w, "Worker code already exists")

	// Pay calculation domain errors
	case errors.Is(err, paycalc.ErrPayCalculationNotFound):
		NotFound(w, "Pay calculation not found")
	case errors.Is(err, paycalc.ErrPayCalculationFinalized):
		Conflict(w, "Pay calculation is already finalized")
	case errors.Is(err, paycalc.ErrHasFailedDetails):
		Conflict(w, err.Error())
	case errors.Is(err, paycalc.ErrNoWorkers):
		BadRequest(w, "No active workers to calculate", nil)
	case errors.Is(err, paycalc.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
