package paycalc

import "errors"

var (
	ErrPayCalculationNotFound  = errors.New("pay calculation not found")
	ErrPayCalculationFinalized = errors.New("pay calculation already finalized, cannot modify")
	ErrHasFailedDetails        = errors.New("pay calculation has failed worker breakdowns")
	ErrNoWorkers               = errors.New("no active workers to calculate")
	ErrInvalidPeriod           = errors.New("invalid pay period")
)
