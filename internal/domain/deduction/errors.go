package deduction

import "errors"

var (
	ErrDeductionTypeNotFound = errors.New("deduction type not found")

	// ErrNotApplicable is the expected resolution miss: no version of a code
	// covers the worker's nationality and date. It is control flow, not a
	// failure; callers skip the deduction.
	ErrNotApplicable = errors.New("deduction does not apply")

	// ErrConfigurationConflict means more than one active version of a code
	// matches the same nationality and date. The engine never guesses.
	ErrConfigurationConflict = errors.New("conflicting deduction type versions")

	// ErrInvalidBracketTable covers gaps, overlaps, mis-sorted ranges and
	// misplaced unbounded ranges, detected when the table is built.
	ErrInvalidBracketTable = errors.New("invalid wage bracket table")

	// ErrSalaryOutOfRange means no configured bracket covers the salary.
	ErrSalaryOutOfRange = errors.New("salary outside configured wage ranges")

	ErrMissingWageRanges      = errors.New("bracket-based deduction type has no wage ranges")
	ErrEffectiveWindowOverlap = errors.New("effective window overlaps an existing version")
	ErrUnknownRoundingMethod  = errors.New("unknown rounding method")
)
