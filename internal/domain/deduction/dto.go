package deduction

import (
	"github.com/ladangworks/estate-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== DEDUCTION TYPE DTOs ==========

type CreateDeductionTypeRequest struct {
	Code              string           `json:"code"`
	Name              string           `json:"name"`
	CalculationType   string           `json:"calculation_type"` // "percentage" or "fixed"
	EmployeeRate      *decimal.Decimal `json:"employee_rate,omitempty"`
	EmployerRate      *decimal.Decimal `json:"employer_rate,omitempty"`
	AppliesTo         string           `json:"applies_to"` // "all", "local" or "foreigner"
	EffectiveFrom     string           `json:"effective_from"`
	EffectiveUntil    *string          `json:"effective_until,omitempty"`
	RoundingMethod    string           `json:"rounding_method"`
	RoundingPrecision int32            `json:"rounding_precision"`
}

func (r *CreateDeductionTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.CalculationType != string(CalculationTypePercentage) && r.CalculationType != string(CalculationTypeFixed) {
		errs = append(errs, validator.ValidationError{Field: "calculation_type", Message: "must be 'percentage' or 'fixed'"})
	}
	if r.CalculationType == string(CalculationTypePercentage) {
		if r.EmployeeRate == nil || r.EmployerRate == nil {
			errs = append(errs, validator.ValidationError{Field: "employee_rate", Message: "employee_rate and employer_rate are required for percentage types"})
		} else if r.EmployeeRate.IsNegative() || r.EmployerRate.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "employee_rate", Message: "rates must be non-negative"})
		}
	}
	if !validator.IsInSlice(r.AppliesTo, []string{string(NationalityAll), string(NationalityLocal), string(NationalityForeigner)}) {
		errs = append(errs, validator.ValidationError{Field: "applies_to", Message: "must be 'all', 'local' or 'foreigner'"})
	}
	from, ok := validator.IsValidDate(r.EffectiveFrom)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be a date in YYYY-MM-DD format"})
	}
	if r.EffectiveUntil != nil {
		until, ok := validator.IsValidDate(*r.EffectiveUntil)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "effective_until", Message: "must be a date in YYYY-MM-DD format"})
		} else if until.Before(from) {
			errs = append(errs, validator.ValidationError{Field: "effective_until", Message: "must not be before effective_from"})
		}
	}
	if !validator.IsInSlice(r.RoundingMethod, []string{string(RoundingHalfUp), string(RoundingBank), string(RoundingCeil), string(RoundingFloor)}) {
		errs = append(errs, validator.ValidationError{Field: "rounding_method", Message: "must be 'round', 'round_bank', 'ceil' or 'floor'"})
	}
	if r.RoundingPrecision < 0 {
		errs = append(errs, validator.ValidationError{Field: "rounding_precision", Message: "must be zero or positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeductionTypeResponse struct {
	ID                string              `json:"id"`
	Code              string              `json:"code"`
	Name              string              `json:"name"`
	CalculationType   string              `json:"calculation_type"`
	EmployeeRate      decimal.Decimal     `json:"employee_rate"`
	EmployerRate      decimal.Decimal     `json:"employer_rate"`
	AppliesTo         string              `json:"applies_to"`
	IsActive          bool                `json:"is_active"`
	EffectiveFrom     string              `json:"effective_from"`
	EffectiveUntil    *string             `json:"effective_until,omitempty"`
	RoundingMethod    string              `json:"rounding_method"`
	RoundingPrecision int32               `json:"rounding_precision"`
	WageRanges        []WageRangeResponse `json:"wage_ranges,omitempty"`
}

// ========== WAGE RANGE DTOs ==========

// ReplaceWageRangesRequest replaces the whole bracket table of one deduction
// type. The table is validated as a unit before anything is written.
type ReplaceWageRangesRequest struct {
	DeductionTypeID string             `json:"-"`
	Ranges          []WageRangeRequest `json:"ranges"`
}

type WageRangeRequest struct {
	MinWage            decimal.Decimal  `json:"min_wage"`
	MaxWage            *decimal.Decimal `json:"max_wage,omitempty"`
	CalculationMethod  string           `json:"calculation_method"` // "fixed" or "percentage"
	EmployeeAmount     decimal.Decimal  `json:"employee_amount"`
	EmployerAmount     decimal.Decimal  `json:"employer_amount"`
	EmployeePercentage decimal.Decimal  `json:"employee_percentage"`
	EmployerPercentage decimal.Decimal  `json:"employer_percentage"`
}

func (r *ReplaceWageRangesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Ranges) == 0 {
		errs = append(errs, validator.ValidationError{Field: "ranges", Message: "at least one range is required"})
	}
	for _, rng := range r.Ranges {
		if rng.CalculationMethod != string(CalculationTypeFixed) && rng.CalculationMethod != string(CalculationTypePercentage) {
			errs = append(errs, validator.ValidationError{Field: "calculation_method", Message: "must be 'fixed' or 'percentage'"})
			break
		}
	}
	for _, rng := range r.Ranges {
		if rng.MinWage.IsNegative() ||
			rng.EmployeeAmount.IsNegative() || rng.EmployerAmount.IsNegative() ||
			rng.EmployeePercentage.IsNegative() || rng.EmployerPercentage.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "ranges", Message: "amounts and percentages must be non-negative"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WageRangeResponse struct {
	ID                 string           `json:"id"`
	MinWage            decimal.Decimal  `json:"min_wage"`
	MaxWage            *decimal.Decimal `json:"max_wage,omitempty"`
	CalculationMethod  string           `json:"calculation_method"`
	EmployeeAmount     decimal.Decimal  `json:"employee_amount"`
	EmployerAmount     decimal.Decimal  `json:"employer_amount"`
	EmployeePercentage decimal.Decimal  `json:"employee_percentage"`
	EmployerPercentage decimal.Decimal  `json:"employer_percentage"`
}
