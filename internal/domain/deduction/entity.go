package deduction

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculationType enum
type CalculationType string

const (
	// CalculationTypePercentage applies a flat percentage of gross salary.
	CalculationTypePercentage CalculationType = "percentage"
	// CalculationTypeFixed delegates to the type's wage-range table; each
	// range carries its own fixed-amount or percentage rule.
	CalculationTypeFixed CalculationType = "fixed"
)

// NationalityClass enum
type NationalityClass string

const (
	NationalityAll       NationalityClass = "all"
	NationalityLocal     NationalityClass = "local"
	NationalityForeigner NationalityClass = "foreigner"
)

// RoundingMethod enum. "round" is half away from zero (half-up for the
// non-negative amounts produced here); "round_bank" is half-even for
// regulators that publish banker's-rounded tables.
type RoundingMethod string

const (
	RoundingHalfUp RoundingMethod = "round"
	RoundingBank   RoundingMethod = "round_bank"
	RoundingCeil   RoundingMethod = "ceil"
	RoundingFloor  RoundingMethod = "floor"
)

// DeductionType - one effective-dated version of a statutory deduction.
// The same code may appear in multiple rows, each covering a different
// effective window; past versions are never edited, new ones are inserted.
type DeductionType struct {
	ID                string
	Code              string
	Name              string
	CalculationType   CalculationType
	EmployeeRate      decimal.Decimal // percent value, 11.0 means 11%
	EmployerRate      decimal.Decimal
	AppliesTo         NationalityClass
	IsActive          bool
	EffectiveFrom     time.Time
	EffectiveUntil    *time.Time // nil = open-ended
	RoundingMethod    RoundingMethod
	RoundingPrecision int32
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// EffectiveOn reports whether this version covers the given date.
func (d DeductionType) EffectiveOn(asOf time.Time) bool {
	if asOf.Before(d.EffectiveFrom) {
		return false
	}
	return d.EffectiveUntil == nil || !asOf.After(*d.EffectiveUntil)
}

// AppliesToNationality reports whether this version covers a worker of the
// given class.
func (d DeductionType) AppliesToNationality(class NationalityClass) bool {
	return d.AppliesTo == NationalityAll || d.AppliesTo == class
}

// ScopeOverlaps reports whether two versions can ever match the same worker.
func (d DeductionType) ScopeOverlaps(other DeductionType) bool {
	return d.AppliesTo == NationalityAll || other.AppliesTo == NationalityAll || d.AppliesTo == other.AppliesTo
}

// WindowOverlaps reports whether the effective windows intersect.
func (d DeductionType) WindowOverlaps(other DeductionType) bool {
	if d.EffectiveUntil != nil && d.EffectiveUntil.Before(other.EffectiveFrom) {
		return false
	}
	if other.EffectiveUntil != nil && other.EffectiveUntil.Before(d.EffectiveFrom) {
		return false
	}
	return true
}

// WageRange - one salary interval of a bracket-based deduction type.
// min_wage is inclusive; max_wage is inclusive and nil means unbounded above.
type WageRange struct {
	ID                 string
	DeductionTypeID    string
	MinWage            decimal.Decimal
	MaxWage            *decimal.Decimal
	CalculationMethod  CalculationType // fixed amount or percentage of gross
	EmployeeAmount     decimal.Decimal
	EmployerAmount     decimal.Decimal
	EmployeePercentage decimal.Decimal
	EmployerPercentage decimal.Decimal
	CreatedAt          time.Time
}

// Contains reports whether the salary falls inside this range.
func (r WageRange) Contains(salary decimal.Decimal) bool {
	if salary.LessThan(r.MinWage) {
		return false
	}
	return r.MaxWage == nil || !salary.GreaterThan(*r.MaxWage)
}

// Contribution is the employee/employer pair computed for one deduction type.
type Contribution struct {
	Employee decimal.Decimal `json:"employee_amount"`
	Employer decimal.Decimal `json:"employer_amount"`
}

// Breakdown is the per-worker, per-period result of applying every
// applicable deduction type. It is a pure value; persistence belongs to the
// pay-calculation layer.
type Breakdown struct {
	GrossSalary   decimal.Decimal         `json:"gross_salary"`
	Lines         map[string]Contribution `json:"lines"` // keyed by deduction code
	TotalEmployee decimal.Decimal         `json:"total_employee_deductions"`
	TotalEmployer decimal.Decimal         `json:"total_employer_deductions"`
	NetSalary     decimal.Decimal         `json:"net_salary"`
}
