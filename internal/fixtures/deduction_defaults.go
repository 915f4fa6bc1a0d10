package fixtures

import (
	"time"

	"github.com/ladangworks/estate-backend-go/internal/domain/deduction"
	"github.com/shopspring/decimal"
)

// StatutoryDefault couples one deduction type version with its bracket table
// (empty for flat-percentage types). Seeded into an empty database so a fresh
// install can run payroll immediately.
type StatutoryDefault struct {
	Type   deduction.DeductionType
	Ranges []deduction.WageRange
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

var defaultEffectiveFrom = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// DefaultStatutoryDeductions returns the Malaysian statutory set in force
// since 2024: EPF (bracketed employer rate), SOCSO (contribution schedule,
// abridged) and EIS (locals only).
func DefaultStatutoryDeductions() []StatutoryDefault {
	return []StatutoryDefault{
		{
			// EPF rounds contributions up to the next whole ringgit; the
			// employer share steps down above RM5000.
			Type: deduction.DeductionType{
				Code:              "EPF_LOCAL",
				Name:              "Employees Provident Fund",
				CalculationType:   deduction.CalculationTypeFixed,
				AppliesTo:         deduction.NationalityLocal,
				IsActive:          true,
				EffectiveFrom:     defaultEffectiveFrom,
				RoundingMethod:    deduction.RoundingCeil,
				RoundingPrecision: 0,
			},
			Ranges: []deduction.WageRange{
				{
					MinWage:            d("0"),
					MaxWage:            dp("5000.00"),
					CalculationMethod:  deduction.CalculationTypePercentage,
					EmployeePercentage: d("11"),
					EmployerPercentage: d("13"),
				},
				{
					MinWage:            d("5000.01"),
					CalculationMethod:  deduction.CalculationTypePercentage,
					EmployeePercentage: d("11"),
					EmployerPercentage: d("12"),
				},
			},
		},
		{
			// Abridged SOCSO schedule; the full table ships via the wage-range
			// import endpoint.
			Type: deduction.DeductionType{
				Code:              "SOCSO_ALL",
				Name:              "Social Security Organisation",
				CalculationType:   deduction.CalculationTypeFixed,
				AppliesTo:         deduction.NationalityAll,
				IsActive:          true,
				EffectiveFrom:     defaultEffectiveFrom,
				RoundingMethod:    deduction.RoundingHalfUp,
				RoundingPrecision: 2,
			},
			Ranges: []deduction.WageRange{
				{MinWage: d("0"), MaxWage: dp("2900.00"), CalculationMethod: deduction.CalculationTypeFixed, EmployeeAmount: d("14.25"), EmployerAmount: d("49.75")},
				{MinWage: d("2900.01"), MaxWage: dp("3000.00"), CalculationMethod: deduction.CalculationTypeFixed, EmployeeAmount: d("14.75"), EmployerAmount: d("51.65")},
				{MinWage: d("3000.01"), MaxWage: dp("4000.00"), CalculationMethod: deduction.CalculationTypeFixed, EmployeeAmount: d("17.25"), EmployerAmount: d("60.35")},
				{MinWage: d("4000.01"), MaxWage: dp("5000.00"), CalculationMethod: deduction.CalculationTypeFixed, EmployeeAmount: d("22.25"), EmployerAmount: d("77.75")},
				{MinWage: d("5000.01"), CalculationMethod: deduction.CalculationTypeFixed, EmployeeAmount: d("24.75"), EmployerAmount: d("86.65")},
			},
		},
		{
			// EIS does not cover foreign workers.
			Type: deduction.DeductionType{
				Code:              "EIS_LOCAL",
				Name:              "Employment Insurance System",
				CalculationType:   deduction.CalculationTypePercentage,
				EmployeeRate:      d("0.2"),
				EmployerRate:      d("0.2"),
				AppliesTo:         deduction.NationalityLocal,
				IsActive:          true,
				EffectiveFrom:     defaultEffectiveFrom,
				RoundingMethod:    deduction.RoundingHalfUp,
				RoundingPrecision: 2,
			},
		},
	}
}
