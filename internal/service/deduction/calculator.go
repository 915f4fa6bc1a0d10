package deduction

import (
	"fmt"

	"github.com/ladangworks/estate-backend-go/internal/domain/deduction"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ContributionCalculator computes the employee/employer pair for one
// deduction type and gross salary.
type ContributionCalculator struct {
}

func NewContributionCalculator() *ContributionCalculator {
	return &ContributionCalculator{}
}

// Compute applies either the flat-percentage rule or the matched wage range's
// own rule. Rounding is applied last, independently to each side, so results
// match regulator-published tables exactly.
func (c *ContributionCalculator) Compute(dt deduction.DeductionType, brackets *WageBracketIndex, gross decimal.Decimal) (deduction.Contribution, error) {
	if gross.IsNegative() {
		return deduction.Contribution{}, fmt.Errorf("%w: gross salary %s is negative", deduction.ErrSalaryOutOfRange, gross)
	}

	var employee, employer decimal.Decimal

	switch dt.CalculationType {
	case deduction.CalculationTypePercentage:
		employee = gross.Mul(dt.EmployeeRate).Div(hundred)
		employer = gross.Mul(dt.EmployerRate).Div(hundred)

	case deduction.CalculationTypeFixed:
		if brackets == nil {
			return deduction.Contribution{}, fmt.Errorf("%w: type %s", deduction.ErrMissingWageRanges, dt.Code)
		}
		rng, err := brackets.Find(gross)
		if err != nil {
			return deduction.Contribution{}, err
		}
		if rng.CalculationMethod == deduction.CalculationTypeFixed {
			employee = rng.EmployeeAmount
			employer = rng.EmployerAmount
		} else {
			employee = gross.Mul(rng.EmployeePercentage).Div(hundred)
			employer = gross.Mul(rng.EmployerPercentage).Div(hundred)
		}

	default:
		return deduction.Contribution{}, fmt.Errorf("unknown calculation type %q for %s", dt.CalculationType, dt.Code)
	}

	employee, err := applyRounding(employee, dt.RoundingMethod, dt.RoundingPrecision)
	if err != nil {
		return deduction.Contribution{}, err
	}
	employer, err = applyRounding(employer, dt.RoundingMethod, dt.RoundingPrecision)
	if err != nil {
		return deduction.Contribution{}, err
	}

	return deduction.Contribution{Employee: employee, Employer: employer}, nil
}

// applyRounding dispatches on the closed rounding enum. "round" is half away
// from zero; amounts here are non-negative, so it behaves as half-up.
func applyRounding(amount decimal.Decimal, method deduction.RoundingMethod, precision int32) (decimal.Decimal, error) {
	switch method {
	case deduction.RoundingHalfUp:
		return amount.Round(precision), nil
	case deduction.RoundingBank:
		return amount.RoundBank(precision), nil
	case deduction.RoundingCeil:
		return amount.RoundCeil(precision), nil
	case deduction.RoundingFloor:
		return amount.RoundFloor(precision), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %q", deduction.ErrUnknownRoundingMethod, method)
	}
}
