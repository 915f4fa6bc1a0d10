package deduction

import (
	"fmt"
	"time"

	"github.com/ladangworks/estate-backend-go/internal/domain/deduction"
	"github.com/shopspring/decimal"
)

// BreakdownAggregator runs the calculator across every deduction type that
// applies to a worker and assembles the breakdown value the pay-calculation
// layer persists. It is pure: no side effects, safe for concurrent use.
type BreakdownAggregator struct {
	snapshot *Snapshot
	calc     *ContributionCalculator
}

func NewBreakdownAggregator(snapshot *Snapshot) *BreakdownAggregator {
	return &BreakdownAggregator{
		snapshot: snapshot,
		calc:     NewContributionCalculator(),
	}
}

// Build computes the full breakdown for one worker and period. If any single
// deduction type fails, the whole breakdown fails; a partial breakdown is
// worse than a loud failure in payroll.
func (a *BreakdownAggregator) Build(class deduction.NationalityClass, gross decimal.Decimal, asOf time.Time) (deduction.Breakdown, error) {
	applicable, err := a.snapshot.ApplicableTypes(class, asOf)
	if err != nil {
		return deduction.Breakdown{}, err
	}

	breakdown := deduction.Breakdown{
		GrossSalary:   gross,
		Lines:         make(map[string]deduction.Contribution, len(applicable)),
		TotalEmployee: decimal.Zero,
		TotalEmployer: decimal.Zero,
	}

	for _, dt := range applicable {
		contrib, err := a.calc.Compute(dt, a.snapshot.Brackets(dt.ID), gross)
		if err != nil {
			return deduction.Breakdown{}, fmt.Errorf("deduction %s: %w", dt.Code, err)
		}
		breakdown.Lines[dt.Code] = contrib
		breakdown.TotalEmployee = breakdown.TotalEmployee.Add(contrib.Employee)
		breakdown.TotalEmployer = breakdown.TotalEmployer.Add(contrib.Employer)
	}

	breakdown.NetSalary = gross.Sub(breakdown.TotalEmployee)
	return breakdown, nil
}
