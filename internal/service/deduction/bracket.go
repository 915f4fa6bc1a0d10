package deduction

import (
	"fmt"
	"sort"

	"github.com/ladangworks/estate-backend-go/internal/domain/deduction"
	"github.com/shopspring/decimal"
)

// smallestUnit is one cent. Adjacent wage ranges must meet exactly one unit
// apart so that every salary value lands in exactly one range.
var smallestUnit = decimal.New(1, -2)

// WageBracketIndex holds one deduction type's wage ranges sorted by min_wage.
// Construction validates the gapless/non-overlapping invariant so lookups
// never have to; a bad table is a configuration error surfaced before any
// payroll run.
type WageBracketIndex struct {
	ranges []deduction.WageRange
}

func NewWageBracketIndex(ranges []deduction.WageRange) (*WageBracketIndex, error) {
	if len(ranges) == 0 {
		return nil, deduction.ErrMissingWageRanges
	}

	sorted := make([]deduction.WageRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinWage.LessThan(sorted[j].MinWage)
	})

	for i, r := range sorted {
		if r.MinWage.IsNegative() {
			return nil, fmt.Errorf("%w: range starting at %s has negative min_wage", deduction.ErrInvalidBracketTable, r.MinWage)
		}
		if r.MaxWage != nil && r.MaxWage.LessThan(r.MinWage) {
			return nil, fmt.Errorf("%w: range [%s, %s] has max_wage below min_wage", deduction.ErrInvalidBracketTable, r.MinWage, r.MaxWage)
		}
		if r.MaxWage == nil && i != len(sorted)-1 {
			return nil, fmt.Errorf("%w: unbounded range must be the highest range", deduction.ErrInvalidBracketTable)
		}
		if i > 0 {
			// previous MaxWage is non-nil here: an unbounded range can only be last
			expected := sorted[i-1].MaxWage.Add(smallestUnit)
			if !r.MinWage.Equal(expected) {
				return nil, fmt.Errorf("%w: range starting at %s does not meet previous range ending at %s",
					deduction.ErrInvalidBracketTable, r.MinWage, sorted[i-1].MaxWage)
			}
		}
	}

	return &WageBracketIndex{ranges: sorted}, nil
}

// Find returns the single range containing the salary. Construction
// guarantees at most one match; salaries below the lowest min_wage (including
// negative input) or above a bounded top range are out of range.
func (idx *WageBracketIndex) Find(salary decimal.Decimal) (deduction.WageRange, error) {
	i := sort.Search(len(idx.ranges), func(i int) bool {
		return idx.ranges[i].MinWage.GreaterThan(salary)
	})
	if i == 0 {
		return deduction.WageRange{}, fmt.Errorf("%w: %s is below the lowest bracket", deduction.ErrSalaryOutOfRange, salary)
	}

	r := idx.ranges[i-1]
	if !r.Contains(salary) {
		return deduction.WageRange{}, fmt.Errorf("%w: %s exceeds the highest bracket", deduction.ErrSalaryOutOfRange, salary)
	}
	return r, nil
}

// Len returns the number of ranges in the index.
func (idx *WageBracketIndex) Len() int {
	return len(idx.ranges)
}
