package deduction

import (
	"testing"

	"github.com/ladangworks/estate-backend-go/internal/domain/deduction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func fixedRange(min string, max *decimal.Decimal, employee, employer string) deduction.WageRange {
	return deduction.WageRange{
		MinWage:           d(min),
		MaxWage:           max,
		CalculationMethod: deduction.CalculationTypeFixed,
		EmployeeAmount:    d(employee),
		EmployerAmount:    d(employer),
	}
}

// ===== CONSTRUCTION =====

func TestWageBracketIndex_Valid_Gapless(t *testing.T) {
	t.Parallel()

	idx, err := NewWageBracketIndex([]deduction.WageRange{
		fixedRange("0", dp("2900.00"), "14.25", "49.75"),
		fixedRange("2900.01", dp("3000.00"), "14.75", "51.65"),
		fixedRange("3000.01", nil, "17.25", "60.35"),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())
}

func TestWageBracketIndex_Valid_UnsortedInput(t *testing.T) {
	t.Parallel()

	// Order in the input must not matter.
	idx, err := NewWageBracketIndex([]deduction.WageRange{
		fixedRange("3000.01", nil, "17.25", "60.35"),
		fixedRange("0", dp("2900.00"), "14.25", "49.75"),
		fixedRange("2900.01", dp("3000.00"), "14.75", "51.65"),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())
}

func TestWageBracketIndex_Valid_BoundedTop(t *testing.T) {
	t.Parallel()

	// A table without an unbounded top range is legal; salaries above it are
	// out of range at lookup time.
	_, err := NewWageBracketIndex([]deduction.WageRange{
		fixedRange("0", dp("5000.00"), "14.25", "49.75"),
	})

	assert.NoError(t, err)
}

func TestWageBracketIndex_Empty(t *testing.T) {
	t.Parallel()

	_, err := NewWageBracketIndex(nil)

	assert.ErrorIs(t, err, deduction.ErrMissingWageRanges)
}

func TestWageBracketIndex_Gap(t *testing.T) {
	t.Parallel()

	// 3000.00 .. 3000.02 leaves 3000.01 uncovered.
	_, err := NewWageBracketIndex([]deduction.WageRange{
		fixedRange("0", dp("3000.00"), "14.25", "49.75"),
		fixedRange("3000.02", nil, "17.25", "60.35"),
	})

	assert.ErrorIs(t, err, deduction.ErrInvalidBracketTable)
}

func TestWageBracketIndex_Overlap(t *testing.T) {
	t.Parallel()

	_, err := NewWageBracketIndex([]deduction.WageRange{
		fixedRange("0", dp("3000.00"), "14.25", "49.75"),
		fixedRange("2900.01", nil, "17.25", "60.35"),
	})

	assert.ErrorIs(t, err, deduction.ErrInvalidBracketTable)
}

func TestWageBracketIndex_UnboundedNotLast(t *testing.T) {
	t.Parallel()

	_, err := NewWageBracketIndex([]deduction.WageRange{
		fixedRange("0", nil, "14.25", "49.75"),
		fixedRange("3000.01", dp("4000.00"), "17.25", "60.35"),
	})

	assert.ErrorIs(t, err, deduction.ErrInvalidBracketTable)
}

func TestWageBracketIndex_NegativeMinWage(t *testing.T) {
	t.Parallel()

	_, err := NewWageBracketIndex([]deduction.WageRange{
		fixedRange("-100", dp("3000.00"), "14.25", "49.75"),
	})

	assert.ErrorIs(t, err, deduction.ErrInvalidBracketTable)
}

func TestWageBracketIndex_MaxBelowMin(t *testing.T) {
	t.Parallel()

	_, err := NewWageBracketIndex([]deduction.WageRange{
		fixedRange("3000", dp("2000.00"), "14.25", "49.75"),
	})

	assert.ErrorIs(t, err, deduction.ErrInvalidBracketTable)
}

// ===== LOOKUP =====

func TestWageBracketIndex_Find_Boundaries(t *testing.T) {
	t.Parallel()

	idx, err := NewWageBracketIndex([]deduction.WageRange{
		fixedRange("0", dp("2900.00"), "14.25", "49.75"),
		fixedRange("2900.01", dp("3000.00"), "14.75", "51.65"),
		fixedRange("3000.01", nil, "17.25", "60.35"),
	})
	require.NoError(t, err)

	tests := []struct {
		salary           string
		expectedEmployee string
	}{
		{"0", "14.25"},
		{"2900.00", "14.25"},
		{"2900.01", "14.75"},
		{"3000.00", "14.75"},
		{"3000.01", "17.25"},
		{"1000000", "17.25"},
	}
	for _, tt := range tests {
		rng, err := idx.Find(d(tt.salary))
		require.NoError(t, err, "salary %s", tt.salary)
		assert.True(t, rng.EmployeeAmount.Equal(d(tt.expectedEmployee)),
			"salary %s: expected %s, got %s", tt.salary, tt.expectedEmployee, rng.EmployeeAmount)
	}
}

func TestWageBracketIndex_Find_BelowLowest(t *testing.T) {
	t.Parallel()

	idx, err := NewWageBracketIndex([]deduction.WageRange{
		fixedRange("1000", dp("2000.00"), "14.25", "49.75"),
	})
	require.NoError(t, err)

	_, err = idx.Find(d("999.99"))

	assert.ErrorIs(t, err, deduction.ErrSalaryOutOfRange)
}

func TestWageBracketIndex_Find_AboveBoundedTop(t *testing.T) {
	t.Parallel()

	idx, err := NewWageBracketIndex([]deduction.WageRange{
		fixedRange("0", dp("5000.00"), "14.25", "49.75"),
	})
	require.NoError(t, err)

	_, err = idx.Find(d("5000.01"))

	assert.ErrorIs(t, err, deduction.ErrSalaryOutOfRange)
}
