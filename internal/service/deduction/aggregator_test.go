package deduction

import (
	"testing"
	"time"

	"github.com/ladangworks/estate-backend-go/internal/domain/deduction"
	"github.com/ladangworks/estate-backend-go/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshotFromDefaults builds a snapshot straight from the seeded statutory
// set, wiring range rows to their types the way the database would.
func snapshotFromDefaults(t *testing.T) *Snapshot {
	t.Helper()

	var types []deduction.DeductionType
	rangesByType := make(map[string][]deduction.WageRange)
	for _, def := range fixtures.DefaultStatutoryDeductions() {
		dt := def.Type
		dt.ID = dt.Code
		types = append(types, dt)
		for _, r := range def.Ranges {
			r.DeductionTypeID = dt.ID
			rangesByType[dt.ID] = append(rangesByType[dt.ID], r)
		}
	}

	snapshot, err := BuildSnapshot(types, rangesByType)
	require.NoError(t, err)
	return snapshot
}

func TestAggregator_LocalWorker(t *testing.T) {
	t.Parallel()

	agg := NewBreakdownAggregator(snapshotFromDefaults(t))
	asOf := date(2024, time.June, 1)

	breakdown, err := agg.Build(deduction.NationalityLocal, d("3000.00"), asOf)
	require.NoError(t, err)

	// EPF: 3000 in the [0, 5000] range at 11%/13%, rounded up to whole units.
	epf := breakdown.Lines["EPF_LOCAL"]
	assert.True(t, epf.Employee.Equal(d("330")), "EPF employee: %s", epf.Employee)
	assert.True(t, epf.Employer.Equal(d("390")), "EPF employer: %s", epf.Employer)

	// SOCSO: fixed amounts from the [2900.01, 3000.00] row.
	socso := breakdown.Lines["SOCSO_ALL"]
	assert.True(t, socso.Employee.Equal(d("14.75")), "SOCSO employee: %s", socso.Employee)
	assert.True(t, socso.Employer.Equal(d("51.65")), "SOCSO employer: %s", socso.Employer)

	// EIS: 0.2% both sides.
	eis := breakdown.Lines["EIS_LOCAL"]
	assert.True(t, eis.Employee.Equal(d("6.00")), "EIS employee: %s", eis.Employee)
	assert.True(t, eis.Employer.Equal(d("6.00")), "EIS employer: %s", eis.Employer)

	assert.Len(t, breakdown.Lines, 3)
}

func TestAggregator_TotalsConsistent(t *testing.T) {
	t.Parallel()

	agg := NewBreakdownAggregator(snapshotFromDefaults(t))
	asOf := date(2024, time.June, 1)

	breakdown, err := agg.Build(deduction.NationalityLocal, d("3000.00"), asOf)
	require.NoError(t, err)

	employeeSum := d("0")
	employerSum := d("0")
	for _, line := range breakdown.Lines {
		employeeSum = employeeSum.Add(line.Employee)
		employerSum = employerSum.Add(line.Employer)
	}

	assert.True(t, breakdown.TotalEmployee.Equal(employeeSum), "total employee: %s vs %s", breakdown.TotalEmployee, employeeSum)
	assert.True(t, breakdown.TotalEmployer.Equal(employerSum), "total employer: %s vs %s", breakdown.TotalEmployer, employerSum)
	assert.True(t, breakdown.NetSalary.Add(breakdown.TotalEmployee).Equal(breakdown.GrossSalary),
		"net %s + employee %s != gross %s", breakdown.NetSalary, breakdown.TotalEmployee, breakdown.GrossSalary)
}

func TestAggregator_ForeignWorkerSkipsLocalOnly(t *testing.T) {
	t.Parallel()

	agg := NewBreakdownAggregator(snapshotFromDefaults(t))
	asOf := date(2024, time.June, 1)

	breakdown, err := agg.Build(deduction.NationalityForeigner, d("3000.00"), asOf)
	require.NoError(t, err)

	// Inapplicable deductions are absent, not present with zero amounts.
	assert.Len(t, breakdown.Lines, 1)
	_, hasEPF := breakdown.Lines["EPF_LOCAL"]
	assert.False(t, hasEPF)
	_, hasEIS := breakdown.Lines["EIS_LOCAL"]
	assert.False(t, hasEIS)

	socso := breakdown.Lines["SOCSO_ALL"]
	assert.True(t, socso.Employee.Equal(d("14.75")), "SOCSO employee: %s", socso.Employee)
}

func TestAggregator_Deterministic(t *testing.T) {
	t.Parallel()

	agg := NewBreakdownAggregator(snapshotFromDefaults(t))
	asOf := date(2024, time.June, 1)

	first, err := agg.Build(deduction.NationalityLocal, d("4321.09"), asOf)
	require.NoError(t, err)
	second, err := agg.Build(deduction.NationalityLocal, d("4321.09"), asOf)
	require.NoError(t, err)

	assert.True(t, first.TotalEmployee.Equal(second.TotalEmployee))
	assert.True(t, first.TotalEmployer.Equal(second.TotalEmployer))
	assert.True(t, first.NetSalary.Equal(second.NetSalary))
	assert.Equal(t, len(first.Lines), len(second.Lines))
}

func TestAggregator_FailurePropagates(t *testing.T) {
	t.Parallel()

	// A bracket type with a bounded top range makes high salaries fail the
	// whole breakdown.
	dt := bracketType("SOCSO_ALL", deduction.RoundingHalfUp, 2)
	dt.AppliesTo = deduction.NationalityAll
	dt.IsActive = true
	dt.EffectiveFrom = date(2024, time.January, 1)

	snapshot, err := BuildSnapshot(
		[]deduction.DeductionType{dt},
		map[string][]deduction.WageRange{
			dt.ID: {fixedRange("0", dp("5000.00"), "14.25", "49.75")},
		},
	)
	require.NoError(t, err)

	agg := NewBreakdownAggregator(snapshot)

	_, err = agg.Build(deduction.NationalityLocal, d("5000.01"), date(2024, time.June, 1))

	assert.ErrorIs(t, err, deduction.ErrSalaryOutOfRange)
}

func TestAggregator_NoApplicableTypes(t *testing.T) {
	t.Parallel()

	snapshot, err := BuildSnapshot(nil, nil)
	require.NoError(t, err)

	agg := NewBreakdownAggregator(snapshot)

	breakdown, err := agg.Build(deduction.NationalityLocal, d("3000.00"), date(2024, time.June, 1))
	require.NoError(t, err)

	assert.Empty(t, breakdown.Lines)
	assert.True(t, breakdown.NetSalary.Equal(d("3000.00")))
}
