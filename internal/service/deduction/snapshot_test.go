package deduction

import (
	"testing"
	"time"

	"github.com/ladangworks/estate-backend-go/internal/domain/deduction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, day int) *time.Time {
	t := date(y, m, day)
	return &t
}

// epfVersions returns two consecutive versions of the same code: 2024 rates
// closed at year end, 2025 rates open-ended.
func epfVersions() []deduction.DeductionType {
	v2024 := percentageType("EPF_LOCAL", "11", "13", deduction.RoundingHalfUp, 2)
	v2024.ID = "epf-2024"
	v2024.AppliesTo = deduction.NationalityLocal
	v2024.IsActive = true
	v2024.EffectiveFrom = date(2024, time.January, 1)
	v2024.EffectiveUntil = datePtr(2024, time.December, 31)

	v2025 := percentageType("EPF_LOCAL", "12", "13", deduction.RoundingHalfUp, 2)
	v2025.ID = "epf-2025"
	v2025.AppliesTo = deduction.NationalityLocal
	v2025.IsActive = true
	v2025.EffectiveFrom = date(2025, time.January, 1)

	return []deduction.DeductionType{v2024, v2025}
}

func TestSnapshot_Resolve_EffectiveWindow(t *testing.T) {
	t.Parallel()

	snapshot, err := BuildSnapshot(epfVersions(), nil)
	require.NoError(t, err)

	during2024, err := snapshot.Resolve("EPF_LOCAL", deduction.NationalityLocal, date(2024, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, "epf-2024", during2024.ID)

	during2025, err := snapshot.Resolve("EPF_LOCAL", deduction.NationalityLocal, date(2025, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, "epf-2025", during2025.ID)

	// Window boundaries are inclusive on both ends.
	lastDay, err := snapshot.Resolve("EPF_LOCAL", deduction.NationalityLocal, date(2024, time.December, 31))
	require.NoError(t, err)
	assert.Equal(t, "epf-2024", lastDay.ID)

	firstDay, err := snapshot.Resolve("EPF_LOCAL", deduction.NationalityLocal, date(2025, time.January, 1))
	require.NoError(t, err)
	assert.Equal(t, "epf-2025", firstDay.ID)
}

func TestSnapshot_Resolve_BeforeAnyVersion(t *testing.T) {
	t.Parallel()

	snapshot, err := BuildSnapshot(epfVersions(), nil)
	require.NoError(t, err)

	_, err = snapshot.Resolve("EPF_LOCAL", deduction.NationalityLocal, date(2023, time.June, 1))

	assert.ErrorIs(t, err, deduction.ErrNotApplicable)
}

func TestSnapshot_Resolve_NationalityGating(t *testing.T) {
	t.Parallel()

	snapshot, err := BuildSnapshot(epfVersions(), nil)
	require.NoError(t, err)

	// A locals-only deduction simply does not apply to a foreigner.
	_, err = snapshot.Resolve("EPF_LOCAL", deduction.NationalityForeigner, date(2024, time.June, 1))

	assert.ErrorIs(t, err, deduction.ErrNotApplicable)
}

func TestSnapshot_Resolve_UnknownCode(t *testing.T) {
	t.Parallel()

	snapshot, err := BuildSnapshot(epfVersions(), nil)
	require.NoError(t, err)

	_, err = snapshot.Resolve("NOSUCH", deduction.NationalityLocal, date(2024, time.June, 1))

	assert.ErrorIs(t, err, deduction.ErrNotApplicable)
}

func TestSnapshot_Build_OverlappingWindows(t *testing.T) {
	t.Parallel()

	versions := epfVersions()
	// Reopen the 2024 version so both cover January 2025.
	versions[0].EffectiveUntil = nil

	_, err := BuildSnapshot(versions, nil)

	assert.ErrorIs(t, err, deduction.ErrConfigurationConflict)
}

func TestSnapshot_Build_DisjointNationalityScopes(t *testing.T) {
	t.Parallel()

	// Same code, same window, disjoint scopes: no worker can match both, so
	// this is a legal configuration.
	local := percentageType("SOCSO", "0.5", "1.75", deduction.RoundingHalfUp, 2)
	local.ID = "socso-local"
	local.AppliesTo = deduction.NationalityLocal
	local.IsActive = true
	local.EffectiveFrom = date(2024, time.January, 1)

	foreigner := percentageType("SOCSO", "0", "1.25", deduction.RoundingHalfUp, 2)
	foreigner.ID = "socso-foreigner"
	foreigner.AppliesTo = deduction.NationalityForeigner
	foreigner.IsActive = true
	foreigner.EffectiveFrom = date(2024, time.January, 1)

	snapshot, err := BuildSnapshot([]deduction.DeductionType{local, foreigner}, nil)
	require.NoError(t, err)

	got, err := snapshot.Resolve("SOCSO", deduction.NationalityForeigner, date(2024, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, "socso-foreigner", got.ID)
}

func TestSnapshot_Build_InactiveVersionsIgnored(t *testing.T) {
	t.Parallel()

	versions := epfVersions()
	versions[1].IsActive = false

	snapshot, err := BuildSnapshot(versions, nil)
	require.NoError(t, err)

	_, err = snapshot.Resolve("EPF_LOCAL", deduction.NationalityLocal, date(2025, time.June, 1))

	assert.ErrorIs(t, err, deduction.ErrNotApplicable)
}

func TestSnapshot_Build_BracketTypeMissingRanges(t *testing.T) {
	t.Parallel()

	dt := bracketType("SOCSO_ALL", deduction.RoundingHalfUp, 2)
	dt.AppliesTo = deduction.NationalityAll
	dt.IsActive = true
	dt.EffectiveFrom = date(2024, time.January, 1)

	_, err := BuildSnapshot([]deduction.DeductionType{dt}, nil)

	assert.ErrorIs(t, err, deduction.ErrMissingWageRanges)
}

func TestSnapshot_ApplicableTypes_SortedAndGated(t *testing.T) {
	t.Parallel()

	eis := percentageType("EIS_LOCAL", "0.2", "0.2", deduction.RoundingHalfUp, 2)
	eis.ID = "eis"
	eis.AppliesTo = deduction.NationalityLocal
	eis.IsActive = true
	eis.EffectiveFrom = date(2024, time.January, 1)

	types := append(epfVersions(), eis)
	snapshot, err := BuildSnapshot(types, nil)
	require.NoError(t, err)

	forLocal, err := snapshot.ApplicableTypes(deduction.NationalityLocal, date(2024, time.June, 1))
	require.NoError(t, err)
	require.Len(t, forLocal, 2)
	assert.Equal(t, "EIS_LOCAL", forLocal[0].Code)
	assert.Equal(t, "EPF_LOCAL", forLocal[1].Code)

	forForeigner, err := snapshot.ApplicableTypes(deduction.NationalityForeigner, date(2024, time.June, 1))
	require.NoError(t, err)
	assert.Empty(t, forForeigner)
}
