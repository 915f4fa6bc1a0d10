package deduction

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ladangworks/estate-backend-go/internal/domain/deduction"
)

// Snapshot is an immutable view of the statutory reference data. It is built
// once per pay-calculation run and shared read-only across concurrent worker
// computations; calculations never see data that changes mid-run.
type Snapshot struct {
	byCode   map[string][]deduction.DeductionType
	brackets map[string]*WageBracketIndex // keyed by deduction type ID
	codes    []string                     // distinct codes, sorted for deterministic iteration
}

// BuildSnapshot validates and indexes the active reference data. Ambiguous
// effective windows and invalid bracket tables are configuration errors that
// block the run here, before any worker is computed.
func BuildSnapshot(types []deduction.DeductionType, rangesByType map[string][]deduction.WageRange) (*Snapshot, error) {
	s := &Snapshot{
		byCode:   make(map[string][]deduction.DeductionType),
		brackets: make(map[string]*WageBracketIndex),
	}

	for _, dt := range types {
		if !dt.IsActive {
			continue
		}
		s.byCode[dt.Code] = append(s.byCode[dt.Code], dt)
	}

	for code, versions := range s.byCode {
		for i := 0; i < len(versions); i++ {
			for j := i + 1; j < len(versions); j++ {
				if versions[i].ScopeOverlaps(versions[j]) && versions[i].WindowOverlaps(versions[j]) {
					return nil, fmt.Errorf("%w: code %s has overlapping effective windows", deduction.ErrConfigurationConflict, code)
				}
			}
		}
		s.codes = append(s.codes, code)
	}
	sort.Strings(s.codes)

	for _, dt := range types {
		if !dt.IsActive || dt.CalculationType != deduction.CalculationTypeFixed {
			continue
		}
		idx, err := NewWageBracketIndex(rangesByType[dt.ID])
		if err != nil {
			return nil, fmt.Errorf("deduction type %s (effective %s): %w", dt.Code, dt.EffectiveFrom.Format("2006-01-02"), err)
		}
		s.brackets[dt.ID] = idx
	}

	return s, nil
}

// LoadSnapshot reads the active reference data and builds the snapshot a pay
// run calculates against.
func LoadSnapshot(ctx context.Context, repo deduction.DeductionRepository) (*Snapshot, error) {
	types, err := repo.GetActiveTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deduction types: %w", err)
	}

	var bracketTypeIDs []string
	for _, dt := range types {
		if dt.CalculationType == deduction.CalculationTypeFixed {
			bracketTypeIDs = append(bracketTypeIDs, dt.ID)
		}
	}

	rangesByType := map[string][]deduction.WageRange{}
	if len(bracketTypeIDs) > 0 {
		rangesByType, err = repo.GetRangesForTypes(ctx, bracketTypeIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load wage ranges: %w", err)
		}
	}

	return BuildSnapshot(types, rangesByType)
}

// Resolve selects the single effective version of a code for a worker class
// and date. No match is the expected miss (the deduction does not apply);
// more than one match is a configuration conflict, never silently resolved.
func (s *Snapshot) Resolve(code string, class deduction.NationalityClass, asOf time.Time) (deduction.DeductionType, error) {
	var matched []deduction.DeductionType
	for _, dt := range s.byCode[code] {
		if dt.EffectiveOn(asOf) && dt.AppliesToNationality(class) {
			matched = append(matched, dt)
		}
	}

	switch len(matched) {
	case 0:
		return deduction.DeductionType{}, deduction.ErrNotApplicable
	case 1:
		return matched[0], nil
	default:
		return deduction.DeductionType{}, fmt.Errorf("%w: code %s matches %d versions on %s",
			deduction.ErrConfigurationConflict, code, len(matched), asOf.Format("2006-01-02"))
	}
}

// ApplicableTypes resolves every known code for the worker class and date,
// skipping misses. Codes are visited in sorted order.
func (s *Snapshot) ApplicableTypes(class deduction.NationalityClass, asOf time.Time) ([]deduction.DeductionType, error) {
	var applicable []deduction.DeductionType
	for _, code := range s.codes {
		dt, err := s.Resolve(code, class, asOf)
		if errors.Is(err, deduction.ErrNotApplicable) {
			continue
		}
		if err != nil {
			return nil, err
		}
		applicable = append(applicable, dt)
	}
	return applicable, nil
}

// Brackets returns the bracket index for a deduction type, or nil when the
// type has none (flat-percentage types).
func (s *Snapshot) Brackets(deductionTypeID string) *WageBracketIndex {
	return s.brackets[deductionTypeID]
}
