package deduction

import (
	"context"
	"fmt"
	"time"

	"github.com/ladangworks/estate-backend-go/internal/domain/deduction"
	"github.com/ladangworks/estate-backend-go/internal/fixtures"
	"github.com/ladangworks/estate-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type DeductionServiceImpl struct {
	db   *database.DB
	repo deduction.DeductionRepository
}

func NewDeductionService(db *database.DB, repo deduction.DeductionRepository) deduction.DeductionService {
	return &DeductionServiceImpl{db: db, repo: repo}
}

// CreateType inserts a new effective-dated version of a deduction code.
// Past versions are never edited; a version whose window and nationality
// scope collide with an existing active version is rejected up front.
func (s *DeductionServiceImpl) CreateType(ctx context.Context, req deduction.CreateDeductionTypeRequest) (deduction.DeductionTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return deduction.DeductionTypeResponse{}, err
	}

	effectiveFrom, _ := time.Parse("2006-01-02", req.EffectiveFrom)
	var effectiveUntil *time.Time
	if req.EffectiveUntil != nil {
		parsed, _ := time.Parse("2006-01-02", *req.EffectiveUntil)
		effectiveUntil = &parsed
	}

	dt := deduction.DeductionType{
		Code:              req.Code,
		Name:              req.Name,
		CalculationType:   deduction.CalculationType(req.CalculationType),
		EmployeeRate:      decimal.Zero,
		EmployerRate:      decimal.Zero,
		AppliesTo:         deduction.NationalityClass(req.AppliesTo),
		IsActive:          true,
		EffectiveFrom:     effectiveFrom,
		EffectiveUntil:    effectiveUntil,
		RoundingMethod:    deduction.RoundingMethod(req.RoundingMethod),
		RoundingPrecision: req.RoundingPrecision,
	}
	if req.EmployeeRate != nil {
		dt.EmployeeRate = *req.EmployeeRate
	}
	if req.EmployerRate != nil {
		dt.EmployerRate = *req.EmployerRate
	}

	existing, err := s.repo.GetActiveTypes(ctx)
	if err != nil {
		return deduction.DeductionTypeResponse{}, err
	}
	for _, other := range existing {
		if other.Code == dt.Code && dt.ScopeOverlaps(other) && dt.WindowOverlaps(other) {
			return deduction.DeductionTypeResponse{}, fmt.Errorf("%w: code %s already has a version covering %s",
				deduction.ErrEffectiveWindowOverlap, dt.Code, req.EffectiveFrom)
		}
	}

	created, err := s.repo.CreateType(ctx, dt)
	if err != nil {
		return deduction.DeductionTypeResponse{}, err
	}

	return mapToTypeResponse(created, nil), nil
}

func (s *DeductionServiceImpl) GetType(ctx context.Context, id string) (deduction.DeductionTypeResponse, error) {
	dt, err := s.repo.GetTypeByID(ctx, id)
	if err != nil {
		return deduction.DeductionTypeResponse{}, err
	}

	var ranges []deduction.WageRange
	if dt.CalculationType == deduction.CalculationTypeFixed {
		ranges, err = s.repo.GetRangesByTypeID(ctx, dt.ID)
		if err != nil {
			return deduction.DeductionTypeResponse{}, err
		}
	}

	return mapToTypeResponse(dt, ranges), nil
}

func (s *DeductionServiceImpl) ListTypes(ctx context.Context, activeOnly bool) ([]deduction.DeductionTypeResponse, error) {
	types, err := s.repo.ListTypes(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]deduction.DeductionTypeResponse, 0, len(types))
	for _, dt := range types {
		result = append(result, mapToTypeResponse(dt, nil))
	}
	return result, nil
}

// ReplaceWageRanges swaps a type's whole bracket table. The candidate table
// is validated as a unit before anything is written, so an import can never
// leave a gapped or overlapping table behind.
func (s *DeductionServiceImpl) ReplaceWageRanges(ctx context.Context, req deduction.ReplaceWageRangesRequest) (deduction.DeductionTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return deduction.DeductionTypeResponse{}, err
	}

	dt, err := s.repo.GetTypeByID(ctx, req.DeductionTypeID)
	if err != nil {
		return deduction.DeductionTypeResponse{}, err
	}
	if dt.CalculationType != deduction.CalculationTypeFixed {
		return deduction.DeductionTypeResponse{}, fmt.Errorf("%w: type %s is flat-percentage and has no bracket table",
			deduction.ErrInvalidBracketTable, dt.Code)
	}

	ranges := make([]deduction.WageRange, 0, len(req.Ranges))
	for _, r := range req.Ranges {
		ranges = append(ranges, deduction.WageRange{
			DeductionTypeID:    dt.ID,
			MinWage:            r.MinWage,
			MaxWage:            r.MaxWage,
			CalculationMethod:  deduction.CalculationType(r.CalculationMethod),
			EmployeeAmount:     r.EmployeeAmount,
			EmployerAmount:     r.EmployerAmount,
			EmployeePercentage: r.EmployeePercentage,
			EmployerPercentage: r.EmployerPercentage,
		})
	}

	if _, err := NewWageBracketIndex(ranges); err != nil {
		return deduction.DeductionTypeResponse{}, err
	}

	saved, err := s.repo.ReplaceWageRanges(ctx, dt.ID, ranges)
	if err != nil {
		return deduction.DeductionTypeResponse{}, err
	}

	return mapToTypeResponse(dt, saved), nil
}

func (s *DeductionServiceImpl) DeactivateType(ctx context.Context, id string) error {
	return s.repo.DeactivateType(ctx, id)
}

// SeedDefaults loads the statutory defaults into an empty database. It is a
// no-op when any deduction type already exists.
func (s *DeductionServiceImpl) SeedDefaults(ctx context.Context) (int, error) {
	count, err := s.repo.CountTypes(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	seeded := 0
	for _, def := range fixtures.DefaultStatutoryDeductions() {
		created, err := s.repo.CreateType(ctx, def.Type)
		if err != nil {
			return seeded, fmt.Errorf("failed to seed %s: %w", def.Type.Code, err)
		}
		if len(def.Ranges) > 0 {
			ranges := make([]deduction.WageRange, 0, len(def.Ranges))
			for _, r := range def.Ranges {
				r.DeductionTypeID = created.ID
				ranges = append(ranges, r)
			}
			if _, err := s.repo.ReplaceWageRanges(ctx, created.ID, ranges); err != nil {
				return seeded, fmt.Errorf("failed to seed %s wage ranges: %w", def.Type.Code, err)
			}
		}
		seeded++
	}

	return seeded, nil
}

// ========== HELPERS ==========

func mapToTypeResponse(dt deduction.DeductionType, ranges []deduction.WageRange) deduction.DeductionTypeResponse {
	var untilStr *string
	if dt.EffectiveUntil != nil {
		str := dt.EffectiveUntil.Format("2006-01-02")
		untilStr = &str
	}

	resp := deduction.DeductionTypeResponse{
		ID:                dt.ID,
		Code:              dt.Code,
		Name:              dt.Name,
		CalculationType:   string(dt.CalculationType),
		EmployeeRate:      dt.EmployeeRate,
		EmployerRate:      dt.EmployerRate,
		AppliesTo:         string(dt.AppliesTo),
		IsActive:          dt.IsActive,
		EffectiveFrom:     dt.EffectiveFrom.Format("2006-01-02"),
		EffectiveUntil:    untilStr,
		RoundingMethod:    string(dt.RoundingMethod),
		RoundingPrecision: dt.RoundingPrecision,
	}

	for _, r := range ranges {
		resp.WageRanges = append(resp.WageRanges, deduction.WageRangeResponse{
			ID:                 r.ID,
			MinWage:            r.MinWage,
			MaxWage:            r.MaxWage,
			CalculationMethod:  string(r.CalculationMethod),
			EmployeeAmount:     r.EmployeeAmount,
			EmployerAmount:     r.EmployerAmount,
			EmployeePercentage: r.EmployeePercentage,
			EmployerPercentage: r.EmployerPercentage,
		})
	}

	return resp
}
