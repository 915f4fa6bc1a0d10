package deduction

import "context"

// DeductionRepository defines data access for the statutory reference data.
// Versions are append-only; nothing here edits a past version in place.
type DeductionRepository interface {
	CreateType(ctx context.Context, dt DeductionType) (DeductionType, error)
	GetTypeByID(ctx context.Context, id string) (DeductionType, error)
	ListTypes(ctx context.Context, activeOnly bool) ([]DeductionType, error)
	// GetActiveTypes returns every active version of every code; snapshot
	// construction filters by effective date.
	GetActiveTypes(ctx context.Context) ([]DeductionType, error)
	DeactivateType(ctx context.Context, id string) error

	// ReplaceWageRanges swaps a type's whole bracket table atomically.
	ReplaceWageRanges(ctx context.Context, deductionTypeID string, ranges []WageRange) ([]WageRange, error)
	GetRangesByTypeID(ctx context.Context, deductionTypeID string) ([]WageRange, error)
	// GetRangesForTypes loads tables for many types at once, keyed by type ID.
	GetRangesForTypes(ctx context.Context, deductionTypeIDs []string) (map[string][]WageRange, error)

	CountTypes(ctx context.Context) (int64, error)
}
