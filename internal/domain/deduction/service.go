package deduction

import "context"

type DeductionService interface {
	CreateType(ctx context.Context, req CreateDeductionTypeRequest) (DeductionTypeResponse, error)
	GetType(ctx context.Context, id string) (DeductionTypeResponse, error)
	ListTypes(ctx context.Context, activeOnly bool) ([]DeductionTypeResponse, error)
	ReplaceWageRanges(ctx context.Context, req ReplaceWageRangesRequest) (DeductionTypeResponse, error)
	DeactivateType(ctx context.Context, id string) error
	SeedDefaults(ctx context.Context) (int, error)
}
