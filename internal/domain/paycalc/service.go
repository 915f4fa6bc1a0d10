package paycalc

import "context"

type PayCalculationService interface {
	Generate(ctx context.Context, req GeneratePayCalculationRequest) (PayCalculationResponse, error)
	GetByID(ctx context.Context, id string) (PayCalculationResponse, error)
	List(ctx context.Context, page, limit int) (ListPayCalculationResponse, error)
	ListDetails(ctx context.Context, id string, status *DetailStatus) ([]PayCalculationDetailResponse, error)
	Finalize(ctx context.Context, id string) (PayCalculationResponse, error)
}
