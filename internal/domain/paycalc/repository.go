package paycalc

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type PayCalculationRepository interface {
	Create(ctx context.Context, calc PayCalculation) (PayCalculation, error)
	GetByID(ctx context.Context, id string) (PayCalculation, error)
	GetByPeriod(ctx context.Context, month, year int) (PayCalculation, error)
	List(ctx context.Context, limit, offset int) ([]PayCalculation, int64, error)
	UpdateTotals(ctx context.Context, tx pgx.Tx, calc PayCalculation) error
	Finalize(ctx context.Context, id string) (PayCalculation, error)

	CreateDetail(ctx context.Context, tx pgx.Tx, detail PayCalculationDetail) error
	DeleteDetails(ctx context.Context, tx pgx.Tx, payCalculationID string) error
	ListDetails(ctx context.Context, payCalculationID string, status *DetailStatus) ([]PayCalculationDetail, error)
}
