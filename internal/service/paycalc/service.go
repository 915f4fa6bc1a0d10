package paycalc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ladangworks/estate-backend-go/internal/domain/deduction"
	"github.com/ladangworks/estate-backend-go/internal/domain/paycalc"
	"github.com/ladangworks/estate-backend-go/internal/domain/worker"
	"github.com/ladangworks/estate-backend-go/internal/pkg/database"
	deductionService "github.com/ladangworks/estate-backend-go/internal/service/deduction"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// computeConcurrency bounds the per-worker fan-out. Breakdown computation is
// CPU-only, so a small limit is plenty.
const computeConcurrency = 8

type PayCalcServiceImpl struct {
	db            *database.DB
	payCalcRepo   paycalc.PayCalculationRepository
	workerRepo    worker.WorkerRepository
	deductionRepo deduction.DeductionRepository
}

func NewPayCalcService(
	db *database.DB,
	payCalcRepo paycalc.PayCalculationRepository,
	workerRepo worker.WorkerRepository,
	deductionRepo deduction.DeductionRepository,
) paycalc.PayCalculationService {
	return &PayCalcServiceImpl{
		db:            db,
		payCalcRepo:   payCalcRepo,
		workerRepo:    workerRepo,
		deductionRepo: deductionRepo,
	}
}

// Generate runs the deduction engine for every active worker in the period.
// Reference data is loaded once into an immutable snapshot; configuration
// errors abort the run before any worker is computed. Per-worker calculation
// failures become failed detail rows and never abort the batch. A draft
// calculation for the same period is wiped and recomputed; a finalized one is
// immutable.
func (s *PayCalcServiceImpl) Generate(ctx context.Context, req paycalc.GeneratePayCalculationRequest) (paycalc.PayCalculationResponse, error) {
	if err := req.Validate(); err != nil {
		return paycalc.PayCalculationResponse{}, err
	}

	calc, err := s.payCalcRepo.GetByPeriod(ctx, req.PeriodMonth, req.PeriodYear)
	switch {
	case err == nil:
		if calc.Status == paycalc.PayCalculationStatusFinal {
			return paycalc.PayCalculationResponse{}, paycalc.ErrPayCalculationFinalized
		}
	case errors.Is(err, paycalc.ErrPayCalculationNotFound):
		calc, err = s.payCalcRepo.Create(ctx, paycalc.PayCalculation{
			ID:          uuid.NewString(),
			PeriodMonth: req.PeriodMonth,
			PeriodYear:  req.PeriodYear,
			Status:      paycalc.PayCalculationStatusDraft,
		})
		if err != nil {
			return paycalc.PayCalculationResponse{}, err
		}
	default:
		return paycalc.PayCalculationResponse{}, err
	}

	workers, err := s.workerRepo.GetActive(ctx)
	if err != nil {
		return paycalc.PayCalculationResponse{}, fmt.Errorf("failed to get workers: %w", err)
	}
	if len(workers) == 0 {
		return paycalc.PayCalculationResponse{}, paycalc.ErrNoWorkers
	}

	snapshot, err := deductionService.LoadSnapshot(ctx, s.deductionRepo)
	if err != nil {
		return paycalc.PayCalculationResponse{}, fmt.Errorf("reference data rejected: %w", err)
	}
	aggregator := deductionService.NewBreakdownAggregator(snapshot)
	asOf := calc.PeriodDate()

	// Workers are independent of each other; fan out and write each result
	// into its own slot, then accumulate totals in a single step.
	details := make([]paycalc.PayCalculationDetail, len(workers))
	g := new(errgroup.Group)
	g.SetLimit(computeConcurrency)
	for i, w := range workers {
		i, w := i, w
		g.Go(func() error {
			details[i] = s.computeDetail(aggregator, calc.ID, w, asOf)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return paycalc.PayCalculationResponse{}, err
	}

	calc.TotalGross = decimal.Zero
	calc.TotalEmployeeDeductions = decimal.Zero
	calc.TotalEmployerDeductions = decimal.Zero
	calc.TotalNet = decimal.Zero
	calc.WorkerCount = len(workers)
	calc.FailedCount = 0
	for _, d := range details {
		if d.Status == paycalc.DetailStatusFailed {
			calc.FailedCount++
			continue
		}
		calc.TotalGross = calc.TotalGross.Add(d.GrossSalary)
		calc.TotalEmployeeDeductions = calc.TotalEmployeeDeductions.Add(d.EmployeeDeductions)
		calc.TotalEmployerDeductions = calc.TotalEmployerDeductions.Add(d.EmployerDeductions)
		calc.TotalNet = calc.TotalNet.Add(d.NetSalary)
	}

	if err := s.persistRun(ctx, calc, details); err != nil {
		return paycalc.PayCalculationResponse{}, err
	}

	return mapToResponse(calc), nil
}

// computeDetail builds one worker's detail row. Engine failures are captured
// on the row, not returned: the batch must finish and report every failing
// worker together.
func (s *PayCalcServiceImpl) computeDetail(aggregator *deductionService.BreakdownAggregator, calcID string, w worker.Worker, asOf time.Time) paycalc.PayCalculationDetail {
	detail := paycalc.PayCalculationDetail{
		ID:               uuid.NewString(),
		PayCalculationID: calcID,
		WorkerID:         w.ID,
		GrossSalary:      w.MonthlySalary,
	}

	breakdown, err := aggregator.Build(w.Nationality, w.MonthlySalary, asOf)
	if err != nil {
		reason := err.Error()
		detail.Status = paycalc.DetailStatusFailed
		detail.FailureReason = &reason
		detail.EmployeeDeductions = decimal.Zero
		detail.EmployerDeductions = decimal.Zero
		detail.NetSalary = decimal.Zero
		return detail
	}

	detail.Status = paycalc.DetailStatusComputed
	detail.EmployeeDeductions = breakdown.TotalEmployee
	detail.EmployerDeductions = breakdown.TotalEmployer
	detail.NetSalary = breakdown.NetSalary
	detail.Breakdown = breakdown.Lines
	return detail
}

// persistRun writes the details and totals atomically. Regeneration replaces
// the previous draft details in the same transaction.
func (s *PayCalcServiceImpl) persistRun(ctx context.Context, calc paycalc.PayCalculation, details []paycalc.PayCalculationDetail) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := s.payCalcRepo.DeleteDetails(ctx, tx, calc.ID); err != nil {
		return err
	}
	for _, d := range details {
		if err := s.payCalcRepo.CreateDetail(ctx, tx, d); err != nil {
			return fmt.Errorf("failed to persist detail for worker %s: %w", d.WorkerID, err)
		}
	}
	if err := s.payCalcRepo.UpdateTotals(ctx, tx, calc); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *PayCalcServiceImpl) GetByID(ctx context.Context, id string) (paycalc.PayCalculationResponse, error) {
	calc, err := s.payCalcRepo.GetByID(ctx, id)
	if err != nil {
		return paycalc.PayCalculationResponse{}, err
	}
	return mapToResponse(calc), nil
}

func (s *PayCalcServiceImpl) List(ctx context.Context, page, limit int) (paycalc.ListPayCalculationResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	calcs, totalCount, err := s.payCalcRepo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return paycalc.ListPayCalculationResponse{}, err
	}

	data := make([]paycalc.PayCalculationResponse, 0, len(calcs))
	for _, c := range calcs {
		data = append(data, mapToResponse(c))
	}

	return paycalc.ListPayCalculationResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
	}, nil
}

func (s *PayCalcServiceImpl) ListDetails(ctx context.Context, id string, status *paycalc.DetailStatus) ([]paycalc.PayCalculationDetailResponse, error) {
	if _, err := s.payCalcRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	details, err := s.payCalcRepo.ListDetails(ctx, id, status)
	if err != nil {
		return nil, err
	}

	result := make([]paycalc.PayCalculationDetailResponse, 0, len(details))
	for _, d := range details {
		workerName := ""
		workerCode := ""
		if d.WorkerName != nil {
			workerName = *d.WorkerName
		}
		if d.WorkerCode != nil {
			workerCode = *d.WorkerCode
		}

		result = append(result, paycalc.PayCalculationDetailResponse{
			ID:                 d.ID,
			WorkerID:           d.WorkerID,
			WorkerName:         workerName,
			WorkerCode:         workerCode,
			GrossSalary:        d.GrossSalary,
			EmployeeDeductions: d.EmployeeDeductions,
			EmployerDeductions: d.EmployerDeductions,
			NetSalary:          d.NetSalary,
			Breakdown:          d.Breakdown,
			Status:             string(d.Status),
			FailureReason:      d.FailureReason,
		})
	}

	return result, nil
}

// Finalize freezes a draft calculation. It refuses while any worker's
// breakdown failed: operators must resolve every failing worker first, and a
// failed run can never silently become payable.
func (s *PayCalcServiceImpl) Finalize(ctx context.Context, id string) (paycalc.PayCalculationResponse, error) {
	calc, err := s.payCalcRepo.GetByID(ctx, id)
	if err != nil {
		return paycalc.PayCalculationResponse{}, err
	}
	if calc.Status != paycalc.PayCalculationStatusDraft {
		return paycalc.PayCalculationResponse{}, paycalc.ErrPayCalculationFinalized
	}
	if calc.FailedCount > 0 {
		return paycalc.PayCalculationResponse{}, fmt.Errorf("%w: %d of %d workers need attention",
			paycalc.ErrHasFailedDetails, calc.FailedCount, calc.WorkerCount)
	}

	finalized, err := s.payCalcRepo.Finalize(ctx, id)
	if err != nil {
		return paycalc.PayCalculationResponse{}, err
	}
	return mapToResponse(finalized), nil
}

// ========== HELPERS ==========

func mapToResponse(c paycalc.PayCalculation) paycalc.PayCalculationResponse {
	var finalizedAtStr *string
	if c.FinalizedAt != nil {
		str := c.FinalizedAt.Format(time.RFC3339)
		finalizedAtStr = &str
	}

	return paycalc.PayCalculationResponse{
		ID:                      c.ID,
		PeriodMonth:             c.PeriodMonth,
		PeriodYear:              c.PeriodYear,
		Status:                  string(c.Status),
		TotalGross:              c.TotalGross,
		TotalEmployeeDeductions: c.TotalEmployeeDeductions,
		TotalEmployerDeductions: c.TotalEmployerDeductions,
		TotalNet:                c.TotalNet,
		WorkerCount:             c.WorkerCount,
		FailedCount:             c.FailedCount,
		FinalizedAt:             finalizedAtStr,
	}
}
