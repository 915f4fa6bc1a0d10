package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ladangworks/estate-backend-go/internal/domain/deduction"
	"github.com/ladangworks/estate-backend-go/internal/domain/paycalc"
	"github.com/ladangworks/estate-backend-go/internal/pkg/database"
)

type payCalcRepository struct {
	db *database.DB
}

func NewPayCalcRepository(db *database.DB) paycalc.PayCalculationRepository {
	return &payCalcRepository{db: db}
}

// ========== PAY CALCULATIONS ==========

const payCalculationColumns = `
	id, period_month, period_year, status, total_gross,
	total_employee_deductions, total_employer_deductions, total_net,
	worker_count, failed_count, finalized_at, created_at, updated_at
`

func scanPayCalculation(row pgx.Row) (paycalc.PayCalculation, error) {
	var c paycalc.PayCalculation
	err := row.Scan(
		&c.ID, &c.PeriodMonth, &c.PeriodYear, &c.Status, &c.TotalGross,
		&c.TotalEmployeeDeductions, &c.TotalEmployerDeductions, &c.TotalNet,
		&c.WorkerCount, &c.FailedCount, &c.FinalizedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *payCalcRepository) Create(ctx context.Context, calc paycalc.PayCalculation) (paycalc.PayCalculation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_calculations (id, period_month, period_year, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + payCalculationColumns

	created, err := scanPayCalculation(q.QueryRow(ctx, query,
		calc.ID, calc.PeriodMonth, calc.PeriodYear, calc.Status,
	))
	if err != nil {
		return paycalc.PayCalculation{}, fmt.Errorf("failed to create pay calculation: %w", err)
	}

	return created, nil
}

func (r *payCalcRepository) GetByID(ctx context.Context, id string) (paycalc.PayCalculation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payCalculationColumns + ` FROM pay_calculations WHERE id = $1`

	calc, err := scanPayCalculation(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return paycalc.PayCalculation{}, paycalc.ErrPayCalculationNotFound
		}
		return paycalc.PayCalculation{}, fmt.Errorf("failed to get pay calculation: %w", err)
	}

	return calc, nil
}

func (r *payCalcRepository) GetByPeriod(ctx context.Context, month, year int) (paycalc.PayCalculation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payCalculationColumns + ` FROM pay_calculations WHERE period_month = $1 AND period_year = $2`

	calc, err := scanPayCalculation(q.QueryRow(ctx, query, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return paycalc.PayCalculation{}, paycalc.ErrPayCalculationNotFound
		}
		return paycalc.PayCalculation{}, fmt.Errorf("failed to get pay calculation by period: %w", err)
	}

	return calc, nil
}

func (r *payCalcRepository) List(ctx context.Context, limit, offset int) ([]paycalc.PayCalculation, int64, error) {
	q := GetQuerier(ctx, r.db)

	var totalCount int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM pay_calculations`).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count pay calculations: %w", err)
	}

	query := `
		SELECT ` + payCalculationColumns + `
		FROM pay_calculations
		ORDER BY period_year DESC, period_month DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pay calculations: %w", err)
	}
	defer rows.Close()

	var calcs []paycalc.PayCalculation
	for rows.Next() {
		calc, err := scanPayCalculation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan pay calculation: %w", err)
		}
		calcs = append(calcs, calc)
	}

	return calcs, totalCount, nil
}

func (r *payCalcRepository) UpdateTotals(ctx context.Context, tx pgx.Tx, calc paycalc.PayCalculation) error {
	query := `
		UPDATE pay_calculations
		SET total_gross = $2, total_employee_deductions = $3, total_employer_deductions = $4,
			total_net = $5, worker_count = $6, failed_count = $7, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query,
		calc.ID, calc.TotalGross, calc.TotalEmployeeDeductions, calc.TotalEmployerDeductions,
		calc.TotalNet, calc.WorkerCount, calc.FailedCount,
	)
	if err != nil {
		return fmt.Errorf("failed to update pay calculation totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return paycalc.ErrPayCalculationNotFound
	}

	return nil
}

func (r *payCalcRepository) Finalize(ctx context.Context, id string) (paycalc.PayCalculation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pay_calculations
		SET status = 'final', finalized_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'draft'
		RETURNING ` + payCalculationColumns

	calc, err := scanPayCalculation(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return paycalc.PayCalculation{}, paycalc.ErrPayCalculationFinalized
		}
		return paycalc.PayCalculation{}, fmt.Errorf("failed to finalize pay calculation: %w", err)
	}

	return calc, nil
}

// ========== PAY CALCULATION DETAILS ==========

func (r *payCalcRepository) CreateDetail(ctx context.Context, tx pgx.Tx, detail paycalc.PayCalculationDetail) error {
	var breakdownJSON []byte
	if detail.Breakdown != nil {
		var err error
		breakdownJSON, err = json.Marshal(detail.Breakdown)
		if err != nil {
			return fmt.Errorf("failed to marshal breakdown: %w", err)
		}
	}

	query := `
		INSERT INTO pay_calculation_details (
			id, pay_calculation_id, worker_id, gross_salary,
			employee_deductions, employer_deductions, net_salary,
			breakdown, status, failure_reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := tx.Exec(ctx, query,
		detail.ID, detail.PayCalculationID, detail.WorkerID, detail.GrossSalary,
		detail.EmployeeDeductions, detail.EmployerDeductions, detail.NetSalary,
		breakdownJSON, detail.Status, detail.FailureReason,
	)
	if err != nil {
		return fmt.Errorf("failed to create pay calculation detail: %w", err)
	}

	return nil
}

func (r *payCalcRepository) DeleteDetails(ctx context.Context, tx pgx.Tx, payCalculationID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM pay_calculation_details WHERE pay_calculation_id = $1`, payCalculationID); err != nil {
		return fmt.Errorf("failed to delete pay calculation details: %w", err)
	}
	return nil
}

func (r *payCalcRepository) ListDetails(ctx context.Context, payCalculationID string, status *paycalc.DetailStatus) ([]paycalc.PayCalculationDetail, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			d.id, d.pay_calculation_id, d.worker_id, d.gross_salary,
			d.employee_deductions, d.employer_deductions, d.net_salary,
			d.breakdown, d.status, d.failure_reason, d.created_at,
			w.name, w.code
		FROM pay_calculation_details d
		JOIN workers w ON w.id = d.worker_id
		WHERE d.pay_calculation_id = $1
	`
	args := []interface{}{payCalculationID}
	if status != nil {
		query += " AND d.status = $2"
		args = append(args, *status)
	}
	query += " ORDER BY w.code"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay calculation details: %w", err)
	}
	defer rows.Close()

	var details []paycalc.PayCalculationDetail
	for rows.Next() {
		var d paycalc.PayCalculationDetail
		var breakdownJSON []byte
		err := rows.Scan(
			&d.ID, &d.PayCalculationID, &d.WorkerID, &d.GrossSalary,
			&d.EmployeeDeductions, &d.EmployerDeductions, &d.NetSalary,
			&breakdownJSON, &d.Status, &d.FailureReason, &d.CreatedAt,
			&d.WorkerName, &d.WorkerCode,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay calculation detail: %w", err)
		}

		if len(breakdownJSON) > 0 {
			d.Breakdown = make(map[string]deduction.Contribution)
			if err := json.Unmarshal(breakdownJSON, &d.Breakdown); err != nil {
				return nil, fmt.Errorf("failed to unmarshal breakdown: %w", err)
			}
		}

		details = append(details, d)
	}

	return details, nil
}
