package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ladangworks/estate-backend-go/internal/domain/deduction"
	"github.com/ladangworks/estate-backend-go/internal/pkg/database"
)

type deductionRepository struct {
	db *database.DB
}

func NewDeductionRepository(db *database.DB) deduction.DeductionRepository {
	return &deductionRepository{db: db}
}

// ========== DEDUCTION TYPES ==========

const deductionTypeColumns = `
	id, code, name, calculation_type, employee_rate, employer_rate,
	applies_to, is_active, effective_from, effective_until,
	rounding_method, rounding_precision, created_at, updated_at
`

func scanDeductionType(row pgx.Row) (deduction.DeductionType, error) {
	var dt deduction.DeductionType
	err := row.Scan(
		&dt.ID, &dt.Code, &dt.Name, &dt.CalculationType, &dt.EmployeeRate, &dt.EmployerRate,
		&dt.AppliesTo, &dt.IsActive, &dt.EffectiveFrom, &dt.EffectiveUntil,
		&dt.RoundingMethod, &dt.RoundingPrecision, &dt.CreatedAt, &dt.UpdatedAt,
	)
	return dt, err
}

func (r *deductionRepository) CreateType(ctx context.Context, dt deduction.DeductionType) (deduction.DeductionType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO deduction_types (
			code, name, calculation_type, employee_rate, employer_rate,
			applies_to, is_active, effective_from, effective_until,
			rounding_method, rounding_precision
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + deductionTypeColumns

	created, err := scanDeductionType(q.QueryRow(ctx, query,
		dt.Code, dt.Name, dt.CalculationType, dt.EmployeeRate, dt.EmployerRate,
		dt.AppliesTo, dt.IsActive, dt.EffectiveFrom, dt.EffectiveUntil,
		dt.RoundingMethod, dt.RoundingPrecision,
	))
	if err != nil {
		return deduction.DeductionType{}, fmt.Errorf("failed to create deduction type: %w", err)
	}

	return created, nil
}

func (r *deductionRepository) GetTypeByID(ctx context.Context, id string) (deduction.DeductionType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + deductionTypeColumns + ` FROM deduction_types WHERE id = $1`

	dt, err := scanDeductionType(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return deduction.DeductionType{}, deduction.ErrDeductionTypeNotFound
		}
		return deduction.DeductionType{}, fmt.Errorf("failed to get deduction type: %w", err)
	}

	return dt, nil
}

func (r *deductionRepository) ListTypes(ctx context.Context, activeOnly bool) ([]deduction.DeductionType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + deductionTypeColumns + ` FROM deduction_types`
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY code, effective_from"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list deduction types: %w", err)
	}
	defer rows.Close()

	var types []deduction.DeductionType
	for rows.Next() {
		dt, err := scanDeductionType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deduction type: %w", err)
		}
		types = append(types, dt)
	}

	return types, nil
}

func (r *deductionRepository) GetActiveTypes(ctx context.Context) ([]deduction.DeductionType, error) {
	return r.ListTypes(ctx, true)
}

func (r *deductionRepository) DeactivateType(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE deduction_types
		SET is_active = false, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return deduction.ErrDeductionTypeNotFound
		}
		return fmt.Errorf("failed to deactivate deduction type: %w", err)
	}

	return nil
}

func (r *deductionRepository) CountTypes(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM deduction_types`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count deduction types: %w", err)
	}
	return count, nil
}

// ========== WAGE RANGES ==========

const wageRangeColumns = `
	id, deduction_type_id, min_wage, max_wage, calculation_method,
	employee_amount, employer_amount, employee_percentage, employer_percentage, created_at
`

func scanWageRange(row pgx.Row) (deduction.WageRange, error) {
	var wr deduction.WageRange
	err := row.Scan(
		&wr.ID, &wr.DeductionTypeID, &wr.MinWage, &wr.MaxWage, &wr.CalculationMethod,
		&wr.EmployeeAmount, &wr.EmployerAmount, &wr.EmployeePercentage, &wr.EmployerPercentage, &wr.CreatedAt,
	)
	return wr, err
}

// ReplaceWageRanges swaps a type's whole bracket table in one transaction so
// readers never observe a partially imported table.
func (r *deductionRepository) ReplaceWageRanges(ctx context.Context, deductionTypeID string, ranges []deduction.WageRange) ([]deduction.WageRange, error) {
	var saved []deduction.WageRange

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM wage_ranges WHERE deduction_type_id = $1`, deductionTypeID); err != nil {
			return fmt.Errorf("failed to clear wage ranges: %w", err)
		}

		query := `
			INSERT INTO wage_ranges (
				deduction_type_id, min_wage, max_wage, calculation_method,
				employee_amount, employer_amount, employee_percentage, employer_percentage
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING ` + wageRangeColumns

		for _, wr := range ranges {
			created, err := scanWageRange(tx.QueryRow(ctx, query,
				deductionTypeID, wr.MinWage, wr.MaxWage, wr.CalculationMethod,
				wr.EmployeeAmount, wr.EmployerAmount, wr.EmployeePercentage, wr.EmployerPercentage,
			))
			if err != nil {
				return fmt.Errorf("failed to insert wage range: %w", err)
			}
			saved = append(saved, created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

func (r *deductionRepository) GetRangesByTypeID(ctx context.Context, deductionTypeID string) ([]deduction.WageRange, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + wageRangeColumns + ` FROM wage_ranges WHERE deduction_type_id = $1 ORDER BY min_wage`

	rows, err := q.Query(ctx, query, deductionTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wage ranges: %w", err)
	}
	defer rows.Close()

	var ranges []deduction.WageRange
	for rows.Next() {
		wr, err := scanWageRange(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wage range: %w", err)
		}
		ranges = append(ranges, wr)
	}

	return ranges, nil
}

func (r *deductionRepository) GetRangesForTypes(ctx context.Context, deductionTypeIDs []string) (map[string][]deduction.WageRange, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + wageRangeColumns + ` FROM wage_ranges WHERE deduction_type_id = ANY($1) ORDER BY deduction_type_id, min_wage`

	rows, err := q.Query(ctx, query, deductionTypeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list wage ranges: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]deduction.WageRange)
	for rows.Next() {
		wr, err := scanWageRange(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wage range: %w", err)
		}
		result[wr.DeductionTypeID] = append(result[wr.DeductionTypeID], wr)
	}

	return result, nil
}
