package paycalc

import (
	"time"

	"github.com/ladangworks/estate-backend-go/internal/domain/deduction"
	"github.com/shopspring/decimal"
)

// PayCalculationStatus enum
type PayCalculationStatus string

const (
	PayCalculationStatusDraft PayCalculationStatus = "draft"
	PayCalculationStatusFinal PayCalculationStatus = "final"
)

// DetailStatus enum
type DetailStatus string

const (
	DetailStatusComputed DetailStatus = "computed"
	DetailStatusFailed   DetailStatus = "failed"
)

// PayCalculation - one payroll run for a month. Totals are recomputed from
// the successful details at persist time, never incremented across runs.
type PayCalculation struct {
	ID                      string
	PeriodMonth             int
	PeriodYear              int
	Status                  PayCalculationStatus
	TotalGross              decimal.Decimal
	TotalEmployeeDeductions decimal.Decimal
	TotalEmployerDeductions decimal.Decimal
	TotalNet                decimal.Decimal
	WorkerCount             int
	FailedCount             int
	FinalizedAt             *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// PeriodDate is the as-of date used for effective-window resolution: the
// first day of the pay period.
func (p PayCalculation) PeriodDate() time.Time {
	return time.Date(p.PeriodYear, time.Month(p.PeriodMonth), 1, 0, 0, 0, 0, time.UTC)
}

// PayCalculationDetail - one worker's computed breakdown within a run.
// Breakdown is persisted as structured JSON alongside the scalar totals.
type PayCalculationDetail struct {
	ID                 string
	PayCalculationID   string
	WorkerID           string
	GrossSalary        decimal.Decimal
	EmployeeDeductions decimal.Decimal
	EmployerDeductions decimal.Decimal
	NetSalary          decimal.Decimal
	Breakdown          map[string]deduction.Contribution
	Status             DetailStatus
	FailureReason      *string
	CreatedAt          time.Time

	// Joined fields
	WorkerName *string
	WorkerCode *string
}
