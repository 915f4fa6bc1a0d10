package paycalc

import (
	"github.com/ladangworks/estate-backend-go/internal/domain/deduction"
	"github.com/ladangworks/estate-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GeneratePayCalculationRequest struct {
	PeriodMonth int `json:"period_month"`
	PeriodYear  int `json:"period_year"`
}

func (r *GeneratePayCalculationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2020 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be 2020 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayCalculationResponse struct {
	ID                      string          `json:"id"`
	PeriodMonth             int             `json:"period_month"`
	PeriodYear              int             `json:"period_year"`
	Status                  string          `json:"status"`
	TotalGross              decimal.Decimal `json:"total_gross"`
	TotalEmployeeDeductions decimal.Decimal `json:"total_employee_deductions"`
	TotalEmployerDeductions decimal.Decimal `json:"total_employer_deductions"`
	TotalNet                decimal.Decimal `json:"total_net"`
	WorkerCount             int             `json:"worker_count"`
	FailedCount             int             `json:"failed_count"`
	FinalizedAt             *string         `json:"finalized_at,omitempty"`
}

type PayCalculationDetailResponse struct {
	ID                 string                            `json:"id"`
	WorkerID           string                            `json:"worker_id"`
	WorkerName         string                            `json:"worker_name"`
	WorkerCode         string                            `json:"worker_code"`
	GrossSalary        decimal.Decimal                   `json:"gross_salary"`
	EmployeeDeductions decimal.Decimal                   `json:"employee_deductions"`
	EmployerDeductions decimal.Decimal                   `json:"employer_deductions"`
	NetSalary          decimal.Decimal                   `json:"net_salary"`
	Breakdown          map[string]deduction.Contribution `json:"breakdown"`
	Status             string                            `json:"status"`
	FailureReason      *string                           `json:"failure_reason,omitempty"`
}

type ListPayCalculationResponse struct {
	Data       []PayCalculationResponse `json:"data"`
	TotalCount int64                    `json:"total_count"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
}
