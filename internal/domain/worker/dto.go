package worker

import (
	"github.com/ladangworks/estate-backend-go/internal/domain/deduction"
	"github.com/ladangworks/estate-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateWorkerRequest struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Nationality   string          `json:"nationality"` // "local" or "foreigner"
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidWorkerCode(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "must match the estate badge format, e.g. LDG-00412"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsInSlice(r.Nationality, []string{string(deduction.NationalityLocal), string(deduction.NationalityForeigner)}) {
		errs = append(errs, validator.ValidationError{Field: "nationality", Message: "must be 'local' or 'foreigner'"})
	}
	if r.MonthlySalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "monthly_salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WorkerResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Nationality   string          `json:"nationality"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	IsActive      bool            `json:"is_active"`
}
