package deduction

import (
	"testing"

	"github.com/ladangworks/estate-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateDeductionTypeRequest {
	rate := decimal.RequireFromString("11")
	return CreateDeductionTypeRequest{
		Code:              "EPF_LOCAL",
		Name:              "Employees Provident Fund",
		CalculationType:   "percentage",
		EmployeeRate:      &rate,
		EmployerRate:      &rate,
		AppliesTo:         "local",
		EffectiveFrom:     "2024-01-01",
		RoundingMethod:    "round",
		RoundingPrecision: 2,
	}
}

func TestCreateDeductionTypeRequest_Valid(t *testing.T) {
	t.Parallel()

	req := validCreateRequest()

	assert.NoError(t, req.Validate())
}

func TestCreateDeductionTypeRequest_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*CreateDeductionTypeRequest)
		field  string
	}{
		{"empty code", func(r *CreateDeductionTypeRequest) { r.Code = " " }, "code"},
		{"empty name", func(r *CreateDeductionTypeRequest) { r.Name = "" }, "name"},
		{"bad calculation type", func(r *CreateDeductionTypeRequest) { r.CalculationType = "flat" }, "calculation_type"},
		{"percentage without rates", func(r *CreateDeductionTypeRequest) { r.EmployeeRate = nil }, "employee_rate"},
		{"negative rate", func(r *CreateDeductionTypeRequest) {
			neg := decimal.RequireFromString("-1")
			r.EmployeeRate = &neg
		}, "employee_rate"},
		{"bad applies_to", func(r *CreateDeductionTypeRequest) { r.AppliesTo = "expat" }, "applies_to"},
		{"bad effective_from", func(r *CreateDeductionTypeRequest) { r.EffectiveFrom = "01/01/2024" }, "effective_from"},
		{"until before from", func(r *CreateDeductionTypeRequest) {
			until := "2023-12-31"
			r.EffectiveUntil = &until
		}, "effective_until"},
		{"bad rounding method", func(r *CreateDeductionTypeRequest) { r.RoundingMethod = "truncate" }, "rounding_method"},
		{"negative precision", func(r *CreateDeductionTypeRequest) { r.RoundingPrecision = -1 }, "rounding_precision"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := validCreateRequest()
			tt.mutate(&req)

			err := req.Validate()

			require.Error(t, err)
			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), tt.field)
		})
	}
}

func TestReplaceWageRangesRequest_Invalid(t *testing.T) {
	t.Parallel()

	empty := ReplaceWageRangesRequest{}
	assert.Error(t, empty.Validate())

	badMethod := ReplaceWageRangesRequest{
		Ranges: []WageRangeRequest{{CalculationMethod: "flat"}},
	}
	assert.Error(t, badMethod.Validate())

	negative := ReplaceWageRangesRequest{
		Ranges: []WageRangeRequest{{
			CalculationMethod: "fixed",
			EmployeeAmount:    decimal.RequireFromString("-1"),
		}},
	}
	assert.Error(t, negative.Validate())
}
