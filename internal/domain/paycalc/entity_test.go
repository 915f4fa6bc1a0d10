package paycalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPayCalculation_PeriodDate(t *testing.T) {
	t.Parallel()

	calc := PayCalculation{PeriodMonth: 6, PeriodYear: 2024}

	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), calc.PeriodDate())
}

func TestGeneratePayCalculationRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := GeneratePayCalculationRequest{PeriodMonth: 6, PeriodYear: 2024}
	assert.NoError(t, valid.Validate())

	badMonth := GeneratePayCalculationRequest{PeriodMonth: 13, PeriodYear: 2024}
	assert.Error(t, badMonth.Validate())

	badYear := GeneratePayCalculationRequest{PeriodMonth: 6, PeriodYear: 2019}
	assert.Error(t, badYear.Validate())
}
