package worker

import (
	"time"

	"github.com/ladangworks/estate-backend-go/internal/domain/deduction"
	"github.com/shopspring/decimal"
)

// Worker - an estate worker as the payroll engine sees one: identity,
// nationality class and the monthly salary used as gross for a pay period.
type Worker struct {
	ID            string
	Code          string
	Name          string
	Nationality   deduction.NationalityClass
	MonthlySalary decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
