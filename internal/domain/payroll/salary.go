package payroll

import (
	"time"

	"github.com/jhoicas/talento-api/internal/domain"
	"github.com/shopspring/decimal"
)

// MinTenureUnits piso de unidades de antigüedad: un empleado nuevo gana al menos el mínimo.
const MinTenureUnits = 6

var tenureDivisor = decimal.NewFromInt(MinTenureUnits)

// TenureUnits años de nómina completos desde la contratación, con piso MinTenureUnits.
func TenureUnits(hiringDate, now time.Time) int {
	units := elapsedDays(hiringDate, now) / DaysPerYear
	if units < MinTenureUnits {
		units = MinTenureUnits
	}
	return units
}

// Salary = unidades * salarioMínimo / 6, redondeado a 2 decimales.
// Es una función escalonada no decreciente de la antigüedad.
func Salary(hiringDate, now time.Time, minimumWage decimal.Decimal) decimal.Decimal {
	units := decimal.NewFromInt(int64(TenureUnits(hiringDate, now)))
	return units.Mul(minimumWage).Div(tenureDivisor).Round(2)
}

func newRuleError(msg string) *domain.Error {
	return domain.NewError(domain.ErrBusinessRule, msg)
}
