// Package lending contiene las reglas de préstamos a empleados: emisión, límite de
// préstamos vigentes, abono de cuotas y cronograma de pagos.
package lending

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/talento-api/internal/domain"
	"github.com/jhoicas/talento-api/internal/domain/entity"
)

// InstallmentPeriodDays días entre cuotas.
const InstallmentPeriodDays = 30

var (
	ErrLoanLimitReached = domain.NewError(domain.ErrBusinessRule, "el empleado no puede tener más de 3 préstamos")
	ErrInvalidValue     = domain.NewError(domain.ErrInvalidInput, "el valor del préstamo debe ser mayor que cero")
	ErrInvalidTerm      = domain.NewError(domain.ErrInvalidInput, "el número de cuotas debe ser al menos 1")
	ErrInvalidPayment   = domain.NewError(domain.ErrInvalidInput, "el abono debe cubrir al menos una cuota y un monto positivo")
	ErrLoanOverpaid     = domain.NewError(domain.ErrConflict, "el abono supera las cuotas pendientes del préstamo")
)

// CanIssue verifica el límite de préstamos vigentes del empleado.
func CanIssue(currentLoans int) error {
	if currentLoans >= entity.MaxActiveLoans {
		return ErrLoanLimitReached
	}
	return nil
}

// Issue construye un préstamo nuevo sin abonos que inicia en now.
func Issue(employeeID int64, value decimal.Decimal, installments int, now time.Time) (*entity.Loan, error) {
	if !value.IsPositive() {
		return nil, ErrInvalidValue
	}
	if installments < 1 {
		return nil, ErrInvalidTerm
	}
	return &entity.Loan{
		EmployeeID:       employeeID,
		Value:            value,
		Installments:     installments,
		InstallmentsPaid: 0,
		TotalPaid:        decimal.Zero,
		TotalLeft:        value,
		StartDate:        now,
		EndDate:          DueDate(now, installments),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// DueDate fecha de la cuota número n contada desde start.
func DueDate(start time.Time, n int) time.Time {
	return start.AddDate(0, 0, n*InstallmentPeriodDays)
}

// InstallmentAmount valor nominal de una cuota (Value / Installments).
func InstallmentAmount(loan *entity.Loan) decimal.Decimal {
	if loan.Installments < 1 {
		return decimal.Zero
	}
	return loan.Value.Div(decimal.NewFromInt(int64(loan.Installments)))
}

// ApplyPayment registra el pago de count cuotas. Si amount es nil se abona el valor
// nominal de esas cuotas. TotalLeft se recalcula como Value - TotalPaid.
func ApplyPayment(loan *entity.Loan, count int, amount *decimal.Decimal, now time.Time) error {
	if count < 1 {
		return ErrInvalidPayment
	}
	if amount != nil && !amount.IsPositive() {
		return ErrInvalidPayment
	}
	if loan.InstallmentsPaid+count > loan.Installments {
		return ErrLoanOverpaid
	}

	paid := InstallmentAmount(loan).Mul(decimal.NewFromInt(int64(count))).Round(2)
	if amount != nil {
		paid = *amount
	}

	loan.InstallmentsPaid += count
	loan.TotalPaid = loan.TotalPaid.Add(paid)
	loan.TotalLeft = remaining(loan)
	loan.UpdatedAt = now
	return nil
}

func remaining(loan *entity.Loan) decimal.Decimal {
	left := loan.Value.Sub(loan.TotalPaid)
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}
