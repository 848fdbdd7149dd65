package lending

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/talento-api/internal/domain/entity"
)

// Estados de una cuota en el cronograma.
const (
	InstallmentStatusPaid    = "paid"
	InstallmentStatusPending = "pending"
	InstallmentStatusOverdue = "overdue"
)

// Installment una fila del cronograma de pagos.
type Installment struct {
	Number  int
	DueDate time.Time
	Amount  decimal.Decimal
	Status  string
}

// Schedule genera el cronograma del préstamo: una cuota cada 30 días desde StartDate.
// Las primeras InstallmentsPaid cuotas figuran pagadas; las pendientes con fecha anterior
// a now figuran vencidas. La última cuota absorbe el residuo del redondeo.
func Schedule(loan *entity.Loan, now time.Time) []Installment {
	if loan.Installments < 1 {
		return nil
	}
	amount := InstallmentAmount(loan).Round(2)
	last := loan.Value.Sub(amount.Mul(decimal.NewFromInt(int64(loan.Installments - 1))))

	out := make([]Installment, 0, loan.Installments)
	for n := 1; n <= loan.Installments; n++ {
		due := DueDate(loan.StartDate, n)
		status := InstallmentStatusPending
		switch {
		case n <= loan.InstallmentsPaid:
			status = InstallmentStatusPaid
		case due.Before(now):
			status = InstallmentStatusOverdue
		}
		a := amount
		if n == loan.Installments {
			a = last
		}
		out = append(out, Installment{Number: n, DueDate: due, Amount: a, Status: status})
	}
	return out
}
