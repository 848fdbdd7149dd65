package lending_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/talento-api/internal/domain"
	"github.com/jhoicas/talento-api/internal/domain/lending"
)

var now = time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCanIssue(t *testing.T) {
	assert.NoError(t, lending.CanIssue(0))
	assert.NoError(t, lending.CanIssue(2))

	err := lending.CanIssue(3)
	assert.ErrorIs(t, err, lending.ErrLoanLimitReached)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
}

func TestIssue(t *testing.T) {
	loan, err := lending.Issue(1010101010, dec("1200"), 12, now)
	require.NoError(t, err)

	assert.Equal(t, int64(1010101010), loan.EmployeeID)
	assert.Zero(t, loan.InstallmentsPaid)
	assert.True(t, loan.TotalPaid.IsZero())
	assert.True(t, loan.TotalLeft.Equal(dec("1200")))
	assert.Equal(t, now, loan.StartDate)
	assert.Equal(t, now.AddDate(0, 0, 360), loan.EndDate)
}

func TestIssue_DatosInvalidos(t *testing.T) {
	_, err := lending.Issue(1, decimal.Zero, 12, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = lending.Issue(1, dec("-10"), 12, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = lending.Issue(1, dec("1000"), 0, now)
	assert.ErrorIs(t, err, lending.ErrInvalidTerm)
}

func TestApplyPayment_SinMontoUsaValorDeCuota(t *testing.T) {
	loan, err := lending.Issue(1, dec("1200"), 12, now)
	require.NoError(t, err)

	require.NoError(t, lending.ApplyPayment(loan, 3, nil, now))

	assert.Equal(t, 3, loan.InstallmentsPaid)
	assert.True(t, loan.TotalPaid.Equal(dec("300")), "total pagado %s", loan.TotalPaid)
	assert.True(t, loan.TotalLeft.Equal(dec("900")), "saldo %s", loan.TotalLeft)
}

func TestApplyPayment_ConMontoExplicito(t *testing.T) {
	loan, err := lending.Issue(1, dec("1200"), 12, now)
	require.NoError(t, err)

	amount := dec("250.50")
	require.NoError(t, lending.ApplyPayment(loan, 2, &amount, now))

	assert.Equal(t, 2, loan.InstallmentsPaid)
	assert.True(t, loan.TotalPaid.Equal(amount))
	assert.True(t, loan.TotalLeft.Equal(dec("949.50")))
}

func TestApplyPayment_SaldoNuncaNegativo(t *testing.T) {
	loan, err := lending.Issue(1, dec("1000"), 2, now)
	require.NoError(t, err)

	amount := dec("1500")
	require.NoError(t, lending.ApplyPayment(loan, 1, &amount, now))
	assert.True(t, loan.TotalLeft.IsZero())
}

func TestApplyPayment_Rechazos(t *testing.T) {
	loan, err := lending.Issue(1, dec("1200"), 12, now)
	require.NoError(t, err)

	assert.ErrorIs(t, lending.ApplyPayment(loan, 0, nil, now), domain.ErrInvalidInput)

	zero := decimal.Zero
	assert.ErrorIs(t, lending.ApplyPayment(loan, 1, &zero, now), lending.ErrInvalidPayment)

	require.NoError(t, lending.ApplyPayment(loan, 11, nil, now))
	err = lending.ApplyPayment(loan, 2, nil, now)
	assert.ErrorIs(t, err, lending.ErrLoanOverpaid)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 11, loan.InstallmentsPaid, "un abono rechazado no modifica el préstamo")
}

func TestSchedule(t *testing.T) {
	loan, err := lending.Issue(1, dec("1000"), 3, now)
	require.NoError(t, err)
	require.NoError(t, lending.ApplyPayment(loan, 1, nil, now))

	later := now.AddDate(0, 0, 65)
	rows := lending.Schedule(loan, later)
	require.Len(t, rows, 3)

	assert.Equal(t, lending.InstallmentStatusPaid, rows[0].Status)
	assert.Equal(t, lending.InstallmentStatusOverdue, rows[1].Status)
	assert.Equal(t, lending.InstallmentStatusPending, rows[2].Status)
	assert.Equal(t, now.AddDate(0, 0, 90), rows[2].DueDate)
	assert.Equal(t, loan.EndDate, rows[2].DueDate)

	assert.Equal(t, "333.33", rows[0].Amount.StringFixed(2))
	assert.Equal(t, "333.34", rows[2].Amount.StringFixed(2))

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}
	assert.True(t, total.Equal(loan.Value))
}
