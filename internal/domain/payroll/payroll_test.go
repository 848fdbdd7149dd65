package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/talento-api/internal/domain"
	"github.com/jhoicas/talento-api/internal/domain/payroll"
)

var (
	now         = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	minimumWage = decimal.NewFromInt(1300000)
)

func daysBefore(days int) time.Time {
	return now.AddDate(0, 0, -days)
}

func TestParseDate(t *testing.T) {
	d, err := payroll.ParseDate("1990/07/21")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, time.July, 21, 0, 0, 0, 0, time.UTC), d)

	for _, in := range []string{"", "1990-07-21", "21/07/1990", "1990/13/01", "ayer"} {
		_, err := payroll.ParseDate(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada %q", in)
	}
}

func TestAge_VeinteAniosDeNomina(t *testing.T) {
	age := payroll.Age(daysBefore(20*payroll.DaysPerYear), now)
	assert.InDelta(t, 20.0, age, 1e-9)
}

func TestAge_DiasIncompletosNoCuentan(t *testing.T) {
	birth := daysBefore(3600).Add(2 * time.Hour) // 3599 días y 22 horas
	assert.InDelta(t, 3599.0/360.0, payroll.Age(birth, now), 1e-9)
}

func TestAgeFromString(t *testing.T) {
	age, err := payroll.AgeFromString("2004/03/15", now)
	require.NoError(t, err)
	assert.Equal(t, 20, int(age))

	_, err = payroll.AgeFromString("15-03-2004", now)
	assert.ErrorIs(t, err, payroll.ErrInvalidDate)
}

func TestCheckAdmissionAge_Limites(t *testing.T) {
	cases := []struct {
		name string
		days int
		want error
	}{
		{"17 años", 17 * payroll.DaysPerYear, payroll.ErrAgeBelowMinimum},
		{"casi 18", 18*payroll.DaysPerYear - 1, payroll.ErrAgeBelowMinimum},
		{"18 años", 18 * payroll.DaysPerYear, nil},
		{"45 años", 45 * payroll.DaysPerYear, nil},
		{"70 años", 70 * payroll.DaysPerYear, nil},
		{"70 años y un día", 70*payroll.DaysPerYear + 1, payroll.ErrAgeAboveMaximum},
		{"71 años", 71 * payroll.DaysPerYear, payroll.ErrAgeAboveMaximum},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := payroll.CheckAdmissionAge(daysBefore(tc.days), now)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, domain.ErrBusinessRule)
		})
	}
}

func TestTenureUnits(t *testing.T) {
	assert.Equal(t, 6, payroll.TenureUnits(now, now))
	assert.Equal(t, 6, payroll.TenureUnits(daysBefore(5*payroll.DaysPerYear), now))
	assert.Equal(t, 7, payroll.TenureUnits(daysBefore(7*payroll.DaysPerYear+100), now))
	assert.Equal(t, 12, payroll.TenureUnits(daysBefore(12*payroll.DaysPerYear), now))
}

func TestSalary(t *testing.T) {
	t.Run("recién contratado gana el mínimo", func(t *testing.T) {
		assert.True(t, payroll.Salary(now, now, minimumWage).Equal(minimumWage))
	})
	t.Run("12 unidades duplican el mínimo", func(t *testing.T) {
		got := payroll.Salary(daysBefore(12*payroll.DaysPerYear), now, minimumWage)
		assert.True(t, got.Equal(minimumWage.Mul(decimal.NewFromInt(2))), "salario %s", got)
	})
	t.Run("7 unidades redondea a centavos", func(t *testing.T) {
		got := payroll.Salary(daysBefore(7*payroll.DaysPerYear), now, minimumWage)
		assert.Equal(t, "1516666.67", got.StringFixed(2))
	})
	t.Run("no decreciente", func(t *testing.T) {
		prev := decimal.Zero
		for days := 0; days <= 40*payroll.DaysPerYear; days += 90 {
			s := payroll.Salary(daysBefore(days), now, minimumWage)
			assert.True(t, s.GreaterThanOrEqual(prev), "días %d", days)
			prev = s
		}
	})
}
