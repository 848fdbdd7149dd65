package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/talento-api/internal/domain"
	"github.com/jhoicas/talento-api/internal/domain/entity"
	"github.com/jhoicas/talento-api/internal/domain/repository"
	"github.com/jhoicas/talento-api/internal/infrastructure/postgres"
	"github.com/jhoicas/talento-api/pkg/config"
)

// openPool conecta a TEST_DATABASE_URL y deja el esquema recién migrado. Sin la variable se omite la prueba.
func openPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.MigrateDown(pool))
	require.NoError(t, postgres.MigrateUp(pool))
	return pool
}

func TestPostgres_CicloDeVida(t *testing.T) {
	pool := openPool(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	companies := postgres.NewCompanyRepository(pool)
	employees := postgres.NewEmployeeRepository(pool)
	loans := postgres.NewLoanRepository(pool)

	require.NoError(t, companies.Create(ctx, &entity.Company{NIT: "123456789", VerificationDigit: 5, Name: "Acme", CreatedAt: now, UpdatedAt: now}))
	assert.ErrorIs(t, companies.Create(ctx, &entity.Company{NIT: "123456789", VerificationDigit: 5}), domain.ErrCompanyExists)

	nit := "123456789"
	emp := &entity.Employee{
		Identification: 1010101010,
		Name:           "Ana",
		Salary:         decimal.RequireFromString("1516666.67"),
		HiringDate:     time.Date(2015, 1, 10, 0, 0, 0, 0, time.UTC),
		BirthDate:      time.Date(1990, 7, 21, 0, 0, 0, 0, time.UTC),
		CompanyNIT:     &nit,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, employees.Create(ctx, emp))

	got, err := employees.GetByIdentification(ctx, emp.Identification)
	require.NoError(t, err)
	require.NotNil(t, got.Company)
	assert.Equal(t, "Acme", got.Company.Name)
	assert.True(t, got.Salary.Equal(emp.Salary))

	loanID := uuid.New().String()
	require.NoError(t, loans.Create(ctx, &entity.Loan{
		ID: loanID, EmployeeID: emp.Identification,
		Value: decimal.NewFromInt(1200), Installments: 12, TotalLeft: decimal.NewFromInt(1200),
		StartDate: now, EndDate: now.AddDate(0, 0, 360), CreatedAt: now, UpdatedAt: now,
	}))

	// El cambio de NIT y de identificación se propaga por cascada.
	c, err := companies.GetByNIT(ctx, "123456789")
	require.NoError(t, err)
	c.NIT = "890900608"
	c.VerificationDigit = 6
	require.NoError(t, companies.Update(ctx, "123456789", c))

	got.Identification = 2020202020
	got.CompanyNIT = &c.NIT
	require.NoError(t, employees.Update(ctx, 1010101010, got))

	loan, err := loans.GetByID(ctx, loanID)
	require.NoError(t, err)
	require.NotNil(t, loan.Employee)
	assert.Equal(t, int64(2020202020), loan.EmployeeID)
	assert.Equal(t, "890900608", loan.Employee.Company.NIT)

	assert.ErrorIs(t, employees.Delete(ctx, 2020202020), domain.ErrEmployeeHasLoans)

	require.NoError(t, companies.Delete(ctx, "890900608"))
	got, err = employees.GetByIdentification(ctx, 2020202020)
	require.NoError(t, err)
	assert.Nil(t, got.CompanyNIT)

	all, err := loans.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPostgres_TxRunnerRevierte(t *testing.T) {
	pool := openPool(t)
	ctx := context.Background()
	now := time.Now().UTC()

	employees := postgres.NewEmployeeRepository(pool)
	require.NoError(t, employees.Create(ctx, &entity.Employee{
		Identification: 42, Name: "Luis", Salary: decimal.NewFromInt(1300000),
		HiringDate: now, BirthDate: now.AddDate(-30, 0, 0), CreatedAt: now, UpdatedAt: now,
	}))

	boom := errors.New("boom")
	err := postgres.NewTxRunner(pool).Run(ctx, func(er repository.EmployeeRepository, _ repository.LoanRepository) error {
		e, err := er.GetForUpdate(ctx, 42)
		require.NoError(t, err)
		require.NoError(t, er.SetCurrentLoans(ctx, e.Identification, 2, now))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	e, err := employees.GetByIdentification(ctx, 42)
	require.NoError(t, err)
	assert.Zero(t, e.CurrentLoans)
}

func TestPostgres_UpdateNoPisaContadorDePrestamos(t *testing.T) {
	pool := openPool(t)
	ctx := context.Background()
	now := time.Now().UTC()

	employees := postgres.NewEmployeeRepository(pool)
	require.NoError(t, employees.Create(ctx, &entity.Employee{
		Identification: 77, Name: "Marta", Salary: decimal.NewFromInt(1300000),
		HiringDate: now, BirthDate: now.AddDate(-30, 0, 0), CreatedAt: now, UpdatedAt: now,
	}))

	stale, err := employees.GetByIdentification(ctx, 77)
	require.NoError(t, err)
	require.NoError(t, employees.SetCurrentLoans(ctx, 77, 1, now))

	stale.Name = "Marta Ruiz"
	require.NoError(t, employees.Update(ctx, 77, stale))

	e, err := employees.GetByIdentification(ctx, 77)
	require.NoError(t, err)
	assert.Equal(t, "Marta Ruiz", e.Name)
	assert.Equal(t, 1, e.CurrentLoans)

	assert.ErrorIs(t, employees.SetCurrentLoans(ctx, 78, 1, now), domain.ErrEmployeeNotFound)
}
