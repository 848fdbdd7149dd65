package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/talento-api/internal/application/dto"
	"github.com/jhoicas/talento-api/internal/application/usecase"
	"github.com/jhoicas/talento-api/internal/domain"
	"github.com/jhoicas/talento-api/internal/domain/entity"
	"github.com/jhoicas/talento-api/internal/domain/lending"
	"github.com/jhoicas/talento-api/internal/domain/payroll"
	"github.com/jhoicas/talento-api/internal/domain/repository"
	"github.com/jhoicas/talento-api/internal/infrastructure/memory"
	"github.com/jhoicas/talento-api/pkg/logger"
)

var (
	now         = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	minimumWage = decimal.NewFromInt(1300000)
)

func jsonNumber(s string) json.Number { return json.Number(s) }

type fakeStatement struct{}

func (fakeStatement) GenerateLoanStatement(_ context.Context, loan *entity.Loan, _ time.Time) ([]byte, error) {
	return []byte("%PDF-" + loan.ID), nil
}

type fixture struct {
	companies *usecase.CompanyUseCase
	employees *usecase.EmployeeUseCase
	loans     *usecase.LoanUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	clock := func() time.Time { return now }
	log := logger.Nop()
	return &fixture{
		companies: usecase.NewCompanyUseCase(store.Companies(), clock, log),
		employees: usecase.NewEmployeeUseCase(store.Employees(), store.Companies(), store.Loans(), minimumWage, clock, log),
		loans:     usecase.NewLoanUseCase(store, store.Loans(), fakeStatement{}, clock, log),
	}
}

func (f *fixture) company(t *testing.T, nitValue string) {
	t.Helper()
	_, err := f.companies.Create(context.Background(), dto.CreateCompanyRequest{NIT: nitValue, Name: "Acme", Address: "Calle 1"})
	require.NoError(t, err)
}

func (f *fixture) employee(t *testing.T, id, company string) *dto.EmployeeResponse {
	t.Helper()
	out, err := f.employees.Create(context.Background(), dto.CreateEmployeeRequest{
		Identification: jsonNumber(id),
		Name:           "Ana Gómez",
		HiringDate:     "2012/03/15",
		BirthDate:      "1990/07/21",
		Company:        company,
	})
	require.NoError(t, err)
	return out
}

func (f *fixture) loan(t *testing.T, employee string) *dto.LoanResponse {
	t.Helper()
	out, err := f.loans.Create(context.Background(), dto.CreateLoanRequest{
		Employee:     jsonNumber(employee),
		Value:        decimal.NewFromInt(1200),
		Installments: 12,
	})
	require.NoError(t, err)
	return out
}

func TestCompanyUseCase_Create(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	out, err := f.companies.Create(ctx, dto.CreateCompanyRequest{NIT: "123456789", Name: "Acme", Address: "Calle 1"})
	require.NoError(t, err)
	assert.Equal(t, 5, out.VerificationDigit)

	_, err = f.companies.Create(ctx, dto.CreateCompanyRequest{NIT: "123456789", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrCompanyExists)

	_, err = f.companies.Create(ctx, dto.CreateCompanyRequest{NIT: "12345", Name: "Corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompanyUseCase_UpdateParcialYCambioDeNIT(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.company(t, "123456789")
	f.employee(t, "1010101010", "123456789")

	empty := ""
	out, err := f.companies.Update(ctx, "123456789", dto.UpdateCompanyRequest{Name: &empty})
	require.NoError(t, err)
	assert.Equal(t, "Acme", out.Name, "un campo vacío conserva el valor")

	newNIT := "890900608"
	out, err = f.companies.Update(ctx, "123456789", dto.UpdateCompanyRequest{NIT: &newNIT})
	require.NoError(t, err)
	assert.Equal(t, 6, out.VerificationDigit)

	_, err = f.companies.GetByNIT(ctx, "123456789")
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)

	company, err := f.employees.Company(ctx, 1010101010)
	require.NoError(t, err)
	assert.Equal(t, "890900608", company.NIT)
}

func TestCompanyUseCase_DeleteDesvinculaEmpleados(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.company(t, "123456789")
	f.employee(t, "1010101010", "123456789")

	require.NoError(t, f.companies.Delete(ctx, "123456789"))
	assert.ErrorIs(t, f.companies.Delete(ctx, "123456789"), domain.ErrCompanyNotFound)

	_, err := f.employees.Company(ctx, 1010101010)
	assert.ErrorIs(t, err, domain.ErrEmployeeWithoutCompany)
}

func TestEmployeeUseCase_CreateCalculaSalario(t *testing.T) {
	f := newFixture()
	f.company(t, "123456789")

	out := f.employee(t, "1010101010", "123456789")
	want := payroll.Salary(time.Date(2012, time.March, 15, 0, 0, 0, 0, time.UTC), now, minimumWage)
	assert.True(t, out.Salary.Equal(want), "salario %s", out.Salary)
	require.NotNil(t, out.Company)
	assert.Equal(t, "123456789", out.Company.NIT)
	assert.Zero(t, out.CurrentLoans)
}

func TestEmployeeUseCase_EmpresaDesconocidaQuedaSinEmpresa(t *testing.T) {
	f := newFixture()
	out := f.employee(t, "1010101010", "999999999")
	assert.Nil(t, out.Company)
}

func TestEmployeeUseCase_CreateRechazos(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.employee(t, "1010101010", "")

	base := dto.CreateEmployeeRequest{
		Identification: jsonNumber("2020202020"),
		Name:           "Luis",
		HiringDate:     "2020/01/01",
		BirthDate:      "1990/01/01",
	}
	cases := []struct {
		name   string
		modify func(*dto.CreateEmployeeRequest)
		want   error
	}{
		{"duplicado", func(r *dto.CreateEmployeeRequest) { r.Identification = jsonNumber("1010101010") }, domain.ErrEmployeeExists},
		{"identificación inválida", func(r *dto.CreateEmployeeRequest) { r.Identification = jsonNumber("abc") }, usecase.ErrInvalidIdentification},
		{"sin nombre", func(r *dto.CreateEmployeeRequest) { r.Name = "  " }, usecase.ErrMissingEmployeeName},
		{"fecha mal formada", func(r *dto.CreateEmployeeRequest) { r.BirthDate = "01-01-1990" }, usecase.ErrInvalidBirthDate},
		{"menor de edad", func(r *dto.CreateEmployeeRequest) { r.BirthDate = "2010/01/01" }, payroll.ErrAgeBelowMinimum},
		{"mayor de 70", func(r *dto.CreateEmployeeRequest) { r.BirthDate = "1940/01/01" }, payroll.ErrAgeAboveMaximum},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.modify(&req)
			_, err := f.employees.Create(ctx, req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestEmployeeUseCase_Update(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.employee(t, "1010101010", "")

	t.Run("sin cambios es idempotente", func(t *testing.T) {
		before, err := f.employees.GetByIdentification(ctx, 1010101010)
		require.NoError(t, err)
		after, err := f.employees.Update(ctx, 1010101010, dto.UpdateEmployeeRequest{})
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("nueva fecha de contratación recalcula el salario", func(t *testing.T) {
		hiring := now.Format(payroll.DateLayout)
		out, err := f.employees.Update(ctx, 1010101010, dto.UpdateEmployeeRequest{HiringDate: &hiring})
		require.NoError(t, err)
		assert.True(t, out.Salary.Equal(minimumWage), "salario %s", out.Salary)
	})

	t.Run("cambio de identificación", func(t *testing.T) {
		id := jsonNumber("3030303030")
		out, err := f.employees.Update(ctx, 1010101010, dto.UpdateEmployeeRequest{Identification: &id})
		require.NoError(t, err)
		assert.Equal(t, int64(3030303030), out.Identification)

		_, err = f.employees.GetByIdentification(ctx, 1010101010)
		assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	})
}

// loanBetweenReads otorga un préstamo justo después de la primera lectura del empleado.
type loanBetweenReads struct {
	repository.EmployeeRepository
	issue func()
	done  bool
}

func (r *loanBetweenReads) GetByIdentification(ctx context.Context, id int64) (*entity.Employee, error) {
	e, err := r.EmployeeRepository.GetByIdentification(ctx, id)
	if !r.done {
		r.done = true
		r.issue()
	}
	return e, err
}

func TestEmployeeUseCase_UpdateNoPisaPrestamosConcurrentes(t *testing.T) {
	store := memory.NewStore()
	clock := func() time.Time { return now }
	log := logger.Nop()
	ctx := context.Background()

	base := usecase.NewEmployeeUseCase(store.Employees(), store.Companies(), store.Loans(), minimumWage, clock, log)
	_, err := base.Create(ctx, dto.CreateEmployeeRequest{
		Identification: jsonNumber("1010101010"), Name: "Ana Gómez", HiringDate: "2012/03/15", BirthDate: "1990/07/21",
	})
	require.NoError(t, err)

	loans := usecase.NewLoanUseCase(store, store.Loans(), fakeStatement{}, clock, log)
	racing := &loanBetweenReads{EmployeeRepository: store.Employees(), issue: func() {
		_, err := loans.Create(ctx, dto.CreateLoanRequest{Employee: jsonNumber("1010101010"), Value: decimal.NewFromInt(1200), Installments: 12})
		require.NoError(t, err)
	}}
	employees := usecase.NewEmployeeUseCase(racing, store.Companies(), store.Loans(), minimumWage, clock, log)

	name := "Ana María Gómez"
	out, err := employees.Update(ctx, 1010101010, dto.UpdateEmployeeRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, out.Name)
	assert.Equal(t, 1, out.CurrentLoans)

	list, err := base.Loans(ctx, 1010101010)
	require.NoError(t, err)
	got, err := base.GetByIdentification(ctx, 1010101010)
	require.NoError(t, err)
	assert.Equal(t, len(list), got.CurrentLoans)
}

func TestEmployeeUseCase_UpdateEmpresaInexistenteConservaVinculo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.company(t, "890900608")
	f.employee(t, "1010101010", "890900608")

	unknown := "999999999"
	_, err := f.employees.Update(ctx, 1010101010, dto.UpdateEmployeeRequest{Company: &unknown})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)

	got, err := f.employees.GetByIdentification(ctx, 1010101010)
	require.NoError(t, err)
	require.NotNil(t, got.Company)
	assert.Equal(t, "890900608", got.Company.NIT)

	f.company(t, "123456789")
	other := "123456789"
	out, err := f.employees.Update(ctx, 1010101010, dto.UpdateEmployeeRequest{Company: &other})
	require.NoError(t, err)
	require.NotNil(t, out.Company)
	assert.Equal(t, "123456789", out.Company.NIT)
}

func TestEmployeeUseCase_Age(t *testing.T) {
	f := newFixture()
	f.employee(t, "1010101010", "")

	age, err := f.employees.Age(context.Background(), 1010101010)
	require.NoError(t, err)
	assert.Equal(t, 34, age)
}

func TestEmployeeUseCase_DeleteConPrestamos(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.employee(t, "1010101010", "")
	loan := f.loan(t, "1010101010")

	assert.ErrorIs(t, f.employees.Delete(ctx, 1010101010), domain.ErrEmployeeHasLoans)

	require.NoError(t, f.loans.Delete(ctx, loan.ID))
	require.NoError(t, f.employees.Delete(ctx, 1010101010))
	assert.ErrorIs(t, f.employees.Delete(ctx, 1010101010), domain.ErrEmployeeNotFound)
}

func TestLoanUseCase_CreateYLimite(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.employee(t, "1010101010", "")

	first := f.loan(t, "1010101010")
	require.NotNil(t, first.Employee)
	assert.Equal(t, 1, first.Employee.CurrentLoans)
	assert.True(t, first.PayableAmount.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, now.AddDate(0, 0, 360), first.EndDate)

	f.loan(t, "1010101010")
	f.loan(t, "1010101010")

	_, err := f.loans.Create(ctx, dto.CreateLoanRequest{Employee: jsonNumber("1010101010"), Value: decimal.NewFromInt(100), Installments: 1})
	assert.ErrorIs(t, err, lending.ErrLoanLimitReached)

	emp, err := f.employees.GetByIdentification(ctx, 1010101010)
	require.NoError(t, err)
	assert.Equal(t, entity.MaxActiveLoans, emp.CurrentLoans)

	loans, err := f.employees.Loans(ctx, 1010101010)
	require.NoError(t, err)
	assert.Len(t, loans, 3)
	assert.Nil(t, loans[0].Employee)
}

func TestLoanUseCase_CreateEmpleadoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.loans.Create(context.Background(), dto.CreateLoanRequest{
		Employee:     jsonNumber("777"),
		Value:        decimal.NewFromInt(1000),
		Installments: 2,
	})
	assert.ErrorIs(t, err, domain.ErrLoanBorrowerMissing)
}

func TestLoanUseCase_Pay(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.employee(t, "1010101010", "")
	loan := f.loan(t, "1010101010")

	out, err := f.loans.Pay(ctx, loan.ID, dto.PayLoanRequest{Installments: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, out.InstallmentsPaid)
	assert.True(t, out.TotalPaid.Equal(decimal.NewFromInt(300)), "total pagado %s", out.TotalPaid)
	assert.True(t, out.PayableAmount.Equal(decimal.NewFromInt(900)), "saldo %s", out.PayableAmount)

	_, err = f.loans.Pay(ctx, loan.ID, dto.PayLoanRequest{Installments: 10})
	assert.ErrorIs(t, err, lending.ErrLoanOverpaid)

	_, err = f.loans.Pay(ctx, "no-es-uuid", dto.PayLoanRequest{Installments: 1})
	assert.ErrorIs(t, err, usecase.ErrInvalidLoanID)

	_, err = f.loans.Pay(ctx, "7d3c1a7e-2b2f-4c3a-9a59-0f4b5c6d7e8f", dto.PayLoanRequest{Installments: 1})
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestLoanUseCase_DeleteDescuentaContador(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.employee(t, "1010101010", "")
	loan := f.loan(t, "1010101010")

	require.NoError(t, f.loans.Delete(ctx, loan.ID))
	emp, err := f.employees.GetByIdentification(ctx, 1010101010)
	require.NoError(t, err)
	assert.Zero(t, emp.CurrentLoans)

	_, err = f.loans.GetByID(ctx, loan.ID)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestLoanUseCase_ScheduleYStatement(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.employee(t, "1010101010", "")
	loan := f.loan(t, "1010101010")

	schedule, err := f.loans.Schedule(ctx, loan.ID)
	require.NoError(t, err)
	assert.Len(t, schedule.Schedule, 12)
	assert.True(t, schedule.InstallmentAmount.Equal(decimal.NewFromInt(100)))

	pdf, filename, err := f.loans.Statement(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, "prestamo-"+loan.ID+".pdf", filename)
	assert.NotEmpty(t, pdf)
}

func TestList_Paginacion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	for _, n := range []string{"100000001", "100000002", "100000003"} {
		f.company(t, n)
	}
	all, err := f.companies.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	one, err := f.companies.List(ctx, dto.PageRequest{Limit: 1, Offset: 2})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "100000003", one[0].NIT)
}
