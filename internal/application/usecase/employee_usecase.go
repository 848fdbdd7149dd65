package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/talento-api/internal/application/dto"
	"github.com/jhoicas/talento-api/internal/domain"
	"github.com/jhoicas/talento-api/internal/domain/entity"
	"github.com/jhoicas/talento-api/internal/domain/payroll"
	"github.com/jhoicas/talento-api/internal/domain/repository"
	"github.com/jhoicas/talento-api/pkg/logger"
)

var (
	ErrInvalidIdentification = domain.NewError(domain.ErrInvalidInput, "la identificación del empleado no es válida")
	ErrInvalidHiringDate     = domain.NewError(domain.ErrInvalidInput, "la fecha de contratación del empleado no es válida (AAAA/MM/DD)")
	ErrInvalidBirthDate      = domain.NewError(domain.ErrInvalidInput, "la fecha de nacimiento del empleado no es válida (AAAA/MM/DD)")
	ErrMissingEmployeeName   = domain.NewError(domain.ErrInvalidInput, "el nombre del empleado es requerido")
)

// EmployeeUseCase casos de uso de empleados. El salario se deriva de la antigüedad.
type EmployeeUseCase struct {
	repo        repository.EmployeeRepository
	companies   repository.CompanyRepository
	loans       repository.LoanRepository
	minimumWage decimal.Decimal
	clock       Clock
	log         *logger.Logger
}

// NewEmployeeUseCase construye el caso de uso. minimumWage se fija al iniciar el proceso.
func NewEmployeeUseCase(
	repo repository.EmployeeRepository,
	companies repository.CompanyRepository,
	loans repository.LoanRepository,
	minimumWage decimal.Decimal,
	clock Clock,
	log *logger.Logger,
) *EmployeeUseCase {
	return &EmployeeUseCase{
		repo:        repo,
		companies:   companies,
		loans:       loans,
		minimumWage: minimumWage,
		clock:       clock,
		log:         log.Named("employees"),
	}
}

// Create registra un empleado: calcula el salario y valida la edad de admisión (18 a 70).
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	id, err := parseIdentification(in.Identification)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrMissingEmployeeName
	}
	hiring, err := payroll.ParseDate(in.HiringDate)
	if err != nil {
		return nil, ErrInvalidHiringDate
	}
	birth, err := payroll.ParseDate(in.BirthDate)
	if err != nil {
		return nil, ErrInvalidBirthDate
	}

	now := uc.clock()
	if err := payroll.CheckAdmissionAge(birth, now); err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetByIdentification(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmployeeExists
	}

	company, err := uc.resolveCompany(ctx, in.Company)
	if err != nil {
		return nil, err
	}
	if company == nil && strings.TrimSpace(in.Company) != "" {
		uc.log.Warn().Str("nit", in.Company).Msg("empresa inexistente, el empleado queda sin empresa")
	}

	employee := &entity.Employee{
		Identification: id,
		Name:           name,
		Salary:         payroll.Salary(hiring, now, uc.minimumWage),
		HiringDate:     hiring,
		BirthDate:      birth,
		CurrentLoans:   0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	setCompany(employee, company)
	if err := uc.repo.Create(ctx, employee); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("identification", id).Msg("empleado creado")
	return toEmployeeResponse(employee), nil
}

// GetByIdentification obtiene un empleado por su identificación.
func (uc *EmployeeUseCase) GetByIdentification(ctx context.Context, id int64) (*dto.EmployeeResponse, error) {
	employee, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// Update sobrescribe solo los campos enviados. Si llega fecha de contratación se recalcula
// el salario. La edad de admisión no se vuelve a validar. Un NIT de empresa desconocido es
// un error: el vínculo actual no se pierde. CurrentLoans no se modifica aquí.
func (uc *EmployeeUseCase) Update(ctx context.Context, id int64, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Identification != nil && in.Identification.String() != "" {
		newID, err := parseIdentification(*in.Identification)
		if err != nil {
			return nil, err
		}
		if newID != employee.Identification {
			other, err := uc.repo.GetByIdentification(ctx, newID)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrEmployeeExists
			}
			employee.Identification = newID
		}
	}
	if v := strings.TrimSpace(deref(in.Name)); v != "" {
		employee.Name = v
	}
	if v := deref(in.HiringDate); v != "" {
		hiring, err := payroll.ParseDate(v)
		if err != nil {
			return nil, ErrInvalidHiringDate
		}
		employee.HiringDate = hiring
		employee.Salary = payroll.Salary(hiring, uc.clock(), uc.minimumWage)
	}
	if v := deref(in.BirthDate); v != "" {
		birth, err := payroll.ParseDate(v)
		if err != nil {
			return nil, ErrInvalidBirthDate
		}
		employee.BirthDate = birth
	}
	if v := deref(in.Company); v != "" {
		company, err := uc.resolveCompany(ctx, v)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, domain.ErrCompanyNotFound
		}
		setCompany(employee, company)
	}

	employee.UpdatedAt = uc.clock()
	if err := uc.repo.Update(ctx, id, employee); err != nil {
		return nil, err
	}
	return uc.GetByIdentification(ctx, employee.Identification)
}

// List lista empleados; limit 0 devuelve todos.
func (uc *EmployeeUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.EmployeeResponse, error) {
	page.Normalize()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmployeeResponse(e))
	}
	return items, nil
}

// Delete elimina un empleado sin préstamos vigentes.
func (uc *EmployeeUseCase) Delete(ctx context.Context, id int64) error {
	employee, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if employee.CurrentLoans > 0 {
		return domain.ErrEmployeeHasLoans
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("identification", id).Msg("empleado eliminado")
	return nil
}

// Company devuelve la empresa del empleado.
func (uc *EmployeeUseCase) Company(ctx context.Context, id int64) (*dto.CompanyResponse, error) {
	employee, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee.Company == nil {
		return nil, domain.ErrEmployeeWithoutCompany
	}
	return toCompanyResponse(employee.Company), nil
}

// Age devuelve la edad del empleado en años de nómina completos.
func (uc *EmployeeUseCase) Age(ctx context.Context, id int64) (int, error) {
	employee, err := uc.get(ctx, id)
	if err != nil {
		return 0, err
	}
	return int(payroll.Age(employee.BirthDate, uc.clock())), nil
}

// Loans devuelve los préstamos del empleado en su vista simple (sin el empleado anidado).
func (uc *EmployeeUseCase) Loans(ctx context.Context, id int64) ([]dto.LoanResponse, error) {
	if _, err := uc.get(ctx, id); err != nil {
		return nil, err
	}
	loans, err := uc.loans.ListByEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LoanResponse, 0, len(loans))
	for _, l := range loans {
		items = append(items, *toSimpleLoanResponse(l))
	}
	return items, nil
}

func (uc *EmployeeUseCase) get(ctx context.Context, id int64) (*entity.Employee, error) {
	employee, err := uc.repo.GetByIdentification(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	return employee, nil
}

// resolveCompany busca la empresa por NIT. Devuelve nil si no existe.
func (uc *EmployeeUseCase) resolveCompany(ctx context.Context, nitValue string) (*entity.Company, error) {
	nitValue = strings.TrimSpace(nitValue)
	if nitValue == "" {
		return nil, nil
	}
	company, err := uc.companies.GetByNIT(ctx, nitValue)
	if err != nil {
		return nil, err
	}
	return company, nil
}

func setCompany(e *entity.Employee, c *entity.Company) {
	e.Company = c
	e.CompanyNIT = nil
	if c != nil {
		n := c.NIT
		e.CompanyNIT = &n
	}
}

// ParseIdentification convierte la identificación recibida (número o texto numérico).
func ParseIdentification(raw string) (int64, error) {
	return parseIdentification(json.Number(strings.TrimSpace(raw)))
}

func parseIdentification(n json.Number) (int64, error) {
	id, err := n.Int64()
	if err != nil || id <= 0 {
		return 0, ErrInvalidIdentification
	}
	return id, nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	return &dto.EmployeeResponse{
		Identification: e.Identification,
		Name:           e.Name,
		Salary:         e.Salary,
		HiringDate:     e.HiringDate,
		BirthDate:      e.BirthDate,
		Company:        toCompanyResponse(e.Company),
		CurrentLoans:   e.CurrentLoans,
	}
}
