package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/talento-api/internal/domain"
	"github.com/jhoicas/talento-api/internal/domain/entity"
	"github.com/jhoicas/talento-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación de EmployeeRepository (usable con pool o tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// employeeSelect lee el empleado con su empresa (LEFT JOIN: la empresa es opcional).
const employeeSelect = `
	SELECT e.identification, e.name, e.salary, e.hiring_date, e.birth_date, e.company_nit,
	       e.current_loans, e.created_at, e.updated_at,
	       c.nit, c.verification_digit, c.name, c.address, c.created_at, c.updated_at
	FROM employees e
	LEFT JOIN companies c ON c.nit = e.company_nit`

type rowScanner interface {
	Scan(dest ...any) error
}

// employeeScan destinos de un employeeSelect; las columnas de la empresa pueden venir NULL.
type employeeScan struct {
	e         entity.Employee
	nit       *string
	digit     *int
	name      *string
	address   *string
	createdAt *time.Time
	updatedAt *time.Time
}

func (s *employeeScan) dest() []any {
	return []any{
		&s.e.Identification, &s.e.Name, &s.e.Salary, &s.e.HiringDate, &s.e.BirthDate, &s.e.CompanyNIT,
		&s.e.CurrentLoans, &s.e.CreatedAt, &s.e.UpdatedAt,
		&s.nit, &s.digit, &s.name, &s.address, &s.createdAt, &s.updatedAt,
	}
}

func (s *employeeScan) employee() *entity.Employee {
	e := s.e
	if s.nit != nil {
		c := &entity.Company{NIT: *s.nit}
		if s.digit != nil {
			c.VerificationDigit = *s.digit
		}
		if s.name != nil {
			c.Name = *s.name
		}
		if s.address != nil {
			c.Address = *s.address
		}
		if s.createdAt != nil {
			c.CreatedAt = *s.createdAt
		}
		if s.updatedAt != nil {
			c.UpdatedAt = *s.updatedAt
		}
		e.Company = c
	}
	return &e
}

func scanEmployee(row rowScanner) (*entity.Employee, error) {
	var s employeeScan
	if err := row.Scan(s.dest()...); err != nil {
		return nil, err
	}
	return s.employee(), nil
}

// Create persiste un empleado. Un company_nit inexistente viola la llave foránea.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query := `
		INSERT INTO employees (identification, name, salary, hiring_date, birth_date, company_nit, current_loans, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		e.Identification, e.Name, e.Salary, e.HiringDate, e.BirthDate, e.CompanyNIT,
		e.CurrentLoans, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrEmployeeExists
		case isForeignKeyViolation(err):
			return domain.ErrCompanyNotFound
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByIdentification obtiene un empleado con su empresa.
func (r *EmployeeRepo) GetByIdentification(ctx context.Context, id int64) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, employeeSelect+` WHERE e.identification = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// GetForUpdate obtiene el empleado y bloquea la fila (SELECT FOR UPDATE). No carga la empresa.
func (r *EmployeeRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Employee, error) {
	query := `
		SELECT identification, name, salary, hiring_date, birth_date, company_nit, current_loans, created_at, updated_at
		FROM employees WHERE identification = $1
		FOR UPDATE`
	var e entity.Employee
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.Identification, &e.Name, &e.Salary, &e.HiringDate, &e.BirthDate, &e.CompanyNIT,
		&e.CurrentLoans, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee for update: %w", err)
	}
	return &e, nil
}

// Update actualiza el empleado sin tocar current_loans. Un cambio de identificación se
// propaga a loans por ON UPDATE CASCADE.
func (r *EmployeeRepo) Update(ctx context.Context, currentID int64, e *entity.Employee) error {
	query := `
		UPDATE employees
		SET identification = $2, name = $3, salary = $4, hiring_date = $5, birth_date = $6,
		    company_nit = $7, updated_at = $8
		WHERE identification = $1`
	cmd, err := r.q.Exec(ctx, query,
		currentID, e.Identification, e.Name, e.Salary, e.HiringDate, e.BirthDate,
		e.CompanyNIT, e.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrEmployeeExists
		case isForeignKeyViolation(err):
			return domain.ErrCompanyNotFound
		}
		return fmt.Errorf("update employee: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// SetCurrentLoans fija el contador de préstamos vigentes.
func (r *EmployeeRepo) SetCurrentLoans(ctx context.Context, id int64, currentLoans int, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE employees SET current_loans = $2, updated_at = $3 WHERE identification = $1`,
		id, currentLoans, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("set employee current_loans: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// List devuelve empleados ordenados por identificación. limit <= 0 devuelve todos.
func (r *EmployeeRepo) List(ctx context.Context, limit, offset int) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx, employeeSelect+` ORDER BY e.identification LIMIT $1 OFFSET $2`, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Delete elimina un empleado. Falla si tiene préstamos (ON DELETE RESTRICT).
func (r *EmployeeRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM employees WHERE identification = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrEmployeeHasLoans
		}
		return fmt.Errorf("delete employee: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}
