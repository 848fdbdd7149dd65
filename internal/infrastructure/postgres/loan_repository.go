package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/talento-api/internal/domain"
	"github.com/jhoicas/talento-api/internal/domain/entity"
	"github.com/jhoicas/talento-api/internal/domain/repository"
)

var _ repository.LoanRepository = (*LoanRepo)(nil)

// LoanRepo implementación de LoanRepository (usable con pool o tx).
type LoanRepo struct {
	q Querier
}

// NewLoanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLoanRepository(q Querier) *LoanRepo {
	return &LoanRepo{q: q}
}

const loanColumns = `l.id::text, l.employee_id, l.value, l.installments, l.installments_paid,
	l.total_paid, l.total_left, l.start_date, l.end_date, l.created_at, l.updated_at`

// loanSelect lee el préstamo con su empleado y la empresa del empleado.
const loanSelect = `
	SELECT ` + loanColumns + `,
	       e.identification, e.name, e.salary, e.hiring_date, e.birth_date, e.company_nit,
	       e.current_loans, e.created_at, e.updated_at,
	       c.nit, c.verification_digit, c.name, c.address, c.created_at, c.updated_at
	FROM loans l
	JOIN employees e ON e.identification = l.employee_id
	LEFT JOIN companies c ON c.nit = e.company_nit`

func loanDest(l *entity.Loan) []any {
	return []any{
		&l.ID, &l.EmployeeID, &l.Value, &l.Installments, &l.InstallmentsPaid,
		&l.TotalPaid, &l.TotalLeft, &l.StartDate, &l.EndDate, &l.CreatedAt, &l.UpdatedAt,
	}
}

func scanLoanWithEmployee(row rowScanner) (*entity.Loan, error) {
	var l entity.Loan
	var s employeeScan
	if err := row.Scan(append(loanDest(&l), s.dest()...)...); err != nil {
		return nil, err
	}
	l.Employee = s.employee()
	return &l, nil
}

// Create persiste un préstamo. Un empleado inexistente viola la llave foránea.
func (r *LoanRepo) Create(ctx context.Context, l *entity.Loan) error {
	query := `
		INSERT INTO loans (id, employee_id, value, installments, installments_paid, total_paid, total_left,
		                   start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.EmployeeID, l.Value, l.Installments, l.InstallmentsPaid, l.TotalPaid, l.TotalLeft,
		l.StartDate, l.EndDate, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrLoanBorrowerMissing
		}
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

// GetByID obtiene un préstamo con su empleado.
func (r *LoanRepo) GetByID(ctx context.Context, id string) (*entity.Loan, error) {
	l, err := scanLoanWithEmployee(r.q.QueryRow(ctx, loanSelect+` WHERE l.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return l, nil
}

// GetForUpdate obtiene el préstamo y bloquea la fila (SELECT FOR UPDATE).
func (r *LoanRepo) GetForUpdate(ctx context.Context, id string) (*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans l WHERE l.id = $1 FOR UPDATE`
	var l entity.Loan
	if err := r.q.QueryRow(ctx, query, id).Scan(loanDest(&l)...); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loan for update: %w", err)
	}
	return &l, nil
}

// Update guarda el estado de pago del préstamo.
func (r *LoanRepo) Update(ctx context.Context, l *entity.Loan) error {
	query := `
		UPDATE loans
		SET installments_paid = $2, total_paid = $3, total_left = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, l.ID, l.InstallmentsPaid, l.TotalPaid, l.TotalLeft, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update loan: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}
	return nil
}

// List devuelve préstamos con su empleado, del más antiguo al más reciente. limit <= 0 devuelve todos.
func (r *LoanRepo) List(ctx context.Context, limit, offset int) ([]*entity.Loan, error) {
	rows, err := r.q.Query(ctx, loanSelect+` ORDER BY l.created_at, l.id LIMIT $1 OFFSET $2`, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Loan, 0)
	for rows.Next() {
		l, err := scanLoanWithEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// ListByEmployee devuelve los préstamos de un empleado sin cargar el empleado.
func (r *LoanRepo) ListByEmployee(ctx context.Context, employeeID int64) ([]*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans l WHERE l.employee_id = $1 ORDER BY l.created_at, l.id`
	rows, err := r.q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list loans by employee: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Loan, 0)
	for rows.Next() {
		var l entity.Loan
		if err := rows.Scan(loanDest(&l)...); err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Delete elimina un préstamo por ID.
func (r *LoanRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}
	return nil
}
