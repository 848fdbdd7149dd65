package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/talento-api/internal/domain"
	"github.com/jhoicas/talento-api/internal/domain/entity"
	"github.com/jhoicas/talento-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `nit, verification_digit, name, address, created_at, updated_at`

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (nit, verification_digit, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		company.NIT, company.VerificationDigit, company.Name, company.Address,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCompanyExists
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByNIT obtiene una empresa por NIT.
func (r *CompanyRepo) GetByNIT(ctx context.Context, nit string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE nit = $1`
	var c entity.Company
	err := r.q.QueryRow(ctx, query, nit).Scan(
		&c.NIT, &c.VerificationDigit, &c.Name, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by NIT: %w", err)
	}
	return &c, nil
}

// Update actualiza una empresa. Un cambio de NIT se propaga a employees por ON UPDATE CASCADE.
func (r *CompanyRepo) Update(ctx context.Context, currentNIT string, company *entity.Company) error {
	query := `
		UPDATE companies SET nit = $2, verification_digit = $3, name = $4, address = $5, updated_at = $6
		WHERE nit = $1`
	cmd, err := r.q.Exec(ctx, query,
		currentNIT, company.NIT, company.VerificationDigit, company.Name, company.Address, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCompanyExists
		}
		return fmt.Errorf("update company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

// List devuelve empresas ordenadas por NIT. limit <= 0 devuelve todas.
func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY nit LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Company, 0)
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.NIT, &c.VerificationDigit, &c.Name, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina una empresa por NIT. Sus empleados quedan con company_nit NULL (ON DELETE SET NULL).
func (r *CompanyRepo) Delete(ctx context.Context, nit string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM companies WHERE nit = $1`, nit)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}
