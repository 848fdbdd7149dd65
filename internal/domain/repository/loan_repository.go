package repository

import (
	"context"

	"github.com/jhoicas/talento-api/internal/domain/entity"
)

// LoanRepository define el puerto de persistencia para Loan.
// GetByID y List cargan Loan.Employee; ListByEmployee y GetForUpdate no.
type LoanRepository interface {
	Create(ctx context.Context, loan *entity.Loan) error
	GetByID(ctx context.Context, id string) (*entity.Loan, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Loan, error)
	Update(ctx context.Context, loan *entity.Loan) error
	List(ctx context.Context, limit, offset int) ([]*entity.Loan, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]*entity.Loan, error)
	Delete(ctx context.Context, id string) error
}
