package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/talento-api/internal/domain/entity"
	"github.com/jhoicas/talento-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Garantiza que el préstamo y el contador del empleado cambien juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		employeeRepo repository.EmployeeRepository,
		loanRepo repository.LoanRepository,
	) error) error
}

// LoanStatementGenerator genera el extracto (PDF) de un préstamo.
type LoanStatementGenerator interface {
	GenerateLoanStatement(ctx context.Context, loan *entity.Loan, now time.Time) ([]byte, error)
}

// Clock fuente de la hora actual; inyectable en tests.
type Clock func() time.Time
