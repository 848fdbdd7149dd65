package repository

import (
	"context"
	"time"

	"github.com/jhoicas/talento-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee.
// Las lecturas cargan Employee.Company cuando hay empresa asociada.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByIdentification(ctx context.Context, identification int64) (*entity.Employee, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, identification int64) (*entity.Employee, error)
	// Update no modifica CurrentLoans; el contador solo cambia con SetCurrentLoans.
	Update(ctx context.Context, currentIdentification int64, employee *entity.Employee) error
	// SetCurrentLoans fija el contador de préstamos vigentes. Se llama con la fila bloqueada.
	SetCurrentLoans(ctx context.Context, identification int64, currentLoans int, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*entity.Employee, error)
	Delete(ctx context.Context, identification int64) error
}
