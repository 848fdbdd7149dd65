package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxActiveLoans número máximo de préstamos vigentes por empleado.
const MaxActiveLoans = 3

// Employee representa un empleado. Su identidad es el número de identificación.
// Salary se recalcula siempre desde HiringDate; nunca lo fija el cliente.
type Employee struct {
	Identification int64
	Name           string
	Salary         decimal.Decimal
	HiringDate     time.Time
	BirthDate      time.Time
	CompanyNIT     *string  // nil = sin empresa
	Company        *Company // cargada en lecturas cuando CompanyNIT no es nil
	CurrentLoans   int      // préstamos vigentes; se mantiene al crear/eliminar préstamos
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
