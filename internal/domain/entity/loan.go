package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan representa un préstamo a un empleado pagadero en cuotas de 30 días.
type Loan struct {
	ID               string
	EmployeeID       int64
	Employee         *Employee // cargado en lecturas completas
	Value            decimal.Decimal
	Installments     int
	InstallmentsPaid int
	TotalPaid        decimal.Decimal
	TotalLeft        decimal.Decimal // Value - TotalPaid, nunca negativo
	StartDate        time.Time
	EndDate          time.Time // StartDate + Installments*30 días
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
