package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateLoanRequest entrada para otorgar un préstamo. Employee es la identificación del empleado.
type CreateLoanRequest struct {
	Employee     json.Number     `json:"employee"`
	Value        decimal.Decimal `json:"value"`
	Installments int             `json:"installments"`
}

// CreateLoanEnvelope cuerpo {"data": {...}} de creación.
type CreateLoanEnvelope struct {
	Data *CreateLoanRequest `json:"data"`
}

// PayLoanRequest abono de cuotas. Sin amount se abona el valor nominal de las cuotas.
type PayLoanRequest struct {
	Installments int              `json:"installments"`
	Amount       *decimal.Decimal `json:"amount"`
}

// PayLoanEnvelope cuerpo {"data": {...}} del abono.
type PayLoanEnvelope struct {
	Data *PayLoanRequest `json:"data"`
}

// LoanResponse salida de un préstamo. Employee se omite en la vista simple.
type LoanResponse struct {
	ID               string            `json:"id"`
	Value            decimal.Decimal   `json:"value"`
	Installments     int               `json:"installments"`
	InstallmentsPaid int               `json:"installments_paid"`
	TotalPaid        decimal.Decimal   `json:"total_paid"`
	PayableAmount    decimal.Decimal   `json:"payable_amount"`
	StartDate        time.Time         `json:"start_date"`
	EndDate          time.Time         `json:"end_date"`
	Employee         *EmployeeResponse `json:"employee,omitempty"`
}

// InstallmentResponse una cuota del cronograma.
type InstallmentResponse struct {
	Number  int             `json:"number"`
	DueDate time.Time       `json:"due_date"`
	Amount  decimal.Decimal `json:"amount"`
	Status  string          `json:"status"`
}

// LoanScheduleResponse cronograma de pagos de un préstamo.
type LoanScheduleResponse struct {
	LoanID            string                `json:"loan_id"`
	InstallmentAmount decimal.Decimal       `json:"installment_amount"`
	Schedule          []InstallmentResponse `json:"schedule"`
}
