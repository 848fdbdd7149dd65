package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest entrada para crear un empleado. Las fechas van en formato AAAA/MM/DD.
// El salario no se recibe: se calcula desde la fecha de contratación.
type CreateEmployeeRequest struct {
	Identification json.Number `json:"identification"`
	Name           string      `json:"name"`
	HiringDate     string      `json:"hiring_date"`
	BirthDate      string      `json:"birthdate"`
	Company        string      `json:"company"` // NIT, opcional
}

// CreateEmployeeEnvelope cuerpo {"data": {...}} de creación.
type CreateEmployeeEnvelope struct {
	Data *CreateEmployeeRequest `json:"data"`
}

// UpdateEmployeeRequest entrada de actualización parcial. Campos nil o vacíos conservan el valor.
type UpdateEmployeeRequest struct {
	Identification *json.Number `json:"identification"`
	Name           *string      `json:"name"`
	HiringDate     *string      `json:"hiring_date"`
	BirthDate      *string      `json:"birthdate"`
	Company        *string      `json:"company"`
}

// UpdateEmployeeEnvelope cuerpo {"data": {...}} de actualización.
type UpdateEmployeeEnvelope struct {
	Data *UpdateEmployeeRequest `json:"data"`
}

// EmployeeResponse salida de un empleado, con su empresa si la tiene.
type EmployeeResponse struct {
	Identification int64            `json:"identification"`
	Name           string           `json:"name"`
	Salary         decimal.Decimal  `json:"salary"`
	HiringDate     time.Time        `json:"hiring_date"`
	BirthDate      time.Time        `json:"birthdate"`
	Company        *CompanyResponse `json:"company"`
	CurrentLoans   int              `json:"current_loans"`
}
