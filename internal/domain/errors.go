package domain

import "errors"

// Tipos de error de dominio (sin dependencias externas). La capa HTTP los traduce a status.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrBusinessRule = errors.New("regla de negocio incumplida")
)

// Error es un error de dominio con mensaje propio que conserva su tipo (errors.Is).
type Error struct {
	kind error
	msg  string
}

// NewError crea un error del tipo kind con un mensaje legible.
func NewError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// Errores por entidad.
var (
	ErrCompanyNotFound        = NewError(ErrNotFound, "la empresa no existe en la base de datos")
	ErrEmployeeNotFound       = NewError(ErrNotFound, "el empleado no existe en la base de datos")
	ErrLoanNotFound           = NewError(ErrNotFound, "el préstamo no existe en la base de datos")
	ErrEmployeeWithoutCompany = NewError(ErrNotFound, "el empleado no está registrado en ninguna empresa")

	ErrCompanyExists  = NewError(ErrDuplicate, "ya existe una empresa con el NIT indicado")
	ErrEmployeeExists = NewError(ErrDuplicate, "ya existe un empleado con la identificación indicada")

	ErrEmployeeHasLoans    = NewError(ErrConflict, "el empleado tiene préstamos activos")
	ErrLoanBorrowerMissing = NewError(ErrBusinessRule, "el empleado del préstamo no existe")
)
