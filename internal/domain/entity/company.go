package entity

import "time"

// Company representa una empresa empleadora. Su identidad es el NIT.
type Company struct {
	NIT               string // solo dígitos, al menos 9
	VerificationDigit int    // derivado del NIT, ver pkg/nit
	Name              string
	Address           string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
