// Package payroll contiene las reglas de nómina: edad, antigüedad, salario y admisión.
// Un "año" de nómina son 360 días, no años calendario.
package payroll

import (
	"math"
	"strings"
	"time"

	"github.com/jhoicas/talento-api/internal/domain"
)

// DateLayout formato de fechas de entrada (AAAA/MM/DD).
const DateLayout = "2006/01/02"

// DaysPerYear duración del año de nómina.
const DaysPerYear = 360

// ErrInvalidDate fecha con formato distinto de AAAA/MM/DD.
var ErrInvalidDate = domain.NewError(domain.ErrInvalidInput, "la fecha debe tener el formato AAAA/MM/DD")

// ParseDate interpreta una fecha AAAA/MM/DD en UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// elapsedDays días completos transcurridos entre from y to (redondeo hacia abajo).
func elapsedDays(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}
