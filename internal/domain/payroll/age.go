package payroll

import "time"

// Límites de edad para la admisión de empleados (exclusivos: se rechaza > 70 y < 18).
const (
	MinAdmissionAge = 18
	MaxAdmissionAge = 70
)

var (
	ErrAgeAboveMaximum = newRuleError("el empleado supera la edad máxima permitida")
	ErrAgeBelowMinimum = newRuleError("el empleado no alcanza la edad mínima permitida")
)

// Age devuelve la edad en años de nómina: días transcurridos / 360.
// Quien necesite años enteros debe truncar el resultado.
func Age(birthdate, now time.Time) float64 {
	return float64(elapsedDays(birthdate, now)) / DaysPerYear
}

// AgeFromString calcula la edad a partir de una fecha AAAA/MM/DD.
func AgeFromString(birthdate string, now time.Time) (float64, error) {
	t, err := ParseDate(birthdate)
	if err != nil {
		return 0, err
	}
	return Age(t, now), nil
}

// CheckAdmissionAge aplica la regla de admisión; solo se evalúa al crear el empleado.
func CheckAdmissionAge(birthdate, now time.Time) error {
	age := Age(birthdate, now)
	if age > MaxAdmissionAge {
		return ErrAgeAboveMaximum
	}
	if age < MinAdmissionAge {
		return ErrAgeBelowMinimum
	}
	return nil
}
