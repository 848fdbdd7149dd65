// Package nit calcula el dígito de verificación del NIT usado por el registro de empresas.
//
// El algoritmo pondera los 9 primeros dígitos: las posiciones pares (0, 2, 4, 6, 8)
// se suman y se multiplican por 3; las impares (1, 3, 5, 7) se suman tal cual.
// El dígito es el menor entero d >= 0 tal que (suma + d) sea múltiplo de 10.
package nit

import (
	"errors"
	"fmt"
)

// BaseLength es la cantidad de dígitos que participan en el cálculo.
const BaseLength = 9

// ErrInvalidNIT indica un NIT con caracteres no numéricos o con menos de 9 dígitos.
var ErrInvalidNIT = errors.New("nit inválido")

var (
	evenPositions = [...]int{0, 2, 4, 6, 8}
	oddPositions  = [...]int{1, 3, 5, 7}
)

// Validate verifica que el NIT tenga solo dígitos y al menos BaseLength de ellos.
func Validate(nit string) error {
	if len(nit) < BaseLength {
		return fmt.Errorf("%w: se requieren al menos %d dígitos, se recibieron %d", ErrInvalidNIT, BaseLength, len(nit))
	}
	for i := 0; i < len(nit); i++ {
		if nit[i] < '0' || nit[i] > '9' {
			return fmt.Errorf("%w: carácter %q en la posición %d", ErrInvalidNIT, nit[i], i)
		}
	}
	return nil
}

// WeightedSum devuelve 3*(pares) + (impares) sobre los 9 primeros dígitos.
func WeightedSum(nit string) (int, error) {
	if err := Validate(nit); err != nil {
		return 0, err
	}
	var even, odd int
	for _, i := range evenPositions {
		even += int(nit[i] - '0')
	}
	for _, i := range oddPositions {
		odd += int(nit[i] - '0')
	}
	return even*3 + odd, nil
}

// CheckDigit calcula el dígito de verificación del NIT.
func CheckDigit(nit string) (int, error) {
	sum, err := WeightedSum(nit)
	if err != nil {
		return 0, err
	}
	return (10 - sum%10) % 10, nil
}
