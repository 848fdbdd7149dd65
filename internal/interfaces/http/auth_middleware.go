package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/talento-api/internal/application/dto"
	"github.com/jhoicas/talento-api/pkg/jwt"
)

// Locals keys para el sujeto y el alcance del token en Fiber.
const (
	LocalSubject = "subject"
	LocalScope   = "scope"
)

// AuthMiddleware valida el Bearer Token JWT y exige el alcance indicado.
// Deja sujeto y alcance en c.Locals.
func AuthMiddleware(jwtSecret, requiredScope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Result: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Result: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Result: "token vacío"})
		}
		subject, scope, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Result: "token inválido o expirado"})
		}
		if requiredScope != "" && !hasScope(scope, requiredScope) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Result: "el token no permite esta operación"})
		}
		c.Locals(LocalSubject, subject)
		c.Locals(LocalScope, scope)
		return c.Next()
	}
}

// hasScope busca required en una lista de alcances separada por espacios (RFC 8693).
func hasScope(scopes, required string) bool {
	for _, s := range strings.Fields(scopes) {
		if s == required {
			return true
		}
	}
	return false
}

// GetSubject devuelve el sujeto del token (después del middleware de auth).
func GetSubject(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSubject).(string)
	return s
}
