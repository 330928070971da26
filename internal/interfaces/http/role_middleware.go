package http

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRole devuelve un middleware que permite el paso solo si el rol del usuario
// autenticado pertenece a roles. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → no hay rol en el contexto (falta AuthMiddleware).
//   - 403 Forbidden    → el rol no está en la lista.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_ROLE", "Not authorized")
		}
		if _, ok := allowed[role]; !ok {
			authFailures.WithLabelValues("forbidden").Inc()
			return fail(c, fiber.StatusForbidden, "FORBIDDEN",
				"User role '"+role+"' is not authorized to access this route")
		}
		return c.Next()
	}
}
