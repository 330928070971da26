package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-inventory/internal/application/dto"
	"github.com/jhoicas/shop-inventory/internal/domain"
	"github.com/jhoicas/shop-inventory/pkg/jwt"
)

// Locals keys para el usuario autenticado en Fiber.
const (
	LocalUserID   = "user_id"
	LocalRole     = "role"
	LocalUsername = "username"
)

// userLookup es el contrato mínimo que necesita el middleware para resolver el rol vigente.
// Lo implementa *usecase.UserUseCase.
type userLookup interface {
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
}

// AuthMiddleware valida el Bearer Token JWT y carga el usuario del subject en c.Locals.
// El rol se lee del almacén en cada petición; el token no lo transporta.
func AuthMiddleware(jwtSecret string, users userLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Not authorized, no token")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Not authorized, expected Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Not authorized, no token")
		}
		userID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			authFailures.WithLabelValues("invalid_token").Inc()
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Not authorized, token failed")
		}
		user, err := users.GetByID(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				authFailures.WithLabelValues("unknown_user").Inc()
				return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Not authorized, user not found")
			}
			return writeError(c, err)
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalRole, user.Role)
		c.Locals(LocalUsername, user.Username)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetRole devuelve el rol vigente del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

// GetUsername devuelve el username del usuario autenticado.
func GetUsername(c *fiber.Ctx) string {
	return localString(c, LocalUsername)
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}
