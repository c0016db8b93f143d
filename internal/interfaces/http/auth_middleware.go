package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/authz"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// Locals keys que el middleware de auth deja en Fiber.
const (
	LocalUserID      = "user_id"
	LocalRole        = "role"
	LocalIsSuperuser = "is_superuser"
)

// AuthMiddleware valida el Bearer Token JWT y extrae la identidad a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, role, isSuperuser, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		c.Locals(LocalIsSuperuser, isSuperuser)
		return c.Next()
	}
}

// RequireManager autoriza solo a gerentes (rol manager o superusuario).
// Debe colgarse después de AuthMiddleware.
func RequireManager() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if actor.ID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "se requiere autenticación"})
		}
		if err := authz.CanManage(actor); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere rol de gerente"})
		}
		return c.Next()
	}
}

// GetActor devuelve el actor de la petición (después del middleware de auth).
// Un actor con ID cero significa que no hay identidad en el contexto.
func GetActor(c *fiber.Ctx) authz.Actor {
	var actor authz.Actor
	if v, ok := c.Locals(LocalUserID).(int64); ok {
		actor.ID = v
	}
	if v, ok := c.Locals(LocalRole).(string); ok {
		actor.Role = v
	}
	if v, ok := c.Locals(LocalIsSuperuser).(bool); ok {
		actor.IsSuperuser = v
	}
	return actor
}
