package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/application/usecase"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
)

// TimeBudgetMiddleware descuenta el uso y corta la sesión cuando el usuario
// agotó su presupuesto de minutos del día. Debe usarse DESPUÉS de
// AuthMiddleware. El límite viaja en el token; ADMINISTRADOR y usuarios sin
// límite pasan sin tocar el acumulador.
func TimeBudgetMiddleware(tiempo *usecase.TiempoUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := GetClaims(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		if claims.Rol == entity.RolAdministrador || claims.LimiteTiempo == nil {
			return c.Next()
		}
		if err := tiempo.RecordTimeUsage(c.Context(), claims.UserID, 1); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo registrar el uso de tiempo"})
		}
		estado, err := tiempo.CheckTimeLimit(c.Context(), claims.UserID, claims.LimiteTiempo)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo verificar el límite de tiempo"})
		}
		if !estado.Dentro {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "TIME_LIMIT_EXCEEDED",
				Message: "límite de tiempo de la sesión agotado por hoy",
			})
		}
		return c.Next()
	}
}
