package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/prestamos-pro/internal/application/device"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
)

// clientIP resuelve la IP real del cliente. Detrás del proxy de producción
// c.IP() devuelve la IP del proxy, así que se prefiere el primer salto de
// X-Forwarded-For y luego X-Real-Ip.
func clientIP(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		primero, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(primero); ip != "" {
			return ip
		}
	}
	if ip := c.Get("X-Real-Ip"); ip != "" {
		return ip
	}
	return c.IP()
}

// DeviceGateMiddleware evalúa el dispositivo de la sesión contra el registro
// de autorizaciones. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - ADMINISTRADOR pasa sin consultar el registro (bypass del gate).
//   - Primer avistamiento: crea el registro PENDIENTE y responde 403.
//   - PENDIENTE  → 403 DEVICE_PENDING.
//   - RECHAZADO o BLOQUEADO → 403 DEVICE_BLOCKED.
//   - AUTORIZADO → refresca último acceso y sigue.
func DeviceGateMiddleware(gate *device.GateUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := GetClaims(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		decision, err := gate.Evaluate(c.Context(), claims.UserID, claims.Rol, c.Get("User-Agent"), clientIP(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo verificar el dispositivo"})
		}
		switch decision.Resultado {
		case device.ResultadoAutorizado:
			return c.Next()
		case device.ResultadoPendiente:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "DEVICE_PENDING",
				Message: "dispositivo pendiente de autorización por el administrador",
			})
		default:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "DEVICE_BLOCKED",
				Message: "dispositivo bloqueado",
			})
		}
	}
}
