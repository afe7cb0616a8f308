package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/pkg/logger"
)

// errorInterno registra el error real y responde 500 con un mensaje genérico.
// El detalle del error nunca viaja al cliente: puede contener DSNs, SQL o
// rutas internas.
func errorInterno(c *fiber.Ctx, log *logger.Logger, err error) error {
	log.Error().
		Err(err).
		Str("metodo", c.Method()).
		Str("ruta", c.Path()).
		Msg("error interno atendiendo la petición")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: "error interno del servidor",
	})
}
