package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/application/usecase"
	"github.com/tu-usuario/prestamos-pro/pkg/logger"
	"github.com/tu-usuario/prestamos-pro/pkg/validation"
)

// AuditoriaHandler expone el log de auditoría. Solo ADMINISTRADOR.
type AuditoriaHandler struct {
	uc  *usecase.AuditoriaUseCase
	log *logger.Logger
}

// NewAuditoriaHandler construye el handler de auditoría.
func NewAuditoriaHandler(uc *usecase.AuditoriaUseCase, log *logger.Logger) *AuditoriaHandler {
	return &AuditoriaHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Consultar el log de auditoría
// @Tags         auditoria
// @Security     Bearer
// @Produce      json
// @Param        actor_id  query  string  false  "filtrar por actor"
// @Param        entidad   query  string  false  "filtrar por entidad (usuario, cliente, prestamo...)"
// @Param        desde     query  string  false  "YYYY-MM-DD"
// @Param        hasta     query  string  false  "YYYY-MM-DD"
// @Param        limit     query  int     false  "máximo de filas"
// @Param        offset    query  int     false  "desplazamiento"
// @Success      200  {array}  dto.AuditoriaResponse
// @Router       /api/auditoria [get]
func (h *AuditoriaHandler) List(c *fiber.Ctx) error {
	var q dto.AuditoriaQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "parámetros inválidos"})
	}
	if err := validation.Struct(q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validation.Message(err)})
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}
