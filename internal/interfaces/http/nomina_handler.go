package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/application/usecase"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/pkg/logger"
	"github.com/tu-usuario/prestamos-pro/pkg/validation"
)

// NominaHandler configura salario y comisión por usuario. Solo ADMINISTRADOR.
type NominaHandler struct {
	uc  *usecase.NominaUseCase
	log *logger.Logger
}

// NewNominaHandler construye el handler de nómina.
func NewNominaHandler(uc *usecase.NominaUseCase, log *logger.Logger) *NominaHandler {
	return &NominaHandler{uc: uc, log: log}
}

// Upsert godoc
// @Summary      Crear o actualizar la configuración de nómina de un usuario
// @Tags         nomina
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertNominaRequest  true  "usuario, salario, comisión"
// @Success      200   {object}  dto.NominaResponse
// @Router       /api/nomina [put]
func (h *NominaHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertNominaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validation.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validation.Message(err)})
	}
	out, err := h.uc.Upsert(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		if errors.Is(err, domain.ErrEntradaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByUsuario godoc
// @Summary      Configuración de nómina de un usuario
// @Tags         nomina
// @Security     Bearer
// @Produce      json
// @Param        usuarioId  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.NominaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/nomina/{usuarioId} [get]
func (h *NominaHandler) GetByUsuario(c *fiber.Ctx) error {
	out, err := h.uc.GetByUsuario(c.Context(), c.Params("usuarioId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el usuario no tiene nómina configurada"})
		}
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar todas las configuraciones de nómina
// @Tags         nomina
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NominaResponse
// @Router       /api/nomina [get]
func (h *NominaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}
