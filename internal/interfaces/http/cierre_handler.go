package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/application/usecase"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/pkg/logger"
	"github.com/tu-usuario/prestamos-pro/pkg/validation"
)

// CierreHandler maneja el cierre diario de cada cobrador.
type CierreHandler struct {
	uc  *usecase.CierreUseCase
	log *logger.Logger
}

// NewCierreHandler construye el handler de cierres.
func NewCierreHandler(uc *usecase.CierreUseCase, log *logger.Logger) *CierreHandler {
	return &CierreHandler{uc: uc, log: log}
}

// Resumen godoc
// @Summary      Resumen del día antes de confirmar el cierre
// @Tags         cierres
// @Security     Bearer
// @Produce      json
// @Param        cobrador_id  query  string  false  "por defecto el usuario de la sesión"
// @Param        fecha        query  string  false  "YYYY-MM-DD, por defecto hoy"
// @Success      200  {object}  dto.ResumenCierreResponse
// @Router       /api/cierres/resumen [get]
func (h *CierreHandler) Resumen(c *fiber.Ctx) error {
	cobradorID := c.Query("cobrador_id")
	if cobradorID == "" {
		cobradorID = GetUserID(c)
	}
	out, err := h.uc.Resumen(c.Context(), cobradorID, c.Query("fecha"))
	if err != nil {
		if errors.Is(err, domain.ErrEntradaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// Confirmar godoc
// @Summary      Confirmar el cierre del día con el efectivo contado
// @Tags         cierres
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCierreRequest  true  "cobrador, fecha y efectivo real"
// @Success      201   {object}  dto.CierreResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cierres [post]
func (h *CierreHandler) Confirmar(c *fiber.Ctx) error {
	var in dto.CreateCierreRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validation.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validation.Message(err)})
	}
	out, err := h.uc.Confirmar(c.Context(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrConflicto) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_CLOSED", Message: "el día ya fue cerrado para ese cobrador"})
		}
		if errors.Is(err, domain.ErrEntradaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return errorInterno(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener cierre por ID
// @Tags         cierres
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cierre"
// @Success      200  {object}  dto.CierreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cierres/{id} [get]
func (h *CierreHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cierre no encontrado"})
		}
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cierres por rango de fechas
// @Tags         cierres
// @Security     Bearer
// @Produce      json
// @Param        desde   query  string  false  "YYYY-MM-DD"
// @Param        hasta   query  string  false  "YYYY-MM-DD"
// @Param        limit   query  int     false  "máximo de filas"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.CierreResponse
// @Router       /api/cierres [get]
func (h *CierreHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("desde"), c.Query("hasta"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		if errors.Is(err, domain.ErrEntradaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar el cierre en PDF
// @Tags         cierres
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del cierre"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cierres/{id}/pdf [get]
func (h *CierreHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	buf, err := h.uc.PDF(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cierre no encontrado"})
		}
		return errorInterno(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="cierre-%s.pdf"`, id))
	return c.Send(buf)
}
