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

// PrestamoHandler maneja la originación de préstamos y el registro de pagos.
type PrestamoHandler struct {
	uc  *usecase.PrestamoUseCase
	log *logger.Logger
}

// NewPrestamoHandler construye el handler de préstamos.
func NewPrestamoHandler(uc *usecase.PrestamoUseCase, log *logger.Logger) *PrestamoHandler {
	return &PrestamoHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Originar un préstamo
// @Tags         prestamos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePrestamoRequest  true  "datos del préstamo"
// @Success      201   {object}  dto.PrestamoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/prestamos [post]
func (h *PrestamoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePrestamoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validation.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validation.Message(err)})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrEntradaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return errorInterno(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener préstamo por ID
// @Tags         prestamos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del préstamo"
// @Success      200  {object}  dto.PrestamoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prestamos/{id} [get]
func (h *PrestamoHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "préstamo no encontrado"})
		}
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar préstamos por cliente o por cobrador
// @Tags         prestamos
// @Security     Bearer
// @Produce      json
// @Param        cliente_id  query  string  false  "filtrar por cliente"
// @Param        cobrador_id query  string  false  "filtrar por cobrador"
// @Param        limit       query  int     false  "máximo de filas"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {array}  dto.PrestamoResponse
// @Router       /api/prestamos [get]
func (h *PrestamoHandler) List(c *fiber.Ctx) error {
	if clienteID := c.Query("cliente_id"); clienteID != "" {
		out, err := h.uc.ListByCliente(c.Context(), clienteID)
		if err != nil {
			return errorInterno(c, h.log, err)
		}
		return c.JSON(out)
	}
	cobradorID := c.Query("cobrador_id")
	if cobradorID == "" {
		// Sin filtro explícito cada cobrador ve su propia cartera.
		cobradorID = GetUserID(c)
	}
	out, err := h.uc.ListByCobrador(c.Context(), cobradorID, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// RegistrarPago godoc
// @Summary      Registrar un abono sobre un préstamo
// @Tags         prestamos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePagoRequest  true  "prestamo_id y monto"
// @Success      201   {object}  dto.PagoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pagos [post]
func (h *PrestamoHandler) RegistrarPago(c *fiber.Ctx) error {
	var in dto.CreatePagoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validation.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validation.Message(err)})
	}
	out, err := h.uc.RegistrarPago(c.Context(), GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "préstamo no encontrado"})
		case errors.Is(err, domain.ErrPrestamoCerrado):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LOAN_CLOSED", Message: err.Error()})
		case errors.Is(err, domain.ErrEntradaInvalida):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrDuplicado):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recibo duplicado"})
		}
		return errorInterno(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPagos godoc
// @Summary      Pagos de un préstamo
// @Tags         prestamos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del préstamo"
// @Success      200  {array}  dto.PagoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prestamos/{id}/pagos [get]
func (h *PrestamoHandler) ListPagos(c *fiber.Ctx) error {
	out, err := h.uc.ListPagos(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "préstamo no encontrado"})
		}
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// Anular godoc
// @Summary      Anular un préstamo
// @Tags         prestamos
// @Security     Bearer
// @Param        id  path  string  true  "ID del préstamo"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/prestamos/{id}/anular [post]
func (h *PrestamoHandler) Anular(c *fiber.Ctx) error {
	err := h.uc.Anular(c.Context(), c.Params("id"), usecase.Evento{
		ActorID:   GetUserID(c),
		IP:        clientIP(c),
		UserAgent: c.Get("User-Agent"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "préstamo no encontrado"})
		}
		if errors.Is(err, domain.ErrConflicto) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		}
		return errorInterno(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
