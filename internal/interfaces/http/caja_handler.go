package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/application/usecase"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/pkg/logger"
	"github.com/tu-usuario/prestamos-pro/pkg/validation"
)

// CajaHandler maneja la caja chica del cobrador.
type CajaHandler struct {
	uc  *usecase.CajaUseCase
	log *logger.Logger
}

// NewCajaHandler construye el handler de caja.
func NewCajaHandler(uc *usecase.CajaUseCase, log *logger.Logger) *CajaHandler {
	return &CajaHandler{uc: uc, log: log}
}

// Registrar godoc
// @Summary      Registrar un movimiento de caja (entrada o salida)
// @Tags         caja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCajaMovimientoRequest  true  "tipo, monto, concepto"
// @Success      201   {object}  dto.CajaMovimientoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/caja/movimientos [post]
func (h *CajaHandler) Registrar(c *fiber.Ctx) error {
	var in dto.CreateCajaMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validation.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validation.Message(err)})
	}
	out, err := h.uc.Registrar(c.Context(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrEntradaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrSaldoInsuficiente) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_FUNDS", Message: err.Error()})
		}
		return errorInterno(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Balance godoc
// @Summary      Balance de caja del día
// @Tags         caja
// @Security     Bearer
// @Produce      json
// @Param        fecha  query  string  false  "YYYY-MM-DD, por defecto hoy"
// @Success      200  {object}  dto.CajaBalanceResponse
// @Router       /api/caja/balance [get]
func (h *CajaHandler) Balance(c *fiber.Ctx) error {
	fecha := time.Now()
	if s := c.Query("fecha"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, se espera YYYY-MM-DD"})
		}
		fecha = parsed
	}
	out, err := h.uc.BalanceDelDia(c.Context(), GetUserID(c), fecha)
	if err != nil {
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}
