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

// SusuHandler maneja los grupos de ahorro rotativo (SUSU).
type SusuHandler struct {
	uc  *usecase.SusuUseCase
	log *logger.Logger
}

// NewSusuHandler construye el handler de SUSU.
func NewSusuHandler(uc *usecase.SusuUseCase, log *logger.Logger) *SusuHandler {
	return &SusuHandler{uc: uc, log: log}
}

// CreateGrupo godoc
// @Summary      Crear grupo SUSU
// @Tags         susu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSusuGrupoRequest  true  "nombre, cuota, frecuencia"
// @Success      201   {object}  dto.SusuGrupoResponse
// @Router       /api/susu/grupos [post]
func (h *SusuHandler) CreateGrupo(c *fiber.Ctx) error {
	var in dto.CreateSusuGrupoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validation.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validation.Message(err)})
	}
	out, err := h.uc.CreateGrupo(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrEntradaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return errorInterno(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetGrupo godoc
// @Summary      Obtener grupo SUSU por ID
// @Tags         susu
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del grupo"
// @Success      200  {object}  dto.SusuGrupoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/susu/grupos/{id} [get]
func (h *SusuHandler) GetGrupo(c *fiber.Ctx) error {
	out, err := h.uc.GetGrupo(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "grupo no encontrado"})
		}
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// ListGrupos godoc
// @Summary      Listar grupos SUSU
// @Tags         susu
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de filas"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.SusuGrupoResponse
// @Router       /api/susu/grupos [get]
func (h *SusuHandler) ListGrupos(c *fiber.Ctx) error {
	out, err := h.uc.ListGrupos(c.Context(), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// AddParticipante godoc
// @Summary      Sumar un cliente al grupo con su turno
// @Tags         susu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID del grupo"
// @Param        body  body  dto.AddSusuParticipanteRequest  true  "cliente y orden"
// @Success      201   {object}  dto.SusuParticipanteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/susu/grupos/{id}/participantes [post]
func (h *SusuHandler) AddParticipante(c *fiber.Ctx) error {
	var in dto.AddSusuParticipanteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validation.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validation.Message(err)})
	}
	out, err := h.uc.AddParticipante(c.Context(), c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		case errors.Is(err, domain.ErrDuplicado):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el orden ya está ocupado en el grupo"})
		case errors.Is(err, domain.ErrConflicto):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		}
		return errorInterno(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListParticipantes godoc
// @Summary      Participantes del grupo en orden de turno
// @Tags         susu
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del grupo"
// @Success      200  {array}  dto.SusuParticipanteResponse
// @Router       /api/susu/grupos/{id}/participantes [get]
func (h *SusuHandler) ListParticipantes(c *fiber.Ctx) error {
	out, err := h.uc.ListParticipantes(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "grupo no encontrado"})
		}
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// AvanzarTurno godoc
// @Summary      Entregar el pozo al turno actual y rotar
// @Tags         susu
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del grupo"
// @Success      200  {object}  dto.AvanzarTurnoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/susu/grupos/{id}/avanzar [post]
func (h *SusuHandler) AvanzarTurno(c *fiber.Ctx) error {
	out, err := h.uc.AvanzarTurno(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "grupo no encontrado"})
		}
		if errors.Is(err, domain.ErrConflicto) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		}
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// CerrarGrupo godoc
// @Summary      Cerrar un grupo SUSU
// @Tags         susu
// @Security     Bearer
// @Param        id  path  string  true  "ID del grupo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/susu/grupos/{id}/cerrar [post]
func (h *SusuHandler) CerrarGrupo(c *fiber.Ctx) error {
	if err := h.uc.CerrarGrupo(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "grupo no encontrado"})
		}
		if errors.Is(err, domain.ErrConflicto) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		}
		return errorInterno(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
