package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/prestamos-pro/internal/application/device"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/application/usecase"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/pkg/logger"
	"github.com/tu-usuario/prestamos-pro/pkg/validation"
)

// UsuarioHandler administra usuarios y sus dispositivos. Solo ADMINISTRADOR.
type UsuarioHandler struct {
	uc   *usecase.UsuarioUseCase
	gate *device.GateUseCase
	log  *logger.Logger
}

// NewUsuarioHandler construye el handler de usuarios.
func NewUsuarioHandler(uc *usecase.UsuarioUseCase, gate *device.GateUseCase, log *logger.Logger) *UsuarioHandler {
	return &UsuarioHandler{uc: uc, gate: gate, log: log}
}

// Create godoc
// @Summary      Crear usuario
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *UsuarioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validation.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validation.Message(err)})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailYaRegistrado) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_TAKEN", Message: "el email ya está registrado"})
		}
		if errors.Is(err, domain.ErrEntradaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return errorInterno(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener usuario por ID
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [get]
func (h *UsuarioHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de filas"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.UserResponse
// @Router       /api/usuarios [get]
func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar usuario (rol, permisos, supervisor, límite de tiempo)
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [put]
func (h *UsuarioHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validation.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validation.Message(err)})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
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

// Delete godoc
// @Summary      Desactivar usuario (borrado lógico)
// @Tags         usuarios
// @Security     Bearer
// @Param        id  path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [delete]
func (h *UsuarioHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.Delete(c.Context(), c.Params("id"), usecase.Evento{
		ActorID:   GetUserID(c),
		IP:        clientIP(c),
		UserAgent: c.Get("User-Agent"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		return errorInterno(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListDispositivos godoc
// @Summary      Dispositivos registrados de un usuario
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {array}  dto.DispositivoResponse
// @Router       /api/usuarios/{id}/dispositivos [get]
func (h *UsuarioHandler) ListDispositivos(c *fiber.Ctx) error {
	devices, err := h.gate.ListByUser(c.Context(), c.Params("id"))
	if err != nil {
		return errorInterno(c, h.log, err)
	}
	out := make([]dto.DispositivoResponse, 0, len(devices))
	for _, d := range devices {
		out = append(out, dto.DispositivoResponse{
			UserID:            d.UserID,
			DeviceID:          d.DeviceID,
			NombreDispositivo: d.NombreDispositivo,
			UserAgent:         d.UserAgent,
			IP:                d.IP,
			Estado:            d.Estado,
			UltimoAcceso:      d.UltimoAcceso,
			CreatedAt:         d.CreatedAt,
		})
	}
	return c.JSON(out)
}

// AutorizarDispositivo godoc
// @Summary      Autorizar un dispositivo pendiente
// @Tags         usuarios
// @Security     Bearer
// @Param        id        path  string  true  "ID del usuario"
// @Param        deviceId  path  string  true  "fingerprint del dispositivo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/dispositivos/{deviceId}/autorizar [post]
func (h *UsuarioHandler) AutorizarDispositivo(c *fiber.Ctx) error {
	return h.transicionDispositivo(c, h.gate.Authorize)
}

// RechazarDispositivo godoc
// @Summary      Rechazar un dispositivo
// @Tags         usuarios
// @Security     Bearer
// @Param        id        path  string  true  "ID del usuario"
// @Param        deviceId  path  string  true  "fingerprint del dispositivo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/dispositivos/{deviceId}/rechazar [post]
func (h *UsuarioHandler) RechazarDispositivo(c *fiber.Ctx) error {
	return h.transicionDispositivo(c, h.gate.Reject)
}

// BloquearDispositivo godoc
// @Summary      Bloquear un dispositivo
// @Tags         usuarios
// @Security     Bearer
// @Param        id        path  string  true  "ID del usuario"
// @Param        deviceId  path  string  true  "fingerprint del dispositivo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/dispositivos/{deviceId}/bloquear [post]
func (h *UsuarioHandler) BloquearDispositivo(c *fiber.Ctx) error {
	return h.transicionDispositivo(c, h.gate.Block)
}

func (h *UsuarioHandler) transicionDispositivo(c *fiber.Ctx, fn func(ctx context.Context, userID, deviceID string) error) error {
	if err := fn(c.Context(), c.Params("id"), c.Params("deviceId")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "dispositivo no encontrado"})
		}
		return errorInterno(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
