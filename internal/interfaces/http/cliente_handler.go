package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/application/usecase"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/pkg/logger"
	"github.com/tu-usuario/prestamos-pro/pkg/validation"
)

// DocumentStorage guarda y recupera los documentos de identidad de los
// clientes (cédula escaneada, contrato firmado).
type DocumentStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.ReadSeeker) error
	Download(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}

// ClienteHandler maneja la cartera de clientes.
type ClienteHandler struct {
	uc      *usecase.ClienteUseCase
	storage DocumentStorage
	log     *logger.Logger
}

// NewClienteHandler construye el handler de clientes.
func NewClienteHandler(uc *usecase.ClienteUseCase, storage DocumentStorage, log *logger.Logger) *ClienteHandler {
	return &ClienteHandler{uc: uc, storage: storage, log: log}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClienteRequest  true  "datos del cliente"
// @Success      201   {object}  dto.ClienteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
func (h *ClienteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validation.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validation.Message(err)})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicado) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un cliente con esa cédula"})
		}
		return errorInterno(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener cliente por ID
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClienteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [get]
func (h *ClienteHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar clientes, con búsqueda libre por nombre o cédula
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        buscar  query  string  false  "texto a buscar (ignora tildes y mayúsculas)"
// @Param        limit   query  int     false  "máximo de filas"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.ClienteResponse
// @Router       /api/clientes [get]
func (h *ClienteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("buscar"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del cliente"
// @Param        body  body  dto.UpdateClienteRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.ClienteResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [put]
func (h *ClienteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validation.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validation.Message(err)})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Desactivar cliente (borrado lógico)
// @Tags         clientes
// @Security     Bearer
// @Param        id  path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [delete]
func (h *ClienteHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.Delete(c.Context(), c.Params("id"), usecase.Evento{
		ActorID:   GetUserID(c),
		IP:        clientIP(c),
		UserAgent: c.Get("User-Agent"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return errorInterno(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SubirDocumento godoc
// @Summary      Subir el documento de identidad del cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       multipart/form-data
// @Param        id         path      string  true  "ID del cliente"
// @Param        documento  formData  file    true  "archivo (pdf, jpg, png)"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id}/documento [post]
func (h *ClienteHandler) SubirDocumento(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.uc.GetByID(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return errorInterno(c, h.log, err)
	}

	fh, err := c.FormFile("documento")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se espera el campo multipart 'documento'"})
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType := fh.Header.Get("Content-Type")
	if !extensionPermitida(ext) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "solo se aceptan pdf, jpg o png"})
	}

	f, err := fh.Open()
	if err != nil {
		return errorInterno(c, h.log, err)
	}
	defer f.Close()

	key := fmt.Sprintf("clientes/%s/documento%s", id, ext)
	if err := h.storage.Upload(c.Context(), key, contentType, f); err != nil {
		return errorInterno(c, h.log, err)
	}
	if err := h.uc.SetDocumentoKey(c.Context(), id, key); err != nil {
		return errorInterno(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DescargarDocumento godoc
// @Summary      Descargar el documento de identidad del cliente
// @Tags         clientes
// @Security     Bearer
// @Produce      octet-stream
// @Param        id  path  string  true  "ID del cliente"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id}/documento [get]
func (h *ClienteHandler) DescargarDocumento(c *fiber.Ctx) error {
	key, err := h.uc.DocumentoKey(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return errorInterno(c, h.log, err)
	}
	if key == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el cliente no tiene documento"})
	}

	body, contentType, err := h.storage.Download(c.Context(), key)
	if err != nil {
		return errorInterno(c, h.log, err)
	}
	if contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	return c.SendStream(body)
}

func extensionPermitida(ext string) bool {
	switch ext {
	case ".pdf", ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
