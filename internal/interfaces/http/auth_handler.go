package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/prestamos-pro/internal/application/auth"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/application/usecase"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/pkg/logger"
	"github.com/tu-usuario/prestamos-pro/pkg/validation"
)

// AuthHandler maneja login, refresh y la información de la sesión.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	tiempo *usecase.TiempoUseCase
	log    *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, tiempo *usecase.TiempoUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, tiempo: tiempo, log: log}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validation.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validation.Message(err)})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrCredencialesInvalidas) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		if errors.Is(err, domain.ErrCuentaDesactivada) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "ACCOUNT_DISABLED", Message: "cuenta desactivada"})
		}
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Renovar la sesión con una foto fresca de rol y permisos
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LoginResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	out, err := h.uc.Refresh(c.Context(), GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrCuentaDesactivada) || errors.Is(err, domain.ErrNoAutorizado) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "la sesión ya no es válida"})
		}
		return errorInterno(c, h.log, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Sesión actual (claims del token)
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := GetClaims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	}
	out := dto.UserResponse{
		ID:           claims.UserID,
		Nombre:       claims.Nombre,
		Apellido:     claims.Apellido,
		Rol:          claims.Rol,
		Activo:       claims.Activo,
		LimiteTiempo: claims.LimiteTiempo,
		Permisos:     claims.Permisos,
	}
	if claims.Supervisor != nil {
		out.Supervisor = &dto.SupervisorResponse{ID: claims.Supervisor.ID, Nombre: claims.Supervisor.Nombre}
	}
	return c.JSON(out)
}

// Tiempo godoc
// @Summary      Presupuesto de tiempo restante de la sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TiempoResponse
// @Router       /api/auth/tiempo [get]
func (h *AuthHandler) Tiempo(c *fiber.Ctx) error {
	claims := GetClaims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	}
	estado, err := h.tiempo.CheckTimeLimit(c.Context(), claims.UserID, claims.LimiteTiempo)
	if err != nil {
		return errorInterno(c, h.log, err)
	}
	return c.JSON(dto.TiempoResponse{
		Limitado:   estado.Limitado,
		Dentro:     estado.Dentro,
		Consumidos: estado.Consumidos,
		Restantes:  estado.Restantes,
	})
}
