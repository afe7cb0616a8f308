package dto

import "time"

// SupervisorResponse resumen del supervisor enlazado (copiado a la sesión).
type SupervisorResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           string              `json:"id"`
	Email        string              `json:"email"`
	Nombre       string              `json:"nombre"`
	Apellido     string              `json:"apellido"`
	Rol          string              `json:"rol"`
	Activo       bool                `json:"activo"`
	LimiteTiempo *int                `json:"limite_tiempo,omitempty"`
	Permisos     []string            `json:"permisos,omitempty"`
	Supervisor   *SupervisorResponse `json:"supervisor,omitempty"`
	UltimoAcceso *time.Time          `json:"ultimo_acceso,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con el token de sesión firmado y el usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest entrada para crear un usuario (solo ADMINISTRADOR).
type CreateUserRequest struct {
	Email        string   `json:"email" validate:"required,email"`
	Password     string   `json:"password" validate:"required,min=8"`
	Nombre       string   `json:"nombre" validate:"required,min=1,max=100"`
	Apellido     string   `json:"apellido" validate:"omitempty,max=100"`
	Rol          string   `json:"rol" validate:"required,oneof=ADMINISTRADOR SUPERVISOR COBRADOR"`
	LimiteTiempo *int     `json:"limite_tiempo" validate:"omitempty,min=1"`
	SupervisorID *string  `json:"supervisor_id" validate:"omitempty,uuid"`
	Permisos     []string `json:"permisos"`
}

// UpdateUserRequest entrada para editar rol, permisos, supervisor y límite.
type UpdateUserRequest struct {
	Nombre       *string  `json:"nombre" validate:"omitempty,min=1,max=100"`
	Apellido     *string  `json:"apellido" validate:"omitempty,max=100"`
	Rol          *string  `json:"rol" validate:"omitempty,oneof=ADMINISTRADOR SUPERVISOR COBRADOR"`
	LimiteTiempo *int     `json:"limite_tiempo" validate:"omitempty,min=0"`
	SupervisorID *string  `json:"supervisor_id" validate:"omitempty,uuid"`
	Permisos     []string `json:"permisos"`
	Activo       *bool    `json:"activo"`
}

// TiempoResponse estado del presupuesto de tiempo de la sesión.
type TiempoResponse struct {
	Limitado   bool `json:"limitado"`
	Dentro     bool `json:"dentro"`
	Consumidos int  `json:"consumidos"`
	Restantes  int  `json:"restantes"`
}
