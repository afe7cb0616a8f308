package dto

import "time"

// CreateClienteRequest entrada para crear un cliente.
type CreateClienteRequest struct {
	Cedula    string `json:"cedula" validate:"required,min=5,max=20"`
	Nombre    string `json:"nombre" validate:"required,min=1,max=100"`
	Apellido  string `json:"apellido" validate:"omitempty,max=100"`
	Telefono  string `json:"telefono" validate:"omitempty,max=20"`
	Direccion string `json:"direccion" validate:"omitempty,max=200"`
	Ruta      string `json:"ruta" validate:"omitempty,max=50"`
}

// UpdateClienteRequest entrada para editar un cliente.
type UpdateClienteRequest struct {
	Nombre    *string `json:"nombre" validate:"omitempty,min=1,max=100"`
	Apellido  *string `json:"apellido" validate:"omitempty,max=100"`
	Telefono  *string `json:"telefono" validate:"omitempty,max=20"`
	Direccion *string `json:"direccion" validate:"omitempty,max=200"`
	Ruta      *string `json:"ruta" validate:"omitempty,max=50"`
}

// ClienteResponse salida de un cliente.
type ClienteResponse struct {
	ID             string    `json:"id"`
	Cedula         string    `json:"cedula"`
	Nombre         string    `json:"nombre"`
	Apellido       string    `json:"apellido"`
	Telefono       string    `json:"telefono"`
	Direccion      string    `json:"direccion"`
	Ruta           string    `json:"ruta"`
	TieneDocumento bool      `json:"tiene_documento"`
	Activo         bool      `json:"activo"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
