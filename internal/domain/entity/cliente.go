package entity

import "time"

// Cliente de la cartera de préstamos.
type Cliente struct {
	ID           string
	Cedula       string // documento de identidad, único
	Nombre       string
	Apellido     string
	Telefono     string
	Direccion    string
	Ruta         string  // ruta de cobro asignada
	DocumentoKey *string // llave S3 de la foto de cédula
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NombreCompleto para pantallas y reportes.
func (c *Cliente) NombreCompleto() string {
	if c.Apellido == "" {
		return c.Nombre
	}
	return c.Nombre + " " + c.Apellido
}
