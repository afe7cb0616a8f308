package entity

import "time"

// Acciones auditadas.
const (
	AuditoriaEliminar = "ELIMINAR"
	AuditoriaCrear    = "CREAR"
	AuditoriaEditar   = "EDITAR"
)

// AuditRecord es una entrada del log de auditoría, solo-append: no existe
// ruta de mutación ni borrado para estas filas desde la aplicación.
type AuditRecord struct {
	ID        string
	ActorID   string
	Accion    string // ELIMINAR, CREAR, EDITAR
	Entidad   string // tipo de entidad afectada: "cliente", "prestamo", ...
	EntidadID string
	Detalle   string // payload JSON libre
	IP        string
	UserAgent string
	CreatedAt time.Time
}
