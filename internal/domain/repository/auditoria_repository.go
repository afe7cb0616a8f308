package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
)

// AuditoriaFiltro criterios opcionales para listar el log de auditoría.
type AuditoriaFiltro struct {
	ActorID string
	Entidad string
	Desde   *time.Time
	Hasta   *time.Time
	Limit   int
	Offset  int
}

// AuditoriaRepository puerto del log de auditoría, solo-append.
type AuditoriaRepository interface {
	Create(ctx context.Context, r *entity.AuditRecord) error
	List(ctx context.Context, f AuditoriaFiltro) ([]*entity.AuditRecord, error)
}
