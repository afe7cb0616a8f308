package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
	"github.com/tu-usuario/prestamos-pro/pkg/logger"
)

// Evento es lo que un caller reporta al canal de auditoría.
type Evento struct {
	ActorID   string
	Accion    string // entity.AuditoriaEliminar, etc.
	Entidad   string
	EntidadID string
	Detalle   string // JSON libre
	IP        string
	UserAgent string
}

// AuditoriaUseCase canal lateral de auditoría, best-effort: Emit nunca
// devuelve error. Si la escritura falla se registra en el log y la operación
// principal continúa como si nada.
type AuditoriaUseCase struct {
	repo repository.AuditoriaRepository
	log  *logger.Logger
}

// NewAuditoriaUseCase construye el caso de uso.
func NewAuditoriaUseCase(repo repository.AuditoriaRepository, log *logger.Logger) *AuditoriaUseCase {
	return &AuditoriaUseCase{repo: repo, log: log}
}

// Emit registra el evento. Fire-and-forget: cualquier fallo se degrada a un
// warn en el log.
func (uc *AuditoriaUseCase) Emit(ctx context.Context, e Evento) {
	rec := &entity.AuditRecord{
		ID:        uuid.New().String(),
		ActorID:   e.ActorID,
		Accion:    e.Accion,
		Entidad:   e.Entidad,
		EntidadID: e.EntidadID,
		Detalle:   e.Detalle,
		IP:        e.IP,
		UserAgent: e.UserAgent,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, rec); err != nil {
		uc.log.Warn().Err(err).
			Str("accion", e.Accion).
			Str("entidad", e.Entidad).
			Str("entidad_id", e.EntidadID).
			Msg("auditoría: no se pudo escribir el evento")
	}
}

// List consulta el log con filtros (solo ADMINISTRADOR en el router).
func (uc *AuditoriaUseCase) List(ctx context.Context, q dto.AuditoriaQuery) ([]*dto.AuditoriaResponse, error) {
	f := repository.AuditoriaFiltro{
		ActorID: q.ActorID,
		Entidad: q.Entidad,
		Limit:   q.Limit,
		Offset:  q.Offset,
	}
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if q.Desde != "" {
		if t, err := time.Parse("2006-01-02", q.Desde); err == nil {
			f.Desde = &t
		}
	}
	if q.Hasta != "" {
		if t, err := time.Parse("2006-01-02", q.Hasta); err == nil {
			// inclusivo hasta fin del día
			fin := t.Add(24*time.Hour - time.Nanosecond)
			f.Hasta = &fin
		}
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AuditoriaResponse, 0, len(list))
	for _, r := range list {
		out = append(out, &dto.AuditoriaResponse{
			ID:        r.ID,
			ActorID:   r.ActorID,
			Accion:    r.Accion,
			Entidad:   r.Entidad,
			EntidadID: r.EntidadID,
			Detalle:   r.Detalle,
			IP:        r.IP,
			UserAgent: r.UserAgent,
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}
