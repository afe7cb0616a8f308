package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

var _ repository.AuditoriaRepository = (*AuditoriaRepo)(nil)

// AuditoriaRepo implementación de AuditoriaRepository, solo-append: no hay
// UPDATE ni DELETE sobre la tabla desde la aplicación.
type AuditoriaRepo struct {
	q Querier
}

// NewAuditoriaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditoriaRepository(q Querier) *AuditoriaRepo {
	return &AuditoriaRepo{q: q}
}

// Create persiste una entrada del log.
func (r *AuditoriaRepo) Create(ctx context.Context, rec *entity.AuditRecord) error {
	query := `
		INSERT INTO auditoria (id, actor_id, accion, entidad, entidad_id, detalle, ip, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.ActorID, rec.Accion, rec.Entidad, rec.EntidadID, rec.Detalle,
		rec.IP, rec.UserAgent, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert auditoria: %w", err)
	}
	return nil
}

// List lista entradas con filtros opcionales, más recientes primero.
func (r *AuditoriaRepo) List(ctx context.Context, f repository.AuditoriaFiltro) ([]*entity.AuditRecord, error) {
	builder := psql.Select("id, actor_id, accion, entidad, entidad_id, detalle, ip, user_agent, created_at").
		From("auditoria").
		OrderBy("created_at DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))
	if f.ActorID != "" {
		builder = builder.Where(sq.Eq{"actor_id": f.ActorID})
	}
	if f.Entidad != "" {
		builder = builder.Where(sq.Eq{"entidad": f.Entidad})
	}
	if f.Desde != nil {
		builder = builder.Where(sq.GtOrEq{"created_at": *f.Desde})
	}
	if f.Hasta != nil {
		builder = builder.Where(sq.LtOrEq{"created_at": *f.Hasta})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list auditoria: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list auditoria: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditRecord
	for rows.Next() {
		var rec entity.AuditRecord
		if err := rows.Scan(&rec.ID, &rec.ActorID, &rec.Accion, &rec.Entidad, &rec.EntidadID,
			&rec.Detalle, &rec.IP, &rec.UserAgent, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan auditoria: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
