package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

var _ repository.SusuRepository = (*SusuRepo)(nil)

// SusuRepo implementación de SusuRepository. La unicidad (grupo_id, orden)
// vive en la base y se reporta como domain.ErrDuplicado en AddParticipante.
type SusuRepo struct {
	q Querier
}

// NewSusuRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSusuRepository(q Querier) *SusuRepo {
	return &SusuRepo{q: q}
}

// CreateGrupo persiste un grupo SUSU nuevo.
func (r *SusuRepo) CreateGrupo(ctx context.Context, g *entity.SusuGrupo) error {
	query := `
		INSERT INTO susu_grupos (id, nombre, cuota, frecuencia, estado, turno_actual, ciclo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		g.ID, g.Nombre, g.Cuota, g.Frecuencia, g.Estado, g.TurnoActual, g.Ciclo,
		g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert grupo susu: %w", err)
	}
	return nil
}

// GetGrupo obtiene un grupo por ID.
func (r *SusuRepo) GetGrupo(ctx context.Context, id string) (*entity.SusuGrupo, error) {
	query := `
		SELECT id, nombre, cuota, frecuencia, estado, turno_actual, ciclo, created_at, updated_at
		FROM susu_grupos WHERE id = $1`
	var g entity.SusuGrupo
	err := r.q.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.Nombre, &g.Cuota, &g.Frecuencia, &g.Estado, &g.TurnoActual, &g.Ciclo,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get grupo susu: %w", err)
	}
	return &g, nil
}

// ListGrupos lista grupos con paginación.
func (r *SusuRepo) ListGrupos(ctx context.Context, limit, offset int) ([]*entity.SusuGrupo, error) {
	query := `
		SELECT id, nombre, cuota, frecuencia, estado, turno_actual, ciclo, created_at, updated_at
		FROM susu_grupos ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list grupos susu: %w", err)
	}
	defer rows.Close()
	var list []*entity.SusuGrupo
	for rows.Next() {
		var g entity.SusuGrupo
		if err := rows.Scan(&g.ID, &g.Nombre, &g.Cuota, &g.Frecuencia, &g.Estado,
			&g.TurnoActual, &g.Ciclo, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan grupo susu: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

// UpdateGrupo actualiza estado, turno y ciclo del grupo.
func (r *SusuRepo) UpdateGrupo(ctx context.Context, g *entity.SusuGrupo) error {
	query := `
		UPDATE susu_grupos SET nombre = $2, cuota = $3, frecuencia = $4, estado = $5,
			turno_actual = $6, ciclo = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		g.ID, g.Nombre, g.Cuota, g.Frecuencia, g.Estado, g.TurnoActual, g.Ciclo, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update grupo susu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddParticipante agrega un cliente al grupo. Devuelve domain.ErrDuplicado
// si el orden ya está tomado dentro del grupo.
func (r *SusuRepo) AddParticipante(ctx context.Context, p *entity.SusuParticipante) error {
	query := `
		INSERT INTO susu_participantes (id, grupo_id, cliente_id, orden, recibido, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, p.ID, p.GrupoID, p.ClienteID, p.Orden, p.Recibido, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert participante susu: %w", err)
	}
	return nil
}

// ListParticipantes lista los participantes del grupo ordenados por turno.
func (r *SusuRepo) ListParticipantes(ctx context.Context, grupoID string) ([]*entity.SusuParticipante, error) {
	query := `
		SELECT id, grupo_id, cliente_id, orden, recibido, created_at
		FROM susu_participantes WHERE grupo_id = $1 ORDER BY orden`
	rows, err := r.q.Query(ctx, query, grupoID)
	if err != nil {
		return nil, fmt.Errorf("list participantes susu: %w", err)
	}
	defer rows.Close()
	var list []*entity.SusuParticipante
	for rows.Next() {
		var p entity.SusuParticipante
		if err := rows.Scan(&p.ID, &p.GrupoID, &p.ClienteID, &p.Orden, &p.Recibido, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan participante susu: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// MarcarRecibido marca o desmarca que el participante recibió el pozo.
func (r *SusuRepo) MarcarRecibido(ctx context.Context, participanteID string, recibido bool) error {
	query := `UPDATE susu_participantes SET recibido = $2 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, participanteID, recibido)
	if err != nil {
		return fmt.Errorf("marcar recibido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ResetRecibidos limpia la marca de todo el grupo al cerrar una vuelta.
func (r *SusuRepo) ResetRecibidos(ctx context.Context, grupoID string) error {
	query := `UPDATE susu_participantes SET recibido = false WHERE grupo_id = $1`
	if _, err := r.q.Exec(ctx, query, grupoID); err != nil {
		return fmt.Errorf("reset recibidos: %w", err)
	}
	return nil
}
