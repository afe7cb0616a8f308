package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

var _ repository.UsoTiempoRepository = (*UsoTiempoRepo)(nil)

// UsoTiempoRepo implementación de UsoTiempoRepository. Una fila por
// (usuario, fecha); el incremento es un upsert atómico.
type UsoTiempoRepo struct {
	q Querier
}

// NewUsoTiempoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsoTiempoRepository(q Querier) *UsoTiempoRepo {
	return &UsoTiempoRepo{q: q}
}

// Increment suma minutos al acumulador del día.
func (r *UsoTiempoRepo) Increment(ctx context.Context, usuarioID string, fecha time.Time, minutos int) error {
	query := `
		INSERT INTO uso_tiempo (usuario_id, fecha, minutos)
		VALUES ($1, $2::date, $3)
		ON CONFLICT (usuario_id, fecha) DO UPDATE SET minutos = uso_tiempo.minutos + EXCLUDED.minutos`
	if _, err := r.q.Exec(ctx, query, usuarioID, fecha, minutos); err != nil {
		return fmt.Errorf("increment uso_tiempo: %w", err)
	}
	return nil
}

// Minutos devuelve los minutos consumidos en la fecha (0 si no hay fila).
func (r *UsoTiempoRepo) Minutos(ctx context.Context, usuarioID string, fecha time.Time) (int, error) {
	query := `SELECT minutos FROM uso_tiempo WHERE usuario_id = $1 AND fecha = $2::date`
	var minutos int
	err := r.q.QueryRow(ctx, query, usuarioID, fecha).Scan(&minutos)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("minutos uso_tiempo: %w", err)
	}
	return minutos, nil
}
