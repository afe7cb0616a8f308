package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

var _ repository.NominaRepository = (*NominaRepo)(nil)

// NominaRepo implementación de NominaRepository. Una fila por usuario.
type NominaRepo struct {
	q Querier
}

// NewNominaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNominaRepository(q Querier) *NominaRepo {
	return &NominaRepo{q: q}
}

// Upsert crea o reemplaza la configuración del usuario.
func (r *NominaRepo) Upsert(ctx context.Context, n *entity.NominaConfig) error {
	query := `
		INSERT INTO nomina_config (usuario_id, salario_base, comision_pct, frecuencia_pago, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (usuario_id) DO UPDATE SET
			salario_base = EXCLUDED.salario_base,
			comision_pct = EXCLUDED.comision_pct,
			frecuencia_pago = EXCLUDED.frecuencia_pago,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, n.UsuarioID, n.SalarioBase, n.ComisionPct, n.FrecuenciaPago, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert nomina: %w", err)
	}
	return nil
}

// GetByUsuario obtiene la configuración del usuario. (nil, nil) si no hay.
func (r *NominaRepo) GetByUsuario(ctx context.Context, usuarioID string) (*entity.NominaConfig, error) {
	query := `
		SELECT usuario_id, salario_base, comision_pct, frecuencia_pago, updated_at
		FROM nomina_config WHERE usuario_id = $1`
	var n entity.NominaConfig
	err := r.q.QueryRow(ctx, query, usuarioID).Scan(
		&n.UsuarioID, &n.SalarioBase, &n.ComisionPct, &n.FrecuenciaPago, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get nomina: %w", err)
	}
	return &n, nil
}

// List lista todas las configuraciones.
func (r *NominaRepo) List(ctx context.Context) ([]*entity.NominaConfig, error) {
	query := `
		SELECT usuario_id, salario_base, comision_pct, frecuencia_pago, updated_at
		FROM nomina_config ORDER BY usuario_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list nomina: %w", err)
	}
	defer rows.Close()
	var list []*entity.NominaConfig
	for rows.Next() {
		var n entity.NominaConfig
		if err := rows.Scan(&n.UsuarioID, &n.SalarioBase, &n.ComisionPct, &n.FrecuenciaPago, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan nomina: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}
