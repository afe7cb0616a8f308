package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

var _ repository.CajaRepository = (*CajaRepo)(nil)

// CajaRepo implementación de CajaRepository.
type CajaRepo struct {
	q Querier
}

// NewCajaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCajaRepository(q Querier) *CajaRepo {
	return &CajaRepo{q: q}
}

// Create persiste un movimiento de caja chica.
func (r *CajaRepo) Create(ctx context.Context, m *entity.CajaMovimiento) error {
	query := `
		INSERT INTO caja_movimientos (id, codigo, usuario_id, tipo, monto, concepto, fecha, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Codigo, m.UsuarioID, m.Tipo, m.Monto, m.Concepto, m.Fecha, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert movimiento caja: %w", err)
	}
	return nil
}

// ListByUsuarioFecha lista los movimientos del usuario en la fecha.
func (r *CajaRepo) ListByUsuarioFecha(ctx context.Context, usuarioID string, fecha time.Time) ([]*entity.CajaMovimiento, error) {
	query := `
		SELECT id, codigo, usuario_id, tipo, monto, concepto, fecha, created_at
		FROM caja_movimientos WHERE usuario_id = $1 AND fecha::date = $2::date
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, usuarioID, fecha)
	if err != nil {
		return nil, fmt.Errorf("list movimientos caja: %w", err)
	}
	defer rows.Close()
	var list []*entity.CajaMovimiento
	for rows.Next() {
		var m entity.CajaMovimiento
		if err := rows.Scan(&m.ID, &m.Codigo, &m.UsuarioID, &m.Tipo, &m.Monto,
			&m.Concepto, &m.Fecha, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimiento caja: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Balance devuelve entradas - salidas del usuario en la fecha.
func (r *CajaRepo) Balance(ctx context.Context, usuarioID string, fecha time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN tipo = 'ENTRADA' THEN monto ELSE -monto END), 0)
		FROM caja_movimientos WHERE usuario_id = $1 AND fecha::date = $2::date`
	var balance decimal.Decimal
	if err := r.q.QueryRow(ctx, query, usuarioID, fecha).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("balance caja: %w", err)
	}
	return balance, nil
}
