package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

var _ repository.PrestamoRepository = (*PrestamoRepo)(nil)
var _ repository.PagoRepository = (*PagoRepo)(nil)

const prestamoColumns = `id, cliente_id, cobrador_id, capital, tasa_interes, monto_total,
	saldo, cuotas, frecuencia, estado, fecha_inicio, created_at, updated_at`

// PrestamoRepo implementación de PrestamoRepository. Los montos viajan como
// NUMERIC y el codec pgx-shopspring-decimal los escanea directo a decimal.Decimal.
type PrestamoRepo struct {
	q Querier
}

// NewPrestamoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPrestamoRepository(q Querier) *PrestamoRepo {
	return &PrestamoRepo{q: q}
}

// Create persiste un nuevo préstamo.
func (r *PrestamoRepo) Create(ctx context.Context, p *entity.Prestamo) error {
	query := `
		INSERT INTO prestamos (id, cliente_id, cobrador_id, capital, tasa_interes, monto_total,
			saldo, cuotas, frecuencia, estado, fecha_inicio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ClienteID, p.CobradorID, p.Capital, p.TasaInteres, p.MontoTotal,
		p.Saldo, p.Cuotas, p.Frecuencia, p.Estado, p.FechaInicio, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert prestamo: %w", err)
	}
	return nil
}

// GetByID obtiene un préstamo por ID.
func (r *PrestamoRepo) GetByID(ctx context.Context, id string) (*entity.Prestamo, error) {
	query := `SELECT ` + prestamoColumns + ` FROM prestamos WHERE id = $1`
	var p entity.Prestamo
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.ClienteID, &p.CobradorID, &p.Capital, &p.TasaInteres, &p.MontoTotal,
		&p.Saldo, &p.Cuotas, &p.Frecuencia, &p.Estado, &p.FechaInicio, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get prestamo: %w", err)
	}
	return &p, nil
}

// ListByCliente lista los préstamos de un cliente, más recientes primero.
func (r *PrestamoRepo) ListByCliente(ctx context.Context, clienteID string) ([]*entity.Prestamo, error) {
	query := `SELECT ` + prestamoColumns + `
		FROM prestamos WHERE cliente_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, clienteID)
	if err != nil {
		return nil, fmt.Errorf("list prestamos by cliente: %w", err)
	}
	return scanPrestamos(rows)
}

// ListByCobrador lista los préstamos asignados a un cobrador con paginación.
func (r *PrestamoRepo) ListByCobrador(ctx context.Context, cobradorID string, limit, offset int) ([]*entity.Prestamo, error) {
	query := `SELECT ` + prestamoColumns + `
		FROM prestamos WHERE cobrador_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, cobradorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list prestamos by cobrador: %w", err)
	}
	return scanPrestamos(rows)
}

// UpdateSaldo fija el nuevo saldo y estado tras registrar un pago.
func (r *PrestamoRepo) UpdateSaldo(ctx context.Context, id string, saldo decimal.Decimal, estado string) error {
	query := `UPDATE prestamos SET saldo = $2, estado = $3, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, saldo, estado)
	if err != nil {
		return fmt.Errorf("update saldo prestamo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateEstado cambia el estado del préstamo.
func (r *PrestamoRepo) UpdateEstado(ctx context.Context, id, estado string) error {
	query := `UPDATE prestamos SET estado = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, estado)
	if err != nil {
		return fmt.Errorf("update estado prestamo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPrestamos(rows pgx.Rows) ([]*entity.Prestamo, error) {
	defer rows.Close()
	var list []*entity.Prestamo
	for rows.Next() {
		var p entity.Prestamo
		if err := rows.Scan(&p.ID, &p.ClienteID, &p.CobradorID, &p.Capital, &p.TasaInteres,
			&p.MontoTotal, &p.Saldo, &p.Cuotas, &p.Frecuencia, &p.Estado, &p.FechaInicio,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan prestamo: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

const pagoColumns = `id, prestamo_id, cobrador_id, recibo, monto, fecha, nota, created_at`

// PagoRepo implementación de PagoRepository.
type PagoRepo struct {
	q Querier
}

// NewPagoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPagoRepository(q Querier) *PagoRepo {
	return &PagoRepo{q: q}
}

// Create persiste un abono.
func (r *PagoRepo) Create(ctx context.Context, p *entity.Pago) error {
	query := `
		INSERT INTO pagos (id, prestamo_id, cobrador_id, recibo, monto, fecha, nota, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.PrestamoID, p.CobradorID, p.Recibo, p.Monto, p.Fecha, p.Nota, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert pago: %w", err)
	}
	return nil
}

// ListByPrestamo lista los abonos de un préstamo en orden cronológico.
func (r *PagoRepo) ListByPrestamo(ctx context.Context, prestamoID string) ([]*entity.Pago, error) {
	query := `SELECT ` + pagoColumns + ` FROM pagos WHERE prestamo_id = $1 ORDER BY fecha`
	rows, err := r.q.Query(ctx, query, prestamoID)
	if err != nil {
		return nil, fmt.Errorf("list pagos: %w", err)
	}
	return scanPagos(rows)
}

// ListByCobradorFecha lista los abonos de un cobrador en una fecha.
func (r *PagoRepo) ListByCobradorFecha(ctx context.Context, cobradorID string, fecha time.Time) ([]*entity.Pago, error) {
	query := `SELECT ` + pagoColumns + `
		FROM pagos WHERE cobrador_id = $1 AND fecha::date = $2::date ORDER BY fecha`
	rows, err := r.q.Query(ctx, query, cobradorID, fecha)
	if err != nil {
		return nil, fmt.Errorf("list pagos by fecha: %w", err)
	}
	return scanPagos(rows)
}

func scanPagos(rows pgx.Rows) ([]*entity.Pago, error) {
	defer rows.Close()
	var list []*entity.Pago
	for rows.Next() {
		var p entity.Pago
		if err := rows.Scan(&p.ID, &p.PrestamoID, &p.CobradorID, &p.Recibo, &p.Monto,
			&p.Fecha, &p.Nota, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pago: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
