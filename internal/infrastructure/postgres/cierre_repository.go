package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

var _ repository.CierreRepository = (*CierreRepo)(nil)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const cierreColumns = `id, cobrador_id, fecha, total_recaudado, total_prestado,
	total_entradas, total_salidas, efectivo_teoria, efectivo_real, descuadre,
	observacion, cerrado_por, created_at`

// CierreRepo implementación de CierreRepository. Resumen agrega pagos,
// desembolsos y caja en consultas de solo lectura; el cierre confirmado
// queda congelado en cierres_diarios.
type CierreRepo struct {
	q Querier
}

// NewCierreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCierreRepository(q Querier) *CierreRepo {
	return &CierreRepo{q: q}
}

// Create persiste un cierre confirmado. La unicidad (cobrador, fecha) la
// garantiza la base; devuelve domain.ErrConflicto si ya existe.
func (r *CierreRepo) Create(ctx context.Context, c *entity.CierreDiario) error {
	query := `
		INSERT INTO cierres_diarios (id, cobrador_id, fecha, total_recaudado, total_prestado,
			total_entradas, total_salidas, efectivo_teoria, efectivo_real, descuadre,
			observacion, cerrado_por, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CobradorID, c.Fecha, c.TotalRecaudado, c.TotalPrestado,
		c.TotalEntradas, c.TotalSalidas, c.EfectivoTeoria, c.EfectivoReal, c.Descuadre,
		c.Observacion, c.CerradoPor, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflicto
		}
		return fmt.Errorf("insert cierre: %w", err)
	}
	return nil
}

// GetByID obtiene un cierre por ID.
func (r *CierreRepo) GetByID(ctx context.Context, id string) (*entity.CierreDiario, error) {
	query := `SELECT ` + cierreColumns + ` FROM cierres_diarios WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get cierre")
}

// GetByCobradorFecha obtiene el cierre del cobrador en la fecha, si existe.
func (r *CierreRepo) GetByCobradorFecha(ctx context.Context, cobradorID string, fecha time.Time) (*entity.CierreDiario, error) {
	query := `SELECT ` + cierreColumns + `
		FROM cierres_diarios WHERE cobrador_id = $1 AND fecha = $2::date`
	return r.scanOne(r.q.QueryRow(ctx, query, cobradorID, fecha), "get cierre by fecha")
}

// List lista cierres en un rango de fechas con paginación.
func (r *CierreRepo) List(ctx context.Context, desde, hasta time.Time, limit, offset int) ([]*entity.CierreDiario, error) {
	builder := psql.Select(cierreColumns).
		From("cierres_diarios").
		OrderBy("fecha DESC, created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	if !desde.IsZero() {
		builder = builder.Where(sq.GtOrEq{"fecha": desde})
	}
	if !hasta.IsZero() {
		builder = builder.Where(sq.LtOrEq{"fecha": hasta})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list cierres: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cierres: %w", err)
	}
	defer rows.Close()
	var list []*entity.CierreDiario
	for rows.Next() {
		var c entity.CierreDiario
		if err := rows.Scan(&c.ID, &c.CobradorID, &c.Fecha, &c.TotalRecaudado, &c.TotalPrestado,
			&c.TotalEntradas, &c.TotalSalidas, &c.EfectivoTeoria, &c.EfectivoReal, &c.Descuadre,
			&c.Observacion, &c.CerradoPor, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cierre: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Resumen agrega pagos, desembolsos y caja del cobrador en la fecha.
func (r *CierreRepo) Resumen(ctx context.Context, cobradorID string, fecha time.Time) (*entity.ResumenCierre, error) {
	res := &entity.ResumenCierre{CobradorID: cobradorID, Fecha: fecha}

	pagosQ := `
		SELECT COALESCE(SUM(monto), 0), COUNT(*)
		FROM pagos WHERE cobrador_id = $1 AND fecha::date = $2::date`
	if err := r.q.QueryRow(ctx, pagosQ, cobradorID, fecha).Scan(&res.TotalRecaudado, &res.NumPagos); err != nil {
		return nil, fmt.Errorf("resumen pagos: %w", err)
	}

	prestamosQ := `
		SELECT COALESCE(SUM(capital), 0), COUNT(*)
		FROM prestamos WHERE cobrador_id = $1 AND fecha_inicio::date = $2::date
			AND estado <> 'ANULADO'`
	if err := r.q.QueryRow(ctx, prestamosQ, cobradorID, fecha).Scan(&res.TotalPrestado, &res.NumPrestamos); err != nil {
		return nil, fmt.Errorf("resumen prestamos: %w", err)
	}

	cajaQ := `
		SELECT
			COALESCE(SUM(CASE WHEN tipo = 'ENTRADA' THEN monto ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN tipo = 'SALIDA' THEN monto ELSE 0 END), 0)
		FROM caja_movimientos WHERE usuario_id = $1 AND fecha::date = $2::date`
	if err := r.q.QueryRow(ctx, cajaQ, cobradorID, fecha).Scan(&res.TotalEntradas, &res.TotalSalidas); err != nil {
		return nil, fmt.Errorf("resumen caja: %w", err)
	}

	return res, nil
}

func (r *CierreRepo) scanOne(row pgx.Row, op string) (*entity.CierreDiario, error) {
	var c entity.CierreDiario
	err := row.Scan(&c.ID, &c.CobradorID, &c.Fecha, &c.TotalRecaudado, &c.TotalPrestado,
		&c.TotalEntradas, &c.TotalSalidas, &c.EfectivoTeoria, &c.EfectivoReal, &c.Descuadre,
		&c.Observacion, &c.CerradoPor, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}
