package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

var _ repository.DeviceAuthRepository = (*DeviceAuthRepo)(nil)

const deviceColumns = `user_id, device_id, user_agent, ip, nombre_dispositivo, estado,
	ultimo_acceso, created_at`

// DeviceAuthRepo implementación de DeviceAuthRepository. La PK compuesta
// (user_id, device_id) es la que convierte el primer avistamiento concurrente
// en un ErrDuplicado recuperable.
type DeviceAuthRepo struct {
	q Querier
}

// NewDeviceAuthRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeviceAuthRepository(q Querier) *DeviceAuthRepo {
	return &DeviceAuthRepo{q: q}
}

// Get obtiene el registro del par (usuario, dispositivo). (nil, nil) si no existe.
func (r *DeviceAuthRepo) Get(ctx context.Context, userID, deviceID string) (*entity.DeviceAuthorization, error) {
	query := `SELECT ` + deviceColumns + `
		FROM dispositivos_autorizados WHERE user_id = $1 AND device_id = $2`
	var d entity.DeviceAuthorization
	err := r.q.QueryRow(ctx, query, userID, deviceID).Scan(
		&d.UserID, &d.DeviceID, &d.UserAgent, &d.IP, &d.NombreDispositivo, &d.Estado,
		&d.UltimoAcceso, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dispositivo: %w", err)
	}
	return &d, nil
}

// Create persiste el primer avistamiento. Devuelve domain.ErrDuplicado si
// otro request ganó la carrera de inserción.
func (r *DeviceAuthRepo) Create(ctx context.Context, d *entity.DeviceAuthorization) error {
	query := `
		INSERT INTO dispositivos_autorizados (user_id, device_id, user_agent, ip,
			nombre_dispositivo, estado, ultimo_acceso, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		d.UserID, d.DeviceID, d.UserAgent, d.IP, d.NombreDispositivo, d.Estado,
		d.UltimoAcceso, d.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert dispositivo: %w", err)
	}
	return nil
}

// TouchUltimoAcceso refresca el último avistamiento sin tocar el estado.
func (r *DeviceAuthRepo) TouchUltimoAcceso(ctx context.Context, userID, deviceID string, t time.Time) error {
	query := `UPDATE dispositivos_autorizados SET ultimo_acceso = $3
		WHERE user_id = $1 AND device_id = $2`
	_, err := r.q.Exec(ctx, query, userID, deviceID, t)
	if err != nil {
		return fmt.Errorf("touch dispositivo: %w", err)
	}
	return nil
}

// UpdateEstado aplica una transición administrativa.
func (r *DeviceAuthRepo) UpdateEstado(ctx context.Context, userID, deviceID, estado string) error {
	query := `UPDATE dispositivos_autorizados SET estado = $3
		WHERE user_id = $1 AND device_id = $2`
	tag, err := r.q.Exec(ctx, query, userID, deviceID, estado)
	if err != nil {
		return fmt.Errorf("update estado dispositivo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser lista los dispositivos vistos de un usuario, más recientes primero.
func (r *DeviceAuthRepo) ListByUser(ctx context.Context, userID string) ([]*entity.DeviceAuthorization, error) {
	query := `SELECT ` + deviceColumns + `
		FROM dispositivos_autorizados WHERE user_id = $1 ORDER BY ultimo_acceso DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list dispositivos: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeviceAuthorization
	for rows.Next() {
		var d entity.DeviceAuthorization
		if err := rows.Scan(&d.UserID, &d.DeviceID, &d.UserAgent, &d.IP, &d.NombreDispositivo,
			&d.Estado, &d.UltimoAcceso, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan dispositivo: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
