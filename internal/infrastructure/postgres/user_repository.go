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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, nombre, apellido, rol, activo,
	limite_tiempo, supervisor_id, permisos, ultimo_acceso, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO usuarios (id, email, password_hash, nombre, apellido, rol, activo,
			limite_tiempo, supervisor_id, permisos, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Nombre, user.Apellido, user.Rol,
		user.Activo, user.LimiteTiempo, user.SupervisorID, user.Permisos,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailYaRegistrado
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get usuario by id")
}

// GetByEmail obtiene un usuario por email. Comparación exacta, sin
// normalización; devuelve (nil, nil) cuando no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE email = $1 LIMIT 1`
	return r.scanOne(r.q.QueryRow(ctx, query, email), "get usuario by email")
}

// Update actualiza los campos editables de un usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE usuarios SET nombre = $2, apellido = $3, rol = $4, activo = $5,
			limite_tiempo = $6, supervisor_id = $7, permisos = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Nombre, user.Apellido, user.Rol, user.Activo,
		user.LimiteTiempo, user.SupervisorID, user.Permisos, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// UpdateUltimoAcceso marca el último login.
func (r *UserRepo) UpdateUltimoAcceso(ctx context.Context, id string, t time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE usuarios SET ultimo_acceso = $2 WHERE id = $1`, id, t)
	if err != nil {
		return fmt.Errorf("update ultimo_acceso: %w", err)
	}
	return nil
}

// SetActivo activa o desactiva un usuario (baja lógica).
func (r *UserRepo) SetActivo(ctx context.Context, id string, activo bool) error {
	query := `UPDATE usuarios SET activo = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, activo)
	if err != nil {
		return fmt.Errorf("set activo usuario: %w", err)
	}
	return nil
}

// List lista usuarios con paginación.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Nombre, &u.Apellido, &u.Rol,
			&u.Activo, &u.LimiteTiempo, &u.SupervisorID, &u.Permisos, &u.UltimoAcceso,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Nombre, &u.Apellido, &u.Rol,
		&u.Activo, &u.LimiteTiempo, &u.SupervisorID, &u.Permisos, &u.UltimoAcceso,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}
