package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
	"github.com/tu-usuario/prestamos-pro/pkg/texto"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

const clienteColumns = `id, cedula, nombre, apellido, telefono, direccion, ruta,
	documento_key, activo, created_at, updated_at`

// ClienteRepo implementación de ClienteRepository. Las columnas
// nombre_normalizado y apellido_normalizado (minúsculas, sin acentos) se
// alimentan en los INSERT/UPDATE y son las que consulta Search.
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *ClienteRepo) Create(ctx context.Context, c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (id, cedula, nombre, apellido, nombre_normalizado, apellido_normalizado,
			telefono, direccion, ruta, documento_key, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Cedula, c.Nombre, c.Apellido, texto.Normalizar(c.Nombre), texto.Normalizar(c.Apellido),
		c.Telefono, c.Direccion, c.Ruta, c.DocumentoKey, c.Activo, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClienteRepo) GetByID(ctx context.Context, id string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get cliente")
}

// GetByCedula obtiene un cliente por cédula.
func (r *ClienteRepo) GetByCedula(ctx context.Context, cedula string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE cedula = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, cedula), "get cliente by cedula")
}

// Search busca por nombre, apellido o cédula. El texto llega ya normalizado.
func (r *ClienteRepo) Search(ctx context.Context, texto string, limit, offset int) ([]*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + `
		FROM clientes
		WHERE nombre_normalizado LIKE '%' || $1 || '%'
		   OR apellido_normalizado LIKE '%' || $1 || '%'
		   OR cedula LIKE '%' || $1 || '%'
		ORDER BY nombre, apellido LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, texto, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search clientes: %w", err)
	}
	return r.scanRows(rows)
}

// List lista clientes con paginación.
func (r *ClienteRepo) List(ctx context.Context, limit, offset int) ([]*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	return r.scanRows(rows)
}

// Update actualiza los datos del cliente y sus columnas normalizadas.
func (r *ClienteRepo) Update(ctx context.Context, c *entity.Cliente) error {
	query := `
		UPDATE clientes SET cedula = $2, nombre = $3, apellido = $4,
			nombre_normalizado = $5, apellido_normalizado = $6,
			telefono = $7, direccion = $8, ruta = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Cedula, c.Nombre, c.Apellido, texto.Normalizar(c.Nombre), texto.Normalizar(c.Apellido),
		c.Telefono, c.Direccion, c.Ruta, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// SetDocumentoKey guarda la llave S3 de la foto de cédula.
func (r *ClienteRepo) SetDocumentoKey(ctx context.Context, id, key string) error {
	query := `UPDATE clientes SET documento_key = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, key)
	if err != nil {
		return fmt.Errorf("set documento_key: %w", err)
	}
	return nil
}

// SetActivo activa o desactiva un cliente (baja lógica).
func (r *ClienteRepo) SetActivo(ctx context.Context, id string, activo bool) error {
	query := `UPDATE clientes SET activo = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, activo)
	if err != nil {
		return fmt.Errorf("set activo cliente: %w", err)
	}
	return nil
}

func (r *ClienteRepo) scanOne(row pgx.Row, op string) (*entity.Cliente, error) {
	var c entity.Cliente
	err := row.Scan(&c.ID, &c.Cedula, &c.Nombre, &c.Apellido, &c.Telefono, &c.Direccion,
		&c.Ruta, &c.DocumentoKey, &c.Activo, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

func (r *ClienteRepo) scanRows(rows pgx.Rows) ([]*entity.Cliente, error) {
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(&c.ID, &c.Cedula, &c.Nombre, &c.Apellido, &c.Telefono, &c.Direccion,
			&c.Ruta, &c.DocumentoKey, &c.Activo, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
