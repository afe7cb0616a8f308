package repository

import (
	"context"

	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
)

// ClienteRepository puerto de persistencia de clientes.
type ClienteRepository interface {
	Create(ctx context.Context, c *entity.Cliente) error
	GetByID(ctx context.Context, id string) (*entity.Cliente, error)
	GetByCedula(ctx context.Context, cedula string) (*entity.Cliente, error)
	// Search busca por nombre/apellido/cédula; el texto llega ya normalizado
	// (minúsculas, sin acentos) y se compara contra columnas normalizadas.
	Search(ctx context.Context, texto string, limit, offset int) ([]*entity.Cliente, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Cliente, error)
	Update(ctx context.Context, c *entity.Cliente) error
	SetDocumentoKey(ctx context.Context, id, key string) error
	SetActivo(ctx context.Context, id string, activo bool) error
}
