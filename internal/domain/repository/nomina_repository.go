package repository

import (
	"context"

	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
)

// NominaRepository puerto de persistencia de configuración de nómina.
type NominaRepository interface {
	Upsert(ctx context.Context, n *entity.NominaConfig) error
	GetByUsuario(ctx context.Context, usuarioID string) (*entity.NominaConfig, error)
	List(ctx context.Context) ([]*entity.NominaConfig, error)
}
