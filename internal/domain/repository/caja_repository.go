package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
)

// CajaRepository puerto de persistencia de movimientos de caja chica.
type CajaRepository interface {
	Create(ctx context.Context, m *entity.CajaMovimiento) error
	ListByUsuarioFecha(ctx context.Context, usuarioID string, fecha time.Time) ([]*entity.CajaMovimiento, error)
	// Balance devuelve entradas - salidas del usuario en la fecha.
	Balance(ctx context.Context, usuarioID string, fecha time.Time) (decimal.Decimal, error)
}
