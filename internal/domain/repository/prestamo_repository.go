package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
)

// PrestamoRepository puerto de persistencia de préstamos.
type PrestamoRepository interface {
	Create(ctx context.Context, p *entity.Prestamo) error
	GetByID(ctx context.Context, id string) (*entity.Prestamo, error)
	ListByCliente(ctx context.Context, clienteID string) ([]*entity.Prestamo, error)
	ListByCobrador(ctx context.Context, cobradorID string, limit, offset int) ([]*entity.Prestamo, error)
	// UpdateSaldo fija el nuevo saldo y estado tras registrar un pago.
	UpdateSaldo(ctx context.Context, id string, saldo decimal.Decimal, estado string) error
	UpdateEstado(ctx context.Context, id, estado string) error
}

// PagoRepository puerto de persistencia de pagos (abonos).
type PagoRepository interface {
	Create(ctx context.Context, p *entity.Pago) error
	ListByPrestamo(ctx context.Context, prestamoID string) ([]*entity.Pago, error)
	ListByCobradorFecha(ctx context.Context, cobradorID string, fecha time.Time) ([]*entity.Pago, error)
}
