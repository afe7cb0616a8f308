package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
)

// CierreRepository puerto de persistencia y agregación para el cierre diario.
type CierreRepository interface {
	Create(ctx context.Context, c *entity.CierreDiario) error
	GetByID(ctx context.Context, id string) (*entity.CierreDiario, error)
	GetByCobradorFecha(ctx context.Context, cobradorID string, fecha time.Time) (*entity.CierreDiario, error)
	List(ctx context.Context, desde, hasta time.Time, limit, offset int) ([]*entity.CierreDiario, error)
	// Resumen agrega pagos, desembolsos y caja del cobrador en la fecha
	// (consulta de solo lectura sobre pagos, prestamos y caja_movimientos).
	Resumen(ctx context.Context, cobradorID string, fecha time.Time) (*entity.ResumenCierre, error)
}
