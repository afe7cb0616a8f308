package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCajaMovimientoRequest entrada para un movimiento de caja chica.
type CreateCajaMovimientoRequest struct {
	Tipo     string          `json:"tipo" validate:"required,oneof=ENTRADA SALIDA"`
	Monto    decimal.Decimal `json:"monto" validate:"required"`
	Concepto string          `json:"concepto" validate:"required,min=1,max=200"`
}

// CajaMovimientoResponse salida de un movimiento.
type CajaMovimientoResponse struct {
	ID        string          `json:"id"`
	Codigo    string          `json:"codigo"`
	UsuarioID string          `json:"usuario_id"`
	Tipo      string          `json:"tipo"`
	Monto     decimal.Decimal `json:"monto"`
	Concepto  string          `json:"concepto"`
	Fecha     time.Time       `json:"fecha"`
}

// CajaBalanceResponse balance del día para el usuario.
type CajaBalanceResponse struct {
	UsuarioID   string                   `json:"usuario_id"`
	Fecha       string                   `json:"fecha"`
	Balance     decimal.Decimal          `json:"balance"`
	Movimientos []CajaMovimientoResponse `json:"movimientos"`
}
