package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de caja chica.
const (
	CajaEntrada = "ENTRADA"
	CajaSalida  = "SALIDA"
)

// CajaMovimiento es un movimiento de caja chica (efectivo del día).
type CajaMovimiento struct {
	ID        string
	Codigo    string // código corto legible (nanoid)
	UsuarioID string
	Tipo      string // ENTRADA | SALIDA
	Monto     decimal.Decimal
	Concepto  string
	Fecha     time.Time
	CreatedAt time.Time
}
