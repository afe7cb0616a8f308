package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// NominaConfig es la configuración salarial de un usuario: salario base más
// porcentaje de comisión sobre lo recaudado. Una fila por usuario (upsert).
type NominaConfig struct {
	UsuarioID    string
	SalarioBase  decimal.Decimal
	ComisionPct  decimal.Decimal // porcentaje sobre recaudo
	FrecuenciaPago string        // SEMANAL, QUINCENAL, MENSUAL
	UpdatedAt    time.Time
}
