package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertNominaRequest configura la nómina de un usuario.
type UpsertNominaRequest struct {
	UsuarioID      string          `json:"usuario_id" validate:"required,uuid"`
	SalarioBase    decimal.Decimal `json:"salario_base" validate:"required"`
	ComisionPct    decimal.Decimal `json:"comision_pct"`
	FrecuenciaPago string          `json:"frecuencia_pago" validate:"required,oneof=SEMANAL QUINCENAL MENSUAL"`
}

// NominaResponse salida de la configuración de nómina.
type NominaResponse struct {
	UsuarioID      string          `json:"usuario_id"`
	SalarioBase    decimal.Decimal `json:"salario_base"`
	ComisionPct    decimal.Decimal `json:"comision_pct"`
	FrecuenciaPago string          `json:"frecuencia_pago"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
