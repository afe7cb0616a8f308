package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePrestamoRequest entrada para originar un préstamo.
type CreatePrestamoRequest struct {
	ClienteID   string          `json:"cliente_id" validate:"required,uuid"`
	CobradorID  string          `json:"cobrador_id" validate:"required,uuid"`
	Capital     decimal.Decimal `json:"capital" validate:"required"`
	TasaInteres decimal.Decimal `json:"tasa_interes" validate:"required"`
	Cuotas      int             `json:"cuotas" validate:"required,min=1,max=365"`
	Frecuencia  string          `json:"frecuencia" validate:"required,oneof=DIARIO SEMANAL QUINCENAL MENSUAL"`
	FechaInicio string          `json:"fecha_inicio" validate:"omitempty,datetime=2006-01-02"`
}

// PrestamoResponse salida de un préstamo.
type PrestamoResponse struct {
	ID          string          `json:"id"`
	ClienteID   string          `json:"cliente_id"`
	CobradorID  string          `json:"cobrador_id"`
	Capital     decimal.Decimal `json:"capital"`
	TasaInteres decimal.Decimal `json:"tasa_interes"`
	MontoTotal  decimal.Decimal `json:"monto_total"`
	Saldo       decimal.Decimal `json:"saldo"`
	Cuotas      int             `json:"cuotas"`
	Frecuencia  string          `json:"frecuencia"`
	Estado      string          `json:"estado"`
	FechaInicio time.Time       `json:"fecha_inicio"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreatePagoRequest entrada para registrar un abono.
type CreatePagoRequest struct {
	PrestamoID string          `json:"prestamo_id" validate:"required,uuid"`
	Monto      decimal.Decimal `json:"monto" validate:"required"`
	Nota       string          `json:"nota" validate:"omitempty,max=200"`
}

// PagoResponse salida de un pago.
type PagoResponse struct {
	ID         string          `json:"id"`
	PrestamoID string          `json:"prestamo_id"`
	CobradorID string          `json:"cobrador_id"`
	Recibo     string          `json:"recibo"`
	Monto      decimal.Decimal `json:"monto"`
	Fecha      time.Time       `json:"fecha"`
	Nota       string          `json:"nota,omitempty"`
	// SaldoRestante del préstamo después de aplicar este pago.
	SaldoRestante decimal.Decimal `json:"saldo_restante"`
}
