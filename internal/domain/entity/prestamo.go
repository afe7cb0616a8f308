package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un préstamo.
const (
	PrestamoActivo  = "ACTIVO"
	PrestamoPagado  = "PAGADO"
	PrestamoVencido = "VENCIDO"
	PrestamoAnulado = "ANULADO"
)

// Prestamo es un crédito otorgado a un cliente, asignado a un cobrador.
// MontoTotal = Capital + interés simple (Capital × TasaInteres / 100).
type Prestamo struct {
	ID          string
	ClienteID   string
	CobradorID  string // usuario COBRADOR responsable del recaudo
	Capital     decimal.Decimal
	TasaInteres decimal.Decimal // porcentaje sobre el capital
	MontoTotal  decimal.Decimal
	Saldo       decimal.Decimal // pendiente por cobrar
	Cuotas      int
	Frecuencia  string // DIARIO, SEMANAL, QUINCENAL, MENSUAL
	Estado      string
	FechaInicio time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AdmitePagos indica si el préstamo puede recibir abonos.
func (p *Prestamo) AdmitePagos() bool {
	return p.Estado == PrestamoActivo || p.Estado == PrestamoVencido
}

// Pago es un abono registrado contra un préstamo.
type Pago struct {
	ID         string
	PrestamoID string
	CobradorID string
	Recibo     string // código corto legible (nanoid)
	Monto      decimal.Decimal
	Fecha      time.Time
	Nota       string
	CreatedAt  time.Time
}
