package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CierreDiario consolida la operación de un cobrador en una fecha:
// lo recaudado, lo prestado y los movimientos de caja, contra el efectivo contado.
type CierreDiario struct {
	ID             string
	CobradorID     string
	Fecha          time.Time // solo fecha, hora en cero
	TotalRecaudado decimal.Decimal
	TotalPrestado  decimal.Decimal
	TotalEntradas  decimal.Decimal
	TotalSalidas   decimal.Decimal
	EfectivoTeoria decimal.Decimal // recaudado + entradas - prestado - salidas
	EfectivoReal   decimal.Decimal // contado físicamente por el supervisor
	Descuadre      decimal.Decimal // real - teoría
	Observacion    string
	CerradoPor     string // usuario que registró el cierre
	CreatedAt      time.Time
}

// ResumenCierre son los agregados calculados desde pagos, préstamos y caja
// para una fecha y cobrador, antes de confirmar el cierre.
type ResumenCierre struct {
	CobradorID     string
	Fecha          time.Time
	TotalRecaudado decimal.Decimal
	NumPagos       int
	TotalPrestado  decimal.Decimal
	NumPrestamos   int
	TotalEntradas  decimal.Decimal
	TotalSalidas   decimal.Decimal
}

// EfectivoEsperado calcula el efectivo que debería haber en caja.
func (r *ResumenCierre) EfectivoEsperado() decimal.Decimal {
	return r.TotalRecaudado.Add(r.TotalEntradas).Sub(r.TotalPrestado).Sub(r.TotalSalidas)
}
