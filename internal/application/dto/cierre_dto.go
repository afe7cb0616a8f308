package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCierreRequest confirma el cierre del día de un cobrador con el
// efectivo contado físicamente.
type CreateCierreRequest struct {
	CobradorID   string          `json:"cobrador_id" validate:"required,uuid"`
	Fecha        string          `json:"fecha" validate:"required,datetime=2006-01-02"`
	EfectivoReal decimal.Decimal `json:"efectivo_real" validate:"required"`
	Observacion  string          `json:"observacion" validate:"omitempty,max=500"`
}

// ResumenCierreResponse agregados del día antes de confirmar.
type ResumenCierreResponse struct {
	CobradorID     string          `json:"cobrador_id"`
	Fecha          string          `json:"fecha"`
	TotalRecaudado decimal.Decimal `json:"total_recaudado"`
	NumPagos       int             `json:"num_pagos"`
	TotalPrestado  decimal.Decimal `json:"total_prestado"`
	NumPrestamos   int             `json:"num_prestamos"`
	TotalEntradas  decimal.Decimal `json:"total_entradas"`
	TotalSalidas   decimal.Decimal `json:"total_salidas"`
	EfectivoTeoria decimal.Decimal `json:"efectivo_teoria"`
}

// CierreResponse salida de un cierre confirmado.
type CierreResponse struct {
	ID             string          `json:"id"`
	CobradorID     string          `json:"cobrador_id"`
	Fecha          time.Time       `json:"fecha"`
	TotalRecaudado decimal.Decimal `json:"total_recaudado"`
	TotalPrestado  decimal.Decimal `json:"total_prestado"`
	TotalEntradas  decimal.Decimal `json:"total_entradas"`
	TotalSalidas   decimal.Decimal `json:"total_salidas"`
	EfectivoTeoria decimal.Decimal `json:"efectivo_teoria"`
	EfectivoReal   decimal.Decimal `json:"efectivo_real"`
	Descuadre      decimal.Decimal `json:"descuadre"`
	Observacion    string          `json:"observacion,omitempty"`
	CerradoPor     string          `json:"cerrado_por"`
	CreatedAt      time.Time       `json:"created_at"`
}
