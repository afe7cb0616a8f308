package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un grupo SUSU.
const (
	SusuActivo   = "ACTIVO"
	SusuCerrado  = "CERRADO"
	SusuCancelado = "CANCELADO"
)

// SusuGrupo es una asociación rotativa de ahorro: cada periodo todos aportan
// la cuota y un participante (el del turno) recibe el pozo completo.
type SusuGrupo struct {
	ID          string
	Nombre      string
	Cuota       decimal.Decimal // aporte por participante y periodo
	Frecuencia  string          // SEMANAL, QUINCENAL, MENSUAL
	Estado      string
	TurnoActual int // orden del participante que recibe el próximo pozo
	Ciclo       int // cuántas vueltas completas lleva el grupo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SusuParticipante es un cliente dentro de un grupo, con su posición en la
// rotación. El orden es único dentro del grupo y parte de 1.
type SusuParticipante struct {
	ID        string
	GrupoID   string
	ClienteID string
	Orden     int
	Recibido  bool // ya recibió el pozo en el ciclo actual
	CreatedAt time.Time
}
