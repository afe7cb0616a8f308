package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSusuGrupoRequest entrada para crear un grupo SUSU.
type CreateSusuGrupoRequest struct {
	Nombre     string          `json:"nombre" validate:"required,min=1,max=100"`
	Cuota      decimal.Decimal `json:"cuota" validate:"required"`
	Frecuencia string          `json:"frecuencia" validate:"required,oneof=SEMANAL QUINCENAL MENSUAL"`
}

// AddSusuParticipanteRequest entrada para sumar un cliente al grupo.
type AddSusuParticipanteRequest struct {
	ClienteID string `json:"cliente_id" validate:"required,uuid"`
	Orden     int    `json:"orden" validate:"required,min=1"`
}

// SusuGrupoResponse salida de un grupo.
type SusuGrupoResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Cuota       decimal.Decimal `json:"cuota"`
	Frecuencia  string          `json:"frecuencia"`
	Estado      string          `json:"estado"`
	TurnoActual int             `json:"turno_actual"`
	Ciclo       int             `json:"ciclo"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SusuParticipanteResponse salida de un participante.
type SusuParticipanteResponse struct {
	ID        string `json:"id"`
	GrupoID   string `json:"grupo_id"`
	ClienteID string `json:"cliente_id"`
	Orden     int    `json:"orden"`
	Recibido  bool   `json:"recibido"`
}

// AvanzarTurnoResponse resultado de entregar el pozo y mover la rotación.
type AvanzarTurnoResponse struct {
	Grupo        SusuGrupoResponse        `json:"grupo"`
	Beneficiario SusuParticipanteResponse `json:"beneficiario"`
	// CicloCompletado indica que con esta entrega terminó una vuelta completa.
	CicloCompletado bool `json:"ciclo_completado"`
}
