package dto

import "time"

// AuditoriaResponse una entrada del log de auditoría.
type AuditoriaResponse struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	Accion    string    `json:"accion"`
	Entidad   string    `json:"entidad"`
	EntidadID string    `json:"entidad_id"`
	Detalle   string    `json:"detalle,omitempty"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditoriaQuery filtros del listado (query params).
type AuditoriaQuery struct {
	ActorID string `query:"actor_id" validate:"omitempty,uuid"`
	Entidad string `query:"entidad" validate:"omitempty,max=50"`
	Desde   string `query:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta   string `query:"hasta" validate:"omitempty,datetime=2006-01-02"`
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset  int    `query:"offset" validate:"omitempty,min=0"`
}
