package repository

import (
	"context"

	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
)

// SusuRepository puerto de persistencia de grupos SUSU y su rotación.
type SusuRepository interface {
	CreateGrupo(ctx context.Context, g *entity.SusuGrupo) error
	GetGrupo(ctx context.Context, id string) (*entity.SusuGrupo, error)
	ListGrupos(ctx context.Context, limit, offset int) ([]*entity.SusuGrupo, error)
	UpdateGrupo(ctx context.Context, g *entity.SusuGrupo) error

	// AddParticipante devuelve domain.ErrDuplicado si el orden ya está tomado
	// dentro del grupo (unicidad (grupo_id, orden) en la base).
	AddParticipante(ctx context.Context, p *entity.SusuParticipante) error
	ListParticipantes(ctx context.Context, grupoID string) ([]*entity.SusuParticipante, error)
	MarcarRecibido(ctx context.Context, participanteID string, recibido bool) error
	// ResetRecibidos limpia la marca al cerrar una vuelta completa.
	ResetRecibidos(ctx context.Context, grupoID string) error
}
