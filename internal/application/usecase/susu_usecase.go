package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

// SusuUseCase grupos SUSU y la contabilidad de su rotación.
type SusuUseCase struct {
	repo     repository.SusuRepository
	clientes repository.ClienteRepository
}

// NewSusuUseCase construye el caso de uso.
func NewSusuUseCase(repo repository.SusuRepository, clientes repository.ClienteRepository) *SusuUseCase {
	return &SusuUseCase{repo: repo, clientes: clientes}
}

// CreateGrupo crea un grupo nuevo con el turno en la posición 1.
func (uc *SusuUseCase) CreateGrupo(ctx context.Context, in dto.CreateSusuGrupoRequest) (*dto.SusuGrupoResponse, error) {
	if in.Cuota.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrEntradaInvalida
	}
	now := time.Now()
	g := &entity.SusuGrupo{
		ID:          uuid.New().String(),
		Nombre:      in.Nombre,
		Cuota:       in.Cuota,
		Frecuencia:  in.Frecuencia,
		Estado:      entity.SusuActivo,
		TurnoActual: 1,
		Ciclo:       0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.CreateGrupo(ctx, g); err != nil {
		return nil, err
	}
	return toSusuGrupoResponse(g), nil
}

// GetGrupo obtiene un grupo.
func (uc *SusuUseCase) GetGrupo(ctx context.Context, id string) (*dto.SusuGrupoResponse, error) {
	g, err := uc.repo.GetGrupo(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}
	return toSusuGrupoResponse(g), nil
}

// ListGrupos lista los grupos.
func (uc *SusuUseCase) ListGrupos(ctx context.Context, limit, offset int) ([]*dto.SusuGrupoResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListGrupos(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SusuGrupoResponse, 0, len(list))
	for _, g := range list {
		out = append(out, toSusuGrupoResponse(g))
	}
	return out, nil
}

// AddParticipante suma un cliente al grupo en la posición indicada.
// El orden es único dentro del grupo; no se puede sumar a grupos cerrados.
func (uc *SusuUseCase) AddParticipante(ctx context.Context, grupoID string, in dto.AddSusuParticipanteRequest) (*dto.SusuParticipanteResponse, error) {
	g, err := uc.repo.GetGrupo(ctx, grupoID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}
	if g.Estado != entity.SusuActivo {
		return nil, domain.ErrConflicto
	}
	cliente, err := uc.clientes.GetByID(ctx, in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil || !cliente.Activo {
		return nil, domain.ErrNotFound
	}
	p := &entity.SusuParticipante{
		ID:        uuid.New().String(),
		GrupoID:   grupoID,
		ClienteID: in.ClienteID,
		Orden:     in.Orden,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.AddParticipante(ctx, p); err != nil {
		return nil, err
	}
	return toSusuParticipanteResponse(p), nil
}

// ListParticipantes lista a los participantes en orden de rotación.
func (uc *SusuUseCase) ListParticipantes(ctx context.Context, grupoID string) ([]*dto.SusuParticipanteResponse, error) {
	list, err := uc.repo.ListParticipantes(ctx, grupoID)
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Orden < list[j].Orden })
	out := make([]*dto.SusuParticipanteResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toSusuParticipanteResponse(p))
	}
	return out, nil
}

// AvanzarTurno entrega el pozo al participante del turno actual y avanza la
// rotación al siguiente orden. Cuando el último de la vuelta recibe, el turno
// vuelve al primero, el ciclo se incrementa y las marcas de recibido se
// limpian para la vuelta nueva.
func (uc *SusuUseCase) AvanzarTurno(ctx context.Context, grupoID string) (*dto.AvanzarTurnoResponse, error) {
	g, err := uc.repo.GetGrupo(ctx, grupoID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}
	if g.Estado != entity.SusuActivo {
		return nil, domain.ErrConflicto
	}
	participantes, err := uc.repo.ListParticipantes(ctx, grupoID)
	if err != nil {
		return nil, err
	}
	if len(participantes) == 0 {
		return nil, domain.ErrConflicto
	}
	sort.Slice(participantes, func(i, j int) bool { return participantes[i].Orden < participantes[j].Orden })

	// beneficiario: el participante cuyo orden es el turno actual
	var beneficiario *entity.SusuParticipante
	for _, p := range participantes {
		if p.Orden == g.TurnoActual {
			beneficiario = p
			break
		}
	}
	if beneficiario == nil {
		return nil, domain.ErrConflicto
	}
	if err := uc.repo.MarcarRecibido(ctx, beneficiario.ID, true); err != nil {
		return nil, err
	}

	// siguiente orden mayor al actual; si no hay, la vuelta terminó
	cicloCompletado := false
	siguiente := 0
	for _, p := range participantes {
		if p.Orden > g.TurnoActual {
			siguiente = p.Orden
			break
		}
	}
	if siguiente == 0 {
		cicloCompletado = true
		siguiente = participantes[0].Orden
		g.Ciclo++
		if err := uc.repo.ResetRecibidos(ctx, grupoID); err != nil {
			return nil, err
		}
	}
	g.TurnoActual = siguiente
	g.UpdatedAt = time.Now()
	if err := uc.repo.UpdateGrupo(ctx, g); err != nil {
		return nil, err
	}

	resp := &dto.AvanzarTurnoResponse{
		Grupo:           *toSusuGrupoResponse(g),
		Beneficiario:    *toSusuParticipanteResponse(beneficiario),
		CicloCompletado: cicloCompletado,
	}
	// El beneficiario acaba de cobrar: se reporta recibido aunque el reset de
	// la vuelta ya lo haya limpiado en la base.
	resp.Beneficiario.Recibido = true
	return resp, nil
}

// CerrarGrupo marca el grupo como CERRADO; no admite más movimientos.
func (uc *SusuUseCase) CerrarGrupo(ctx context.Context, grupoID string) error {
	g, err := uc.repo.GetGrupo(ctx, grupoID)
	if err != nil {
		return err
	}
	if g == nil {
		return domain.ErrNotFound
	}
	g.Estado = entity.SusuCerrado
	g.UpdatedAt = time.Now()
	return uc.repo.UpdateGrupo(ctx, g)
}

func toSusuGrupoResponse(g *entity.SusuGrupo) *dto.SusuGrupoResponse {
	return &dto.SusuGrupoResponse{
		ID:          g.ID,
		Nombre:      g.Nombre,
		Cuota:       g.Cuota,
		Frecuencia:  g.Frecuencia,
		Estado:      g.Estado,
		TurnoActual: g.TurnoActual,
		Ciclo:       g.Ciclo,
		CreatedAt:   g.CreatedAt,
	}
}

func toSusuParticipanteResponse(p *entity.SusuParticipante) *dto.SusuParticipanteResponse {
	return &dto.SusuParticipanteResponse{
		ID:        p.ID,
		GrupoID:   p.GrupoID,
		ClienteID: p.ClienteID,
		Orden:     p.Orden,
		Recibido:  p.Recibido,
	}
}
