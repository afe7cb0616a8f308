package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

// NominaUseCase configuración salarial por usuario.
type NominaUseCase struct {
	repo     repository.NominaRepository
	usuarios repository.UserRepository
}

// NewNominaUseCase construye el caso de uso.
func NewNominaUseCase(repo repository.NominaRepository, usuarios repository.UserRepository) *NominaUseCase {
	return &NominaUseCase{repo: repo, usuarios: usuarios}
}

// Upsert crea o reemplaza la configuración de nómina del usuario.
func (uc *NominaUseCase) Upsert(ctx context.Context, in dto.UpsertNominaRequest) (*dto.NominaResponse, error) {
	if in.SalarioBase.IsNegative() || in.ComisionPct.IsNegative() || in.ComisionPct.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrEntradaInvalida
	}
	u, err := uc.usuarios.GetByID(ctx, in.UsuarioID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	n := &entity.NominaConfig{
		UsuarioID:      in.UsuarioID,
		SalarioBase:    in.SalarioBase,
		ComisionPct:    in.ComisionPct,
		FrecuenciaPago: in.FrecuenciaPago,
		UpdatedAt:      time.Now(),
	}
	if err := uc.repo.Upsert(ctx, n); err != nil {
		return nil, err
	}
	return toNominaResponse(n), nil
}

// GetByUsuario obtiene la configuración de un usuario.
func (uc *NominaUseCase) GetByUsuario(ctx context.Context, usuarioID string) (*dto.NominaResponse, error) {
	n, err := uc.repo.GetByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	return toNominaResponse(n), nil
}

// List lista todas las configuraciones.
func (uc *NominaUseCase) List(ctx context.Context) ([]*dto.NominaResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NominaResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNominaResponse(n))
	}
	return out, nil
}

func toNominaResponse(n *entity.NominaConfig) *dto.NominaResponse {
	return &dto.NominaResponse{
		UsuarioID:      n.UsuarioID,
		SalarioBase:    n.SalarioBase,
		ComisionPct:    n.ComisionPct,
		FrecuenciaPago: n.FrecuenciaPago,
		UpdatedAt:      n.UpdatedAt,
	}
}
