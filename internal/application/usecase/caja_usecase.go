package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

// CajaUseCase movimientos de caja chica y balance del día.
type CajaUseCase struct {
	repo repository.CajaRepository
}

// NewCajaUseCase construye el caso de uso.
func NewCajaUseCase(repo repository.CajaRepository) *CajaUseCase {
	return &CajaUseCase{repo: repo}
}

// Registrar crea un movimiento ENTRADA/SALIDA. Una SALIDA no puede dejar el
// balance del día en negativo.
func (uc *CajaUseCase) Registrar(ctx context.Context, usuarioID string, in dto.CreateCajaMovimientoRequest) (*dto.CajaMovimientoResponse, error) {
	if in.Monto.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrEntradaInvalida
	}
	now := time.Now()
	if in.Tipo == entity.CajaSalida {
		balance, err := uc.repo.Balance(ctx, usuarioID, now)
		if err != nil {
			return nil, err
		}
		if in.Monto.GreaterThan(balance) {
			return nil, domain.ErrSaldoInsuficiente
		}
	}

	codigo, err := gonanoid.Generate(reciboAlfabeto, 8)
	if err != nil {
		return nil, fmt.Errorf("generar código: %w", err)
	}
	m := &entity.CajaMovimiento{
		ID:        uuid.New().String(),
		Codigo:    codigo,
		UsuarioID: usuarioID,
		Tipo:      in.Tipo,
		Monto:     in.Monto,
		Concepto:  in.Concepto,
		Fecha:     now,
		CreatedAt: now,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toCajaResponse(m), nil
}

// BalanceDelDia balance y movimientos del usuario en la fecha.
func (uc *CajaUseCase) BalanceDelDia(ctx context.Context, usuarioID string, fecha time.Time) (*dto.CajaBalanceResponse, error) {
	balance, err := uc.repo.Balance(ctx, usuarioID, fecha)
	if err != nil {
		return nil, err
	}
	movs, err := uc.repo.ListByUsuarioFecha(ctx, usuarioID, fecha)
	if err != nil {
		return nil, err
	}
	out := &dto.CajaBalanceResponse{
		UsuarioID:   usuarioID,
		Fecha:       fecha.Format("2006-01-02"),
		Balance:     balance,
		Movimientos: make([]dto.CajaMovimientoResponse, 0, len(movs)),
	}
	for _, m := range movs {
		out.Movimientos = append(out.Movimientos, *toCajaResponse(m))
	}
	return out, nil
}

func toCajaResponse(m *entity.CajaMovimiento) *dto.CajaMovimientoResponse {
	return &dto.CajaMovimientoResponse{
		ID:        m.ID,
		Codigo:    m.Codigo,
		UsuarioID: m.UsuarioID,
		Tipo:      m.Tipo,
		Monto:     m.Monto,
		Concepto:  m.Concepto,
		Fecha:     m.Fecha,
	}
}
