package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

// EstadoTiempo reporte del presupuesto de minutos de un usuario.
type EstadoTiempo struct {
	Limitado   bool // false = sin límite configurado
	Dentro     bool
	Consumidos int
	Restantes  int // 0 cuando no hay límite o está agotado
}

// TiempoUseCase lleva el acumulador de minutos por usuario y día contra el
// límite opcional del usuario. Solo REPORTA: la consecuencia de exceder el
// presupuesto (cortar la sesión) la aplica la capa HTTP.
type TiempoUseCase struct {
	repo repository.UsoTiempoRepository
	hoy  func() time.Time
}

// NewTiempoUseCase construye el caso de uso.
func NewTiempoUseCase(repo repository.UsoTiempoRepository) *TiempoUseCase {
	return &TiempoUseCase{repo: repo, hoy: time.Now}
}

// CheckTimeLimit informa si el usuario sigue dentro de su presupuesto.
// limiteMinutos nil significa sin límite: siempre dentro.
func (uc *TiempoUseCase) CheckTimeLimit(ctx context.Context, userID string, limiteMinutos *int) (*EstadoTiempo, error) {
	if limiteMinutos == nil {
		return &EstadoTiempo{Limitado: false, Dentro: true}, nil
	}
	consumidos, err := uc.repo.Minutos(ctx, userID, fecha(uc.hoy()))
	if err != nil {
		return nil, err
	}
	restantes := *limiteMinutos - consumidos
	if restantes < 0 {
		restantes = 0
	}
	return &EstadoTiempo{
		Limitado:   true,
		Dentro:     consumidos < *limiteMinutos,
		Consumidos: consumidos,
		Restantes:  restantes,
	}, nil
}

// RecordTimeUsage suma minutos al acumulador del día. minutos <= 0 registra
// el incremento por defecto de 1 minuto.
func (uc *TiempoUseCase) RecordTimeUsage(ctx context.Context, userID string, minutos int) error {
	if minutos <= 0 {
		minutos = 1
	}
	return uc.repo.Increment(ctx, userID, fecha(uc.hoy()), minutos)
}

// fecha trunca a solo-fecha en hora local.
func fecha(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
