package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
)

// DeviceAuthRepository puerto de persistencia de autorizaciones de dispositivo.
//
// La unicidad del par (userID, deviceID) la garantiza la base (PK compuesta);
// Create devuelve domain.ErrDuplicado ante la violación para que el gate
// recupere releyendo el registro ya existente (carrera benigna de primer
// avistamiento concurrente).
type DeviceAuthRepository interface {
	Get(ctx context.Context, userID, deviceID string) (*entity.DeviceAuthorization, error)
	Create(ctx context.Context, d *entity.DeviceAuthorization) error
	// TouchUltimoAcceso refresca el último avistamiento sin tocar el estado.
	TouchUltimoAcceso(ctx context.Context, userID, deviceID string, t time.Time) error
	// UpdateEstado aplica una transición administrativa (AUTORIZADO / RECHAZADO / BLOQUEADO).
	UpdateEstado(ctx context.Context, userID, deviceID, estado string) error
	ListByUser(ctx context.Context, userID string) ([]*entity.DeviceAuthorization, error)
}
