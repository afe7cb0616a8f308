package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios.
//
// GetByEmail es búsqueda exacta, sin normalización: el login no debe adivinar
// variantes del email. Devuelve (nil, nil) cuando no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// UpdateUltimoAcceso marca el último login; el caller lo trata como best-effort.
	UpdateUltimoAcceso(ctx context.Context, id string, t time.Time) error
	SetActivo(ctx context.Context, id string, activo bool) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
}
