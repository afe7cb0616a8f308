package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/prestamos-pro/internal/application/auth"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UsuarioUseCase administración de usuarios (solo ADMINISTRADOR en el router).
type UsuarioUseCase struct {
	repo      repository.UserRepository
	auditoria *AuditoriaUseCase
}

// NewUsuarioUseCase construye el caso de uso.
func NewUsuarioUseCase(repo repository.UserRepository, auditoria *AuditoriaUseCase) *UsuarioUseCase {
	return &UsuarioUseCase{repo: repo, auditoria: auditoria}
}

// Create crea un usuario: hashea el password con bcrypt y persiste.
func (uc *UsuarioUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !entity.ValidRol(in.Rol) {
		return nil, domain.ErrEntradaInvalida
	}
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailYaRegistrado
	}
	if in.SupervisorID != nil {
		sup, err := uc.repo.GetByID(ctx, *in.SupervisorID)
		if err != nil {
			return nil, err
		}
		if sup == nil {
			return nil, domain.ErrNotFound
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Nombre:       in.Nombre,
		Apellido:     in.Apellido,
		Rol:          in.Rol,
		Activo:       true,
		LimiteTiempo: in.LimiteTiempo,
		SupervisorID: in.SupervisorID,
		Permisos:     in.Permisos,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user, uc.supervisorDTO(ctx, user)), nil
}

// GetByID obtiene un usuario.
func (uc *UsuarioUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return auth.ToUserResponse(u, uc.supervisorDTO(ctx, u)), nil
}

// List lista usuarios con paginación.
func (uc *UsuarioUseCase) List(ctx context.Context, limit, offset int) ([]*dto.UserResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, auth.ToUserResponse(u, nil))
	}
	return out, nil
}

// Update edita rol, permisos, supervisor, límite de tiempo y el flag activo.
// Los cambios NO afectan sesiones vivas: se ven con refresh o nuevo login.
func (uc *UsuarioUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != nil {
		u.Nombre = *in.Nombre
	}
	if in.Apellido != nil {
		u.Apellido = *in.Apellido
	}
	if in.Rol != nil {
		if !entity.ValidRol(*in.Rol) {
			return nil, domain.ErrEntradaInvalida
		}
		u.Rol = *in.Rol
	}
	if in.LimiteTiempo != nil {
		if *in.LimiteTiempo == 0 {
			u.LimiteTiempo = nil // 0 = quitar el límite
		} else {
			u.LimiteTiempo = in.LimiteTiempo
		}
	}
	if in.SupervisorID != nil {
		sup, err := uc.repo.GetByID(ctx, *in.SupervisorID)
		if err != nil {
			return nil, err
		}
		if sup == nil {
			return nil, domain.ErrNotFound
		}
		u.SupervisorID = in.SupervisorID
	}
	if in.Permisos != nil {
		u.Permisos = in.Permisos
	}
	if in.Activo != nil {
		u.Activo = *in.Activo
	}
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u, uc.supervisorDTO(ctx, u)), nil
}

// Delete desactiva al usuario (baja lógica, nunca borrado físico en la ruta
// de autorización) y emite el evento de auditoría.
func (uc *UsuarioUseCase) Delete(ctx context.Context, id string, ev Evento) error {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.SetActivo(ctx, id, false); err != nil {
		return err
	}
	ev.Accion = entity.AuditoriaEliminar
	ev.Entidad = "usuario"
	ev.EntidadID = id
	ev.Detalle = fmt.Sprintf(`{"email":%q,"rol":%q}`, u.Email, u.Rol)
	uc.auditoria.Emit(ctx, ev)
	return nil
}

func (uc *UsuarioUseCase) supervisorDTO(ctx context.Context, u *entity.User) *dto.SupervisorResponse {
	if u.SupervisorID == nil {
		return nil
	}
	s, err := uc.repo.GetByID(ctx, *u.SupervisorID)
	if err != nil || s == nil {
		return nil
	}
	return &dto.SupervisorResponse{ID: s.ID, Nombre: s.NombreCompleto()}
}
