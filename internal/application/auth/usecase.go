package auth

import (
	"context"
	"time"

	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
	"github.com/tu-usuario/prestamos-pro/pkg/jwt"
	"github.com/tu-usuario/prestamos-pro/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// dummyHash es un hash bcrypt de relleno: cuando el email no existe igual se
// ejecuta una comparación, para que el tiempo de respuesta no delate si la
// cuenta existe o no.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthUseCase autentica credenciales y emite la sesión firmada.
//
// Los claims de la sesión son una foto tomada en el login: rol, permisos y
// supervisor NO se re-leen de la base en cada request. Para refrescarlos
// existe Refresh; no hay re-lectura silenciosa.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log}
}

// Login verifica email/password y retorna token + usuario.
//
// Email inexistente y password incorrecto fallan con el MISMO error
// (ErrCredencialesInvalidas): mismo mensaje, mismo status, tiempo comparable.
// Una cuenta desactivada con credenciales correctas falla con
// ErrCuentaDesactivada, nunca con el genérico.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Comparación de relleno: iguala el costo con el caso "password incorrecto".
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, domain.ErrCredencialesInvalidas
	}
	if !user.Activo {
		return nil, domain.ErrCuentaDesactivada
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrCredencialesInvalidas
	}

	// Best-effort: un fallo aquí no debe impedir el login.
	if err := uc.userRepo.UpdateUltimoAcceso(ctx, user.ID, time.Now()); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo actualizar último acceso")
	}

	token, err := uc.mintToken(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user, uc.supervisorResumenDTO(ctx, user)),
	}, nil
}

// Refresh re-lee el usuario y emite un token nuevo con la foto actual de
// rol/permisos/supervisor. Es la única vía para que una sesión viva vea
// cambios administrativos sin volver a hacer login.
func (uc *AuthUseCase) Refresh(ctx context.Context, userID string) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNoAutorizado
	}
	if !user.Activo {
		return nil, domain.ErrCuentaDesactivada
	}
	token, err := uc.mintToken(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user, uc.supervisorResumenDTO(ctx, user)),
	}, nil
}

func (uc *AuthUseCase) mintToken(ctx context.Context, user *entity.User) (string, error) {
	var sup *jwt.SupervisorResumen
	if user.SupervisorID != nil {
		if s, err := uc.userRepo.GetByID(ctx, *user.SupervisorID); err == nil && s != nil {
			sup = &jwt.SupervisorResumen{ID: s.ID, Nombre: s.NombreCompleto()}
		}
	}
	return jwt.Generate(uc.jwtCfg.Secret, jwt.Session{
		UserID:       user.ID,
		Rol:          user.Rol,
		Nombre:       user.Nombre,
		Apellido:     user.Apellido,
		Activo:       user.Activo,
		LimiteTiempo: user.LimiteTiempo,
		Permisos:     user.Permisos,
		Supervisor:   sup,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}

func (uc *AuthUseCase) supervisorResumenDTO(ctx context.Context, user *entity.User) *dto.SupervisorResponse {
	if user.SupervisorID == nil {
		return nil
	}
	s, err := uc.userRepo.GetByID(ctx, *user.SupervisorID)
	if err != nil || s == nil {
		return nil
	}
	return &dto.SupervisorResponse{ID: s.ID, Nombre: s.NombreCompleto()}
}

// ToUserResponse proyecta un usuario a su DTO de salida (sin password).
func ToUserResponse(u *entity.User, sup *dto.SupervisorResponse) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Nombre:       u.Nombre,
		Apellido:     u.Apellido,
		Rol:          u.Rol,
		Activo:       u.Activo,
		LimiteTiempo: u.LimiteTiempo,
		Permisos:     u.Permisos,
		Supervisor:   sup,
		UltimoAcceso: u.UltimoAcceso,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
