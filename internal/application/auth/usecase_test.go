package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/prestamos-pro/internal/application/auth"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/prestamos-pro/pkg/jwt"
	"github.com/tu-usuario/prestamos-pro/pkg/logger"
)

const (
	testSecret   = "secret-para-tests-de-auth"
	testIssuer   = "prestamos-pro-test"
	testPassword = "clave-super-segura"
)

type fakeUserRepo struct {
	porEmail map[string]*entity.User
	porID    map[string]*entity.User

	failUltimoAcceso bool
	ultimoAccesoSet  bool
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	f := &fakeUserRepo{porEmail: map[string]*entity.User{}, porID: map[string]*entity.User{}}
	for _, u := range users {
		f.porEmail[u.Email] = u
		f.porID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.porEmail[u.Email] = u
	f.porID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.porID[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.porEmail[email], nil // búsqueda exacta, sin normalizar
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error { return nil }

func (f *fakeUserRepo) UpdateUltimoAcceso(_ context.Context, id string, t time.Time) error {
	if f.failUltimoAcceso {
		return errors.New("db caída")
	}
	f.ultimoAccesoSet = true
	if u, ok := f.porID[id]; ok {
		u.UltimoAcceso = &t
	}
	return nil
}

func (f *fakeUserRepo) SetActivo(_ context.Context, id string, activo bool) error { return nil }

func (f *fakeUserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

func hashDe(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func cobradorActivo(t *testing.T) *entity.User {
	t.Helper()
	limite := 120
	return &entity.User{
		ID:           "u-1",
		Email:        "cobrador@prestamos.do",
		PasswordHash: hashDe(t, testPassword),
		Nombre:       "Pedro",
		Apellido:     "Santana",
		Rol:          entity.RolCobrador,
		Activo:       true,
		LimiteTiempo: &limite,
		Permisos:     []string{"caja.ver"},
	}
}

func nuevoUC(repo *fakeUserRepo) *auth.AuthUseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: testIssuer}, log)
}

func TestLogin_Exitoso_EmiteFotoCompletaDeSesion(t *testing.T) {
	supervisor := &entity.User{ID: "u-sup", Email: "sup@prestamos.do", Nombre: "Ana", Apellido: "Díaz", Rol: entity.RolSupervisor, Activo: true}
	user := cobradorActivo(t)
	supID := supervisor.ID
	user.SupervisorID = &supID
	repo := newFakeUserRepo(user, supervisor)
	uc := nuevoUC(repo)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: user.Email, Password: testPassword})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, entity.RolCobrador, claims.Rol)
	assert.Equal(t, "Pedro", claims.Nombre)
	assert.True(t, claims.Activo)
	require.NotNil(t, claims.LimiteTiempo)
	assert.Equal(t, 120, *claims.LimiteTiempo)
	assert.Equal(t, []string{"caja.ver"}, claims.Permisos)
	require.NotNil(t, claims.Supervisor)
	assert.Equal(t, "u-sup", claims.Supervisor.ID)
	assert.Equal(t, "Ana Díaz", claims.Supervisor.Nombre)

	assert.True(t, repo.ultimoAccesoSet, "el login debe marcar último acceso")
	require.NotNil(t, out.User.Supervisor)
	assert.Equal(t, "Ana Díaz", out.User.Supervisor.Nombre)
}

// Email inexistente y password incorrecto deben fallar con el MISMO error:
// misma identidad, mismo mensaje (anti-enumeración de cuentas).
func TestLogin_EmailInexistenteYPasswordIncorrecto_MismoError(t *testing.T) {
	repo := newFakeUserRepo(cobradorActivo(t))
	uc := nuevoUC(repo)
	ctx := context.Background()

	_, errSinCuenta := uc.Login(ctx, dto.LoginRequest{Email: "nadie@prestamos.do", Password: testPassword})
	_, errMalaClave := uc.Login(ctx, dto.LoginRequest{Email: "cobrador@prestamos.do", Password: "incorrecta"})

	require.Error(t, errSinCuenta)
	require.Error(t, errMalaClave)
	assert.ErrorIs(t, errSinCuenta, domain.ErrCredencialesInvalidas)
	assert.ErrorIs(t, errMalaClave, domain.ErrCredencialesInvalidas)
	assert.Equal(t, errSinCuenta.Error(), errMalaClave.Error(), "mismo mensaje en ambos casos")
}

// Cuenta desactivada con credenciales correctas: ErrCuentaDesactivada, nunca
// el genérico, aunque el password hubiera validado.
func TestLogin_CuentaDesactivada_TienePrecedencia(t *testing.T) {
	user := cobradorActivo(t)
	user.Activo = false
	repo := newFakeUserRepo(user)
	uc := nuevoUC(repo)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: user.Email, Password: testPassword})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCuentaDesactivada)
	assert.NotErrorIs(t, err, domain.ErrCredencialesInvalidas)
}

// El fallo al marcar último acceso es best-effort: el login continúa.
func TestLogin_UltimoAccesoFalla_NoImpideLogin(t *testing.T) {
	repo := newFakeUserRepo(cobradorActivo(t))
	repo.failUltimoAcceso = true
	uc := nuevoUC(repo)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "cobrador@prestamos.do", Password: testPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestRefresh_ReemiteFotoActualizada(t *testing.T) {
	user := cobradorActivo(t)
	repo := newFakeUserRepo(user)
	uc := nuevoUC(repo)
	ctx := context.Background()

	primero, err := uc.Login(ctx, dto.LoginRequest{Email: user.Email, Password: testPassword})
	require.NoError(t, err)

	// Cambio administrativo posterior al login: la sesión vieja no lo ve,
	// el refresh explícito sí.
	user.Rol = entity.RolSupervisor
	user.Permisos = []string{"caja.ver", "cierres.confirmar"}

	claimsViejos, err := pkgjwt.Parse(testSecret, primero.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RolCobrador, claimsViejos.Rol, "la foto vieja no cambia sola")

	refrescado, err := uc.Refresh(ctx, user.ID)
	require.NoError(t, err)
	claimsNuevos, err := pkgjwt.Parse(testSecret, refrescado.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RolSupervisor, claimsNuevos.Rol)
	assert.Contains(t, claimsNuevos.Permisos, "cierres.confirmar")
}

func TestRefresh_UsuarioDesactivado_Falla(t *testing.T) {
	user := cobradorActivo(t)
	repo := newFakeUserRepo(user)
	uc := nuevoUC(repo)

	user.Activo = false
	_, err := uc.Refresh(context.Background(), user.ID)
	assert.ErrorIs(t, err, domain.ErrCuentaDesactivada)
}
