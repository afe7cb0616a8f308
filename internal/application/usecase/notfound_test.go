package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/application/usecase"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

// Los repositorios devuelven (nil, nil) cuando el registro no existe; los
// casos de uso deben traducir eso a ErrNotFound, nunca entregar un nil que
// el handler serialice como 200 con cuerpo "null".

type prestamoRepoVacio struct{ repository.PrestamoRepository }

func (prestamoRepoVacio) GetByID(context.Context, string) (*entity.Prestamo, error) {
	return nil, nil
}

type nominaRepoVacio struct{ repository.NominaRepository }

func (nominaRepoVacio) GetByUsuario(context.Context, string) (*entity.NominaConfig, error) {
	return nil, nil
}

type cierreRepoVacio struct{ repository.CierreRepository }

func (cierreRepoVacio) GetByID(context.Context, string) (*entity.CierreDiario, error) {
	return nil, nil
}

type userRepoVacio struct{ repository.UserRepository }

func (userRepoVacio) GetByID(context.Context, string) (*entity.User, error) {
	return nil, nil
}

func TestClienteGetByID_NoExiste_NotFound(t *testing.T) {
	uc := usecase.NewClienteUseCase(newFakeClienteRepo(), nil)

	out, err := uc.GetByID(context.Background(), "no-existe")
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPrestamoGetByID_NoExiste_NotFound(t *testing.T) {
	uc := usecase.NewPrestamoUseCase(prestamoRepoVacio{}, nil, nil, nil, nil, nil)

	out, err := uc.GetByID(context.Background(), "no-existe")
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNominaGetByUsuario_SinConfiguracion_NotFound(t *testing.T) {
	uc := usecase.NewNominaUseCase(nominaRepoVacio{}, nil)

	out, err := uc.GetByUsuario(context.Background(), "no-existe")
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCierreGetByID_NoExiste_NotFound(t *testing.T) {
	uc := usecase.NewCierreUseCase(cierreRepoVacio{}, nil, nil)

	out, err := uc.GetByID(context.Background(), "no-existe")
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUsuarioGetByID_NoExiste_NotFound(t *testing.T) {
	uc := usecase.NewUsuarioUseCase(userRepoVacio{}, nil)

	out, err := uc.GetByID(context.Background(), "no-existe")
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUsuarioUpdate_NoExiste_NotFound(t *testing.T) {
	uc := usecase.NewUsuarioUseCase(userRepoVacio{}, nil)

	nombre := "Otro"
	out, err := uc.Update(context.Background(), "no-existe", dto.UpdateUserRequest{Nombre: &nombre})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// userRepoEmailFalla simula un fallo de la base en la verificación de email
// único durante el alta de usuario.
type userRepoEmailFalla struct {
	repository.UserRepository
	err error
}

func (r userRepoEmailFalla) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, r.err
}

// Un fallo al consultar el email se propaga: el alta no debe continuar como
// si el email estuviera libre.
func TestUsuarioCreate_FallaGetByEmail_PropagaError(t *testing.T) {
	errBase := errors.New("conexión perdida con la base")
	uc := usecase.NewUsuarioUseCase(userRepoEmailFalla{err: errBase}, nil)

	out, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Email:    "nuevo@prestamos.test",
		Password: "clave-segura-123",
		Nombre:   "Nuevo",
		Rol:      entity.RolCobrador,
	})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, errBase)
}
