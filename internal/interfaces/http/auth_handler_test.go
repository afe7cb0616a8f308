package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/prestamos-pro/internal/application/auth"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
	apphttp "github.com/tu-usuario/prestamos-pro/internal/interfaces/http"
	"github.com/tu-usuario/prestamos-pro/pkg/logger"
)

// userRepoCaido simula una base inalcanzable: toda búsqueda por email falla
// con un error que arrastra el DSN, como haría pgx al no poder conectar.
type userRepoCaido struct {
	repository.UserRepository
	err error
}

func (r userRepoCaido) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, r.err
}

// Un fallo de infraestructura en el login responde 500 con mensaje genérico.
// El detalle del error (DSN con credenciales, host de la base) se queda en el
// log del servidor y jamás viaja en el cuerpo de la respuesta.
func TestLogin_ErrorDeInfraestructura_NoFiltraDetalle(t *testing.T) {
	errConexion := errors.New(`failed to connect to postgres://admin:s3cret@db:5432/prestamos`)
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := auth.NewAuthUseCase(
		userRepoCaido{err: errConexion},
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		log,
	)
	h := apphttp.NewAuthHandler(uc, nil, log)

	app := fiber.New()
	app.Post("/api/auth/login", h.Login)

	cuerpo, err := json.Marshal(dto.LoginRequest{Email: "admin@prestamos.test", Password: "cualquiera"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(cuerpo))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)
	assert.Contains(t, body, "INTERNAL")
	assert.Contains(t, body, "error interno del servidor")
	assert.NotContains(t, body, "s3cret", "las credenciales de la base no pueden llegar al cliente")
	assert.NotContains(t, body, "postgres://")
}
