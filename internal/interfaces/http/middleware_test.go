package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/prestamos-pro/internal/application/device"
	"github.com/tu-usuario/prestamos-pro/internal/application/usecase"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	apphttp "github.com/tu-usuario/prestamos-pro/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/prestamos-pro/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "prestamos-pro-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":  true,
				"rol": apphttp.GetRol(c),
			})
		},
	)
	return app
}

// tokenFor genera un JWT con la sesión indicada.
func tokenFor(t *testing.T, s pkgjwt.Session) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, s, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// tokenForRole genera un JWT activo con el rol indicado.
func tokenForRole(t *testing.T, rol string) string {
	t.Helper()
	return tokenFor(t, pkgjwt.Session{UserID: testUserID, Rol: rol, Nombre: "Test", Activo: true})
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: El usuario tiene el rol requerido → debe pasar (HTTP 200).
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RolAdministrador)
	resp := doRequest(t, app, tokenForRole(t, entity.RolAdministrador))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"ADMINISTRADOR debe poder acceder a ruta restringida a ADMINISTRADOR")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"], "la respuesta debe incluir ok:true")
	assert.Equal(t, entity.RolAdministrador, body["rol"])
}

// Caso 1b: El usuario tiene uno de los roles permitidos (multi-rol) → HTTP 200.
func TestRequireRole_SupervisorAccedeRutaMultiRol(t *testing.T) {
	app := buildTestApp(entity.RolAdministrador, entity.RolSupervisor)
	resp := doRequest(t, app, tokenForRole(t, entity.RolSupervisor))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"SUPERVISOR debe poder acceder a ruta que permite ADMINISTRADOR o SUPERVISOR")
}

// Caso 2: El usuario tiene un rol diferente al requerido → HTTP 403 Forbidden.
func TestRequireRole_CobradorBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RolAdministrador)
	resp := doRequest(t, app, tokenForRole(t, entity.RolCobrador))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"COBRADOR no debe poder acceder a ruta restringida a ADMINISTRADOR")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

// Caso 3: Token con rol vacío (token legacy) → HTTP 401 MISSING_ROLE.
func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RolAdministrador)
	resp := doRequest(t, app, tokenFor(t, pkgjwt.Session{UserID: testUserID, Activo: true}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token sin rol debe retornar 401")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE",
		"la respuesta debe indicar el código MISSING_ROLE")
}

// Caso 4: Sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RolAdministrador)
	resp := doRequest(t, app, "") // sin header
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: Token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RolAdministrador)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func buildPermApp(permiso string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(permiso),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) },
	)
	return app
}

func TestRequirePermission_PermisoPresente_Pasa(t *testing.T) {
	app := buildPermApp("clientes.exportar")
	tok := tokenFor(t, pkgjwt.Session{
		UserID:   testUserID,
		Rol:      entity.RolCobrador,
		Activo:   true,
		Permisos: []string{"clientes.exportar", "pagos.registrar"},
	})
	resp := doRequest(t, app, tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_SinPermiso_Retorna403(t *testing.T) {
	app := buildPermApp("clientes.exportar")
	resp := doRequest(t, app, tokenForRole(t, entity.RolCobrador))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// El administrador pasa cualquier chequeo de permiso sin tenerlo listado.
func TestRequirePermission_AdminPasaSiempre(t *testing.T) {
	app := buildPermApp("clientes.exportar")
	resp := doRequest(t, app, tokenForRole(t, entity.RolAdministrador))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtractaClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		claims := apphttp.GetClaims(c)
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"rol":     apphttp.GetRol(c),
			"nombre":  claims.Nombre,
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, pkgjwt.Session{
		UserID: testUserID, Rol: entity.RolSupervisor, Nombre: "Marta", Activo: true,
	}))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, entity.RolSupervisor, body["rol"])
	assert.Equal(t, "Marta", body["nombre"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el gate de dispositivos y el uso de tiempo
// ──────────────────────────────────────────────────────────────────────────────

type memDeviceRepo struct {
	mu        sync.Mutex
	registros map[string]*entity.DeviceAuthorization
}

func newMemDeviceRepo() *memDeviceRepo {
	return &memDeviceRepo{registros: map[string]*entity.DeviceAuthorization{}}
}

func (m *memDeviceRepo) key(userID, deviceID string) string { return userID + "|" + deviceID }

func (m *memDeviceRepo) Get(_ context.Context, userID, deviceID string) (*entity.DeviceAuthorization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.registros[m.key(userID, deviceID)]
	if !ok {
		return nil, nil
	}
	copia := *d
	return &copia, nil
}

func (m *memDeviceRepo) Create(_ context.Context, d *entity.DeviceAuthorization) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := m.key(d.UserID, d.DeviceID)
	if _, ok := m.registros[k]; ok {
		return domain.ErrDuplicado
	}
	copia := *d
	m.registros[k] = &copia
	return nil
}

func (m *memDeviceRepo) TouchUltimoAcceso(_ context.Context, userID, deviceID string, t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.registros[m.key(userID, deviceID)]; ok {
		d.UltimoAcceso = t
	}
	return nil
}

func (m *memDeviceRepo) UpdateEstado(_ context.Context, userID, deviceID, estado string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.registros[m.key(userID, deviceID)]
	if !ok {
		return domain.ErrNotFound
	}
	d.Estado = estado
	return nil
}

func (m *memDeviceRepo) ListByUser(_ context.Context, userID string) ([]*entity.DeviceAuthorization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.DeviceAuthorization
	for _, d := range m.registros {
		if d.UserID == userID {
			copia := *d
			out = append(out, &copia)
		}
	}
	return out, nil
}

type memUsoTiempoRepo struct {
	mu      sync.Mutex
	minutos map[string]int
}

func newMemUsoTiempoRepo() *memUsoTiempoRepo {
	return &memUsoTiempoRepo{minutos: map[string]int{}}
}

func (m *memUsoTiempoRepo) clave(usuarioID string, fecha time.Time) string {
	return usuarioID + "|" + fecha.Format("2006-01-02")
}

func (m *memUsoTiempoRepo) Increment(_ context.Context, usuarioID string, fecha time.Time, minutos int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.minutos[m.clave(usuarioID, fecha)] += minutos
	return nil
}

func (m *memUsoTiempoRepo) Minutos(_ context.Context, usuarioID string, fecha time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.minutos[m.clave(usuarioID, fecha)], nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests DeviceGateMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func buildGateApp(repo *memDeviceRepo) *fiber.App {
	gate := device.NewGateUseCase(repo)
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.DeviceGateMiddleware(gate),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) },
	)
	return app
}

// Primer avistamiento de un dispositivo de cobrador → 403 DEVICE_PENDING y
// queda registrado como PENDIENTE.
func TestDeviceGate_PrimerAvistamiento_Pendiente(t *testing.T) {
	repo := newMemDeviceRepo()
	app := buildGateApp(repo)

	resp := doRequest(t, app, tokenForRole(t, entity.RolCobrador))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "DEVICE_PENDING")

	dispositivos, err := repo.ListByUser(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, dispositivos, 1, "el primer avistamiento debe dejar registro")
	assert.Equal(t, entity.DispositivoPendiente, dispositivos[0].Estado)
}

// Dispositivo ya autorizado por el administrador → pasa con 200.
func TestDeviceGate_DispositivoAutorizado_Pasa(t *testing.T) {
	repo := newMemDeviceRepo()
	app := buildGateApp(repo)

	// Primer request registra el dispositivo PENDIENTE.
	resp := doRequest(t, app, tokenForRole(t, entity.RolCobrador))
	resp.Body.Close()

	dispositivos, err := repo.ListByUser(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, dispositivos, 1)
	require.NoError(t, repo.UpdateEstado(context.Background(), testUserID, dispositivos[0].DeviceID, entity.DispositivoAutorizado))

	resp = doRequest(t, app, tokenForRole(t, entity.RolCobrador))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Dispositivo bloqueado → 403 DEVICE_BLOCKED.
func TestDeviceGate_DispositivoBloqueado_Retorna403(t *testing.T) {
	repo := newMemDeviceRepo()
	app := buildGateApp(repo)

	resp := doRequest(t, app, tokenForRole(t, entity.RolCobrador))
	resp.Body.Close()

	dispositivos, err := repo.ListByUser(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, dispositivos, 1)
	require.NoError(t, repo.UpdateEstado(context.Background(), testUserID, dispositivos[0].DeviceID, entity.DispositivoBloqueado))

	resp = doRequest(t, app, tokenForRole(t, entity.RolCobrador))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "DEVICE_BLOCKED")
}

// El administrador nunca pasa por el gate: accede sin dejar registro.
func TestDeviceGate_AdminBypass(t *testing.T) {
	repo := newMemDeviceRepo()
	app := buildGateApp(repo)

	resp := doRequest(t, app, tokenForRole(t, entity.RolAdministrador))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	dispositivos, err := repo.ListByUser(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Empty(t, dispositivos, "el bypass administrativo no debe crear registros")
}

// Detrás del proxy de producción la IP real del cliente viaja en
// X-Forwarded-For. Dos orígenes distintos deben producir huellas de
// dispositivo distintas, no compartir el registro de la IP del proxy.
func TestDeviceGate_XForwardedFor_DistingueDispositivos(t *testing.T) {
	repo := newMemDeviceRepo()
	app := buildGateApp(repo)

	for _, ip := range []string{"190.80.1.10", "152.200.44.7"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", tokenForRole(t, entity.RolCobrador))
		req.Header.Set("User-Agent", "Mozilla/5.0 (Linux; Android 13) Chrome/120")
		req.Header.Set("X-Forwarded-For", ip+", 172.18.0.2")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	dispositivos, err := repo.ListByUser(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Len(t, dispositivos, 2, "cada IP de origen debe tener su propia huella")
	for _, d := range dispositivos {
		assert.NotEqual(t, "172.18.0.2", d.IP, "la IP del proxy no es la del cliente")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests TimeBudgetMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func buildTiempoApp(repo *memUsoTiempoRepo) *fiber.App {
	tiempo := usecase.NewTiempoUseCase(repo)
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.TimeBudgetMiddleware(tiempo),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) },
	)
	return app
}

func TestTimeBudget_SinLimite_Pasa(t *testing.T) {
	app := buildTiempoApp(newMemUsoTiempoRepo())
	resp := doRequest(t, app, tokenForRole(t, entity.RolCobrador))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTimeBudget_DentroDelLimite_Pasa(t *testing.T) {
	limite := 120
	app := buildTiempoApp(newMemUsoTiempoRepo())
	tok := tokenFor(t, pkgjwt.Session{
		UserID: testUserID, Rol: entity.RolCobrador, Activo: true, LimiteTiempo: &limite,
	})
	resp := doRequest(t, app, tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTimeBudget_LimiteAgotado_Retorna403(t *testing.T) {
	limite := 30
	repo := newMemUsoTiempoRepo()
	require.NoError(t, repo.Increment(context.Background(), testUserID, time.Now(), 30))

	app := buildTiempoApp(repo)
	tok := tokenFor(t, pkgjwt.Session{
		UserID: testUserID, Rol: entity.RolCobrador, Activo: true, LimiteTiempo: &limite,
	})
	resp := doRequest(t, app, tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "TIME_LIMIT_EXCEEDED")
}

// El límite no aplica al administrador aunque lo tenga configurado.
func TestTimeBudget_AdminIgnoraLimite(t *testing.T) {
	limite := 1
	repo := newMemUsoTiempoRepo()
	require.NoError(t, repo.Increment(context.Background(), testUserID, time.Now(), 500))

	app := buildTiempoApp(repo)
	tok := tokenFor(t, pkgjwt.Session{
		UserID: testUserID, Rol: entity.RolAdministrador, Activo: true, LimiteTiempo: &limite,
	})
	resp := doRequest(t, app, tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
