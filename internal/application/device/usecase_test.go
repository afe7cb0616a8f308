package device_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/prestamos-pro/internal/application/device"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/pkg/fingerprint"
)

const (
	uaCobrador = "Mozilla/5.0 (Linux; Android 14; Pixel 8) Chrome/120.0 Mobile Safari/537.36"
	ipCobrador = "190.80.10.5"
	userID     = "u-cobrador-1"
)

// fakeDeviceRepo implementa repository.DeviceAuthRepository en memoria y
// cuenta las operaciones para verificar los efectos colaterales del gate.
type fakeDeviceRepo struct {
	registros map[string]*entity.DeviceAuthorization // key: userID|deviceID
	gets      int
	creates   int
	touches   int

	failCreateConDuplicado bool // simula perder la carrera de creación
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{registros: map[string]*entity.DeviceAuthorization{}}
}

func key(userID, deviceID string) string { return userID + "|" + deviceID }

func (f *fakeDeviceRepo) Get(_ context.Context, userID, deviceID string) (*entity.DeviceAuthorization, error) {
	f.gets++
	d, ok := f.registros[key(userID, deviceID)]
	if !ok {
		return nil, nil
	}
	copia := *d
	return &copia, nil
}

func (f *fakeDeviceRepo) Create(_ context.Context, d *entity.DeviceAuthorization) error {
	f.creates++
	k := key(d.UserID, d.DeviceID)
	if _, ok := f.registros[k]; ok || f.failCreateConDuplicado {
		if f.failCreateConDuplicado {
			// el "otro" request ya insertó PENDIENTE
			f.registros[k] = &entity.DeviceAuthorization{
				UserID: d.UserID, DeviceID: d.DeviceID,
				NombreDispositivo: d.NombreDispositivo,
				Estado:            entity.DispositivoPendiente,
				UltimoAcceso:      time.Now(),
			}
			f.failCreateConDuplicado = false
		}
		return domain.ErrDuplicado
	}
	copia := *d
	f.registros[k] = &copia
	return nil
}

func (f *fakeDeviceRepo) TouchUltimoAcceso(_ context.Context, userID, deviceID string, t time.Time) error {
	f.touches++
	if d, ok := f.registros[key(userID, deviceID)]; ok {
		d.UltimoAcceso = t
	}
	return nil
}

func (f *fakeDeviceRepo) UpdateEstado(_ context.Context, userID, deviceID, estado string) error {
	d, ok := f.registros[key(userID, deviceID)]
	if !ok {
		return domain.ErrNotFound
	}
	d.Estado = estado
	return nil
}

func (f *fakeDeviceRepo) ListByUser(_ context.Context, userID string) ([]*entity.DeviceAuthorization, error) {
	var out []*entity.DeviceAuthorization
	for _, d := range f.registros {
		if d.UserID == userID {
			copia := *d
			out = append(out, &copia)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario A: primer avistamiento de un cobrador → PENDIENTE, un solo registro.
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_PrimerAvistamiento_CreaPendiente(t *testing.T) {
	repo := newFakeDeviceRepo()
	gate := device.NewGateUseCase(repo)

	dec, err := gate.Evaluate(context.Background(), userID, entity.RolCobrador, uaCobrador, ipCobrador)
	require.NoError(t, err)

	assert.Equal(t, device.ResultadoPendiente, dec.Resultado)
	assert.Equal(t, entity.DispositivoPendiente, dec.Estado)
	assert.Equal(t, "Móvil Android - Chrome", dec.NombreDispositivo)
	assert.False(t, dec.Bypass)

	deviceID := fingerprint.DeviceID(uaCobrador, ipCobrador)
	guardado := repo.registros[key(userID, deviceID)]
	require.NotNil(t, guardado, "debe existir el registro PENDIENTE")
	assert.Equal(t, entity.DispositivoPendiente, guardado.Estado)
	assert.False(t, guardado.CreatedAt.IsZero(), "la fecha de alta debe quedar asignada al crear")
	assert.False(t, guardado.UltimoAcceso.IsZero())
	assert.Equal(t, 1, repo.creates)
	assert.Equal(t, 0, repo.touches, "en la creación no se refresca último acceso")
}

// Segunda invocación con el mismo par: sigue pendiente, no duplica, refresca
// el último acceso. Exactamente un efecto colateral por invocación.
func TestEvaluate_SegundaVez_SiguePendienteSinDuplicar(t *testing.T) {
	repo := newFakeDeviceRepo()
	gate := device.NewGateUseCase(repo)
	ctx := context.Background()

	_, err := gate.Evaluate(ctx, userID, entity.RolCobrador, uaCobrador, ipCobrador)
	require.NoError(t, err)

	antes := repo.registros[key(userID, fingerprint.DeviceID(uaCobrador, ipCobrador))].UltimoAcceso
	time.Sleep(5 * time.Millisecond)

	dec, err := gate.Evaluate(ctx, userID, entity.RolCobrador, uaCobrador, ipCobrador)
	require.NoError(t, err)

	assert.Equal(t, device.ResultadoPendiente, dec.Resultado)
	assert.Equal(t, 1, repo.creates, "no debe crearse un segundo registro")
	assert.Equal(t, 1, repo.touches)
	despues := repo.registros[key(userID, fingerprint.DeviceID(uaCobrador, ipCobrador))].UltimoAcceso
	assert.True(t, despues.After(antes), "el último acceso debe avanzar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario B: el administrador autoriza → el gate responde autorizado.
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_DespuesDeAutorizar_Autorizado(t *testing.T) {
	repo := newFakeDeviceRepo()
	gate := device.NewGateUseCase(repo)
	ctx := context.Background()

	_, err := gate.Evaluate(ctx, userID, entity.RolCobrador, uaCobrador, ipCobrador)
	require.NoError(t, err)

	deviceID := fingerprint.DeviceID(uaCobrador, ipCobrador)
	require.NoError(t, gate.Authorize(ctx, userID, deviceID))

	dec, err := gate.Evaluate(ctx, userID, entity.RolCobrador, uaCobrador, ipCobrador)
	require.NoError(t, err)
	assert.Equal(t, device.ResultadoAutorizado, dec.Resultado)
	assert.Equal(t, entity.DispositivoAutorizado, dec.Estado)
	assert.Equal(t, "Móvil Android - Chrome", dec.NombreDispositivo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario C: RECHAZADO y BLOQUEADO producen la misma decisión "bloqueado".
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_RechazadoYBloqueado_MismoResultado(t *testing.T) {
	for _, transicion := range []string{entity.DispositivoRechazado, entity.DispositivoBloqueado} {
		t.Run(transicion, func(t *testing.T) {
			repo := newFakeDeviceRepo()
			gate := device.NewGateUseCase(repo)
			ctx := context.Background()

			_, err := gate.Evaluate(ctx, userID, entity.RolCobrador, uaCobrador, ipCobrador)
			require.NoError(t, err)

			deviceID := fingerprint.DeviceID(uaCobrador, ipCobrador)
			if transicion == entity.DispositivoRechazado {
				require.NoError(t, gate.Reject(ctx, userID, deviceID))
			} else {
				require.NoError(t, gate.Block(ctx, userID, deviceID))
			}

			dec, err := gate.Evaluate(ctx, userID, entity.RolCobrador, uaCobrador, ipCobrador)
			require.NoError(t, err)
			assert.Equal(t, device.ResultadoBloqueado, dec.Resultado)
		})
	}
}

// Estados decididos son terminales para el gate: evaluar no los modifica.
func TestEvaluate_NoModificaEstadosDecididos(t *testing.T) {
	repo := newFakeDeviceRepo()
	gate := device.NewGateUseCase(repo)
	ctx := context.Background()

	_, err := gate.Evaluate(ctx, userID, entity.RolCobrador, uaCobrador, ipCobrador)
	require.NoError(t, err)
	deviceID := fingerprint.DeviceID(uaCobrador, ipCobrador)
	require.NoError(t, gate.Authorize(ctx, userID, deviceID))

	for i := 0; i < 3; i++ {
		_, err = gate.Evaluate(ctx, userID, entity.RolCobrador, uaCobrador, ipCobrador)
		require.NoError(t, err)
	}
	assert.Equal(t, entity.DispositivoAutorizado, repo.registros[key(userID, deviceID)].Estado)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario D: ADMINISTRADOR hace bypass total, cero accesos al almacén.
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_AdministradorBypass_SinTocarAlmacen(t *testing.T) {
	repo := newFakeDeviceRepo()
	gate := device.NewGateUseCase(repo)

	dec, err := gate.Evaluate(context.Background(), "u-admin", entity.RolAdministrador, uaCobrador, ipCobrador)
	require.NoError(t, err)

	assert.Equal(t, device.ResultadoAutorizado, dec.Resultado)
	assert.True(t, dec.Bypass)
	assert.Equal(t, 0, repo.gets, "bypass: sin lecturas")
	assert.Equal(t, 0, repo.creates, "bypass: sin escrituras")
	assert.Equal(t, 0, repo.touches)
	assert.Empty(t, repo.registros)
}

// Dos primeros avistamientos concurrentes: el perdedor de la carrera recibe la
// violación de unicidad y debe recuperarse releyendo, nunca fallar al caller.
func TestEvaluate_CarreraDeCreacion_SeRecuperaReleyendo(t *testing.T) {
	repo := newFakeDeviceRepo()
	repo.failCreateConDuplicado = true
	gate := device.NewGateUseCase(repo)

	dec, err := gate.Evaluate(context.Background(), userID, entity.RolCobrador, uaCobrador, ipCobrador)
	require.NoError(t, err, "la carrera es benigna, no debe propagarse")
	assert.Equal(t, device.ResultadoPendiente, dec.Resultado)
	assert.Equal(t, 1, repo.creates)
}

// Sin IP el fingerprint degrada al bucket "Unknown" pero sigue funcionando.
func TestEvaluate_SinIP_UsaPlaceholder(t *testing.T) {
	repo := newFakeDeviceRepo()
	gate := device.NewGateUseCase(repo)

	_, err := gate.Evaluate(context.Background(), userID, entity.RolCobrador, uaCobrador, "")
	require.NoError(t, err)

	deviceID := fingerprint.DeviceID(uaCobrador, fingerprint.UnknownIP)
	guardado := repo.registros[key(userID, deviceID)]
	require.NotNil(t, guardado)
	assert.Equal(t, fingerprint.UnknownIP, guardado.IP)
}
