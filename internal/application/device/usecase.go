// Package device implementa la puerta de autorización de dispositivos: decide,
// por request autenticado, si el dispositivo actual del usuario puede continuar,
// y hace evolucionar el estado del registro (maquina de estados PENDIENTE →
// AUTORIZADO | RECHAZADO | BLOQUEADO, transiciones del administrador).
package device

import (
	"context"
	"errors"
	"time"

	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
	"github.com/tu-usuario/prestamos-pro/pkg/fingerprint"
)

// Resultados posibles de la evaluación (mutuamente excluyentes).
const (
	ResultadoAutorizado = "AUTORIZADO"
	ResultadoPendiente  = "PENDIENTE"
	ResultadoBloqueado  = "BLOQUEADO"
)

// Decision es el veredicto del gate para el dispositivo actual.
type Decision struct {
	Resultado         string
	NombreDispositivo string
	Estado            string
	// Bypass true cuando el rol ADMINISTRADOR saltó la verificación
	// sin consultar ni crear registro alguno.
	Bypass bool
}

// GateUseCase evalúa dispositivos y aplica las transiciones administrativas.
type GateUseCase struct {
	repo repository.DeviceAuthRepository
	now  func() time.Time
}

// NewGateUseCase construye el gate.
func NewGateUseCase(repo repository.DeviceAuthRepository) *GateUseCase {
	return &GateUseCase{repo: repo, now: time.Now}
}

// Evaluate decide si el dispositivo del request puede continuar.
//
// Reglas, en orden:
//  1. Rol ADMINISTRADOR: autorizado siempre, sin tocar el almacén (bypass).
//  2. Par (usuario, dispositivo) desconocido: se crea el registro PENDIENTE y
//     se responde "pendiente". Si otro request concurrente ganó la creación,
//     la violación de unicidad se recupera releyendo el registro.
//  3. Registro existente: se refresca el último avistamiento y se responde
//     según el estado. RECHAZADO y BLOQUEADO son indistinguibles para el
//     caller (ambos "bloqueado").
//
// Por invocación ocurre exactamente una de {crear PENDIENTE, refrescar
// último acceso}; ninguna de las dos en el bypass administrativo.
func (uc *GateUseCase) Evaluate(ctx context.Context, userID, rol, userAgent, ip string) (*Decision, error) {
	if rol == entity.RolAdministrador {
		return &Decision{Resultado: ResultadoAutorizado, Bypass: true}, nil
	}

	deviceID, deviceName := fingerprint.Generate(userAgent, ip)

	d, err := uc.repo.Get(ctx, userID, deviceID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		nuevo := &entity.DeviceAuthorization{
			UserID:            userID,
			DeviceID:          deviceID,
			UserAgent:         userAgent,
			IP:                ipODesconocida(ip),
			NombreDispositivo: deviceName,
			Estado:            entity.DispositivoPendiente,
			UltimoAcceso:      uc.now(),
			CreatedAt:         uc.now(),
		}
		if err := uc.repo.Create(ctx, nuevo); err != nil {
			if !errors.Is(err, domain.ErrDuplicado) {
				return nil, err
			}
			// Carrera benigna: otro request creó el registro primero.
			d, err = uc.repo.Get(ctx, userID, deviceID)
			if err != nil {
				return nil, err
			}
			if d == nil {
				return nil, domain.ErrConflicto
			}
			return uc.decide(ctx, d)
		}
		return &Decision{
			Resultado:         ResultadoPendiente,
			NombreDispositivo: deviceName,
			Estado:            entity.DispositivoPendiente,
		}, nil
	}

	return uc.decide(ctx, d)
}

// decide refresca el último avistamiento y traduce el estado persistido a la
// decisión del caller. El gate nunca cambia el estado por sí mismo.
func (uc *GateUseCase) decide(ctx context.Context, d *entity.DeviceAuthorization) (*Decision, error) {
	if err := uc.repo.TouchUltimoAcceso(ctx, d.UserID, d.DeviceID, uc.now()); err != nil {
		return nil, err
	}

	dec := &Decision{NombreDispositivo: d.NombreDispositivo, Estado: d.Estado}
	switch d.Estado {
	case entity.DispositivoAutorizado:
		dec.Resultado = ResultadoAutorizado
	case entity.DispositivoPendiente:
		dec.Resultado = ResultadoPendiente
	default: // RECHAZADO y BLOQUEADO: mismo comportamiento
		dec.Resultado = ResultadoBloqueado
	}
	return dec, nil
}

// Authorize transición administrativa a AUTORIZADO.
func (uc *GateUseCase) Authorize(ctx context.Context, userID, deviceID string) error {
	return uc.transicion(ctx, userID, deviceID, entity.DispositivoAutorizado)
}

// Reject transición administrativa a RECHAZADO.
func (uc *GateUseCase) Reject(ctx context.Context, userID, deviceID string) error {
	return uc.transicion(ctx, userID, deviceID, entity.DispositivoRechazado)
}

// Block transición administrativa a BLOQUEADO.
func (uc *GateUseCase) Block(ctx context.Context, userID, deviceID string) error {
	return uc.transicion(ctx, userID, deviceID, entity.DispositivoBloqueado)
}

func (uc *GateUseCase) transicion(ctx context.Context, userID, deviceID, estado string) error {
	d, err := uc.repo.Get(ctx, userID, deviceID)
	if err != nil {
		return err
	}
	if d == nil {
		return domain.ErrNotFound
	}
	return uc.repo.UpdateEstado(ctx, userID, deviceID, estado)
}

// ListByUser lista los dispositivos registrados de un usuario (pantalla admin).
func (uc *GateUseCase) ListByUser(ctx context.Context, userID string) ([]*entity.DeviceAuthorization, error) {
	return uc.repo.ListByUser(ctx, userID)
}

func ipODesconocida(ip string) string {
	if ip == "" {
		return fingerprint.UnknownIP
	}
	return ip
}
