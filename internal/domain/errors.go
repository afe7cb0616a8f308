package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// ErrCredencialesInvalidas cubre tanto "email inexistente" como "password
// incorrecto": ambos casos deben ser indistinguibles para el cliente
// (misma identidad de error, mismo mensaje) para no permitir enumerar cuentas.
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrCredencialesInvalidas = errors.New("credenciales inválidas")
	ErrCuentaDesactivada     = errors.New("cuenta desactivada, contacte al administrador")
	ErrNoAutorizado          = errors.New("no autorizado")
	ErrProhibido             = errors.New("acceso denegado")
	ErrDispositivoPendiente  = errors.New("dispositivo pendiente de aprobación")
	ErrDispositivoBloqueado  = errors.New("dispositivo bloqueado, contacte al administrador")
	ErrLimiteTiempoExcedido  = errors.New("límite de tiempo de sesión excedido")
	ErrEmailYaRegistrado     = errors.New("el email ya está registrado")
	ErrEntradaInvalida       = errors.New("entrada inválida")
	ErrDuplicado             = errors.New("recurso duplicado")
	ErrConflicto             = errors.New("conflicto con el estado actual")
	ErrPrestamoCerrado       = errors.New("el préstamo no admite más pagos")
	ErrSaldoInsuficiente     = errors.New("saldo de caja insuficiente")
)
