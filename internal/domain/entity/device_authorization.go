package entity

import "time"

// Estados de autorización de un dispositivo.
const (
	DispositivoPendiente  = "PENDIENTE"
	DispositivoAutorizado = "AUTORIZADO"
	DispositivoRechazado  = "RECHAZADO"
	DispositivoBloqueado  = "BLOQUEADO"
)

// ValidEstadoDispositivo indica si el estado es uno de los cuatro enumerados.
func ValidEstadoDispositivo(estado string) bool {
	switch estado {
	case DispositivoPendiente, DispositivoAutorizado, DispositivoRechazado, DispositivoBloqueado:
		return true
	}
	return false
}

// DeviceAuthorization registra la decisión de acceso de un dispositivo por
// usuario. La llave natural es el par (UserID, DeviceID): como máximo un
// registro por par, garantizado por constraint de unicidad en la base.
//
// El registro nace PENDIENTE la primera vez que un usuario no administrador
// aparece desde un fingerprint desconocido; las transiciones posteriores
// (AUTORIZADO / RECHAZADO / BLOQUEADO) son siempre acción del administrador.
type DeviceAuthorization struct {
	UserID            string
	DeviceID          string // fingerprint derivado (32 hex)
	UserAgent         string
	IP                string
	NombreDispositivo string // ej. "Móvil Android - Chrome"
	Estado            string
	UltimoAcceso      time.Time
	CreatedAt         time.Time
}

// Decidido indica si el administrador ya tomó una decisión sobre el dispositivo.
func (d *DeviceAuthorization) Decidido() bool {
	return d.Estado != DispositivoPendiente
}
