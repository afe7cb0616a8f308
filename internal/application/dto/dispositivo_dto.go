package dto

import "time"

// DispositivoResponse salida de una autorización de dispositivo.
type DispositivoResponse struct {
	UserID            string    `json:"user_id"`
	DeviceID          string    `json:"device_id"`
	NombreDispositivo string    `json:"nombre_dispositivo"`
	UserAgent         string    `json:"user_agent"`
	IP                string    `json:"ip"`
	Estado            string    `json:"estado"`
	UltimoAcceso      time.Time `json:"ultimo_acceso"`
	CreatedAt         time.Time `json:"created_at"`
}

// DecisionDispositivoResponse resultado del gate para el dispositivo actual.
type DecisionDispositivoResponse struct {
	Resultado         string `json:"resultado"` // AUTORIZADO | PENDIENTE | BLOQUEADO
	NombreDispositivo string `json:"nombre_dispositivo,omitempty"`
	Estado            string `json:"estado,omitempty"`
	Bypass            bool   `json:"bypass,omitempty"` // true para ADMINISTRADOR
	Mensaje           string `json:"mensaje"`
}
