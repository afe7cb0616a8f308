package entity

import "time"

// UsoTiempo acumula los minutos consumidos por un usuario en una fecha.
// Es el contador contra el que se compara User.LimiteTiempo.
type UsoTiempo struct {
	UsuarioID string
	Fecha     time.Time // solo fecha
	Minutos   int
}
