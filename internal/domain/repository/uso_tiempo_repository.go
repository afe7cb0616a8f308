package repository

import (
	"context"
	"time"
)

// UsoTiempoRepository puerto del acumulador de minutos por usuario y día.
type UsoTiempoRepository interface {
	// Increment suma minutos al acumulador del día (insert-or-update).
	Increment(ctx context.Context, usuarioID string, fecha time.Time, minutos int) error
	// Minutos devuelve los minutos consumidos en la fecha (0 si no hay fila).
	Minutos(ctx context.Context, usuarioID string, fecha time.Time) (int, error)
}
