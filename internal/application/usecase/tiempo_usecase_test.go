package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/prestamos-pro/internal/application/usecase"
)

type fakeUsoTiempoRepo struct {
	minutos map[string]int // key: usuarioID|fecha
}

func newFakeUsoTiempoRepo() *fakeUsoTiempoRepo {
	return &fakeUsoTiempoRepo{minutos: map[string]int{}}
}

func usoKey(usuarioID string, fecha time.Time) string {
	return usuarioID + "|" + fecha.Format("2006-01-02")
}

func (f *fakeUsoTiempoRepo) Increment(_ context.Context, usuarioID string, fecha time.Time, minutos int) error {
	f.minutos[usoKey(usuarioID, fecha)] += minutos
	return nil
}

func (f *fakeUsoTiempoRepo) Minutos(_ context.Context, usuarioID string, fecha time.Time) (int, error) {
	return f.minutos[usoKey(usuarioID, fecha)], nil
}

func TestCheckTimeLimit_SinLimite_SiempreDentro(t *testing.T) {
	uc := usecase.NewTiempoUseCase(newFakeUsoTiempoRepo())

	estado, err := uc.CheckTimeLimit(context.Background(), "u-1", nil)
	require.NoError(t, err)
	assert.False(t, estado.Limitado)
	assert.True(t, estado.Dentro)
}

func TestRecordTimeUsage_AcumulaYAgota(t *testing.T) {
	repo := newFakeUsoTiempoRepo()
	uc := usecase.NewTiempoUseCase(repo)
	ctx := context.Background()
	limite := 3

	// incremento por defecto: 1 minuto por llamada
	for i := 0; i < 2; i++ {
		require.NoError(t, uc.RecordTimeUsage(ctx, "u-1", 0))
	}
	estado, err := uc.CheckTimeLimit(ctx, "u-1", &limite)
	require.NoError(t, err)
	assert.True(t, estado.Dentro)
	assert.Equal(t, 2, estado.Consumidos)
	assert.Equal(t, 1, estado.Restantes)

	require.NoError(t, uc.RecordTimeUsage(ctx, "u-1", 5))
	estado, err = uc.CheckTimeLimit(ctx, "u-1", &limite)
	require.NoError(t, err)
	assert.False(t, estado.Dentro, "presupuesto agotado")
	assert.Equal(t, 0, estado.Restantes)
}

func TestCheckTimeLimit_UsuariosIndependientes(t *testing.T) {
	repo := newFakeUsoTiempoRepo()
	uc := usecase.NewTiempoUseCase(repo)
	ctx := context.Background()
	limite := 10

	require.NoError(t, uc.RecordTimeUsage(ctx, "u-1", 10))

	estado, err := uc.CheckTimeLimit(ctx, "u-2", &limite)
	require.NoError(t, err)
	assert.True(t, estado.Dentro, "el consumo de u-1 no afecta a u-2")
	assert.Equal(t, 0, estado.Consumidos)
}
