package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/application/usecase"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
)

type fakeSusuRepo struct {
	grupos        map[string]*entity.SusuGrupo
	participantes map[string]*entity.SusuParticipante
}

func newFakeSusuRepo() *fakeSusuRepo {
	return &fakeSusuRepo{
		grupos:        map[string]*entity.SusuGrupo{},
		participantes: map[string]*entity.SusuParticipante{},
	}
}

func (f *fakeSusuRepo) CreateGrupo(_ context.Context, g *entity.SusuGrupo) error {
	copia := *g
	f.grupos[g.ID] = &copia
	return nil
}

func (f *fakeSusuRepo) GetGrupo(_ context.Context, id string) (*entity.SusuGrupo, error) {
	g, ok := f.grupos[id]
	if !ok {
		return nil, nil
	}
	copia := *g
	return &copia, nil
}

func (f *fakeSusuRepo) ListGrupos(_ context.Context, limit, offset int) ([]*entity.SusuGrupo, error) {
	var out []*entity.SusuGrupo
	for _, g := range f.grupos {
		copia := *g
		out = append(out, &copia)
	}
	return out, nil
}

func (f *fakeSusuRepo) UpdateGrupo(_ context.Context, g *entity.SusuGrupo) error {
	copia := *g
	f.grupos[g.ID] = &copia
	return nil
}

func (f *fakeSusuRepo) AddParticipante(_ context.Context, p *entity.SusuParticipante) error {
	for _, existente := range f.participantes {
		if existente.GrupoID == p.GrupoID && existente.Orden == p.Orden {
			return domain.ErrDuplicado
		}
	}
	copia := *p
	f.participantes[p.ID] = &copia
	return nil
}

func (f *fakeSusuRepo) ListParticipantes(_ context.Context, grupoID string) ([]*entity.SusuParticipante, error) {
	var out []*entity.SusuParticipante
	for _, p := range f.participantes {
		if p.GrupoID == grupoID {
			copia := *p
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (f *fakeSusuRepo) MarcarRecibido(_ context.Context, participanteID string, recibido bool) error {
	if p, ok := f.participantes[participanteID]; ok {
		p.Recibido = recibido
	}
	return nil
}

func (f *fakeSusuRepo) ResetRecibidos(_ context.Context, grupoID string) error {
	for _, p := range f.participantes {
		if p.GrupoID == grupoID {
			p.Recibido = false
		}
	}
	return nil
}

type fakeClienteRepo struct {
	clientes map[string]*entity.Cliente
}

func newFakeClienteRepo(ids ...string) *fakeClienteRepo {
	f := &fakeClienteRepo{clientes: map[string]*entity.Cliente{}}
	for _, id := range ids {
		f.clientes[id] = &entity.Cliente{ID: id, Nombre: "Cliente " + id, Activo: true, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	}
	return f
}

func (f *fakeClienteRepo) Create(_ context.Context, c *entity.Cliente) error {
	f.clientes[c.ID] = c
	return nil
}

func (f *fakeClienteRepo) GetByID(_ context.Context, id string) (*entity.Cliente, error) {
	return f.clientes[id], nil
}

func (f *fakeClienteRepo) GetByCedula(_ context.Context, cedula string) (*entity.Cliente, error) {
	return nil, nil
}

func (f *fakeClienteRepo) Search(_ context.Context, texto string, limit, offset int) ([]*entity.Cliente, error) {
	return nil, nil
}

func (f *fakeClienteRepo) List(_ context.Context, limit, offset int) ([]*entity.Cliente, error) {
	return nil, nil
}

func (f *fakeClienteRepo) Update(_ context.Context, c *entity.Cliente) error { return nil }

func (f *fakeClienteRepo) SetDocumentoKey(_ context.Context, id, key string) error { return nil }

func (f *fakeClienteRepo) SetActivo(_ context.Context, id string, activo bool) error { return nil }

func grupoConTresParticipantes(t *testing.T) (*usecase.SusuUseCase, string, *fakeSusuRepo) {
	t.Helper()
	repo := newFakeSusuRepo()
	uc := usecase.NewSusuUseCase(repo, newFakeClienteRepo("c-1", "c-2", "c-3"))
	ctx := context.Background()

	g, err := uc.CreateGrupo(ctx, dto.CreateSusuGrupoRequest{
		Nombre:     "San Lunes",
		Cuota:      decimal.NewFromInt(500),
		Frecuencia: "SEMANAL",
	})
	require.NoError(t, err)
	for i, clienteID := range []string{"c-1", "c-2", "c-3"} {
		_, err := uc.AddParticipante(ctx, g.ID, dto.AddSusuParticipanteRequest{ClienteID: clienteID, Orden: i + 1})
		require.NoError(t, err)
	}
	return uc, g.ID, repo
}

func TestSusu_GetGrupo_NoExiste_NotFound(t *testing.T) {
	uc := usecase.NewSusuUseCase(newFakeSusuRepo(), newFakeClienteRepo())

	out, err := uc.GetGrupo(context.Background(), "no-existe")
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSusu_OrdenDuplicado_Rechazado(t *testing.T) {
	uc, grupoID, _ := grupoConTresParticipantes(t)

	_, err := uc.AddParticipante(context.Background(), grupoID, dto.AddSusuParticipanteRequest{ClienteID: "c-1", Orden: 2})
	assert.ErrorIs(t, err, domain.ErrDuplicado)
}

func TestSusu_AvanzarTurno_RecorreLaRotacion(t *testing.T) {
	uc, grupoID, _ := grupoConTresParticipantes(t)
	ctx := context.Background()

	// turno 1 → 2
	out, err := uc.AvanzarTurno(ctx, grupoID)
	require.NoError(t, err)
	assert.Equal(t, "c-1", out.Beneficiario.ClienteID)
	assert.Equal(t, 2, out.Grupo.TurnoActual)
	assert.False(t, out.CicloCompletado)
	assert.Equal(t, 0, out.Grupo.Ciclo)

	// turno 2 → 3
	out, err = uc.AvanzarTurno(ctx, grupoID)
	require.NoError(t, err)
	assert.Equal(t, "c-2", out.Beneficiario.ClienteID)
	assert.Equal(t, 3, out.Grupo.TurnoActual)
}

func TestSusu_AvanzarTurno_UltimoCierraElCiclo(t *testing.T) {
	uc, grupoID, repo := grupoConTresParticipantes(t)
	ctx := context.Background()

	_, err := uc.AvanzarTurno(ctx, grupoID) // 1 → 2
	require.NoError(t, err)
	_, err = uc.AvanzarTurno(ctx, grupoID) // 2 → 3
	require.NoError(t, err)

	out, err := uc.AvanzarTurno(ctx, grupoID) // 3 → vuelta completa
	require.NoError(t, err)
	assert.Equal(t, "c-3", out.Beneficiario.ClienteID)
	assert.True(t, out.Beneficiario.Recibido, "el beneficiario de la vuelta acaba de cobrar")
	assert.True(t, out.CicloCompletado)
	assert.Equal(t, 1, out.Grupo.Ciclo, "una vuelta completa incrementa el ciclo")
	assert.Equal(t, 1, out.Grupo.TurnoActual, "el turno vuelve al primer orden")

	// las marcas de recibido quedan limpias para la vuelta nueva
	for _, p := range repo.participantes {
		assert.False(t, p.Recibido)
	}
}

func TestSusu_AvanzarTurno_GrupoCerrado_Conflicto(t *testing.T) {
	uc, grupoID, _ := grupoConTresParticipantes(t)
	ctx := context.Background()

	require.NoError(t, uc.CerrarGrupo(ctx, grupoID))
	_, err := uc.AvanzarTurno(ctx, grupoID)
	assert.ErrorIs(t, err, domain.ErrConflicto)
}

func TestSusu_AvanzarTurno_SinParticipantes_Conflicto(t *testing.T) {
	repo := newFakeSusuRepo()
	uc := usecase.NewSusuUseCase(repo, newFakeClienteRepo())
	ctx := context.Background()

	g, err := uc.CreateGrupo(ctx, dto.CreateSusuGrupoRequest{
		Nombre:     "Vacío",
		Cuota:      decimal.NewFromInt(100),
		Frecuencia: "MENSUAL",
	})
	require.NoError(t, err)

	_, err = uc.AvanzarTurno(ctx, g.ID)
	assert.ErrorIs(t, err, domain.ErrConflicto)
}
