package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
	"github.com/tu-usuario/prestamos-pro/pkg/texto"
)

// ClienteUseCase CRUD de clientes de la cartera.
type ClienteUseCase struct {
	repo      repository.ClienteRepository
	auditoria *AuditoriaUseCase
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository, auditoria *AuditoriaUseCase) *ClienteUseCase {
	return &ClienteUseCase{repo: repo, auditoria: auditoria}
}

// Create registra un cliente nuevo. La cédula es única.
func (uc *ClienteUseCase) Create(ctx context.Context, in dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	existing, _ := uc.repo.GetByCedula(ctx, in.Cedula)
	if existing != nil {
		return nil, domain.ErrDuplicado
	}
	now := time.Now()
	c := &entity.Cliente{
		ID:        uuid.New().String(),
		Cedula:    in.Cedula,
		Nombre:    in.Nombre,
		Apellido:  in.Apellido,
		Telefono:  in.Telefono,
		Direccion: in.Direccion,
		Ruta:      in.Ruta,
		Activo:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toClienteResponse(c), nil
}

// GetByID obtiene un cliente.
func (uc *ClienteUseCase) GetByID(ctx context.Context, id string) (*dto.ClienteResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toClienteResponse(c), nil
}

// List pagina el listado, o busca si hay texto (insensible a acentos).
func (uc *ClienteUseCase) List(ctx context.Context, buscar string, limit, offset int) ([]*dto.ClienteResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	var list []*entity.Cliente
	var err error
	if strings.TrimSpace(buscar) != "" {
		list, err = uc.repo.Search(ctx, texto.Normalizar(buscar), limit, offset)
	} else {
		list, err = uc.repo.List(ctx, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClienteResponse(c))
	}
	return out, nil
}

// Update edita datos de contacto del cliente.
func (uc *ClienteUseCase) Update(ctx context.Context, id string, in dto.UpdateClienteRequest) (*dto.ClienteResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != nil {
		c.Nombre = *in.Nombre
	}
	if in.Apellido != nil {
		c.Apellido = *in.Apellido
	}
	if in.Telefono != nil {
		c.Telefono = *in.Telefono
	}
	if in.Direccion != nil {
		c.Direccion = *in.Direccion
	}
	if in.Ruta != nil {
		c.Ruta = *in.Ruta
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toClienteResponse(c), nil
}

// Delete desactiva al cliente (baja lógica) y emite el evento de auditoría.
// La emisión es best-effort y nunca falla la operación principal.
func (uc *ClienteUseCase) Delete(ctx context.Context, id string, ev Evento) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.SetActivo(ctx, id, false); err != nil {
		return err
	}
	ev.Accion = entity.AuditoriaEliminar
	ev.Entidad = "cliente"
	ev.EntidadID = id
	ev.Detalle = fmt.Sprintf(`{"cedula":%q,"nombre":%q}`, c.Cedula, c.NombreCompleto())
	uc.auditoria.Emit(ctx, ev)
	return nil
}

// SetDocumentoKey enlaza la llave S3 del documento subido.
func (uc *ClienteUseCase) SetDocumentoKey(ctx context.Context, id, key string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SetDocumentoKey(ctx, id, key)
}

// DocumentoKey devuelve la llave S3 del documento, o "" si no hay.
func (uc *ClienteUseCase) DocumentoKey(ctx context.Context, id string) (string, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", domain.ErrNotFound
	}
	if c.DocumentoKey == nil {
		return "", nil
	}
	return *c.DocumentoKey, nil
}

func toClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:             c.ID,
		Cedula:         c.Cedula,
		Nombre:         c.Nombre,
		Apellido:       c.Apellido,
		Telefono:       c.Telefono,
		Direccion:      c.Direccion,
		Ruta:           c.Ruta,
		TieneDocumento: c.DocumentoKey != nil,
		Activo:         c.Activo,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
