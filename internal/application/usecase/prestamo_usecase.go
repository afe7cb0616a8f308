package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

// alfabeto para recibos: sin caracteres ambiguos (0/O, 1/I/l).
const reciboAlfabeto = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// PagoTxRunner ejecuta un callback con repos atados a una misma transacción,
// para que el abono y la baja de saldo queden atómicos.
type PagoTxRunner interface {
	Run(ctx context.Context, fn func(pagos repository.PagoRepository, prestamos repository.PrestamoRepository) error) error
}

// PrestamoUseCase originación de préstamos y registro de pagos.
type PrestamoUseCase struct {
	prestamos repository.PrestamoRepository
	pagos     repository.PagoRepository
	clientes  repository.ClienteRepository
	usuarios  repository.UserRepository
	tx        PagoTxRunner
	auditoria *AuditoriaUseCase
}

// NewPrestamoUseCase construye el caso de uso.
func NewPrestamoUseCase(
	prestamos repository.PrestamoRepository,
	pagos repository.PagoRepository,
	clientes repository.ClienteRepository,
	usuarios repository.UserRepository,
	tx PagoTxRunner,
	auditoria *AuditoriaUseCase,
) *PrestamoUseCase {
	return &PrestamoUseCase{
		prestamos: prestamos,
		pagos:     pagos,
		clientes:  clientes,
		usuarios:  usuarios,
		tx:        tx,
		auditoria: auditoria,
	}
}

// Create origina un préstamo: interés simple sobre el capital, saldo inicial
// igual al monto total.
func (uc *PrestamoUseCase) Create(ctx context.Context, in dto.CreatePrestamoRequest) (*dto.PrestamoResponse, error) {
	if in.Capital.LessThanOrEqual(decimal.Zero) || in.TasaInteres.IsNegative() {
		return nil, domain.ErrEntradaInvalida
	}
	cliente, err := uc.clientes.GetByID(ctx, in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil || !cliente.Activo {
		return nil, domain.ErrNotFound
	}
	cobrador, err := uc.usuarios.GetByID(ctx, in.CobradorID)
	if err != nil {
		return nil, err
	}
	if cobrador == nil || !cobrador.Activo {
		return nil, domain.ErrNotFound
	}

	fechaInicio := time.Now()
	if in.FechaInicio != "" {
		if t, err := time.Parse("2006-01-02", in.FechaInicio); err == nil {
			fechaInicio = t
		}
	}

	interes := in.Capital.Mul(in.TasaInteres).Div(decimal.NewFromInt(100))
	total := in.Capital.Add(interes)
	now := time.Now()
	p := &entity.Prestamo{
		ID:          uuid.New().String(),
		ClienteID:   in.ClienteID,
		CobradorID:  in.CobradorID,
		Capital:     in.Capital,
		TasaInteres: in.TasaInteres,
		MontoTotal:  total,
		Saldo:       total,
		Cuotas:      in.Cuotas,
		Frecuencia:  in.Frecuencia,
		Estado:      entity.PrestamoActivo,
		FechaInicio: fechaInicio,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.prestamos.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPrestamoResponse(p), nil
}

// GetByID obtiene un préstamo.
func (uc *PrestamoUseCase) GetByID(ctx context.Context, id string) (*dto.PrestamoResponse, error) {
	p, err := uc.prestamos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPrestamoResponse(p), nil
}

// ListByCliente lista los préstamos de un cliente.
func (uc *PrestamoUseCase) ListByCliente(ctx context.Context, clienteID string) ([]*dto.PrestamoResponse, error) {
	list, err := uc.prestamos.ListByCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	return toPrestamoResponses(list), nil
}

// ListByCobrador lista la cartera de un cobrador.
func (uc *PrestamoUseCase) ListByCobrador(ctx context.Context, cobradorID string, limit, offset int) ([]*dto.PrestamoResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.prestamos.ListByCobrador(ctx, cobradorID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toPrestamoResponses(list), nil
}

// RegistrarPago aplica un abono: baja el saldo y marca PAGADO al llegar a cero.
// El monto no puede exceder el saldo pendiente.
func (uc *PrestamoUseCase) RegistrarPago(ctx context.Context, cobradorID string, in dto.CreatePagoRequest) (*dto.PagoResponse, error) {
	if in.Monto.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrEntradaInvalida
	}
	p, err := uc.prestamos.GetByID(ctx, in.PrestamoID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !p.AdmitePagos() {
		return nil, domain.ErrPrestamoCerrado
	}
	if in.Monto.GreaterThan(p.Saldo) {
		return nil, domain.ErrEntradaInvalida
	}

	recibo, err := gonanoid.Generate(reciboAlfabeto, 10)
	if err != nil {
		return nil, fmt.Errorf("generar recibo: %w", err)
	}
	now := time.Now()
	pago := &entity.Pago{
		ID:         uuid.New().String(),
		PrestamoID: p.ID,
		CobradorID: cobradorID,
		Recibo:     recibo,
		Monto:      in.Monto,
		Fecha:      now,
		Nota:       in.Nota,
		CreatedAt:  now,
	}
	nuevoSaldo := p.Saldo.Sub(in.Monto)
	estado := p.Estado
	if nuevoSaldo.IsZero() {
		estado = entity.PrestamoPagado
	}
	err = uc.tx.Run(ctx, func(pagos repository.PagoRepository, prestamos repository.PrestamoRepository) error {
		if err := pagos.Create(ctx, pago); err != nil {
			return err
		}
		return prestamos.UpdateSaldo(ctx, p.ID, nuevoSaldo, estado)
	})
	if err != nil {
		return nil, err
	}

	return &dto.PagoResponse{
		ID:            pago.ID,
		PrestamoID:    pago.PrestamoID,
		CobradorID:    pago.CobradorID,
		Recibo:        pago.Recibo,
		Monto:         pago.Monto,
		Fecha:         pago.Fecha,
		Nota:          pago.Nota,
		SaldoRestante: nuevoSaldo,
	}, nil
}

// ListPagos lista los abonos de un préstamo.
func (uc *PrestamoUseCase) ListPagos(ctx context.Context, prestamoID string) ([]*dto.PagoResponse, error) {
	list, err := uc.pagos.ListByPrestamo(ctx, prestamoID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PagoResponse, 0, len(list))
	for _, pg := range list {
		out = append(out, &dto.PagoResponse{
			ID:         pg.ID,
			PrestamoID: pg.PrestamoID,
			CobradorID: pg.CobradorID,
			Recibo:     pg.Recibo,
			Monto:      pg.Monto,
			Fecha:      pg.Fecha,
			Nota:       pg.Nota,
		})
	}
	return out, nil
}

// Anular cancela un préstamo y emite el evento de auditoría.
func (uc *PrestamoUseCase) Anular(ctx context.Context, id string, ev Evento) error {
	p, err := uc.prestamos.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if p.Estado == entity.PrestamoPagado || p.Estado == entity.PrestamoAnulado {
		return domain.ErrConflicto
	}
	if err := uc.prestamos.UpdateEstado(ctx, id, entity.PrestamoAnulado); err != nil {
		return err
	}
	ev.Accion = entity.AuditoriaEliminar
	ev.Entidad = "prestamo"
	ev.EntidadID = id
	ev.Detalle = fmt.Sprintf(`{"cliente_id":%q,"saldo":%q}`, p.ClienteID, p.Saldo.String())
	uc.auditoria.Emit(ctx, ev)
	return nil
}

func toPrestamoResponse(p *entity.Prestamo) *dto.PrestamoResponse {
	return &dto.PrestamoResponse{
		ID:          p.ID,
		ClienteID:   p.ClienteID,
		CobradorID:  p.CobradorID,
		Capital:     p.Capital,
		TasaInteres: p.TasaInteres,
		MontoTotal:  p.MontoTotal,
		Saldo:       p.Saldo,
		Cuotas:      p.Cuotas,
		Frecuencia:  p.Frecuencia,
		Estado:      p.Estado,
		FechaInicio: p.FechaInicio,
		CreatedAt:   p.CreatedAt,
	}
}

func toPrestamoResponses(list []*entity.Prestamo) []*dto.PrestamoResponse {
	out := make([]*dto.PrestamoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPrestamoResponse(p))
	}
	return out
}
