package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

// CierrePDFGenerator puerto de render del reporte de cierre.
type CierrePDFGenerator interface {
	GenerateCierrePDF(ctx context.Context, cierre *entity.CierreDiario, cobrador *entity.User) ([]byte, error)
}

// CierreUseCase resumen y confirmación del cierre diario por cobrador.
type CierreUseCase struct {
	cierres  repository.CierreRepository
	usuarios repository.UserRepository
	pdf      CierrePDFGenerator
}

// NewCierreUseCase construye el caso de uso.
func NewCierreUseCase(cierres repository.CierreRepository, usuarios repository.UserRepository, pdf CierrePDFGenerator) *CierreUseCase {
	return &CierreUseCase{cierres: cierres, usuarios: usuarios, pdf: pdf}
}

// Resumen agrega la operación del cobrador en la fecha, sin confirmar nada.
func (uc *CierreUseCase) Resumen(ctx context.Context, cobradorID string, fechaStr string) (*dto.ResumenCierreResponse, error) {
	f, err := time.Parse("2006-01-02", fechaStr)
	if err != nil {
		return nil, domain.ErrEntradaInvalida
	}
	r, err := uc.cierres.Resumen(ctx, cobradorID, f)
	if err != nil {
		return nil, err
	}
	return &dto.ResumenCierreResponse{
		CobradorID:     r.CobradorID,
		Fecha:          f.Format("2006-01-02"),
		TotalRecaudado: r.TotalRecaudado,
		NumPagos:       r.NumPagos,
		TotalPrestado:  r.TotalPrestado,
		NumPrestamos:   r.NumPrestamos,
		TotalEntradas:  r.TotalEntradas,
		TotalSalidas:   r.TotalSalidas,
		EfectivoTeoria: r.EfectivoEsperado(),
	}, nil
}

// Confirmar registra el cierre con el efectivo contado. Un cobrador solo
// puede tener un cierre por fecha.
func (uc *CierreUseCase) Confirmar(ctx context.Context, cerradoPor string, in dto.CreateCierreRequest) (*dto.CierreResponse, error) {
	f, err := time.Parse("2006-01-02", in.Fecha)
	if err != nil {
		return nil, domain.ErrEntradaInvalida
	}
	existente, err := uc.cierres.GetByCobradorFecha(ctx, in.CobradorID, f)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrConflicto
	}

	r, err := uc.cierres.Resumen(ctx, in.CobradorID, f)
	if err != nil {
		return nil, err
	}
	teoria := r.EfectivoEsperado()
	c := &entity.CierreDiario{
		ID:             uuid.New().String(),
		CobradorID:     in.CobradorID,
		Fecha:          f,
		TotalRecaudado: r.TotalRecaudado,
		TotalPrestado:  r.TotalPrestado,
		TotalEntradas:  r.TotalEntradas,
		TotalSalidas:   r.TotalSalidas,
		EfectivoTeoria: teoria,
		EfectivoReal:   in.EfectivoReal,
		Descuadre:      in.EfectivoReal.Sub(teoria),
		Observacion:    in.Observacion,
		CerradoPor:     cerradoPor,
		CreatedAt:      time.Now(),
	}
	if err := uc.cierres.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCierreResponse(c), nil
}

// GetByID obtiene un cierre.
func (uc *CierreUseCase) GetByID(ctx context.Context, id string) (*dto.CierreResponse, error) {
	c, err := uc.cierres.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCierreResponse(c), nil
}

// List lista cierres en el rango de fechas.
func (uc *CierreUseCase) List(ctx context.Context, desdeStr, hastaStr string, limit, offset int) ([]*dto.CierreResponse, error) {
	desde, hasta, err := rangoFechas(desdeStr, hastaStr)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.cierres.List(ctx, desde, hasta, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CierreResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCierreResponse(c))
	}
	return out, nil
}

// PDF renderiza el reporte del cierre.
func (uc *CierreUseCase) PDF(ctx context.Context, id string) ([]byte, error) {
	c, err := uc.cierres.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	cobrador, err := uc.usuarios.GetByID(ctx, c.CobradorID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateCierrePDF(ctx, c, cobrador)
}

func rangoFechas(desdeStr, hastaStr string) (time.Time, time.Time, error) {
	hasta := time.Now()
	desde := hasta.AddDate(0, -1, 0)
	if desdeStr != "" {
		t, err := time.Parse("2006-01-02", desdeStr)
		if err != nil {
			return desde, hasta, domain.ErrEntradaInvalida
		}
		desde = t
	}
	if hastaStr != "" {
		t, err := time.Parse("2006-01-02", hastaStr)
		if err != nil {
			return desde, hasta, domain.ErrEntradaInvalida
		}
		hasta = t.Add(24*time.Hour - time.Nanosecond)
	}
	return desde, hasta, nil
}

func toCierreResponse(c *entity.CierreDiario) *dto.CierreResponse {
	return &dto.CierreResponse{
		ID:             c.ID,
		CobradorID:     c.CobradorID,
		Fecha:          c.Fecha,
		TotalRecaudado: c.TotalRecaudado,
		TotalPrestado:  c.TotalPrestado,
		TotalEntradas:  c.TotalEntradas,
		TotalSalidas:   c.TotalSalidas,
		EfectivoTeoria: c.EfectivoTeoria,
		EfectivoReal:   c.EfectivoReal,
		Descuadre:      c.Descuadre,
		Observacion:    c.Observacion,
		CerradoPor:     c.CerradoPor,
		CreatedAt:      c.CreatedAt,
	}
}
