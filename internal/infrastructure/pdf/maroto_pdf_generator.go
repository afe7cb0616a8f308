// Package pdf genera el comprobante de cierre diario de un cobrador.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Cierre Diario  │  Cobrador + Fecha                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Monto                                     │
//	│         Recaudado / Prestado / Entradas / Salidas            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Efectivo teórico / Efectivo contado / Descuadre    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Observación + quién registró el cierre              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/prestamos-pro/internal/application/usecase"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ usecase.CierrePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa usecase.CierrePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateCierrePDF genera el PDF del cierre y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateCierrePDF(
	_ context.Context,
	cierre *entity.CierreDiario,
	cobrador *entity.User,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cierre Diario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(cierre, cobrador))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(conceptoRow("Total recaudado (pagos)", cierre.TotalRecaudado))
	m.AddRows(conceptoRow("Total prestado (desembolsos)", cierre.TotalPrestado))
	m.AddRows(conceptoRow("Entradas de caja", cierre.TotalEntradas))
	m.AddRows(conceptoRow("Salidas de caja", cierre.TotalSalidas))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(cierre))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(cierre) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y cobrador + fecha (der).
func headerRow(cierre *entity.CierreDiario, cobrador *entity.User) core.Row {
	fecha := cierre.Fecha.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New("CIERRE DIARIO DE CAJA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de arqueo del cobrador", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(cobrador.NombreCompleto(), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	return row.New(8).Add(
		col.New(8).Add(text.New("Concepto", props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2, Left: 1,
		})),
		col.New(4).Add(text.New("Monto", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func conceptoRow(label string, monto decimal.Decimal) core.Row {
	return row.New(7).Add(
		col.New(8).Add(text.New(label, props.Text{Size: 9, Top: 1, Left: 1})),
		col.New(4).Add(text.New("$"+formatMoney(monto.StringFixed(0)), props.Text{
			Size: 9, Align: align.Right, Top: 1, Right: 1,
		})),
	)
}

// totalsRow: teoría vs contado, con el descuadre en rojo si no es cero.
func totalsRow(cierre *entity.CierreDiario) core.Row {
	descuadreColor := colorPrimary
	if !cierre.Descuadre.IsZero() {
		descuadreColor = colorRed
	}
	label := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: c, Right: 2,
		})
	}
	value := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: c, Right: 1,
		})
	}
	return row.New(26).Add(
		col.New(4),
		col.New(4).Add(
			label("Efectivo teórico:", colorPrimary),
			label("Efectivo contado:", colorPrimary),
			label("Descuadre:", descuadreColor),
		),
		col.New(4).Add(
			value("$"+formatMoney(cierre.EfectivoTeoria.StringFixed(0)), colorPrimary),
			value("$"+formatMoney(cierre.EfectivoReal.StringFixed(0)), colorPrimary),
			value("$"+formatMoney(cierre.Descuadre.StringFixed(0)), descuadreColor),
		),
	)
}

func footerRows(cierre *entity.CierreDiario) []core.Row {
	rows := []core.Row{}
	if cierre.Observacion != "" {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("Observación: "+cierre.Observacion, props.Text{
				Size: 8, Color: colorGray, Top: 2,
			}),
		)))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Registrado el %s. Conserve este comprobante como soporte del arqueo.",
			cierre.CreatedAt.Format("02/01/2006 15:04")), props.Text{
			Size: 6.5, Color: colorGray, Top: 2,
		}),
	)))
	return rows
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if neg {
		return "-" + string(buf)
	}
	return string(buf)
}
