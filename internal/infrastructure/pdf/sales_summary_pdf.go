// Package pdf genera el reporte PDF del resumen de ventas del dashboard.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período      │  Granularidad + políticas  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CIFRAS: Total │ Cambio prom. │ Pico │ N buckets             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Periodo | Fecha | Valor | Cambio | Registros         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/inventario-dashboard/internal/application/analytics"
	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
)

var _ analytics.SalesSummaryPDFGenerator = (*SalesSummaryPDF)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// SalesSummaryPDF implementa analytics.SalesSummaryPDFGenerator con Maroto v2.
type SalesSummaryPDF struct{}

// NewSalesSummaryPDF construye el generador.
func NewSalesSummaryPDF() *SalesSummaryPDF { return &SalesSummaryPDF{} }

// GenerateSalesSummaryPDF genera el reporte y devuelve sus bytes.
func (g *SalesSummaryPDF) GenerateSalesSummaryPDF(
	_ context.Context,
	title string,
	summary *dto.SalesSummaryDTO,
) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("pdf: resumen vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(figuresRow(summary.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(bucketRows(summary.Buckets)...)
	if len(summary.Buckets) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin ventas en el período", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + período (izq) y granularidad + políticas (der).
func headerRow(title string, s *dto.SalesSummaryDTO) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(s.StartDate+" a "+s.EndDate, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Granularidad: "+s.Granularity, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New(fmt.Sprintf("missing=%s  order=%s", s.Policies.Missing, s.Policies.Order), props.Text{
				Size: 7, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// figuresRow: las cuatro cifras de la tarjeta del dashboard.
func figuresRow(s dto.SalesSummaryStatsDTO) core.Row {
	figure := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Top: 1, Color: colorGray}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 6, Color: colorPrimary,
			}),
		)
	}
	return row.New(16).Add(
		figure("Valor total", s.TotalValueLabel),
		figure("Cambio promedio", s.AverageChangeLabel),
		figure("Pico", s.PeakDateLabel),
		figure("Periodos", s.CountLabel),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Periodo", 3, align.Left),
		h("Fecha", 3, align.Left),
		h("Valor", 3, align.Right),
		h("Cambio", 2, align.Right),
		h("Reg.", 1, align.Center),
	)
}

// bucketRows: una fila por bucket, con fondo alterno.
func bucketRows(buckets []dto.SalesBucketDTO) []core.Row {
	rows := make([]core.Row, 0, len(buckets))
	for i, b := range buckets {
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		r := row.New(6).Add(
			cell(b.Key, 3, align.Left),
			cell(b.TooltipDate, 3, align.Left),
			cell(b.TooltipValue, 3, align.Right),
			cell(b.ChangeLabel, 2, align.Right),
			cell(strconv.Itoa(b.Count), 1, align.Center),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, r)
	}
	return rows
}
