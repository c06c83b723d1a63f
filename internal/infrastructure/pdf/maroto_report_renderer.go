// Package pdf renderiza los reportes del sistema con Maroto v2.
//
// Layout de la página A4 (apaisada):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte        │  Período + generado    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SECCIÓN: título                                             │
//	│    resumen (etiqueta: valor)                                 │
//	│    TABLA: cabecera con fondo + filas alternadas              │
//	│  ...                                                         │
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
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventario-ventas/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoReportRenderer implementa reports.Renderer usando Maroto v2.
type MarotoReportRenderer struct {
	author string
}

// NewMarotoReportRenderer construye el renderer. author queda en los metadatos del PDF.
func NewMarotoReportRenderer(author string) *MarotoReportRenderer {
	return &MarotoReportRenderer{author: author}
}

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoReportRenderer) Render(_ context.Context, doc reports.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(nonEmpty(g.author, "inventario-ventas"), true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, s := range doc.Sections {
		m.AddRows(row.New(4))
		m.AddRows(sectionTitleRow(s.Title))
		for _, r := range summaryRows(s.Summary) {
			m.AddRows(r)
		}
		if len(s.Columns) == 0 {
			continue
		}
		m.AddRows(tableHeaderRow(s.Columns))
		if len(s.Rows) == 0 {
			m.AddRows(emptyRow())
			continue
		}
		for i, r := range s.Rows {
			m.AddRows(tableRow(s.Columns, r, i%2 == 1))
		}
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y período + fecha de generación (der).
func headerRow(doc reports.Document) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(doc.Subtitle, props.Text{
				Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Generado: "+doc.Generated, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1}),
	))
}

// summaryRows: una fila por métrica, etiqueta en negrita.
func summaryRows(metrics []reports.Metric) []core.Row {
	rows := make([]core.Row, 0, len(metrics))
	for _, mt := range metrics {
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(mt.Label+":", props.Text{Style: fontstyle.Bold, Size: 9, Top: 1})),
			col.New(8).Add(text.New(mt.Value, props.Text{Size: 9, Top: 1})),
		))
	}
	return rows
}

// tableHeaderRow: cabecera con fondo azul.
func tableHeaderRow(cols []reports.Column) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cells = append(cells, col.New(c.Width).Add(text.New(c.Header, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: alignOf(c),
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cells...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRow(cols []reports.Column, values []string, striped bool) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for i, c := range cols {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		cells = append(cells, col.New(c.Width).Add(text.New(v, props.Text{
			Size: 8, Align: alignOf(c), Top: 1, Left: 1, Right: 1,
		})))
	}
	r := row.New(7).Add(cells...)
	if striped {
		r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

func emptyRow() core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New("Sin registros para el período", props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func alignOf(c reports.Column) align.Type {
	if c.Right {
		return align.Right
	}
	return align.Left
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
