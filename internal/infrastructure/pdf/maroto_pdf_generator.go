// Package pdf genera los reportes de documentos de inventario con Maroto v2.
//
// Reporte de documento (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de documento + Bodega  │  N° + Fecha + Estado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Línea | Artículo | Cant. | P.Unit | Total            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Cantidad total / Monto total                       │
//	└─────────────────────────────────────────────────────────────┘
//
// Hoja de etiquetas OD5160 (Letter): 3 columnas x 10 filas por página, CODE128.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/inventario-documentos/internal/application/report"
	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
)

var _ report.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// Geometría OD5160 en milímetros.
const (
	labelColumns   = 3
	labelRows      = report.LabelsPerPage / labelColumns
	labelHeight    = 25.4
	labelTopMargin = 12.7
	labelSideMarg  = 4.8
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author  string
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador; author va a los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author, printer: message.NewPrinter(language.Spanish)}
}

// GenerateDocumentPDF genera el reporte del documento y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(_ context.Context, doc *entity.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(TypeLabel(doc.Type)+" "+doc.ID, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if doc.Description != "" {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New(doc.Description, props.Text{Size: 9, Top: 2, Color: colorGray}),
		)))
	}

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableDetailRows(doc.Details)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// GenerateBarcodeSheetPDF genera una página por cada LabelsPerPage celdas.
func (g *MarotoPDFGenerator) GenerateBarcodeSheetPDF(_ context.Context, doc *entity.Document, cells []*report.Label) ([]byte, error) {
	if len(cells) == 0 || len(cells)%report.LabelsPerPage != 0 {
		return nil, fmt.Errorf("pdf: la grilla debe tener múltiplos de %d celdas, tiene %d", report.LabelsPerPage, len(cells))
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(labelSideMarg).WithRightMargin(labelSideMarg).
		WithTopMargin(labelTopMargin).WithBottomMargin(5).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle("Etiquetas "+doc.ID+" "+report.SheetOD5160, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)
	for start := 0; start < len(cells); start += report.LabelsPerPage {
		p := page.New()
		for r := 0; r < labelRows; r++ {
			offset := start + r*labelColumns
			p.Add(labelRow(cells[offset : offset+labelColumns]))
		}
		m.AddPages(p)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiquetas: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tipo + bodega (izq) y N° + fecha + estado (der).
func headerRow(doc *entity.Document) core.Row {
	warehouse := "—"
	if !entity.IsWarehouseEmpty(doc.Warehouse) {
		warehouse = doc.Warehouse.WarehouseName
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(TypeLabel(doc.Type), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Bodega: "+warehouse, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(nonEmpty(doc.ID, "SIN NÚMERO"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+doc.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+statusLabel(doc.Status), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Línea", 1, align.Center),
		h("Artículo", 5, align.Left),
		h("Cant.", 2, align.Right),
		h("Precio Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por línea vigente.
func (g *MarotoPDFGenerator) tableDetailRows(details []entity.Detail) []core.Row {
	result := make([]core.Row, 0, len(details))
	for _, d := range details {
		if d.Deleted {
			continue
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", d.LineNumber), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(d.Item.ItemName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.formatQuantity(d.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+g.formatMoney(d.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+g.formatMoney(d.TotalPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func (g *MarotoPDFGenerator) totalsRow(doc *entity.Document) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 6,
		})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label("Cantidad total:"),
			text.New("MONTO TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(g.formatQuantity(doc.TotalQuantity), props.Text{Size: 9, Align: align.Right, Right: 1}),
			grand("$"+g.formatMoney(doc.TotalAmount)),
		),
	)
}

// labelRow: tres celdas; las vacías se dejan en blanco.
func labelRow(cells []*report.Label) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		if c == nil {
			cols = append(cols, col.New(12/labelColumns))
			continue
		}
		cols = append(cols, col.New(12/labelColumns).Add(
			code.NewBar(c.Barcode, props.Barcode{Percent: 60, Center: true}),
			text.New(c.ItemName, props.Text{Size: 6, Align: align.Center, Top: 17}),
			text.New(c.Barcode, props.Text{Size: 6, Align: align.Center, Top: 20, Color: colorGray}),
		))
	}
	return row.New(labelHeight).Add(cols...)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// TypeLabel nombre del tipo de documento para el usuario.
func TypeLabel(t entity.DocumentType) string {
	switch t {
	case entity.DocumentTypeInput:
		return "Ingreso"
	case entity.DocumentTypeSaleReturn:
		return "Devolución por venta"
	case entity.DocumentTypeOutput:
		return "Salida"
	case entity.DocumentTypePurchaseReturn:
		return "Devolución por compra"
	}
	return string(t)
}

func statusLabel(s entity.DocumentStatus) string {
	if s == entity.DocumentStatusReleased {
		return "Liberado"
	}
	return "Abierto"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney separadores de miles y decimales en español: 1234567.891 → "1.234.567,89".
func (g *MarotoPDFGenerator) formatMoney(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return g.printer.Sprintf("%.2f", f)
}

func (g *MarotoPDFGenerator) formatQuantity(v decimal.Decimal) string {
	if v.Equal(v.Truncate(0)) {
		return g.printer.Sprintf("%d", v.IntPart())
	}
	f, _ := v.Round(4).Float64()
	return g.printer.Sprint(f)
}
