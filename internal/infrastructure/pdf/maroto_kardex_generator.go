// Package pdf implementa la generación del kardex de un producto: su
// historial completo de movimientos como reporte PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre + SKU  │  Estado + Unidad de medida         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Delta | Referencia / Razón           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SALDO FINAL (fold sobre el historial)                      │
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

	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ stock.KardexPDFGenerator = (*MarotoKardexGenerator)(nil)

// MarotoKardexGenerator implementa stock.KardexPDFGenerator usando Maroto v2.
type MarotoKardexGenerator struct{}

// NewMarotoKardexGenerator construye el generador.
func NewMarotoKardexGenerator() *MarotoKardexGenerator { return &MarotoKardexGenerator{} }

// GenerateKardexPDF genera el PDF y devuelve sus bytes.
func (g *MarotoKardexGenerator) GenerateKardexPDF(
	_ context.Context,
	product *entity.Product,
	movements []*entity.StockMovement,
	balance decimal.Decimal,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex de producto", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableMovementRows(movements) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(balanceRow(balance, product.UnitOfMeasure, len(movements)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar kardex: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre + SKU (izq) y estado + unidad (der).
func headerRow(product *entity.Product) core.Row {
	statusColor := colorPrimary
	if !product.IsActive() {
		statusColor = colorRed
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(product.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("SKU: "+product.SKU, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("KARDEX DE MOVIMIENTOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(product.Status, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
				Color: statusColor,
			}),
			text.New("Unidad: "+product.UnitOfMeasure, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 3, align.Left),
		h("Tipo", 2, align.Center),
		h("Delta", 2, align.Right),
		h("Referencia / Razón", 5, align.Left),
	)
}

// tableMovementRows: una fila por movimiento, en orden de inserción.
func tableMovementRows(movements []*entity.StockMovement) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, m := range movements {
		deltaColor := colorPrimary
		if m.QuantityChange.IsNegative() {
			deltaColor = colorRed
		}
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(
				m.Timestamp.Format("02/01/2006 15:04"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				m.Type,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				m.QuantityChange.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: deltaColor},
			)),
			col.New(5).Add(text.New(
				movementNote(m),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
		))
	}
	return result
}

// balanceRow: saldo final derivado del log completo.
func balanceRow(balance decimal.Decimal, unit string, count int) core.Row {
	return row.New(10).Add(
		col.New(7).Add(text.New(
			fmt.Sprintf("%d movimiento(s)", count),
			props.Text{Size: 8, Top: 2, Color: colorGray},
		)),
		col.New(5).Add(text.New(
			fmt.Sprintf("SALDO ACTUAL: %s %s", balance.String(), unit),
			props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 1,
			},
		)),
	)
}

// movementNote: razón para ajustes/bajas, referencia documental para
// entradas/salidas, vacío en el resto.
func movementNote(m *entity.StockMovement) string {
	if m.Reason != nil {
		return *m.Reason
	}
	if m.DocumentReference != nil {
		return "Doc: " + *m.DocumentReference
	}
	return ""
}
