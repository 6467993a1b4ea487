// Package pdf genera el comprobante de recepción de mercancía.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Comprobante de recepción │  N° Recibo + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Nombre / Contacto / Tel                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Aceptadas | Rechazadas              │
//	│  SERIALES por línea                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el número de recibo + firmas                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/Bodega-api/internal/application/procurement"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var _ procurement.ReceiptPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa procurement.ReceiptPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company string
}

// NewMarotoPDFGenerator construye el generador; company aparece como autor del documento.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company}
}

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReceiptPDF(_ context.Context, doc procurement.ReceiptDocument) ([]byte, error) {
	if doc.Receipt == nil {
		return nil, fmt.Errorf("pdf: recepción vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de recepción "+doc.Receipt.ReceiptNumber, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc.Receipt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(doc.Supplier))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, l := range doc.Lines {
		m.AddRows(lineRows(l)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc.Lines))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(doc.Receipt))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *entity.GoodsReceipt) core.Row {
	origin := "Recepción directa"
	if r.ShipmentManifestID != nil {
		origin = fmt.Sprintf("Manifiesto SM-%d", *r.ShipmentManifestID)
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("COMPROBANTE DE RECEPCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Orden PO-%d   |   %s", r.PurchaseOrderID, origin), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(r.ReceiptNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Fecha: "+r.ReceivedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

func supplierRow(s *entity.Supplier) core.Row {
	name, detail := "—", ""
	if s != nil {
		name = s.Name
		detail = fmt.Sprintf("Contacto: %s   |   Tel: %s   |   Email: %s",
			nonEmpty(s.ContactPerson, "—"),
			nonEmpty(s.Phone, "—"),
			nonEmpty(s.Email, "—"),
		)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 6, align.Left),
		h("Aceptadas", 2, align.Center),
		h("Rechazadas", 2, align.Center),
	)
}

// lineRows una fila por línea de orden más los seriales agrupados.
func lineRows(l procurement.ReceiptDocumentLine) []core.Row {
	rows := []core.Row{row.New(7).Add(
		col.New(2).Add(text.New(nonEmpty(l.ProductSKU, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(6).Add(text.New(nonEmpty(l.ProductName, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(fmt.Sprint(len(l.Accepted)), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(fmt.Sprint(len(l.Rejected)), props.Text{Size: 8, Align: align.Center, Top: 1})),
	)}
	for _, chunk := range chunkSerials(l.Accepted, 6) {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 6.5, Color: colorGray, Left: 4}),
		)))
	}
	for _, chunk := range chunkSerials(l.Rejected, 6) {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New("Rechazado: "+chunk, props.Text{Size: 6.5, Color: colorDanger, Left: 4}),
		)))
	}
	return rows
}

func totalsRow(lines []procurement.ReceiptDocumentLine) core.Row {
	var accepted, rejected int
	for _, l := range lines {
		accepted += len(l.Accepted)
		rejected += len(l.Rejected)
	}
	bold := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 1}
	return row.New(8).Add(
		col.New(8).Add(text.New("TOTAL UNIDADES:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1, Color: colorPrimary,
		})),
		col.New(2).Add(text.New(fmt.Sprint(accepted), bold)),
		col.New(2).Add(text.New(fmt.Sprint(rejected), bold)),
	)
}

func footerRow(r *entity.GoodsReceipt) core.Row {
	notes := nonEmpty(r.Notes, "Sin observaciones.")
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(r.ReceiptNumber, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Observaciones: "+notes, props.Text{Size: 8, Top: 2, Left: 3, Color: colorGray}),
			text.New("Recibido por usuario #"+fmt.Sprint(r.ReceivedByUserID), props.Text{
				Size: 8, Top: 14, Left: 3,
			}),
			text.New("Firma: ________________________", props.Text{Size: 9, Top: 28, Left: 3}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// chunkSerials agrupa los seriales de n en n separados por coma.
func chunkSerials(serials []string, n int) []string {
	var out []string
	for len(serials) > n {
		out = append(out, strings.Join(serials[:n], ", "))
		serials = serials[n:]
	}
	if len(serials) > 0 {
		out = append(out, strings.Join(serials, ", "))
	}
	return out
}
