// Package pdf genera el documento imprimible de una nota de recepción de mercancía (GRN).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del documento  │  N° GRN + Fecha recepción  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRODUCTO: Nombre / Marca / Ubicación                        │
//	│  PROVEEDOR: Nombre + contacto (o "Sin proveedor")            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Anterior | Nueva | Ajuste | Tipo | Precio           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id de la nota + registrado por            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger/internal/application/inventory"
	"github.com/jhoicas/pos-ledger/internal/domain/entity"
)

var _ inventory.GRNPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa inventory.GRNPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company string
}

// NewMarotoPDFGenerator construye el generador; company aparece como autor del documento.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company}
}

// GenerateGRNPDF genera el PDF y devuelve sus bytes. supplier puede ser nil.
func (g *MarotoPDFGenerator) GenerateGRNPDF(note *entity.GRNNote, product *entity.Product, supplier *entity.Supplier) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Nota de recepción "+note.GRNNumber, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(note))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(productRow(product))
	m.AddRows(supplierRow(supplier))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRow(note))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(note))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(note *entity.GRNNote) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("NOTA DE RECEPCIÓN DE MERCANCÍA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Goods Received Note", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("N° GRN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(note.GRNNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Recibido: "+note.ReceivedDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func productRow(p *entity.Product) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PRODUCTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(p.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Marca: %s   |   Ubicación: %s   |   Estado: %s",
				nonEmpty(p.BrandName, "—"),
				nonEmpty(p.Location, "—"),
				p.Status,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func supplierRow(s *entity.Supplier) core.Row {
	name, contact := inventory.UnassignedSupplier, "—"
	if s != nil {
		name = s.Name
		contact = fmt.Sprintf("Email: %s   |   Tel: %s", nonEmpty(s.Email, "—"), nonEmpty(s.Contact, "—"))
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}),
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
		h("Cant. anterior", 2, align.Center),
		h("Cant. nueva", 2, align.Center),
		h("Ajuste", 2, align.Center),
		h("Tipo", 3, align.Center),
		h("Precio", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRow(note *entity.GRNNote) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 9, Align: a, Top: 1, Right: 1}))
	}
	adjusted := strconv.Itoa(note.AdjustedQuantity)
	if note.AdjustedQuantity > 0 {
		adjusted = "+" + adjusted
	}
	return row.New(8).Add(
		cell(strconv.Itoa(note.PreviousQuantity), 2, align.Center),
		cell(strconv.Itoa(note.NewQuantity), 2, align.Center),
		cell(adjusted, 2, align.Center),
		cell(adjustmentLabel(note.AdjustmentType), 3, align.Center),
		cell("$"+formatMoney(note.Price), 3, align.Right),
	)
}

func footerRow(note *entity.GRNNote) core.Row {
	admin := "—"
	if note.AdminID != nil {
		admin = *note.AdminID
	}
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(note.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Registrado por: "+admin, props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New("Emitido: "+note.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Top: 10, Left: 3, Color: colorGray}),
			text.New("Documento de auditoría. No modificable.", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 20, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func adjustmentLabel(t string) string {
	switch t {
	case entity.AdjustmentAddition:
		return "Adición"
	case entity.AdjustmentReduction:
		return "Reducción"
	default:
		return t
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con puntos de miles y coma decimal.
// Ej: 25000.5 → "25.000,50", 1000000 → "1.000.000,00"
func formatMoney(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "," + frac
}
