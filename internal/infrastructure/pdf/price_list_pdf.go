// Package pdf genera la representación imprimible de una lista de precios.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + Nivel de precio │ Vigencia + Grupo        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Artículo | Desde | Menor que | Tarifa | Dto.     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: artículos / tramos                                  │
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/ports"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// PriceListPDF genera el PDF de una lista de precios con Maroto v2.
type PriceListPDF struct {
	printer *message.Printer
}

// NewPriceListPDF construye el generador. lang define el formato de números
// (separadores de miles y decimales); vacío usa inglés.
func NewPriceListPDF(lang string) *PriceListPDF {
	tag, err := language.Parse(lang)
	if err != nil || lang == "" {
		tag = language.English
	}
	return &PriceListPDF{printer: message.NewPrinter(tag)}
}

// Generate genera el PDF y devuelve sus bytes. companyName puede ir vacío.
func (g *PriceListPDF) Generate(_ context.Context, list *entity.PriceList, companyName string) ([]byte, error) {
	if list == nil {
		return nil, fmt.Errorf("pdf: lista de precios nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Price list "+list.PriceLevel, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(list, companyName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	rows, slabs := g.slabRows(list.Items)
	m.AddRows(rows...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.footerRow(len(list.Items), slabs))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// Export implementa ports.PriceListExporter.
func (g *PriceListPDF) Export(ctx context.Context, list *entity.PriceList, opts ports.ExportOptions) (*ports.ExportedDocument, error) {
	out, err := g.Generate(ctx, list, opts.CompanyName)
	if err != nil {
		return nil, err
	}
	return &ports.ExportedDocument{
		Body:        out,
		ContentType: "application/pdf",
		Filename:    filename(list, "pdf"),
	}, nil
}

func filename(list *entity.PriceList, ext string) string {
	id := list.ID
	if id == "" {
		id = "draft"
	}
	return "price-list-" + id + "." + ext
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *PriceListPDF) headerRow(list *entity.PriceList, companyName string) core.Row {
	group := list.StockGroupName
	if group == "" {
		group = entity.AllStockGroups
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(companyName, list.CompanyID), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Price level: "+nonEmpty(list.PriceLevel, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PRICE LIST", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Applicable from: "+nonEmpty(list.ApplicableFrom, "-"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
			text.New("Stock group: "+group, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
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
		h("#", 1, align.Center),
		h("Item", 4, align.Left),
		h("From qty", 2, align.Right),
		h("Less than", 2, align.Right),
		h("Rate", 2, align.Right),
		h("Disc.", 1, align.Right),
	)
}

// slabRows una fila por tramo; nombre y número solo en el primer tramo del artículo.
func (g *PriceListPDF) slabRows(items []entity.PriceListItem) ([]core.Row, int) {
	var rows []core.Row
	slabs := 0
	for i, it := range items {
		for j, s := range it.Slabs {
			serial, name := "", ""
			if j == 0 {
				serial, name = strconv.Itoa(i+1), it.ItemName
			}
			lessThan := "∞"
			if !s.LessThanQty.IsZero() {
				lessThan = g.qty(s.LessThanQty)
			}
			rows = append(rows, row.New(6).Add(
				col.New(1).Add(text.New(serial, props.Text{Size: 8, Align: align.Center, Top: 1})),
				col.New(4).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
				col.New(2).Add(text.New(g.qty(s.FromQty), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
				col.New(2).Add(text.New(lessThan, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
				col.New(2).Add(text.New(g.Money(s.Rate), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
				col.New(1).Add(text.New(g.Money(s.Discount)+"%", props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			))
			slabs++
		}
	}
	return rows, slabs
}

func (g *PriceListPDF) footerRow(items, slabs int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(g.printer.Sprintf("%d items, %d slabs", items, slabs), props.Text{
			Size: 8, Align: align.Right, Top: 2, Color: colorGray,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// Money formatea un monto con 2 decimales y separador de miles según el idioma.
func (g *PriceListPDF) Money(d decimal.Decimal) string {
	return g.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

func (g *PriceListPDF) qty(d decimal.Decimal) string {
	return g.printer.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(3)))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
