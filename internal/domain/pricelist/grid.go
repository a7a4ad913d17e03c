package pricelist

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
)

// Grid filas de la página en edición. No es segura para uso concurrente;
// el editor que la contiene serializa el acceso.
type Grid struct {
	rows     []Row
	ids      IDGenerator
	readOnly bool
}

// NewGrid crea una grilla vacía. readOnly bloquea toda edición (modo vista).
func NewGrid(ids IDGenerator, readOnly bool) *Grid {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Grid{ids: ids, readOnly: readOnly}
}

// ReadOnly modo vista.
func (g *Grid) ReadOnly() bool { return g.readOnly }

// Seed reemplaza las filas con un tramo por artículo:
// fromQty dado (1 si está vacío), lessThanQty=0, rate=0, discount=0.
func (g *Grid) Seed(items []entity.StockItem, fromQty Amount) {
	if fromQty.IsBlank() || !fromQty.Decimal().IsPositive() {
		fromQty = AmountInt(1)
	}
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, Row{
			ID:          g.ids.NewID(),
			ItemID:      it.ID,
			Name:        it.Name,
			FromQty:     fromQty,
			LessThanQty: AmountInt(0),
			Rate:        AmountInt(0),
			Discount:    AmountInt(0),
		})
	}
	g.rows = rows
}

// Hydrate aplana items[].slabs[] de una lista guardada en filas, en el orden almacenado.
func (g *Grid) Hydrate(items []entity.PriceListItem) {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		for _, s := range it.Slabs {
			rows = append(rows, Row{
				ID:          g.ids.NewID(),
				ItemID:      it.ItemID,
				Name:        it.ItemName,
				FromQty:     AmountOf(s.FromQty),
				LessThanQty: AmountOf(s.LessThanQty),
				Rate:        AmountOf(s.Rate),
				Discount:    AmountOf(s.Discount),
			})
		}
	}
	g.rows = rows
}

// Rows copia de las filas actuales.
func (g *Grid) Rows() []Row {
	out := make([]Row, len(g.rows))
	copy(out, g.rows)
	return out
}

// Len número de filas.
func (g *Grid) Len() int { return len(g.rows) }

// IndexOf posición de la fila con ese id, -1 si no existe.
func (g *Grid) IndexOf(id string) int {
	for i := range g.rows {
		if g.rows[i].ID == id {
			return i
		}
	}
	return -1
}

// IsFirstOfItem la fila en i es el primer tramo de su artículo (la anterior es de otro artículo).
func (g *Grid) IsFirstOfItem(i int) bool {
	if i <= 0 {
		return true
	}
	return g.rows[i-1].ItemID != g.rows[i].ItemID
}

// Editable indica si la celda admite edición: nada en modo vista y nunca
// el fromQty del primer tramo de un artículo.
func (g *Grid) Editable(i int, f Field) bool {
	if g.readOnly || i < 0 || i >= len(g.rows) {
		return false
	}
	if f == FieldFromQty && g.IsFirstOfItem(i) {
		return false
	}
	return true
}

// SetField aplica una edición de texto sobre una celda. Editar lessThanQty
// arrastra el fromQty del tramo siguiente del mismo artículo a lessThanQty+1.
func (g *Grid) SetField(rowID string, f Field, input string) (Row, error) {
	if g.readOnly {
		return Row{}, domain.ErrReadOnly
	}
	i := g.IndexOf(rowID)
	if i < 0 {
		return Row{}, domain.ErrRowNotFound
	}
	if !g.Editable(i, f) {
		return Row{}, fmt.Errorf("%w: %s", domain.ErrFieldNotEditable, f)
	}
	c := g.rows[i].cell(f)
	if c == nil {
		return Row{}, fmt.Errorf("%w: %s", domain.ErrFieldNotEditable, f)
	}
	*c = Amount{text: SanitizeEdit(c.text, input)}

	if f == FieldLessThanQty && !c.IsBlank() && i+1 < len(g.rows) && g.rows[i+1].ItemID == g.rows[i].ItemID {
		g.rows[i+1].FromQty = AmountOf(c.Decimal().Add(decimal.NewFromInt(1)))
	}
	return g.rows[i], nil
}

// Blur normaliza la celda al perder el foco. Solo el descuento cambia:
// vacío o "." queda vacío, el resto se redondea a 2 decimales.
func (g *Grid) Blur(rowID string, f Field) (Row, error) {
	i := g.IndexOf(rowID)
	if i < 0 {
		return Row{}, domain.ErrRowNotFound
	}
	if f == FieldDiscount && !g.readOnly {
		g.rows[i].Discount = Amount{text: NormalizeDiscount(g.rows[i].Discount.text)}
	}
	return g.rows[i], nil
}

// AppendSlab inserta un tramo nuevo justo después de la fila indicada con
// fromQty = lessThanQty+1, lessThanQty vacío y rate/discount en 0.
// Rechaza si el tope de la fila actual no está definido por encima de fromQty.
func (g *Grid) AppendSlab(rowID string) (Row, error) {
	if g.readOnly {
		return Row{}, domain.ErrReadOnly
	}
	i := g.IndexOf(rowID)
	if i < 0 {
		return Row{}, domain.ErrRowNotFound
	}
	cur := g.rows[i]
	if cur.LessThanQty.IsOpen() || !cur.LessThanQty.Decimal().GreaterThan(cur.FromQty.Decimal()) {
		return Row{}, domain.ErrSlabBoundaryUnset
	}
	next := Row{
		ID:          g.ids.NewID(),
		ItemID:      cur.ItemID,
		Name:        cur.Name,
		FromQty:     AmountOf(cur.LessThanQty.Decimal().Add(decimal.NewFromInt(1))),
		LessThanQty: Blank(),
		Rate:        AmountInt(0),
		Discount:    AmountInt(0),
	}
	g.rows = append(g.rows, Row{})
	copy(g.rows[i+2:], g.rows[i+1:])
	g.rows[i+1] = next
	return next, nil
}

// RemoveAt elimina la fila en la posición dada. No reajusta los tramos
// vecinos; Gaps informa los huecos que queden.
func (g *Grid) RemoveAt(i int) (Row, error) {
	if g.readOnly {
		return Row{}, domain.ErrReadOnly
	}
	if i < 0 || i >= len(g.rows) {
		return Row{}, domain.ErrRowNotFound
	}
	removed := g.rows[i]
	g.rows = append(g.rows[:i], g.rows[i+1:]...)
	return removed, nil
}

// DisplayRow fila tal como se presenta: nombre y número de serie solo en la
// primera aparición del artículo.
type DisplayRow struct {
	Row
	Serial          int    `json:"serial,omitempty"`
	ShowName        bool   `json:"showName"`
	DiscountText    string `json:"discountText"`
	FromQtyEditable bool   `json:"fromQtyEditable"`
	Valid           bool   `json:"valid"`
}

// Display numera los artículos por primera aparición.
func (g *Grid) Display() []DisplayRow {
	seen := make(map[string]bool, len(g.rows))
	serial := 0
	out := make([]DisplayRow, 0, len(g.rows))
	for i, r := range g.rows {
		d := DisplayRow{
			Row:             r,
			DiscountText:    DisplayDiscount(r.Discount),
			FromQtyEditable: g.Editable(i, FieldFromQty),
			Valid:           IsValid(r),
		}
		if !seen[r.ItemID] {
			seen[r.ItemID] = true
			serial++
			d.Serial = serial
			d.ShowName = true
		}
		out = append(out, d)
	}
	return out
}

// Gap ruptura de contigüidad entre dos tramos consecutivos de un artículo.
type Gap struct {
	ItemID   string          `json:"itemId"`
	RowID    string          `json:"rowId"` // fila cuyo fromQty no encaja
	Expected decimal.Decimal `json:"expected"`
	Actual   decimal.Decimal `json:"actual"`
	OpenPrev bool            `json:"openPrev"` // el tramo anterior no tiene tope
}

// Gaps informa tramos no contiguos (por ejemplo tras eliminar una fila intermedia).
// Solo diagnostica; no corrige.
func (g *Grid) Gaps() []Gap {
	var gaps []Gap
	for i := 1; i < len(g.rows); i++ {
		prev, cur := g.rows[i-1], g.rows[i]
		if prev.ItemID != cur.ItemID {
			continue
		}
		if prev.LessThanQty.IsOpen() {
			gaps = append(gaps, Gap{ItemID: cur.ItemID, RowID: cur.ID, Actual: cur.FromQty.Decimal(), OpenPrev: true})
			continue
		}
		want := prev.LessThanQty.Decimal().Add(decimal.NewFromInt(1))
		if !cur.FromQty.Decimal().Equal(want) {
			gaps = append(gaps, Gap{ItemID: cur.ItemID, RowID: cur.ID, Expected: want, Actual: cur.FromQty.Decimal()})
		}
	}
	return gaps
}
