package pricelist_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/pricelist"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func seededGrid(t *testing.T, readOnly bool, names ...string) *pricelist.Grid {
	t.Helper()
	g := pricelist.NewGrid(&pricelist.SequenceGenerator{Prefix: "r"}, readOnly)
	items := make([]entity.StockItem, 0, len(names))
	for _, n := range names {
		items = append(items, entity.StockItem{ID: "id-" + n, Name: n})
	}
	g.Seed(items, pricelist.Blank())
	return g
}

func mustSet(t *testing.T, g *pricelist.Grid, rowID string, f pricelist.Field, v string) {
	t.Helper()
	_, err := g.SetField(rowID, f, v)
	require.NoError(t, err)
}

func row(itemID string, from, lt, rate, disc string) pricelist.Row {
	return pricelist.Row{
		ItemID:      itemID,
		Name:        itemID,
		FromQty:     pricelist.NewAmount(from),
		LessThanQty: pricelist.NewAmount(lt),
		Rate:        pricelist.NewAmount(rate),
		Discount:    pricelist.NewAmount(disc),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Carga
// ──────────────────────────────────────────────────────────────────────────────

func TestSeed_UnTramoPorArticulo(t *testing.T) {
	g := seededGrid(t, false, "A", "B", "C")
	rows := g.Rows()
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, "1", r.FromQty.Text())
		assert.Equal(t, "0", r.LessThanQty.Text())
		assert.Equal(t, "0", r.Rate.Text())
		assert.Equal(t, "0", r.Discount.Text())
		assert.NotEmpty(t, r.ID)
	}
	assert.NotEqual(t, rows[0].ID, rows[1].ID)
}

func TestHydrate_AplanaTramos(t *testing.T) {
	g := pricelist.NewGrid(nil, true)
	g.Hydrate([]entity.PriceListItem{
		{ItemID: "A", ItemName: "Arroz", Slabs: []entity.Slab{
			{FromQty: decimal.NewFromInt(1), LessThanQty: decimal.NewFromInt(10), Rate: decimal.NewFromInt(100)},
			{FromQty: decimal.NewFromInt(11), Rate: decimal.NewFromInt(90)},
		}},
		{ItemID: "B", ItemName: "Frijol", Slabs: []entity.Slab{
			{FromQty: decimal.NewFromInt(1), Rate: decimal.NewFromInt(50), Discount: decimal.NewFromInt(5)},
		}},
	})
	rows := g.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "A", rows[1].ItemID)
	assert.Equal(t, "11", rows[1].FromQty.Text())
	assert.Equal(t, "Frijol", rows[2].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validez
// ──────────────────────────────────────────────────────────────────────────────

func TestIsValid(t *testing.T) {
	assert.False(t, pricelist.IsValid(row("A", "1", "10", "0", "0")), "sin tarifa ni descuento")
	assert.True(t, pricelist.IsValid(row("A", "1", "10", "50", "0")))
	assert.True(t, pricelist.IsValid(row("A", "1", "", "0", "5")), "tope vacío = abierto")
	assert.True(t, pricelist.IsValid(row("A", "6", "0", "20", "0")), "tope 0 = abierto")
	assert.False(t, pricelist.IsValid(row("A", "0", "10", "50", "0")), "fromQty debe ser > 0")
	assert.False(t, pricelist.IsValid(row("A", "10", "10", "50", "0")), "tope igual a desde")
	assert.False(t, pricelist.IsValid(row("A", "10", "5", "50", "0")), "tope menor a desde")
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición, cascada y agregar tramo
// ──────────────────────────────────────────────────────────────────────────────

func TestSetField_SaneaYReemplazaCero(t *testing.T) {
	g := seededGrid(t, false, "A")
	id := g.Rows()[0].ID

	r, err := g.SetField(id, pricelist.FieldRate, "05")
	require.NoError(t, err)
	assert.Equal(t, "5", r.Rate.Text())

	r, err = g.SetField(id, pricelist.FieldRate, "5a.5.0")
	require.NoError(t, err)
	assert.Equal(t, "5.50", r.Rate.Text())
}

func TestSetField_FromQtyPrimerTramoNoEditable(t *testing.T) {
	g := seededGrid(t, false, "A")
	_, err := g.SetField(g.Rows()[0].ID, pricelist.FieldFromQty, "3")
	assert.ErrorIs(t, err, domain.ErrFieldNotEditable)
}

func TestSetField_ModoVista(t *testing.T) {
	g := seededGrid(t, true, "A")
	_, err := g.SetField(g.Rows()[0].ID, pricelist.FieldRate, "3")
	assert.ErrorIs(t, err, domain.ErrReadOnly)
}

func TestSetField_FilaInexistente(t *testing.T) {
	g := seededGrid(t, false, "A")
	_, err := g.SetField("nope", pricelist.FieldRate, "3")
	assert.ErrorIs(t, err, domain.ErrRowNotFound)
}

func TestAppendSlab_RechazaTopeCero(t *testing.T) {
	g := seededGrid(t, false, "A", "B")
	before := g.Rows()

	_, err := g.AppendSlab(before[0].ID)
	assert.ErrorIs(t, err, domain.ErrSlabBoundaryUnset)
	assert.Equal(t, before, g.Rows(), "la grilla no debe cambiar")
}

func TestAppendSlab_RechazaTopeNoMayorADesde(t *testing.T) {
	g := seededGrid(t, false, "A")
	id := g.Rows()[0].ID
	mustSet(t, g, id, pricelist.FieldLessThanQty, "1")

	_, err := g.AppendSlab(id)
	assert.ErrorIs(t, err, domain.ErrSlabBoundaryUnset)
	assert.Equal(t, 1, g.Len())
}

func TestAppendSlab_InsertaDespuesDeLaFila(t *testing.T) {
	g := seededGrid(t, false, "A", "B")
	first := g.Rows()[0].ID
	mustSet(t, g, first, pricelist.FieldLessThanQty, "10")

	added, err := g.AppendSlab(first)
	require.NoError(t, err)

	rows := g.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, added.ID, rows[1].ID)
	assert.Equal(t, "id-A", rows[1].ItemID)
	assert.Equal(t, "11", rows[1].FromQty.Text())
	assert.True(t, rows[1].LessThanQty.IsBlank())
	assert.Equal(t, "0", rows[1].Rate.Text())
	assert.Equal(t, "0", rows[1].Discount.Text())
	assert.Equal(t, "id-B", rows[2].ItemID)
}

func TestCascada_LessThanActualizaSiguiente(t *testing.T) {
	g := seededGrid(t, false, "A", "B")
	first := g.Rows()[0].ID
	mustSet(t, g, first, pricelist.FieldLessThanQty, "10")
	_, err := g.AppendSlab(first)
	require.NoError(t, err)

	mustSet(t, g, first, pricelist.FieldLessThanQty, "25")
	rows := g.Rows()
	assert.Equal(t, "26", rows[1].FromQty.Text())

	// La fila siguiente de otro artículo no se toca.
	second := rows[1].ID
	mustSet(t, g, second, pricelist.FieldLessThanQty, "50")
	assert.Equal(t, "1", g.Rows()[2].FromQty.Text())
}

func TestCascada_TopeVacioNoArrastra(t *testing.T) {
	g := seededGrid(t, false, "A")
	first := g.Rows()[0].ID
	mustSet(t, g, first, pricelist.FieldLessThanQty, "10")
	_, err := g.AppendSlab(first)
	require.NoError(t, err)

	mustSet(t, g, first, pricelist.FieldLessThanQty, "")
	assert.Equal(t, "11", g.Rows()[1].FromQty.Text())
}

func TestBlur_Descuento(t *testing.T) {
	g := seededGrid(t, false, "A")
	id := g.Rows()[0].ID

	mustSet(t, g, id, pricelist.FieldDiscount, "12.345%")
	r, err := g.Blur(id, pricelist.FieldDiscount)
	require.NoError(t, err)
	assert.Equal(t, "12.35", r.Discount.Text())
	assert.True(t, r.Discount.Decimal().Equal(decimal.RequireFromString("12.35")))

	mustSet(t, g, id, pricelist.FieldDiscount, "")
	r, err = g.Blur(id, pricelist.FieldDiscount)
	require.NoError(t, err)
	assert.Equal(t, "", r.Discount.Text(), "vacío sigue vacío, no 0")
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminar, numeración y huecos
// ──────────────────────────────────────────────────────────────────────────────

func TestRemoveAt_SinReajuste(t *testing.T) {
	g := seededGrid(t, false, "A")
	first := g.Rows()[0].ID
	mustSet(t, g, first, pricelist.FieldLessThanQty, "10")
	second, err := g.AppendSlab(first)
	require.NoError(t, err)
	mustSet(t, g, second.ID, pricelist.FieldLessThanQty, "20")
	_, err = g.AppendSlab(second.ID)
	require.NoError(t, err)

	removed, err := g.RemoveAt(1)
	require.NoError(t, err)
	assert.Equal(t, second.ID, removed.ID)

	rows := g.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "21", rows[1].FromQty.Text(), "no se reajusta")

	gaps := g.Gaps()
	require.Len(t, gaps, 1)
	assert.Equal(t, rows[1].ID, gaps[0].RowID)
	assert.True(t, gaps[0].Expected.Equal(decimal.NewFromInt(11)))

	_, err = g.RemoveAt(5)
	assert.ErrorIs(t, err, domain.ErrRowNotFound)
}

func TestDisplay_SerialSoloPrimeraAparicion(t *testing.T) {
	g := seededGrid(t, false, "A", "B")
	first := g.Rows()[0].ID
	mustSet(t, g, first, pricelist.FieldLessThanQty, "10")
	_, err := g.AppendSlab(first)
	require.NoError(t, err)

	d := g.Display()
	require.Len(t, d, 3)
	assert.True(t, d[0].ShowName)
	assert.Equal(t, 1, d[0].Serial)
	assert.False(t, d[1].ShowName)
	assert.Equal(t, 0, d[1].Serial)
	assert.True(t, d[1].FromQtyEditable)
	assert.True(t, d[2].ShowName)
	assert.Equal(t, 2, d[2].Serial)
	assert.False(t, d[2].FromQtyEditable)
}
