package pricelist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/pricelist"
)

func TestNextEditable_SaltaFromQtyDePrimerTramo(t *testing.T) {
	g := seededGrid(t, false, "A", "B")

	next, ok := g.NextEditable(pricelist.Cell{Row: 0, Field: pricelist.FieldRate})
	require.True(t, ok)
	assert.Equal(t, pricelist.Cell{Row: 0, Field: pricelist.FieldDiscount}, next)

	next, ok = g.NextEditable(pricelist.Cell{Row: 0, Field: pricelist.FieldDiscount})
	require.True(t, ok)
	assert.Equal(t, pricelist.Cell{Row: 1, Field: pricelist.FieldLessThanQty}, next)

	_, ok = g.NextEditable(pricelist.Cell{Row: 1, Field: pricelist.FieldDiscount})
	assert.False(t, ok)
}

func TestEnter_MueveFoco(t *testing.T) {
	g := seededGrid(t, false, "A")
	res, err := g.Enter(pricelist.Cell{Row: 0, Field: pricelist.FieldLessThanQty})
	require.NoError(t, err)
	assert.Equal(t, pricelist.EnterMoved, res.Action)
	assert.Equal(t, pricelist.FieldRate, res.Focus.Field)
}

func TestEnter_DescuentoAgregaTramo(t *testing.T) {
	g := seededGrid(t, false, "A")
	id := g.Rows()[0].ID
	mustSet(t, g, id, pricelist.FieldLessThanQty, "10")

	res, err := g.Enter(pricelist.Cell{Row: 0, Field: pricelist.FieldDiscount})
	require.NoError(t, err)
	assert.Equal(t, pricelist.EnterAppended, res.Action)
	require.NotNil(t, res.Appended)
	assert.Equal(t, "11", res.Appended.FromQty.Text())
	require.NotNil(t, res.Focus)
	assert.Equal(t, pricelist.Cell{Row: 1, Field: pricelist.FieldFromQty}, *res.Focus)
}

func TestEnter_DescuentoSinTope(t *testing.T) {
	g := seededGrid(t, false, "A")
	_, err := g.Enter(pricelist.Cell{Row: 0, Field: pricelist.FieldDiscount})
	assert.ErrorIs(t, err, domain.ErrSlabBoundaryUnset)
	assert.Equal(t, 1, g.Len())
}

func TestEnter_ModoVistaNoHaceNada(t *testing.T) {
	g := seededGrid(t, true, "A")
	res, err := g.Enter(pricelist.Cell{Row: 0, Field: pricelist.FieldDiscount})
	require.NoError(t, err)
	assert.Equal(t, pricelist.EnterNone, res.Action)

	res, err = g.Enter(pricelist.Cell{Row: 0, Field: pricelist.FieldRate})
	require.NoError(t, err)
	assert.Equal(t, pricelist.EnterNone, res.Action, "sin celdas editables")
}
