package pricelist_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/pricelist"
)

func TestGroupByItem_UnaEntradaPorArticulo(t *testing.T) {
	rows := []pricelist.Row{
		row("A", "1", "5", "10", "0"),
		row("A", "6", "0", "20", "0"),
	}
	items := pricelist.GroupByItem(pricelist.ValidRows(rows))
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].ItemID)
	require.Len(t, items[0].Slabs, 2)
	assert.Equal(t, "1", items[0].Slabs[0].FromQty.String())
	assert.Equal(t, "6", items[0].Slabs[1].FromQty.String())
	assert.Equal(t, "20", items[0].Slabs[1].Rate.String())
}

func TestGroupByItem_OrdenDePrimeraAparicion(t *testing.T) {
	rows := []pricelist.Row{
		row("B", "1", "", "5", "0"),
		row("A", "1", "", "5", "0"),
		row("B", "10", "", "4", "0"),
	}
	items := pricelist.GroupByItem(rows)
	require.Len(t, items, 2)
	assert.Equal(t, "B", items[0].ItemID)
	assert.Len(t, items[0].Slabs, 2)
	assert.Equal(t, "A", items[1].ItemID)
}

func TestBuildPagePayload_SinFilasValidas(t *testing.T) {
	_, err := pricelist.BuildPagePayload(pricelist.Header{CompanyID: "C"}, 1, []pricelist.Row{row("A", "1", "0", "0", "0")})
	assert.ErrorIs(t, err, domain.ErrNoValidRows)
}

func TestBuildPagePayload_GrupoTodos(t *testing.T) {
	p, err := pricelist.BuildPagePayload(pricelist.Header{CompanyID: "C", PriceLevel: "Retail", ApplicableFrom: "2026-01-01"}, 2,
		[]pricelist.Row{row("A", "1", "", "10", "0")})
	require.NoError(t, err)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "All", m["stockGroupName"])
	assert.NotContains(t, m, "stockGroupId")
	assert.NotContains(t, m, "clientId")
	assert.EqualValues(t, 2, m["page"])
}

func TestBuildPagePayload_GrupoEspecifico(t *testing.T) {
	p, err := pricelist.BuildPagePayload(pricelist.Header{
		CompanyID: "C", ClientID: "K", StockGroupID: "G", StockGroupName: "Granos",
	}, 1, []pricelist.Row{row("A", "1", "", "10", "0")})
	require.NoError(t, err)
	assert.Equal(t, "G", p.StockGroupID)
	assert.Equal(t, "Granos", p.StockGroupName)
	assert.Equal(t, "K", p.ClientID)
}
