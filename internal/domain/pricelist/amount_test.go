package pricelist_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/pricelist"
)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"12.5":    "12.5",
		"1a2b3":   "123",
		"1..2.3":  "1.23",
		"..":      ".",
		"12.5%":   "12.5",
		" 40 ":    "40",
		"-7":      "7",
		"":        "",
		"1,000.5": "1000.5",
	}
	for in, want := range cases {
		assert.Equal(t, want, pricelist.Sanitize(in), "Sanitize(%q)", in)
	}
}

func TestSanitizeEdit_CerosIzquierda(t *testing.T) {
	assert.Equal(t, "5", pricelist.SanitizeEdit("0", "05"))
	assert.Equal(t, "0.5", pricelist.SanitizeEdit("0", "0.5"))
	assert.Equal(t, "0", pricelist.SanitizeEdit("0", "00"))
	assert.Equal(t, "0", pricelist.SanitizeEdit("0", "0"), "un solo carácter no se toca")
	assert.Equal(t, "05", pricelist.SanitizeEdit("", "05"), "solo aplica si el valor previo era \"0\"")
}

func TestSanitizeEdit_Idempotente(t *testing.T) {
	inputs := []string{"", "0", "05", "007", "00.5", "1..2", "abc", "12.345%", "0.0.0", ".5", "100"}
	for _, prev := range []string{"", "0", "12"} {
		for _, in := range inputs {
			once := pricelist.SanitizeEdit(prev, in)
			twice := pricelist.SanitizeEdit(prev, once)
			assert.Equal(t, once, twice, "prev=%q in=%q", prev, in)
		}
	}
	for _, in := range inputs {
		once := pricelist.Sanitize(in)
		assert.Equal(t, once, pricelist.Sanitize(once))
	}
}

func TestNormalizeDiscount(t *testing.T) {
	assert.Equal(t, "12.35", pricelist.NormalizeDiscount("12.345"))
	assert.Equal(t, "", pricelist.NormalizeDiscount(""))
	assert.Equal(t, "", pricelist.NormalizeDiscount("."))
	assert.Equal(t, "5", pricelist.NormalizeDiscount("5"))
	assert.Equal(t, "0.5", pricelist.NormalizeDiscount(".5"))
	assert.Equal(t, "7", pricelist.NormalizeDiscount("7."))
}

func TestAmount_DecimalYAbierto(t *testing.T) {
	assert.True(t, pricelist.Blank().IsOpen())
	assert.True(t, pricelist.AmountInt(0).IsOpen())
	assert.False(t, pricelist.AmountInt(10).IsOpen())
	assert.Equal(t, "0.5", pricelist.NewAmount(".5").Decimal().String())
	assert.Equal(t, "12", pricelist.NewAmount("12.").Decimal().String())
}

func TestAmount_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A pricelist.Amount `json:"a"`
		B pricelist.Amount `json:"b"`
	}{pricelist.Blank(), pricelist.NewAmount("10.50")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"","b":10.5}`, string(b))

	var got struct {
		A pricelist.Amount `json:"a"`
		B pricelist.Amount `json:"b"`
		C pricelist.Amount `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"7%","b":3,"c":null}`), &got))
	assert.Equal(t, "7", got.A.Text())
	assert.Equal(t, "3", got.B.Text())
	assert.True(t, got.C.IsBlank())
}

func TestDisplayDiscount(t *testing.T) {
	assert.Equal(t, "12.5%", pricelist.DisplayDiscount(pricelist.NewAmount("12.5")))
	assert.Equal(t, "", pricelist.DisplayDiscount(pricelist.Blank()))
}
