package xmlexport_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/ports"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/infrastructure/xmlexport"
)

func sample() *entity.PriceList {
	return &entity.PriceList{
		ID: "pl-1", CompanyID: "C1", PriceLevel: "Retail", ApplicableFrom: "2026-01-01",
		Items: []entity.PriceListItem{{
			ItemID: "A", ItemName: "Piña",
			Slabs: []entity.Slab{
				{FromQty: decimal.NewFromInt(1), LessThanQty: decimal.NewFromInt(10), Rate: decimal.NewFromInt(100)},
				{FromQty: decimal.NewFromInt(10), Rate: decimal.NewFromInt(90)},
			},
		}},
	}
}

// ── Estructura ────────────────────────────────────────────────────────────────

func TestExport_Estructura(t *testing.T) {
	doc, err := xmlexport.Export(sample(), "")
	require.NoError(t, err)
	assert.Equal(t, xmlexport.CharsetUTF8, doc.Charset)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(doc.Bytes))
	root := parsed.Root()
	require.NotNil(t, root)
	assert.Equal(t, "PriceList", root.Tag)
	assert.Equal(t, "pl-1", root.SelectAttrValue("id", ""))
	assert.Equal(t, "All", root.FindElement("Header/StockGroup").Text())

	slabs := root.FindElements("Items/Item/Slab")
	require.Len(t, slabs, 2)
	assert.Equal(t, "100.00", slabs[0].SelectAttrValue("rate", ""))
	assert.Equal(t, "0", slabs[1].SelectAttrValue("lessThanQty", ""))
	assert.Contains(t, string(doc.Bytes), "Piña")
}

// ── Digest / ETag ─────────────────────────────────────────────────────────────

func TestExport_DigestEstableYSensibleAlContenido(t *testing.T) {
	a, err := xmlexport.Export(sample(), "")
	require.NoError(t, err)
	b, err := xmlexport.Export(sample(), "")
	require.NoError(t, err)
	assert.Equal(t, a.Digest, b.Digest)
	assert.Len(t, a.Digest, 64)
	assert.Equal(t, `"`+a.Digest+`"`, a.ETag())

	changed := sample()
	changed.Items[0].Slabs[0].Rate = decimal.NewFromInt(101)
	c, err := xmlexport.Export(changed, "")
	require.NoError(t, err)
	assert.NotEqual(t, a.Digest, c.Digest)
}

func TestExport_DigestNoDependeDelCharset(t *testing.T) {
	utf, err := xmlexport.Export(sample(), "utf-8")
	require.NoError(t, err)
	legacy, err := xmlexport.Export(sample(), "latin1")
	require.NoError(t, err)
	assert.Equal(t, utf.Digest, legacy.Digest)
}

// ── Charset ───────────────────────────────────────────────────────────────────

func TestExport_Windows1252(t *testing.T) {
	doc, err := xmlexport.Export(sample(), "cp1252")
	require.NoError(t, err)
	assert.Equal(t, xmlexport.CharsetWindows1252, doc.Charset)
	assert.Contains(t, doc.ContentType(), "windows-1252")
	assert.True(t, bytes.Contains(doc.Bytes, []byte{'P', 'i', 0xF1, 'a'}))
}

func TestExport_Errores(t *testing.T) {
	_, err := xmlexport.Export(nil, "")
	assert.Error(t, err)

	_, err = xmlexport.Export(sample(), "ebcdic")
	assert.Error(t, err)

	kanji := sample()
	kanji.Items[0].ItemName = "米"
	_, err = xmlexport.Export(kanji, "windows-1252")
	assert.Error(t, err)
}

func TestExporter_Puerto(t *testing.T) {
	out, err := xmlexport.Exporter{}.Export(context.Background(), sample(), ports.ExportOptions{})
	require.NoError(t, err)
	assert.Equal(t, "price-list-pl-1.xml", out.Filename)
	assert.Equal(t, "application/xml; charset=UTF-8", out.ContentType)
	assert.NotEmpty(t, out.ETag)
}
