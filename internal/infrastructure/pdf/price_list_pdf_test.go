package pdf_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/ports"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/infrastructure/pdf"
)

func TestGenerate_ProducePDF(t *testing.T) {
	list := &entity.PriceList{
		ID: "pl-1", CompanyID: "C1", PriceLevel: "Retail", ApplicableFrom: "2026-01-01",
		Items: []entity.PriceListItem{{
			ItemID: "A", ItemName: "Arroz",
			Slabs: []entity.Slab{
				{FromQty: decimal.NewFromInt(1), LessThanQty: decimal.NewFromInt(10), Rate: decimal.NewFromInt(100)},
				{FromQty: decimal.NewFromInt(11), Rate: decimal.NewFromInt(90), Discount: decimal.RequireFromString("2.5")},
			},
		}},
	}

	out, err := pdf.NewPriceListPDF("es").Generate(context.Background(), list, "Ladger SA")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerate_ListaNil(t *testing.T) {
	_, err := pdf.NewPriceListPDF("").Generate(context.Background(), nil, "")
	assert.Error(t, err)
}

func TestMoney_FormatoPorIdioma(t *testing.T) {
	amount := decimal.RequireFromString("1234567.5")
	assert.Equal(t, "1,234,567.50", pdf.NewPriceListPDF("en").Money(amount))
	assert.Equal(t, "1.234.567,50", pdf.NewPriceListPDF("es").Money(amount))
}

func TestExport_BorradorSinID(t *testing.T) {
	out, err := pdf.NewPriceListPDF("en").Export(context.Background(), &entity.PriceList{PriceLevel: "Retail"}, ports.ExportOptions{})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", out.ContentType)
	assert.Equal(t, "price-list-draft.pdf", out.Filename)
	assert.Empty(t, out.ETag)
}
