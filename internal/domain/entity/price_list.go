package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PriceList lista de precios persistida en el backend: cabecera + artículos con sus tramos.
type PriceList struct {
	ID             string          `json:"_id"`
	CompanyID      string          `json:"companyId"`
	ClientID       string          `json:"clientId,omitempty"`
	PriceLevel     string          `json:"priceLevel"`
	ApplicableFrom string          `json:"applicableFrom"`
	StockGroupID   string          `json:"stockGroupId,omitempty"`
	StockGroupName string          `json:"stockGroupName,omitempty"`
	Items          []PriceListItem `json:"items"`
	CreatedAt      *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time      `json:"updatedAt,omitempty"`
}

// PriceListItem tramos de precio de un artículo.
type PriceListItem struct {
	ItemID   string `json:"itemId"`
	ItemName string `json:"itemName"`
	Slabs    []Slab `json:"slabs"`
}

// Slab tramo de cantidad [FromQty, LessThanQty) con su tarifa y descuento porcentual.
// LessThanQty = 0 significa tramo abierto (sin tope).
type Slab struct {
	FromQty     decimal.Decimal `json:"fromQty"`
	LessThanQty decimal.Decimal `json:"lessThanQty"`
	Rate        decimal.Decimal `json:"rate"`
	Discount    decimal.Decimal `json:"discount"`
}

// MarshalJSON envía los montos como números JSON (el backend no acepta cadenas).
func (s Slab) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		FromQty     json.Number `json:"fromQty"`
		LessThanQty json.Number `json:"lessThanQty"`
		Rate        json.Number `json:"rate"`
		Discount    json.Number `json:"discount"`
	}{
		FromQty:     json.Number(s.FromQty.String()),
		LessThanQty: json.Number(s.LessThanQty.String()),
		Rate:        json.Number(s.Rate.String()),
		Discount:    json.Number(s.Discount.String()),
	})
}
