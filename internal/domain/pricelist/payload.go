package pricelist

import (
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
)

// Header cabecera de la lista de precios que acompaña cada página guardada.
type Header struct {
	CompanyID      string `json:"companyId"`
	ClientID       string `json:"clientId,omitempty"`
	PriceLevel     string `json:"priceLevel"`
	ApplicableFrom string `json:"applicableFrom"`
	StockGroupID   string `json:"stockGroupId,omitempty"`
	StockGroupName string `json:"stockGroupName,omitempty"`
}

// PagePayload cuerpo de POST /price-list/items y PUT /price-list/{id}.
// Sin grupo de stock viaja stockGroupName "All" y sin stockGroupId.
type PagePayload struct {
	CompanyID      string                 `json:"companyId"`
	ClientID       string                 `json:"clientId,omitempty"`
	PriceLevel     string                 `json:"priceLevel"`
	ApplicableFrom string                 `json:"applicableFrom"`
	Page           int                    `json:"page"`
	StockGroupID   string                 `json:"stockGroupId,omitempty"`
	StockGroupName string                 `json:"stockGroupName"`
	Items          []entity.PriceListItem `json:"items"`
}

// ValidRows filtra las filas válidas conservando el orden.
func ValidRows(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if IsValid(r) {
			out = append(out, r)
		}
	}
	return out
}

// GroupByItem agrupa filas por itemId en orden de primera aparición; los
// tramos de cada artículo mantienen el orden original.
func GroupByItem(rows []Row) []entity.PriceListItem {
	idx := make(map[string]int)
	var items []entity.PriceListItem
	for _, r := range rows {
		i, ok := idx[r.ItemID]
		if !ok {
			i = len(items)
			idx[r.ItemID] = i
			items = append(items, entity.PriceListItem{ItemID: r.ItemID, ItemName: r.Name})
		}
		items[i].Slabs = append(items[i].Slabs, r.ToSlab())
	}
	return items
}

// BuildPagePayload arma el payload de una página con las filas válidas.
// Devuelve ErrNoValidRows si ninguna fila califica.
func BuildPagePayload(h Header, page int, rows []Row) (PagePayload, error) {
	items := GroupByItem(ValidRows(rows))
	if len(items) == 0 {
		return PagePayload{}, domain.ErrNoValidRows
	}
	p := PagePayload{
		CompanyID:      h.CompanyID,
		ClientID:       h.ClientID,
		PriceLevel:     h.PriceLevel,
		ApplicableFrom: h.ApplicableFrom,
		Page:           page,
		StockGroupName: entity.AllStockGroups,
		Items:          items,
	}
	if h.StockGroupID != "" {
		p.StockGroupID = h.StockGroupID
		p.StockGroupName = h.StockGroupName
	}
	return p, nil
}
