package entity

import "github.com/shopspring/decimal"

// SalesSummary totales de ventas calculados por el backend.
type SalesSummary struct {
	TotalSales  decimal.Decimal `json:"totalSales"`
	TotalOrders int             `json:"totalOrders"`
	AvgOrder    decimal.Decimal `json:"avgOrderValue"`
}

// TopProduct producto más vendido del período.
type TopProduct struct {
	ItemID   string          `json:"itemId"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// LowStockItem artículo por debajo de su nivel de reposición.
type LowStockItem struct {
	ItemID       string          `json:"itemId"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
}
