package entity

// StockItem artículo de inventario tal como lo devuelve el backend (solo lectura para el editor).
type StockItem struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
	Unit string `json:"unit,omitempty"`
}

// StockItemPage una página de artículos de un grupo de stock.
// Respuesta de GET products/stock-group/{companyId}/{groupId}.
type StockItemPage struct {
	Products []StockItem `json:"products"`
	HasMore  bool        `json:"hasMore"`
	Total    int         `json:"total"`
}

// StockGroup agrupación de artículos definida en el backend; acota qué artículos entran en una lista de precios.
type StockGroup struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	CompanyID string `json:"companyId,omitempty"`
}

// AllStockGroups nombre reservado cuando la lista de precios no filtra por grupo.
const AllStockGroups = "All"
