package dto

// OpenEditorRequest apertura de un editor de lista de precios.
// mode: create | edit | view. edit y view requieren priceListId.
type OpenEditorRequest struct {
	Mode           string `json:"mode"`
	PriceListID    string `json:"priceListId"`
	CompanyID      string `json:"companyId"`
	ClientID       string `json:"clientId"`
	PriceLevel     string `json:"priceLevel"`
	ApplicableFrom string `json:"applicableFrom"`
	StockGroupID   string `json:"stockGroupId"`
	StockGroupName string `json:"stockGroupName"`
}

// EditCellRequest texto tecleado en una celda.
type EditCellRequest struct {
	RowID string `json:"rowId"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// BlurRequest celda que perdió el foco.
type BlurRequest struct {
	RowID string `json:"rowId"`
	Field string `json:"field"`
}

// EnterRequest Enter sobre la celda (row es la posición en la grilla).
type EnterRequest struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
}

// AppendRequest agrega un tramo tras la fila indicada.
type AppendRequest struct {
	RowID string `json:"rowId"`
}
