package dto

// CustomerSearchRequest término de búsqueda con debounce.
type CustomerSearchRequest struct {
	Term string `json:"term"`
}

// OrderStatusRequest nuevo estado de un pedido.
type OrderStatusRequest struct {
	Status string `json:"status"`
}
