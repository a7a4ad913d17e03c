package entity

import "github.com/shopspring/decimal"

// Estados de pedido conocidos por la UI.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Order pedido de venta.
type Order struct {
	ID           string          `json:"_id"`
	CompanyID    string          `json:"companyId"`
	OrderCode    string          `json:"orderCode"`
	CustomerID   string          `json:"customerId,omitempty"`
	CustomerName string          `json:"customerName,omitempty"`
	Status       string          `json:"status"`
	GrandTotal   decimal.Decimal `json:"grandTotal"`
}

// GetID identificador para los Resource Stores.
func (o Order) GetID() string { return o.ID }

// ValidOrderStatus indica si el estado es uno de los conocidos.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}
