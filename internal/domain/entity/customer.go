package entity

// Customer cliente de la empresa.
type Customer struct {
	ID        string `json:"_id"`
	CompanyID string `json:"companyId"`
	Name      string `json:"customerName"`
	Code      string `json:"code,omitempty"`
	Email     string `json:"emailAddress,omitempty"`
	Phone     string `json:"phoneNumber,omitempty"`
	Status    string `json:"status,omitempty"`
}

// GetID identificador para los Resource Stores.
func (c Customer) GetID() string { return c.ID }
