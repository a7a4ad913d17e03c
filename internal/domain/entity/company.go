package entity

// Company empresa seleccionable por el usuario; la seleccionada por defecto se persiste como pista.
type Company struct {
	ID     string `json:"_id"`
	Name   string `json:"namePrint,omitempty"`
	Code   string `json:"code,omitempty"`
	Status string `json:"status,omitempty"`
}
