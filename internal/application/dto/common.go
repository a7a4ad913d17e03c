package dto

// PageRequest paginación de listados (page 1-based, como el backend).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// DefaultPage aplica valores por defecto si Page/Limit son cero o negativos.
func (p *PageRequest) DefaultPage(limit int) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = limit
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Toast aviso pendiente para la UI.
type Toast struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Response sobre de toda respuesta exitosa: datos más los avisos y la
// navegación que el workspace acumuló durante la petición.
type Response struct {
	Data     any     `json:"data,omitempty"`
	Toasts   []Toast `json:"toasts,omitempty"`
	Navigate string  `json:"navigate,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code     string  `json:"code"`
	Message  string  `json:"message"`
	Toasts   []Toast `json:"toasts,omitempty"`
	Navigate string  `json:"navigate,omitempty"`
}
