package entity

// Pagination metadatos de paginación que devuelve el backend en los listados.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// HasMore indica si existen páginas posteriores a la actual.
func (p Pagination) HasMore() bool {
	return p.TotalPages > 0 && p.Page < p.TotalPages
}

// ListPage respuesta genérica de listado {data, pagination}.
type ListPage[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Filters filtros de listado (companyId, search, status...). Los valores vacíos no se envían.
type Filters map[string]string
