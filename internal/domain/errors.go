package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrSessionClosed = errors.New("sesión cerrada")

	// ErrConcurrentSession el backend reporta la misma cuenta activa en otro dispositivo.
	ErrConcurrentSession = errors.New("sesión abierta en otro dispositivo")

	// Editor de listas de precios.
	ErrReadOnly          = errors.New("el editor está en modo solo lectura")
	ErrRowNotFound       = errors.New("fila no encontrada")
	ErrFieldNotEditable  = errors.New("campo no editable")
	ErrSlabBoundaryUnset = errors.New("defina 'menor que' mayor a 'desde' antes de agregar otro tramo")
	ErrNoValidRows       = errors.New("No valid data")
	ErrNoMorePages       = errors.New("no hay más páginas")
	ErrFirstPage         = errors.New("ya está en la primera página")
	ErrPaginationOff     = errors.New("la paginación no aplica en este modo")
	ErrLoading           = errors.New("hay una carga en curso")
)
