package ports

import (
	"context"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
)

// ExportOptions parámetros de una exportación. Cada formato usa los que le aplican.
type ExportOptions struct {
	CompanyName string
	Charset     string
}

// ExportedDocument documento listo para descargar.
type ExportedDocument struct {
	Body        []byte
	ContentType string
	Filename    string
	ETag        string // vacío si el formato no lo calcula
}

// PriceListExporter puerto de salida para exportar una lista de precios
// (PDF con Maroto, XML con etree).
type PriceListExporter interface {
	Export(ctx context.Context, list *entity.PriceList, opts ExportOptions) (*ExportedDocument, error)
}
