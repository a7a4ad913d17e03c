package pricelist

import "github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"

// Field columna editable de la grilla.
type Field string

const (
	FieldFromQty     Field = "fromQty"
	FieldLessThanQty Field = "lessThanQty"
	FieldRate        Field = "rate"
	FieldDiscount    Field = "discount"
)

// Columns orden de las columnas para la navegación con Enter.
var Columns = []Field{FieldFromQty, FieldLessThanQty, FieldRate, FieldDiscount}

// ParseField valida el nombre de columna recibido desde la UI.
func ParseField(s string) (Field, bool) {
	for _, f := range Columns {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Row una fila de la grilla: un tramo de cantidad de un artículo.
type Row struct {
	ID          string `json:"id"`
	ItemID      string `json:"itemId"`
	Name        string `json:"name"`
	FromQty     Amount `json:"fromQty"`
	LessThanQty Amount `json:"lessThanQty"`
	Rate        Amount `json:"rate"`
	Discount    Amount `json:"discount"`
}

func (r *Row) cell(f Field) *Amount {
	switch f {
	case FieldFromQty:
		return &r.FromQty
	case FieldLessThanQty:
		return &r.LessThanQty
	case FieldRate:
		return &r.Rate
	case FieldDiscount:
		return &r.Discount
	}
	return nil
}

// Value valor de una columna.
func (r Row) Value(f Field) Amount {
	if c := r.cell(f); c != nil {
		return *c
	}
	return Blank()
}

// IsValid indica si la fila entra en el payload de guardado:
// (rate > 0 o discount > 0) y fromQty > 0 y (lessThanQty abierto o lessThanQty > fromQty).
// Las filas inválidas son borradores y se descartan sin error.
func IsValid(r Row) bool {
	priced := r.Rate.Decimal().IsPositive() || r.Discount.Decimal().IsPositive()
	if !priced || !r.FromQty.Decimal().IsPositive() {
		return false
	}
	return r.LessThanQty.IsOpen() || r.LessThanQty.Decimal().GreaterThan(r.FromQty.Decimal())
}

// ToSlab convierte la fila al tramo persistido; un tope abierto viaja como 0.
func (r Row) ToSlab() entity.Slab {
	return entity.Slab{
		FromQty:     r.FromQty.Decimal(),
		LessThanQty: r.LessThanQty.Decimal(),
		Rate:        r.Rate.Decimal(),
		Discount:    r.Discount.Decimal(),
	}
}
