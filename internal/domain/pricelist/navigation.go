package pricelist

import "github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain"

// Cell posición de foco dentro de la grilla.
type Cell struct {
	Row   int   `json:"row"`
	Field Field `json:"field"`
}

func columnIndex(f Field) int {
	for i, c := range Columns {
		if c == f {
			return i
		}
	}
	return -1
}

// NextEditable siguiente celda editable en orden fila-columna a partir de from,
// saltando celdas de solo lectura.
func (g *Grid) NextEditable(from Cell) (Cell, bool) {
	col := columnIndex(from.Field)
	if col < 0 {
		return Cell{}, false
	}
	r, c := from.Row, col+1
	for r < len(g.rows) {
		for ; c < len(Columns); c++ {
			if g.Editable(r, Columns[c]) {
				return Cell{Row: r, Field: Columns[c]}, true
			}
		}
		r, c = r+1, 0
	}
	return Cell{}, false
}

// EnterAction efecto de pulsar Enter.
type EnterAction string

const (
	EnterMoved    EnterAction = "moved"
	EnterAppended EnterAction = "appended"
	EnterNone     EnterAction = "none"
)

// EnterResult resultado de Enter: nuevo foco y, si se agregó, el tramo creado.
type EnterResult struct {
	Action   EnterAction `json:"action"`
	Focus    *Cell       `json:"focus,omitempty"`
	Appended *Row        `json:"appended,omitempty"`
}

// Enter en desde/menor-que/tarifa mueve el foco; en descuento agrega un tramo
// (o no hace nada en modo vista).
func (g *Grid) Enter(from Cell) (EnterResult, error) {
	if from.Row < 0 || from.Row >= len(g.rows) {
		return EnterResult{}, domain.ErrRowNotFound
	}
	if from.Field == FieldDiscount {
		if g.readOnly {
			return EnterResult{Action: EnterNone}, nil
		}
		row, err := g.AppendSlab(g.rows[from.Row].ID)
		if err != nil {
			return EnterResult{}, err
		}
		res := EnterResult{Action: EnterAppended, Appended: &row}
		if next, ok := g.NextEditable(from); ok {
			res.Focus = &next
		}
		return res, nil
	}
	next, ok := g.NextEditable(from)
	if !ok {
		return EnterResult{Action: EnterNone}, nil
	}
	return EnterResult{Action: EnterMoved, Focus: &next}, nil
}
