// Package pricelist modela la grilla de tramos (slabs) de una lista de precios:
// filas editables por artículo y rango de cantidad, saneamiento de la entrada
// numérica, reglas de validez para guardar y armado del payload por página.
package pricelist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	nonNumeric   = regexp.MustCompile(`[^0-9.]`)
	leadingZeros = regexp.MustCompile(`^0+(\d)`)
)

// Amount valor numérico de una celda. Guarda el texto saneado tal como se edita
// (puede estar vacío o terminar en punto mientras el usuario escribe) y expone
// su valor decimal para comparar.
type Amount struct {
	text string
}

// NewAmount sanea el texto recibido.
func NewAmount(text string) Amount { return Amount{text: Sanitize(text)} }

// AmountOf construye un Amount desde un decimal.
func AmountOf(d decimal.Decimal) Amount { return Amount{text: d.String()} }

// AmountInt construye un Amount entero.
func AmountInt(n int64) Amount { return AmountOf(decimal.NewFromInt(n)) }

// Blank valor vacío.
func Blank() Amount { return Amount{} }

// Text texto saneado.
func (a Amount) Text() string { return a.text }

// IsBlank vacío o solo un punto.
func (a Amount) IsBlank() bool { return a.text == "" || a.text == "." }

// IsOpen tope sin definir: vacío o cero.
func (a Amount) IsOpen() bool { return a.IsBlank() || a.Decimal().IsZero() }

// Decimal valor numérico; vacío vale cero.
func (a Amount) Decimal() decimal.Decimal {
	if a.IsBlank() {
		return decimal.Zero
	}
	s := a.text
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	s = strings.TrimSuffix(s, ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// MarshalJSON vacío como "" y el resto como número.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.IsBlank() {
		return []byte(`""`), nil
	}
	return []byte(a.Decimal().String()), nil
}

// UnmarshalJSON acepta número, string o null.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = Blank()
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = NewAmount(s)
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	*a = AmountOf(d)
	return nil
}

// Sanitize deja solo dígitos y un único punto decimal (el primero).
func Sanitize(raw string) string {
	s := nonNumeric.ReplaceAllString(raw, "")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i+1] + strings.ReplaceAll(s[i+1:], ".", "")
	}
	return s
}

// SanitizeEdit sanea una edición de celda. Si el valor previo era "0" y el
// usuario escribió más de un carácter, se quitan los ceros a la izquierda para
// que "0" seguido de un dígito no quede como "05".
func SanitizeEdit(prev, raw string) string {
	s := Sanitize(raw)
	if prev == "0" && len(raw) > 1 {
		s = leadingZeros.ReplaceAllString(s, "$1")
	}
	return s
}

// NormalizeDiscount se aplica al salir de la celda de descuento: vacío o solo
// punto queda vacío; el resto se redondea a 2 decimales.
func NormalizeDiscount(text string) string {
	a := Amount{text: Sanitize(text)}
	if a.IsBlank() {
		return ""
	}
	return a.Decimal().Round(2).String()
}

// DisplayDiscount texto del descuento con sufijo %.
func DisplayDiscount(a Amount) string {
	if a.text == "" {
		return ""
	}
	return a.text + "%"
}
