// Package money formatea importes para salidas legibles (CLI y PDF).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format devuelve el importe con separador de miles y dos decimales. Ej: 1234.5 → "$1,234.50".
func Format(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	if f < 0 {
		return printer.Sprintf("-$%.2f", -f)
	}
	return printer.Sprintf("$%.2f", f)
}

// Units formatea una cantidad entera con separador de miles.
func Units(n int) string {
	return printer.Sprintf("%d", n)
}
