package currency

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PopularCurrencies is the selection offered by default, most common first.
var PopularCurrencies = []string{
	"USD", "EUR", "CNY", "JPY", "GBP", "INR", "BRL",
	"AUD", "CAD", "CHF", "MXN", "KRW", "TRY", "ZAR",
}

var printer = message.NewPrinter(language.English)

// Valid reports whether code is a well-formed ISO 4217 currency code.
func Valid(code string) bool {
	_, err := currency.ParseISO(code)
	return err == nil
}

// Symbol returns the display symbol for a currency code, falling back to
// the code itself when it is unknown.
func Symbol(code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return code
	}
	return printer.Sprintf("%v", currency.Symbol(unit))
}

// Format renders a monetary value in the given currency, falling back to
// "<CODE> <value>" with two decimals when the code is unknown.
func Format(value float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %.2f", code, value)
	}
	return printer.Sprintf("%v", currency.NarrowSymbol(unit.Amount(value)))
}
