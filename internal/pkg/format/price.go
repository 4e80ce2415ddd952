// Package format renders values for display in the storefront locale.
package format

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PriceFormatter renders prices as localized currency strings.
type PriceFormatter struct {
	tag     language.Tag
	unit    currency.Unit
	printer *message.Printer
}

// NewPriceFormatter builds a formatter for a BCP 47 locale and an ISO 4217
// currency code, e.g. "pt-BR" and "BRL".
func NewPriceFormatter(locale, code string) (*PriceFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", code, err)
	}
	return &PriceFormatter{
		tag:     tag,
		unit:    unit,
		printer: message.NewPrinter(tag),
	}, nil
}

// Format renders amount with the currency symbol and the locale's grouping
// and decimal separators.
func (f *PriceFormatter) Format(amount float64) string {
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(amount)))
}

func (f *PriceFormatter) Locale() string { return f.tag.String() }

func (f *PriceFormatter) Currency() string { return f.unit.String() }
