package pricing

import "github.com/shopspring/decimal"

// symbols covers the currencies the store trades in. Unknown codes render as
// a code prefix, e.g. "SEK 150.00".
var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"JPY": "¥",
	"AUD": "A$",
	"CAD": "C$",
}

// Formatter renders monetary amounts with the currency symbol of the order's
// currency, falling back to a configured default currency code.
type Formatter struct {
	defaultCurrency string
}

func NewFormatter(defaultCurrency string) *Formatter {
	if defaultCurrency == "" {
		defaultCurrency = "USD"
	}
	return &Formatter{defaultCurrency: defaultCurrency}
}

// Format renders the amount with two decimal places and a currency symbol.
func (f *Formatter) Format(amount decimal.Decimal, currencyCode string) string {
	if currencyCode == "" {
		currencyCode = f.defaultCurrency
	}
	if symbol, ok := symbols[currencyCode]; ok {
		return symbol + amount.StringFixed(2)
	}
	return currencyCode + " " + amount.StringFixed(2)
}
