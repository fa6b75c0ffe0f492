package i18n

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency codes offered in the UI
const (
	CurrencySAR = "sar"
	CurrencyUSD = "usd"
	CurrencyEUR = "eur"
)

// Stored amounts are in SAR
var conversionRates = map[string]decimal.Decimal{
	CurrencySAR: decimal.NewFromInt(1),
	CurrencyUSD: decimal.RequireFromString("0.27"),
	CurrencyEUR: decimal.RequireFromString("0.25"),
}

var units = map[string]currency.Unit{
	CurrencySAR: currency.SAR,
	CurrencyUSD: currency.USD,
	CurrencyEUR: currency.EUR,
}

// CurrencyFormatter renders amounts for display only
type CurrencyFormatter struct {
	lang     string
	currency string
	printer  *message.Printer
}

// NewCurrencyFormatter builds a formatter for ar-SA or en-US; unknown currencies fall back to SAR
func NewCurrencyFormatter(lang, cur string) *CurrencyFormatter {
	lang = Normalize(lang)
	cur = strings.ToLower(cur)
	if _, ok := conversionRates[cur]; !ok {
		cur = CurrencySAR
	}

	tag := language.MustParse("ar-SA")
	if lang == English {
		tag = language.AmericanEnglish
	}

	return &CurrencyFormatter{
		lang:     lang,
		currency: cur,
		printer:  message.NewPrinter(tag),
	}
}

// Convert applies the display conversion rate to a SAR amount
func (f *CurrencyFormatter) Convert(amount float64) float64 {
	return decimal.NewFromFloat(amount).Mul(conversionRates[f.currency]).Round(2).InexactFloat64()
}

// FormatCurrency converts and formats amount with the currency symbol of the locale
func (f *CurrencyFormatter) FormatCurrency(amount float64) string {
	converted := f.Convert(amount)
	symbol := f.printer.Sprint(currency.Symbol(units[f.currency]))
	number := f.printer.Sprintf("%.2f", converted)

	if f.lang == Arabic {
		return fmt.Sprintf("%s %s", number, symbol)
	}
	return fmt.Sprintf("%s%s", symbol, number)
}

// Code returns the selected currency code in upper case
func (f *CurrencyFormatter) Code() string {
	return strings.ToUpper(f.currency)
}
