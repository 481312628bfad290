// Package currency renders monetary amounts for display, with en-US digit
// grouping and a fixed two-decimal fraction.
package currency

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"GHS": "₵",
	"NGN": "₦",
}

var printer = message.NewPrinter(language.AmericanEnglish)

// Options controls the explicit sign prefix. The sign is requested by the
// caller rather than derived from the amount, so a credit of -5 can still be
// rendered as "+$5.00" when the caller wants it that way.
type Options struct {
	ShowSign bool
	Sign     string // "plus" or "minus"
}

// Format renders the absolute value of amount with the currency's symbol, or
// a "CODE " prefix for currencies without a known symbol.
func Format(amount float64, currency string) string {
	return FormatWithOptions(amount, currency, Options{})
}

func FormatWithOptions(amount float64, currency string, opts Options) string {
	symbol, ok := symbols[currency]
	if !ok {
		symbol = currency + " "
	}

	formatted := symbol + printer.Sprint(number.Decimal(math.Abs(amount),
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))

	if opts.ShowSign {
		switch opts.Sign {
		case "plus":
			return "+" + formatted
		case "minus":
			// U+2212, not the ASCII hyphen.
			return "−" + formatted
		}
	}
	return formatted
}
