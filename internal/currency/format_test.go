package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		opts     Options
		want     string
	}{
		{"euro with grouping", 1234.5, "EUR", Options{}, "€1,234.50"},
		{"usd", 5, "USD", Options{}, "$5.00"},
		{"gbp", 0.99, "GBP", Options{}, "£0.99"},
		{"ghana cedi", 250, "GHS", Options{}, "₵250.00"},
		{"nigerian naira", 1000000, "NGN", Options{}, "₦1,000,000.00"},
		{"unknown code prefixes code", 42, "CHF", Options{}, "CHF 42.00"},
		{"negative amount uses absolute value", -1234.5, "EUR", Options{}, "€1,234.50"},
		{"explicit plus sign", 5, "USD", Options{ShowSign: true, Sign: "plus"}, "+$5.00"},
		{"explicit minus sign", 5, "USD", Options{ShowSign: true, Sign: "minus"}, "−$5.00"},
		{"minus sign with negative amount", -5, "USD", Options{ShowSign: true, Sign: "minus"}, "−$5.00"},
		{"sign ignored without show", 5, "USD", Options{Sign: "plus"}, "$5.00"},
		{"rounds to two decimals", 10.018, "USD", Options{}, "$10.02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatWithOptions(tt.amount, tt.currency, tt.opts))
		})
	}
}

func TestFormat_DefaultOptions(t *testing.T) {
	assert.Equal(t, "$5.00", Format(5, "USD"))
}

func TestFormat_MinusSignIsUnicode(t *testing.T) {
	got := FormatWithOptions(5, "USD", Options{ShowSign: true, Sign: "minus"})
	assert.Equal(t, '−', []rune(got)[0])
	assert.NotEqual(t, "-$5.00", got)
}
