package format

import (
	"strings"

	"github.com/ravenfield/recview/internal/observe"
)

// CurrencyFormatter composes NumberFormatter with the resolved currency
// symbol and significant-digit count.
type CurrencyFormatter struct {
	prefs   *observe.Cell[Preferences]
	numbers *NumberFormatter
}

func NewCurrencyFormatter(prefs *observe.Cell[Preferences], numbers *NumberFormatter) *CurrencyFormatter {
	return &CurrencyFormatter{prefs: prefs, numbers: numbers}
}

// Format renders raw as symbol + grouped amount, rounded half-up at the
// resolved significant-digit count. Digits present in the source beyond the
// cap are rounded away; shorter values are not padded with trailing zeros,
// so "1000.5" at two digits stays "1,000.5".
func (f *CurrencyFormatter) Format(raw string) (string, error) {
	p := f.prefs.Get()
	if err := p.Validate(); err != nil {
		return raw, err
	}
	rounded, err := roundHalfUp(normalizeRaw(raw), p.CurrencySignificantDigits)
	if err != nil {
		return raw, err
	}
	amount, err := f.numbers.Format(rounded)
	if err != nil {
		return raw, err
	}
	if negative, ok := strings.CutPrefix(amount, "-"); ok {
		return "-" + p.Currency.Symbol + negative, nil
	}
	return p.Currency.Symbol + amount, nil
}

// Parse strips the currency symbol and inverts the number formatting,
// returning the canonical raw amount.
func (f *CurrencyFormatter) Parse(display string) (string, error) {
	p := f.prefs.Get()
	trimmed := strings.TrimSpace(display)
	sign := ""
	if rest, ok := strings.CutPrefix(trimmed, "-"); ok {
		sign = "-"
		trimmed = rest
	}
	trimmed = strings.TrimPrefix(trimmed, p.Currency.Symbol)
	return f.numbers.Parse(sign + trimmed)
}

// roundHalfUp rounds the canonical raw value at digits decimal places,
// returning a canonical raw value with trailing zeros trimmed. The rounding
// operates on the digit string directly, so decimal halves round up exactly
// and amounts beyond float64 precision survive intact.
func roundHalfUp(raw string, digits int) (string, error) {
	sign, intPart, fracPart, _, err := splitNumber(raw)
	if err != nil {
		return "", err
	}
	if digits < 0 {
		digits = 0
	}
	if len(fracPart) > digits {
		up := fracPart[digits] >= '5'
		fracPart = fracPart[:digits]
		if up {
			intPart, fracPart = incrementDigits(intPart, fracPart)
		}
	}
	out := strings.TrimLeft(intPart, "0")
	if out == "" {
		out = "0"
	}
	if frac := strings.TrimRight(fracPart, "0"); frac != "" {
		out += "." + frac
	}
	if sign == "-" && out != "0" {
		out = sign + out
	}
	return out, nil
}

// incrementDigits adds one unit in the last place of the concatenated digit
// string, carrying through the integer part when needed.
func incrementDigits(intPart, fracPart string) (string, string) {
	all := []byte(intPart + fracPart)
	i := len(all) - 1
	for ; i >= 0; i-- {
		if all[i] < '9' {
			all[i]++
			break
		}
		all[i] = '0'
	}
	if i < 0 {
		all = append([]byte{'1'}, all...)
	}
	cut := len(all) - len(fracPart)
	return string(all[:cut]), string(all[cut:])
}
