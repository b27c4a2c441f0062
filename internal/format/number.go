package format

import (
	"strings"

	"github.com/ravenfield/recview/internal/observe"
)

// NumberFormatter converts numeric raw values to display form and back under
// the current Preferences snapshot. Raw values use the internal
// representation: optional sign, digits, '.' as decimal separator, and
// possibly ',' grouping left over from upstream systems, which is stripped
// before re-grouping.
type NumberFormatter struct {
	prefs *observe.Cell[Preferences]
}

func NewNumberFormatter(prefs *observe.Cell[Preferences]) *NumberFormatter {
	return &NumberFormatter{prefs: prefs}
}

// Format renders raw with the resolved grouping and decimal separators.
// The digits themselves are untouched: no rounding, no zero padding.
func (f *NumberFormatter) Format(raw string) (string, error) {
	p := f.prefs.Get()
	if err := p.Validate(); err != nil {
		return raw, err
	}
	sign, intPart, fracPart, hasFrac, err := splitNumber(normalizeRaw(raw))
	if err != nil {
		return raw, err
	}
	out := sign + group(intPart, p.NumberGroupingSeparator)
	if hasFrac {
		out += p.DecimalSeparator + fracPart
	}
	return out, nil
}

// Parse is the exact inverse of Format for any value Format could have
// produced: it strips the resolved grouping separator, maps the resolved
// decimal separator back to '.', and validates the result.
func (f *NumberFormatter) Parse(display string) (string, error) {
	p := f.prefs.Get()
	if err := p.Validate(); err != nil {
		return "", err
	}
	raw := strings.TrimSpace(display)
	if p.NumberGroupingSeparator != "" {
		raw = strings.ReplaceAll(raw, p.NumberGroupingSeparator, "")
	}
	if p.DecimalSeparator != "." {
		raw = strings.ReplaceAll(raw, p.DecimalSeparator, ".")
	}
	sign, intPart, fracPart, hasFrac, err := splitNumber(raw)
	if err != nil {
		return "", err
	}
	out := sign + intPart
	if hasFrac {
		out += "." + fracPart
	}
	return out, nil
}

// normalizeRaw strips default grouping commas so values arriving already
// display-formatted under the internal defaults still re-format cleanly.
func normalizeRaw(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
}

// splitNumber validates the canonical shape [-]digits[.digits] and splits it.
func splitNumber(raw string) (sign, intPart, fracPart string, hasFrac bool, err error) {
	s := raw
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}
	intPart, fracPart, hasFrac = strings.Cut(s, ".")
	if intPart == "" || !allDigits(intPart) {
		return "", "", "", false, badValue(raw, "not a number")
	}
	if hasFrac && (fracPart == "" || !allDigits(fracPart)) {
		return "", "", "", false, badValue(raw, "not a number")
	}
	return sign, intPart, fracPart, hasFrac, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// group inserts sep every three digits from the right.
func group(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
