package format

import (
	"strings"
	"time"

	"github.com/ravenfield/recview/internal/observe"
)

// Values are stored and exchanged in a fixed internal representation; only
// the display form follows the resolved patterns.
const (
	internalDateLayout     = "2006-01-02"
	internalTimeLayout     = "15:04:05"
	internalDatetimeLayout = internalDateLayout + " " + internalTimeLayout
)

// DatetimeFormatter renders internal date/time values under the resolved
// display patterns. Patterns use the portable token set (yyyy, MM, dd, HH,
// mm, ss) carried by the preference sources, translated token-wise to
// time.Layout; there is no general pattern language.
type DatetimeFormatter struct {
	prefs *observe.Cell[Preferences]
}

func NewDatetimeFormatter(prefs *observe.Cell[Preferences]) *DatetimeFormatter {
	return &DatetimeFormatter{prefs: prefs}
}

// FormatDate renders an internal "YYYY-MM-DD" value under the resolved date
// pattern. Values that do not parse under the internal representation are
// rejected, never coerced.
func (f *DatetimeFormatter) FormatDate(value string) (string, error) {
	t, err := parseInternal(value, internalDateLayout)
	if err != nil {
		return value, err
	}
	return t.Format(translatePattern(f.prefs.Get().DateFormat)), nil
}

// FormatTime renders an internal "HH:mm:ss" value under the resolved time
// pattern.
func (f *DatetimeFormatter) FormatTime(value string) (string, error) {
	t, err := parseInternal(value, internalTimeLayout)
	if err != nil {
		return value, err
	}
	return t.Format(translatePattern(f.prefs.Get().TimeFormat)), nil
}

// FormatDateTime renders an internal "YYYY-MM-DD HH:mm:ss" value as the
// formatted date and time joined by a single space.
func (f *DatetimeFormatter) FormatDateTime(value string) (string, error) {
	t, err := parseInternal(value, internalDatetimeLayout)
	if err != nil {
		return value, err
	}
	p := f.prefs.Get()
	return t.Format(translatePattern(p.DateFormat)) + " " + t.Format(translatePattern(p.TimeFormat)), nil
}

// ParseDate inverts FormatDate, returning the internal representation.
func (f *DatetimeFormatter) ParseDate(display string) (string, error) {
	t, err := time.Parse(translatePattern(f.prefs.Get().DateFormat), strings.TrimSpace(display))
	if err != nil {
		return "", badValue(display, "does not match date format")
	}
	return t.Format(internalDateLayout), nil
}

// ParseDateTime inverts FormatDateTime.
func (f *DatetimeFormatter) ParseDateTime(display string) (string, error) {
	p := f.prefs.Get()
	layout := translatePattern(p.DateFormat) + " " + translatePattern(p.TimeFormat)
	t, err := time.Parse(layout, strings.TrimSpace(display))
	if err != nil {
		return "", badValue(display, "does not match datetime format")
	}
	return t.Format(internalDatetimeLayout), nil
}

func parseInternal(value, layout string) (time.Time, error) {
	t, err := time.Parse(layout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, badValue(value, "not an internal date/time value")
	}
	return t, nil
}

// patternTokens maps display-pattern tokens to time.Layout fragments.
// Ordered longest-first so e.g. "mm" is not consumed as two "m"s.
var patternTokens = []struct{ token, layout string }{
	{"yyyy", "2006"},
	{"yy", "06"},
	{"MM", "01"},
	{"dd", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
}

func translatePattern(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		matched := false
		for _, tok := range patternTokens {
			if strings.HasPrefix(pattern[i:], tok.token) {
				b.WriteString(tok.layout)
				i += len(tok.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(pattern[i])
			i++
		}
	}
	return b.String()
}
