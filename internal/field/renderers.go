package field

import (
	"strings"

	"github.com/ravenfield/recview/internal/format"
)

// displayFn produces the display text for a field. On error the returned
// text is the raw value so the caller can degrade gracefully.
type displayFn func(f *Field, r *Record) (string, error)

// commitFn parses display text back to the raw internal representation.
type commitFn func(display string) (raw string, err error)

func identityCommit(display string) (string, error) { return display, nil }

// displayText wraps a displayFn into a text-payload renderer. The error, if
// any, travels alongside a payload that still carries the raw value.
func displayText(fn displayFn) Renderer {
	return RendererFunc(func(f *Field, r *Record) (Payload, error) {
		text, err := fn(f, r)
		return Payload{Kind: PayloadText, Text: text}, err
	})
}

// editControl binds (or reuses) the field's editable control, seeded with
// the display form of the current value, committing through the type's
// parser.
func editControl(display displayFn, commit commitFn) Renderer {
	return RendererFunc(func(f *Field, r *Record) (Payload, error) {
		if f.Control == nil {
			text, err := display(f, r)
			if err != nil {
				// Seed with the raw value; the user corrects it in place.
				text = f.Value
			}
			f.Control = NewControl(text, commit)
		}
		return Payload{Kind: PayloadControl, Text: f.Control.Input(), Control: f.Control}, nil
	})
}

// filterControl binds the control to the field's filter criteria: the input
// is seeded from the first candidate value and criteria are attached when
// absent so filter-mode fields always carry them.
func filterControl(commit commitFn) Renderer {
	return RendererFunc(func(f *Field, r *Record) (Payload, error) {
		if f.Criteria == nil {
			f.Criteria = &Criteria{Operator: "="}
		}
		if f.Control == nil {
			seed := f.Value
			if len(f.Criteria.Values) > 0 {
				seed = f.Criteria.Values[0]
			}
			f.Control = NewControl(seed, commit)
		}
		return Payload{Kind: PayloadControl, Text: f.Control.Input(), Control: f.Control}, nil
	})
}

func (reg *Registry) identity(f *Field, r *Record) (string, error) {
	return f.Value, nil
}

func (reg *Registry) intText(f *Field, r *Record) (string, error) {
	raw, err := intCommit(f.Value)
	if err != nil {
		return f.Value, err
	}
	return raw, nil
}

// intCommit accepts digits with an optional sign, nothing else.
func intCommit(display string) (string, error) {
	s := strings.TrimSpace(display)
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	if digits == "" {
		return "", &format.ValueError{Value: display, Reason: "not an integer"}
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return "", &format.ValueError{Value: display, Reason: "not an integer"}
		}
	}
	if strings.HasPrefix(s, "-") {
		return "-" + digits, nil
	}
	return digits, nil
}

func (reg *Registry) floatText(f *Field, r *Record) (string, error) {
	return reg.numbers.Format(f.Value)
}

func (reg *Registry) currencyText(f *Field, r *Record) (string, error) {
	return reg.currencies.Format(f.Value)
}

func (reg *Registry) dateText(f *Field, r *Record) (string, error) {
	return reg.datetimes.FormatDate(f.Value)
}

func (reg *Registry) datetimeText(f *Field, r *Record) (string, error) {
	return reg.datetimes.FormatDateTime(f.Value)
}

// enumText resolves the code through the options list; unresolved codes
// display as-is.
func (reg *Registry) enumText(f *Field, r *Record) (string, error) {
	return reg.optionLabel(f.Definition.Options, f.Value), nil
}

// multiEnumText summarizes the ordered code list by its first entry's label
// only. This mirrors the upstream list/detail behavior and is intentional.
func (reg *Registry) multiEnumText(f *Field, r *Record) (string, error) {
	if len(f.ValueList) == 0 {
		return "", nil
	}
	return reg.optionLabel(f.Definition.Options, f.ValueList[0]), nil
}

func (reg *Registry) optionLabel(optionsList, code string) string {
	if reg.options != nil {
		if label, ok := reg.options.Label(optionsList, code); ok {
			return label
		}
	}
	return code
}

// fullnameText interpolates the field's naming template (e.g. "salutation
// first_name last_name") against the owning record's attributes. Empty
// components are omitted and surrounding whitespace collapsed.
func (reg *Registry) fullnameText(f *Field, r *Record) (string, error) {
	var parts []string
	for _, token := range strings.Fields(f.Value) {
		if v := strings.TrimSpace(r.Attribute(token)); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " "), nil
}

func (reg *Registry) urlDetail(f *Field, r *Record) (Payload, error) {
	return Payload{Kind: PayloadLink, Text: f.Value, Href: f.Value}, nil
}

// relateDetail carries the link target metadata; the display value is the
// human-readable representation already present on the field, no lookup.
func (reg *Registry) relateDetail(f *Field, r *Record) (Payload, error) {
	return Payload{
		Kind:    PayloadLink,
		Text:    f.Value,
		Module:  f.Definition.Module,
		IDField: f.Definition.IDName,
	}, nil
}
