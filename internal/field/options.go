package field

// OptionsSource resolves enum and multienum codes to display labels within a
// named options list. Implemented by the surrounding application's
// translation layer; the core only consumes it.
type OptionsSource interface {
	// Label returns the display label for code within the options list, or
	// false when the list or code is unknown.
	Label(optionsList, code string) (string, bool)
}

// StaticOptions is an in-memory OptionsSource keyed by options-list name.
type StaticOptions map[string]map[string]string

func (o StaticOptions) Label(optionsList, code string) (string, bool) {
	list, ok := o[optionsList]
	if !ok {
		return "", false
	}
	label, ok := list[code]
	return label, ok
}
