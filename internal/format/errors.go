package format

import "fmt"

// ConfigError reports a preference resolution that cannot produce unambiguous
// output (e.g. grouping and decimal separators resolving to the same
// character). Formatting under a ConfigError must fail loudly rather than
// emit corrupted values.
type ConfigError struct {
	Option string
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("display config %s: %s", e.Option, e.Detail)
}

// ValueError reports a raw value that does not match the shape its declared
// type requires. Callers rendering for display should fall back to the raw
// value; callers parsing on edit-commit should propagate it.
type ValueError struct {
	Value  string
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("value %q: %s", e.Value, e.Reason)
}

func badValue(value, reason string) *ValueError {
	return &ValueError{Value: value, Reason: reason}
}
