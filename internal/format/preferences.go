// Package format resolves display preferences and converts typed raw values
// to and from their display form. All converters are parameterized by a
// resolved Preferences snapshot; they hold no ambient state of their own.
package format

import (
	"github.com/ravenfield/recview/internal/observe"
)

// Currency describes one currency the application can display amounts in.
type Currency struct {
	ID      string `json:"id" mapstructure:"id"`
	Name    string `json:"name" mapstructure:"name"`
	Symbol  string `json:"symbol" mapstructure:"symbol"`
	ISO4217 string `json:"iso4217" mapstructure:"iso4217"`
}

// Preferences is one immutable resolved snapshot of every display option.
// A new snapshot is published whenever any upstream source changes; the
// formatters always read the latest snapshot and never mutate it.
type Preferences struct {
	NumberGroupingSeparator   string
	DecimalSeparator          string
	DateFormat                string
	TimeFormat                string
	Currency                  Currency
	CurrencySignificantDigits int
}

// UserOverrides are the sparse per-user settings. A nil field means the user
// has not set that option and resolution falls through to the system tier
// for that option alone.
type UserOverrides struct {
	NumberGroupingSeparator   *string   `json:"num_grp_sep,omitempty"`
	DecimalSeparator          *string   `json:"dec_sep,omitempty"`
	DateFormat                *string   `json:"date_format,omitempty"`
	TimeFormat                *string   `json:"time_format,omitempty"`
	Currency                  *Currency `json:"currency,omitempty"`
	CurrencySignificantDigits *int      `json:"default_currency_significant_digits,omitempty"`
}

// SystemCurrency is the system-configured currency selection. ID names an
// entry in Available; when ID is empty the configuration may instead carry
// an embedded currency payload, which is then used as the effective value.
type SystemCurrency struct {
	ID        string
	Embedded  *Currency
	Available []Currency
}

// SystemSettings are the system-wide configured options. As with
// UserOverrides, nil means unset and resolution falls through to the
// built-in defaults per option.
type SystemSettings struct {
	NumberGroupingSeparator   *string
	DecimalSeparator          *string
	DateFormat                *string
	TimeFormat                *string
	Currency                  SystemCurrency
	CurrencySignificantDigits *int
}

// DefaultPreferences returns the built-in bottom tier of the resolution.
func DefaultPreferences() Preferences {
	return Preferences{
		NumberGroupingSeparator: ",",
		DecimalSeparator:        ".",
		DateFormat:              "MM/dd/yyyy",
		TimeFormat:              "HH:mm:ss",
		Currency: Currency{
			ID:      "-99",
			Name:    "US Dollars",
			Symbol:  "$",
			ISO4217: "USD",
		},
		CurrencySignificantDigits: 2,
	}
}

// Resolver derives Preferences snapshots from a user-override cell and a
// system-settings cell. Each option walks user -> system -> default
// independently; a user with only a date format set still takes the system
// decimal separator.
type Resolver struct {
	prefs  *observe.Cell[Preferences]
	cancel func()
}

// NewResolver wires the resolution to both sources and emits a fresh
// snapshot whenever either one changes.
func NewResolver(user *observe.Cell[UserOverrides], system *observe.Cell[SystemSettings]) *Resolver {
	prefs, cancel := observe.Combine(user, system, Resolve)
	return &Resolver{prefs: prefs, cancel: cancel}
}

// Preferences exposes the resolved snapshot cell.
func (r *Resolver) Preferences() *observe.Cell[Preferences] { return r.prefs }

// Close detaches the resolver from its sources.
func (r *Resolver) Close() { r.cancel() }

// Resolve performs one precedence walk and returns the snapshot.
func Resolve(user UserOverrides, system SystemSettings) Preferences {
	out := DefaultPreferences()

	out.NumberGroupingSeparator = pick(user.NumberGroupingSeparator, system.NumberGroupingSeparator, out.NumberGroupingSeparator)
	out.DecimalSeparator = pick(user.DecimalSeparator, system.DecimalSeparator, out.DecimalSeparator)
	out.DateFormat = pick(user.DateFormat, system.DateFormat, out.DateFormat)
	out.TimeFormat = pick(user.TimeFormat, system.TimeFormat, out.TimeFormat)
	out.CurrencySignificantDigits = pick(user.CurrencySignificantDigits, system.CurrencySignificantDigits, out.CurrencySignificantDigits)

	if user.Currency != nil {
		out.Currency = *user.Currency
	} else if c, ok := systemCurrency(system.Currency); ok {
		out.Currency = c
	}

	return out
}

// systemCurrency applies the system-tier currency rule: a configured id is
// looked up in the available set; an empty id with an embedded payload uses
// the payload directly. Anything else leaves the option unresolved.
func systemCurrency(sc SystemCurrency) (Currency, bool) {
	if sc.ID != "" {
		for _, c := range sc.Available {
			if c.ID == sc.ID {
				return c, true
			}
		}
		return Currency{}, false
	}
	if sc.Embedded != nil {
		return *sc.Embedded, true
	}
	return Currency{}, false
}

func pick[T any](user, system *T, fallback T) T {
	if user != nil {
		return *user
	}
	if system != nil {
		return *system
	}
	return fallback
}

// Validate reports a ConfigError when a snapshot cannot format numbers
// unambiguously. Formatters call this before producing output.
func (p Preferences) Validate() error {
	if p.NumberGroupingSeparator == p.DecimalSeparator {
		return &ConfigError{
			Option: "separators",
			Detail: "grouping and decimal separators are both " + p.DecimalSeparator,
		}
	}
	return nil
}
