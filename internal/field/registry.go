package field

import (
	"github.com/ravenfield/recview/internal/format"
)

// ---------------------------------------------------------------------------
// Dispatch table: single source of truth for (type, mode) -> renderer
// ---------------------------------------------------------------------------
//
// Resolve never fails: a pair with no specific entry falls back to the
// generic text renderer for that mode, so every combination renders.
// Adding behavior for a new type means adding entries here; nothing else
// needs to change.

type renderKey struct {
	t Type
	m Mode
}

// Registry resolves a renderer for every (type, mode) pair.
type Registry struct {
	numbers    *format.NumberFormatter
	currencies *format.CurrencyFormatter
	datetimes  *format.DatetimeFormatter
	options    OptionsSource

	renderers map[renderKey]Renderer
	fallback  map[Mode]Renderer
}

// NewRegistry builds the dispatch table over the supplied formatter set and
// options source.
func NewRegistry(
	numbers *format.NumberFormatter,
	currencies *format.CurrencyFormatter,
	datetimes *format.DatetimeFormatter,
	options OptionsSource,
) *Registry {
	reg := &Registry{
		numbers:    numbers,
		currencies: currencies,
		datetimes:  datetimes,
		options:    options,
		renderers:  map[renderKey]Renderer{},
	}

	reg.fallback = map[Mode]Renderer{
		ModeDetail: displayText(reg.identity),
		ModeList:   displayText(reg.identity),
		ModeEdit:   editControl(reg.identity, identityCommit),
		ModeFilter: filterControl(identityCommit),
	}

	// Display modes. varchar/text/phone take the fallback identity renderer.
	reg.registerDisplay(TypeInt, displayText(reg.intText))
	reg.registerDisplay(TypeFloat, displayText(reg.floatText))
	reg.registerDisplay(TypeCurrency, displayText(reg.currencyText))
	reg.registerDisplay(TypeDate, displayText(reg.dateText))
	reg.registerDisplay(TypeDatetime, displayText(reg.datetimeText))
	reg.registerDisplay(TypeEnum, displayText(reg.enumText))
	reg.registerDisplay(TypeMultiEnum, displayText(reg.multiEnumText))
	reg.registerDisplay(TypeFullname, displayText(reg.fullnameText))

	// Link-carrying detail renderers override the plain display entry.
	reg.register(TypeURL, ModeDetail, RendererFunc(reg.urlDetail))
	reg.register(TypeRelate, ModeDetail, RendererFunc(reg.relateDetail))

	// Editable modes with typed parse-on-commit. Everything else keeps the
	// generic identity control.
	reg.registerEditable(TypeInt, editControl(reg.identity, intCommit), filterControl(intCommit))
	reg.registerEditable(TypeFloat, editControl(reg.floatText, reg.numbers.Parse), filterControl(reg.numbers.Parse))
	reg.registerEditable(TypeCurrency, editControl(reg.currencyText, reg.currencies.Parse), filterControl(reg.currencies.Parse))
	reg.registerEditable(TypeDate, editControl(reg.dateText, reg.datetimes.ParseDate), filterControl(reg.datetimes.ParseDate))
	reg.registerEditable(TypeDatetime, editControl(reg.datetimeText, reg.datetimes.ParseDateTime), filterControl(reg.datetimes.ParseDateTime))

	return reg
}

func (reg *Registry) register(t Type, m Mode, r Renderer) {
	reg.renderers[renderKey{t, m}] = r
}

func (reg *Registry) registerDisplay(t Type, r Renderer) {
	reg.register(t, ModeDetail, r)
	reg.register(t, ModeList, r)
}

func (reg *Registry) registerEditable(t Type, edit, filter Renderer) {
	reg.register(t, ModeEdit, edit)
	reg.register(t, ModeFilter, filter)
}

// Resolve returns the renderer for (t, m). An unregistered pair resolves to
// the generic text renderer for the mode; this is defined behavior, not an
// error.
func (reg *Registry) Resolve(t Type, m Mode) Renderer {
	if r, ok := reg.renderers[renderKey{t, m}]; ok {
		return r
	}
	if r, ok := reg.fallback[m]; ok {
		return r
	}
	return reg.fallback[ModeDetail]
}

// Render resolves and renders in one step.
func (reg *Registry) Render(f *Field, r *Record, m Mode) (Payload, error) {
	return reg.Resolve(f.Type, m).Render(f, r)
}
