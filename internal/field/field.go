// Package field models one typed value of a business record and resolves
// how it is presented: a two-key (type, mode) dispatch over renderer
// capabilities, each producing a display payload.
package field

// Type tags a field with its declared value kind. The set is closed;
// anything unknown dispatches to the generic text renderer.
type Type string

const (
	TypeText      Type = "text"
	TypeVarchar   Type = "varchar"
	TypeInt       Type = "int"
	TypeFloat     Type = "float"
	TypePhone     Type = "phone"
	TypeDate      Type = "date"
	TypeDatetime  Type = "datetime"
	TypeURL       Type = "url"
	TypeCurrency  Type = "currency"
	TypeEnum      Type = "enum"
	TypeMultiEnum Type = "multienum"
	TypeRelate    Type = "relate"
	TypeFullname  Type = "fullname"
)

// Mode is the presentation context, orthogonal to Type.
type Mode string

const (
	ModeDetail Mode = "detail"
	ModeList   Mode = "list"
	ModeEdit   Mode = "edit"
	ModeFilter Mode = "filter"
)

// Definition carries type-specific metadata.
type Definition struct {
	// Options names the options list resolving enum/multienum codes.
	Options string
	// Module and IDName describe the link target of a relate field: the
	// related module and the attribute holding the related record id.
	Module string
	IDName string
}

// Criteria is the filter-mode state of a field: an operator plus candidate
// values. Present if and only if the field is rendered in filter mode.
type Criteria struct {
	Operator string
	Values   []string
}

// Field is one runtime value binding. Value holds the raw scalar in the
// type's internal representation; ValueList holds the ordered raw values of
// multi-valued types. Control is attached only while the field participates
// in edit or filter mode.
type Field struct {
	Type       Type
	Value      string
	ValueList  []string
	Definition Definition
	Criteria   *Criteria
	Control    *Control
}

// DetachControl drops the editable control when the field leaves edit or
// filter mode.
func (f *Field) DetachControl() { f.Control = nil }

// Record is the owning record a field belongs to at render time.
type Record struct {
	ID         string
	Module     string
	Attributes map[string]string
}

// Attribute returns the named attribute or "".
func (r *Record) Attribute(name string) string {
	if r == nil {
		return ""
	}
	return r.Attributes[name]
}

// Control is the editable surface bound to a field in edit or filter mode.
// Input holds the display-form text; Commit parses it back to the raw
// internal representation through the type's formatter.
type Control struct {
	input  string
	commit func(display string) (raw string, err error)
}

// NewControl seeds a control with the current display text and the parse
// function of the owning renderer.
func NewControl(display string, commit func(string) (string, error)) *Control {
	if commit == nil {
		commit = func(s string) (string, error) { return s, nil }
	}
	return &Control{input: display, commit: commit}
}

func (c *Control) Input() string         { return c.input }
func (c *Control) SetInput(input string) { c.input = input }

// Commit parses the current input back to the raw representation. A failed
// parse leaves the input untouched and reports the error to the caller.
func (c *Control) Commit() (string, error) {
	return c.commit(c.input)
}

// PayloadKind discriminates what a renderer produced.
type PayloadKind int

const (
	// PayloadText is a formatted display string (detail and list modes).
	PayloadText PayloadKind = iota
	// PayloadLink is a display string that additionally carries a link
	// target (url and relate fields in detail mode).
	PayloadLink
	// PayloadControl is a bound editable surface (edit and filter modes).
	PayloadControl
)

// Payload is the outcome of rendering one field in one mode.
type Payload struct {
	Kind PayloadKind
	Text string

	// Link target, PayloadLink only. Href is set for url fields; Module and
	// IDField describe the relate target for the consuming surface to route.
	Href    string
	Module  string
	IDField string

	// Control is set for PayloadControl payloads and is the same handle
	// attached to the field.
	Control *Control
}

// Renderer converts a field plus its owning record into a payload for one
// (type, mode) pair.
type Renderer interface {
	Render(f *Field, r *Record) (Payload, error)
}

// RendererFunc adapts a function to the Renderer capability.
type RendererFunc func(f *Field, r *Record) (Payload, error)

func (fn RendererFunc) Render(f *Field, r *Record) (Payload, error) { return fn(f, r) }
