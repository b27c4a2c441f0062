package field

import (
	"errors"
	"testing"

	"github.com/ravenfield/recview/internal/format"
	"github.com/ravenfield/recview/internal/observe"
)

func testRegistry() *Registry {
	prefs := observe.NewCell(format.Preferences{
		NumberGroupingSeparator:   ",",
		DecimalSeparator:          ".",
		DateFormat:                "dd.MM.yyyy",
		TimeFormat:                "HH.mm.ss",
		Currency:                  format.Currency{ID: "1", Name: "Stirling Pound", Symbol: "£", ISO4217: "GBP"},
		CurrencySignificantDigits: 2,
	})
	numbers := format.NewNumberFormatter(prefs)
	currencies := format.NewCurrencyFormatter(prefs, numbers)
	datetimes := format.NewDatetimeFormatter(prefs)
	options := StaticOptions{
		"account_type_dom": {
			"_customer": "Customer",
			"_reseller": "Reseller",
		},
	}
	return NewRegistry(numbers, currencies, datetimes, options)
}

func TestRenderDisplayModes(t *testing.T) {
	reg := testRegistry()

	tests := []struct {
		name  string
		field Field
		mode  Mode
		want  string
	}{
		{"varchar detail", Field{Type: TypeVarchar, Value: "My Varchar"}, ModeDetail, "My Varchar"},
		{"varchar list", Field{Type: TypeVarchar, Value: "My Varchar"}, ModeList, "My Varchar"},
		{"text detail", Field{Type: TypeText, Value: "My Text"}, ModeDetail, "My Text"},
		{"int detail", Field{Type: TypeInt, Value: "10"}, ModeDetail, "10"},
		{"int list", Field{Type: TypeInt, Value: "10"}, ModeList, "10"},
		{"float detail", Field{Type: TypeFloat, Value: "1000.5"}, ModeDetail, "1,000.5"},
		{"float list", Field{Type: TypeFloat, Value: "1000.5"}, ModeList, "1,000.5"},
		{"phone detail", Field{Type: TypePhone, Value: "+44 1111 123456"}, ModeDetail, "+44 1111 123456"},
		{"phone list", Field{Type: TypePhone, Value: "+44 1111 123456"}, ModeList, "+44 1111 123456"},
		{"date detail", Field{Type: TypeDate, Value: "2020-05-15"}, ModeDetail, "15.05.2020"},
		{"date list", Field{Type: TypeDate, Value: "2020-05-16"}, ModeList, "16.05.2020"},
		{"datetime detail", Field{Type: TypeDatetime, Value: "2020-05-14 23:11:01"}, ModeDetail, "14.05.2020 23.11.01"},
		{"datetime list", Field{Type: TypeDatetime, Value: "2020-05-13 23:12:02"}, ModeList, "13.05.2020 23.12.02"},
		{"url list", Field{Type: TypeURL, Value: "https://example.com/"}, ModeList, "https://example.com/"},
		{"currency detail", Field{Type: TypeCurrency, Value: "1000.5"}, ModeDetail, "£1,000.5"},
		{"currency list", Field{Type: TypeCurrency, Value: "1000.5"}, ModeList, "£1,000.5"},
		{
			"enum list",
			Field{Type: TypeEnum, Value: "_customer", Definition: Definition{Options: "account_type_dom"}},
			ModeList, "Customer",
		},
		{
			"enum detail",
			Field{Type: TypeEnum, Value: "_customer", Definition: Definition{Options: "account_type_dom"}},
			ModeDetail, "Customer",
		},
		{
			"enum unresolved code shows raw code",
			Field{Type: TypeEnum, Value: "_partner", Definition: Definition{Options: "account_type_dom"}},
			ModeDetail, "_partner",
		},
		{
			"multienum list shows first label only",
			Field{Type: TypeMultiEnum, ValueList: []string{"_customer", "_reseller"}, Definition: Definition{Options: "account_type_dom"}},
			ModeList, "Customer",
		},
		{
			"multienum detail shows first label only",
			Field{Type: TypeMultiEnum, ValueList: []string{"_customer", "_reseller"}, Definition: Definition{Options: "account_type_dom"}},
			ModeDetail, "Customer",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.field
			got, err := reg.Render(&f, &Record{Module: "accounts"}, tt.mode)
			if err != nil {
				t.Fatalf("Render error: %v", err)
			}
			if got.Text != tt.want {
				t.Errorf("Render text = %q, want %q", got.Text, tt.want)
			}
		})
	}
}

func TestRenderFullname(t *testing.T) {
	reg := testRegistry()
	f := Field{Type: TypeFullname, Value: "salutation first_name last_name"}
	rec := Record{
		Module: "leads",
		Attributes: map[string]string{
			"salutation": "User",
			"first_name": "Test",
			"last_name":  "Name",
		},
	}

	got, err := reg.Render(&f, &rec, ModeDetail)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got.Text != "User Test Name" {
		t.Errorf("fullname = %q, want %q", got.Text, "User Test Name")
	}
}

func TestRenderFullnameOmitsEmptyComponents(t *testing.T) {
	reg := testRegistry()
	f := Field{Type: TypeFullname, Value: "salutation first_name last_name"}
	rec := Record{Attributes: map[string]string{"first_name": "Test", "last_name": "Name"}}

	got, _ := reg.Render(&f, &rec, ModeDetail)
	if got.Text != "Test Name" {
		t.Errorf("fullname = %q, want %q", got.Text, "Test Name")
	}
}

func TestRenderURLDetailCarriesLink(t *testing.T) {
	reg := testRegistry()
	f := Field{Type: TypeURL, Value: "https://example.com/"}

	got, err := reg.Render(&f, nil, ModeDetail)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got.Kind != PayloadLink || got.Href != "https://example.com/" {
		t.Errorf("payload = %+v, want link to value", got)
	}
}

func TestRenderRelateDetail(t *testing.T) {
	reg := testRegistry()
	f := Field{
		Type:       TypeRelate,
		Value:      "Related Contact",
		Definition: Definition{Module: "Contacts", IDName: "contact_id"},
	}

	got, err := reg.Render(&f, nil, ModeDetail)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got.Text != "Related Contact" {
		t.Errorf("text = %q, want %q", got.Text, "Related Contact")
	}
	if got.Kind != PayloadLink || got.Module != "Contacts" || got.IDField != "contact_id" {
		t.Errorf("payload = %+v, want relate link metadata", got)
	}
}

func TestResolveUnregisteredPairsFallBackToGenericText(t *testing.T) {
	reg := testRegistry()
	modes := []Mode{ModeDetail, ModeList, ModeEdit, ModeFilter}

	// Every (type, mode) combination resolves, including unknown types.
	types := []Type{
		TypeText, TypeVarchar, TypeInt, TypeFloat, TypePhone, TypeDate,
		TypeDatetime, TypeURL, TypeCurrency, TypeEnum, TypeMultiEnum,
		TypeRelate, TypeFullname, Type("hologram"),
	}
	for _, typ := range types {
		for _, mode := range modes {
			if reg.Resolve(typ, mode) == nil {
				t.Fatalf("Resolve(%s, %s) = nil", typ, mode)
			}
		}
	}

	// Unknown type renders as identity text in display modes.
	f := Field{Type: Type("hologram"), Value: "raw"}
	got, err := reg.Render(&f, nil, ModeList)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got.Kind != PayloadText || got.Text != "raw" {
		t.Errorf("fallback payload = %+v, want identity text", got)
	}
}

func TestRenderMalformedValueDegradesToRaw(t *testing.T) {
	reg := testRegistry()

	for _, f := range []Field{
		{Type: TypeFloat, Value: "not-a-number"},
		{Type: TypeCurrency, Value: "lots"},
		{Type: TypeDate, Value: "15.05.2020"},
		{Type: TypeInt, Value: "ten"},
	} {
		got, err := reg.Render(&f, nil, ModeList)
		var valErr *format.ValueError
		if !errors.As(err, &valErr) {
			t.Errorf("%s: err = %v, want *format.ValueError", f.Type, err)
		}
		if got.Text != f.Value {
			t.Errorf("%s: degraded text = %q, want raw %q", f.Type, got.Text, f.Value)
		}
	}
}

func TestEditModeAttachesControlAndCommitsParse(t *testing.T) {
	reg := testRegistry()
	f := Field{Type: TypeCurrency, Value: "1000.5"}

	got, err := reg.Render(&f, nil, ModeEdit)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got.Kind != PayloadControl || f.Control == nil {
		t.Fatalf("payload = %+v, want bound control", got)
	}
	if got.Text != "£1,000.5" {
		t.Errorf("control seed = %q, want display form", got.Text)
	}

	f.Control.SetInput("£2,500.75")
	raw, err := f.Control.Commit()
	if err != nil {
		t.Fatalf("Commit error: %v", err)
	}
	if raw != "2500.75" {
		t.Errorf("committed raw = %q, want %q", raw, "2500.75")
	}

	f.DetachControl()
	if f.Control != nil {
		t.Fatal("control survived detach")
	}
}

func TestEditCommitRejectsBadInput(t *testing.T) {
	reg := testRegistry()
	f := Field{Type: TypeInt, Value: "10"}

	if _, err := reg.Render(&f, nil, ModeEdit); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	f.Control.SetInput("10x")
	if _, err := f.Control.Commit(); err == nil {
		t.Fatal("Commit accepted non-numeric input")
	}
}

func TestFilterModeSeedsFromCriteria(t *testing.T) {
	reg := testRegistry()
	f := Field{
		Type:     TypeVarchar,
		Value:    "test",
		Criteria: &Criteria{Operator: "=", Values: []string{"test"}},
	}

	got, err := reg.Render(&f, nil, ModeFilter)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got.Kind != PayloadControl || got.Text != "test" {
		t.Errorf("filter payload = %+v, want control seeded with criteria value", got)
	}
}

func TestFilterModeAttachesCriteriaWhenAbsent(t *testing.T) {
	reg := testRegistry()
	f := Field{Type: TypeVarchar, Value: "abc"}

	if _, err := reg.Render(&f, nil, ModeFilter); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if f.Criteria == nil || f.Criteria.Operator != "=" {
		t.Fatalf("criteria = %+v, want attached default", f.Criteria)
	}
}
