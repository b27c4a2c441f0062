package format

import (
	"errors"
	"testing"
)

func datetimeFormatter(dateFormat, timeFormat string) *DatetimeFormatter {
	p := DefaultPreferences()
	p.DateFormat = dateFormat
	p.TimeFormat = timeFormat
	return NewDatetimeFormatter(prefsCell(p))
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		pattern string
		value   string
		want    string
	}{
		{"dd.MM.yyyy", "2020-05-15", "15.05.2020"},
		{"MM/dd/yyyy", "2020-05-15", "05/15/2020"},
		{"yyyy-MM-dd", "2020-05-15", "2020-05-15"},
		{"dd/MM/yy", "2020-05-15", "15/05/20"},
	}
	for _, tt := range tests {
		f := datetimeFormatter(tt.pattern, "HH:mm:ss")
		got, err := f.FormatDate(tt.value)
		if err != nil {
			t.Fatalf("FormatDate(%q) under %q error: %v", tt.value, tt.pattern, err)
		}
		if got != tt.want {
			t.Errorf("FormatDate(%q) under %q = %q, want %q", tt.value, tt.pattern, got, tt.want)
		}
	}
}

func TestFormatDateTime(t *testing.T) {
	f := datetimeFormatter("dd.MM.yyyy", "HH.mm.ss")
	got, err := f.FormatDateTime("2020-05-14 23:11:01")
	if err != nil {
		t.Fatalf("FormatDateTime error: %v", err)
	}
	if got != "14.05.2020 23.11.01" {
		t.Errorf("FormatDateTime = %q, want %q", got, "14.05.2020 23.11.01")
	}
}

func TestFormatTime(t *testing.T) {
	f := datetimeFormatter("dd.MM.yyyy", "HH:mm")
	got, err := f.FormatTime("23:11:01")
	if err != nil {
		t.Fatalf("FormatTime error: %v", err)
	}
	if got != "23:11" {
		t.Errorf("FormatTime = %q, want %q", got, "23:11")
	}
}

func TestFormatDateRejectsInvalidInternalValues(t *testing.T) {
	f := datetimeFormatter("dd.MM.yyyy", "HH.mm.ss")
	for _, in := range []string{"", "15.05.2020", "2020-13-45", "yesterday", "2020-05-14 23:11:01"} {
		got, err := f.FormatDate(in)
		var valErr *ValueError
		if !errors.As(err, &valErr) {
			t.Errorf("FormatDate(%q) err = %v, want *ValueError", in, err)
		}
		if got != in {
			t.Errorf("FormatDate(%q) degraded output = %q, want raw input", in, got)
		}
	}
}

func TestDateRoundTrip(t *testing.T) {
	f := datetimeFormatter("dd.MM.yyyy", "HH.mm.ss")

	display, err := f.FormatDate("2020-05-15")
	if err != nil {
		t.Fatalf("FormatDate error: %v", err)
	}
	back, err := f.ParseDate(display)
	if err != nil {
		t.Fatalf("ParseDate(%q) error: %v", display, err)
	}
	if back != "2020-05-15" {
		t.Errorf("round trip = %q, want %q", back, "2020-05-15")
	}
}

func TestDateTimeRoundTrip(t *testing.T) {
	f := datetimeFormatter("dd.MM.yyyy", "HH.mm.ss")

	display, err := f.FormatDateTime("2020-05-14 23:11:01")
	if err != nil {
		t.Fatalf("FormatDateTime error: %v", err)
	}
	back, err := f.ParseDateTime(display)
	if err != nil {
		t.Fatalf("ParseDateTime(%q) error: %v", display, err)
	}
	if back != "2020-05-14 23:11:01" {
		t.Errorf("round trip = %q, want %q", back, "2020-05-14 23:11:01")
	}
}
