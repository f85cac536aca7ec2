package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newElements(t *testing.T) []Element {
	t.Helper()
	var out []Element
	for _, typ := range Types() {
		el, err := NewElement(typ, "field", "Field")
		if err != nil {
			t.Fatalf("new %s: %v", typ, err)
		}
		out = append(out, el)
	}
	return out
}

func TestFetchWithoutInputLeavesElementsEmpty(t *testing.T) {
	for _, el := range newElements(t) {
		el.SetValue("stale")
		el.Fetch(Input{})
		if !el.IsEmpty() {
			t.Fatalf("%s: expected empty after fetch without input, got %#v", el.Type(), el.Value())
		}
	}
}

func TestFetchPrefersRequestOverGlobal(t *testing.T) {
	for _, el := range newElements(t) {
		el.Fetch(Input{
			Request: MapSource{"field": "from-request"},
			Global:  MapSource{"field": "from-global"},
		})
		if got := el.Value(); got != "from-request" {
			t.Fatalf("%s: expected request value, got %#v", el.Type(), got)
		}
		if el.IsValidated() {
			t.Fatalf("%s: request input must not be marked validated", el.Type())
		}

		el.Fetch(Input{Global: MapSource{"field": "from-global"}})
		if got := el.Value(); got != "from-global" {
			t.Fatalf("%s: expected global value, got %#v", el.Type(), got)
		}
		if !el.IsValidated() {
			t.Fatalf("%s: global input must be marked validated", el.Type())
		}
	}
}

func TestFetchTreatsNilLookupAsAbsent(t *testing.T) {
	el := NewText("field", "Field")
	el.Fetch(Input{
		Request: MapSource{"field": nil},
		Global:  MapSource{"field": "fallback"},
	})
	if got := el.Value(); got != "fallback" {
		t.Fatalf("expected global fallback, got %#v", got)
	}
}

func TestNotNullReportsEmptyValueIffEmpty(t *testing.T) {
	filled := map[Type]any{
		TypeText:     "x",
		TypeInteger:  "5",
		TypePassword: "secret",
		TypeHidden:   "1",
		TypeDropdown: "0",
	}
	for _, el := range newElements(t) {
		el.SetNotNull(true)
		el.Fetch(Input{})
		if el.Validate() {
			t.Fatalf("%s: expected empty not-null element to fail", el.Type())
		}
		if diff := cmp.Diff([]ErrorKind{EmptyValue}, el.Errors()); diff != "" {
			t.Fatalf("%s: errors mismatch (-want +got):\n%s", el.Type(), diff)
		}
		if !el.IsValidated() {
			t.Fatalf("%s: validate must mark the element validated", el.Type())
		}

		el.SetValue(filled[el.Type()])
		if !el.Validate() {
			t.Fatalf("%s: expected filled element to pass, errors %v", el.Type(), el.Errors())
		}
		if el.HasError() {
			t.Fatalf("%s: validate must reset previous errors", el.Type())
		}
	}
}

func TestSetValueExtractsJoinedRowColumn(t *testing.T) {
	el := NewText("host", "Host")

	el.SetValue([]Record{{"host": "alpha", "port": 22}, {"host": "beta"}})
	if got := el.Value(); got != "alpha" {
		t.Fatalf("expected first row column, got %#v", got)
	}

	el.SetValue([]map[string]any{{"port": 22}})
	if got := el.Value(); got != nil {
		t.Fatalf("expected nil for rows without column, got %#v", got)
	}

	el.SetValue([]string{"a", "b"})
	if got := el.Value(); got != nil {
		t.Fatalf("expected nil for flat list input, got %#v", got)
	}
}

func TestSetDbValueStoresEmptyListWithoutColumn(t *testing.T) {
	el := NewText("host", "Host")

	el.SetDbValue([]any{map[string]any{"port": 22}})
	if diff := cmp.Diff([]string{}, el.DbValue()); diff != "" {
		t.Fatalf("db value mismatch (-want +got):\n%s", diff)
	}

	el.SetDbValue([]Record{{"host": "alpha"}})
	if got := el.DbValue(); got != "alpha" {
		t.Fatalf("expected row column, got %#v", got)
	}
}

func TestSetDbValueRoundTripsScalars(t *testing.T) {
	scalars := []any{"abc", "0", "", 42, int64(-7), 3.5, true}
	for _, el := range newElements(t) {
		for _, x := range scalars {
			el.SetDbValue(x)
			if diff := cmp.Diff(x, el.DbValue()); diff != "" {
				t.Fatalf("%s: round trip of %#v mismatch (-want +got):\n%s", el.Type(), x, diff)
			}
		}
	}
}

func TestSetNameTrimsWhitespace(t *testing.T) {
	el := NewText("  host ", "")
	if el.Name() != "host" {
		t.Fatalf("constructor should trim name, got %q", el.Name())
	}
	el.SetName("\tdestination\n")
	if el.Name() != "destination" {
		t.Fatalf("expected trimmed name, got %q", el.Name())
	}
	if el.Label() != "Destination" {
		t.Fatalf("expected derived label, got %q", el.Label())
	}
}

func TestDisplayValueAppliesDefaultWithoutMutating(t *testing.T) {
	el := NewText("allowIp", "Source IP")
	el.SetDefaultValue("10.0.0.1")

	row := el.Row()
	if row.Control.Value != "10.0.0.1" {
		t.Fatalf("expected default in row, got %q", row.Control.Value)
	}
	if el.Value() != nil {
		t.Fatalf("rendering must not change the value, got %#v", el.Value())
	}

	el.SetValue("192.168.1.2")
	if got := el.Row().Control.Value; got != "192.168.1.2" {
		t.Fatalf("expected current value in row, got %q", got)
	}
}

func TestRowCarriesLabelHintAndErrors(t *testing.T) {
	el := NewText("destination", "Server")
	el.SetHint("Separate hosts with a semicolon.")
	el.SetNotNull(true)
	el.Validate()

	want := Row{
		Name:  "destination",
		Label: "Server",
		Hint:  "Separate hosts with a semicolon.",
		Control: Control{
			Kind: "text",
			Name: "data[destination]",
		},
		Errors: []ErrorKind{EmptyValue},
	}
	if diff := cmp.Diff(want, el.Row()); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestSetErrorDeduplicates(t *testing.T) {
	el := NewText("field", "")
	el.SetError(RegexpMismatch)
	el.SetError(RegexpMismatch)
	el.SetError(EmptyValue)
	if diff := cmp.Diff([]ErrorKind{RegexpMismatch, EmptyValue}, el.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}
