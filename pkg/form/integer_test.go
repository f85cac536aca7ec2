package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIntegerValidate(t *testing.T) {
	cases := []struct {
		name      string
		value     any
		notNull   bool
		min, max  int64
		bounded   bool
		want      []ErrorKind
		wantValue any
	}{
		{name: "in range", value: "42", min: 1, max: 65535, bounded: true, wantValue: "42"},
		{name: "trimmed", value: " 42 ", min: 1, max: 65535, bounded: true, wantValue: "42"},
		{name: "signed", value: "-5", wantValue: "-5"},
		{name: "explicit plus", value: "+7", wantValue: "+7"},
		{name: "not a number", value: "abc", want: []ErrorKind{InvalidFormat}, wantValue: "abc"},
		{name: "not a number below minimum", value: "abc", min: 1, max: 65535, bounded: true, want: []ErrorKind{InvalidFormat, MinExceeded}, wantValue: "abc"},
		{name: "above maximum", value: "100000", min: 1, max: 65535, bounded: true, want: []ErrorKind{MaxExceeded}, wantValue: "100000"},
		{name: "below minimum", value: "0", min: 1, max: 65535, bounded: true, want: []ErrorKind{MinExceeded}, wantValue: "0"},
		{name: "numeric prefix compared", value: "70000x", min: 1, max: 65535, bounded: true, want: []ErrorKind{InvalidFormat, MaxExceeded}, wantValue: "70000x"},
		{name: "decimal is invalid format", value: "1.5", min: 1, max: 65535, bounded: true, want: []ErrorKind{InvalidFormat}, wantValue: "1.5"},
		{name: "empty optional becomes nil", value: "", wantValue: nil},
		{name: "blank optional skips range", value: "   ", min: 1, max: 2, bounded: true, wantValue: nil},
		{name: "blank required", value: "  ", notNull: true, want: []ErrorKind{EmptyValue}, wantValue: nil},
		{name: "native integer", value: 8080, min: 1, max: 65535, bounded: true, wantValue: "8080"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			el := NewInteger("serverPort", "Server port")
			el.SetNotNull(tc.notNull)
			if tc.bounded {
				el.SetMinimum(tc.min)
				el.SetMaximum(tc.max)
			}
			el.SetValue(tc.value)

			ok := el.Validate()
			if ok != (len(tc.want) == 0) {
				t.Fatalf("validate = %v, errors %v", ok, el.Errors())
			}
			if diff := cmp.Diff(tc.want, el.Errors()); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantValue, el.DbValue()); diff != "" {
				t.Fatalf("db value mismatch (-want +got):\n%s", diff)
			}
			if !el.IsValidated() {
				t.Fatal("validate must mark the element validated")
			}
		})
	}
}

func TestIntegerIsEmptyTrims(t *testing.T) {
	el := NewInteger("n", "")
	el.SetValue(" \t")
	if !el.IsEmpty() {
		t.Fatal("whitespace-only integer should be empty")
	}
	el.SetValue("0")
	if el.IsEmpty() {
		t.Fatal(`"0" is a value, not empty`)
	}
}

func TestIntegerBoundsAccessors(t *testing.T) {
	el := NewInteger("n", "")
	if _, ok := el.Minimum(); ok {
		t.Fatal("expected no minimum by default")
	}
	el.SetMinimum(1)
	el.SetMaximum(10)
	if n, ok := el.Minimum(); !ok || n != 1 {
		t.Fatalf("unexpected minimum %d %v", n, ok)
	}
	el.ClearMaximum()
	el.SetValue("11")
	if !el.Validate() {
		t.Fatalf("cleared maximum must not apply, errors %v", el.Errors())
	}
	if n, ok := el.Int64(); !ok || n != 11 {
		t.Fatalf("unexpected Int64 %d %v", n, ok)
	}
}

func TestLeadingNumber(t *testing.T) {
	cases := map[string]float64{
		"12":     12,
		"12abc":  12,
		"abc":    0,
		"-3":     -3,
		"+4":     4,
		"1.5":    1.5,
		".5":     0.5,
		"5.":     5,
		"":       0,
		"-":      0,
		" 7 ":    7,
		"65536x": 65536,
	}
	for in, want := range cases {
		if got := leadingNumber(in); got != want {
			t.Fatalf("leadingNumber(%q) = %v, want %v", in, got, want)
		}
	}
}
