package render

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-knock/pkg/form"
)

type stubTranslator struct {
	messages map[string]string
}

func (s stubTranslator) Translate(locale, key string, _ ...any) (string, error) {
	if msg, ok := s.messages[locale+":"+key]; ok {
		return msg, nil
	}
	return "", errors.New("missing")
}

func TestErrorMessageUsesBuiltInCatalog(t *testing.T) {
	if got := ErrorMessage(form.EmptyValue, RenderOptions{}); got != "Please enter a value." {
		t.Fatalf("unexpected english message %q", got)
	}
	if got := ErrorMessage(form.RegexpMismatch, RenderOptions{Locale: "de_AT"}); got != "Ungültiger Wert." {
		t.Fatalf("expected base language fallback, got %q", got)
	}
	if got := ErrorMessage(form.MaxExceeded, RenderOptions{Locale: "fr"}); got != "Value is above the maximum." {
		t.Fatalf("expected english fallback, got %q", got)
	}
}

func TestErrorMessageFallsBackWhenTranslatorMisses(t *testing.T) {
	opts := RenderOptions{
		Locale:     "es",
		Translator: stubTranslator{messages: map[string]string{"es:form.error.EMPTY_VALUE": "Valor requerido."}},
	}
	if got := ErrorMessage(form.EmptyValue, opts); got != "Valor requerido." {
		t.Fatalf("unexpected translation %q", got)
	}
	if got := ErrorMessage(form.InvalidFormat, opts); got != "Invalid value." {
		t.Fatalf("expected generic fallback, got %q", got)
	}

	var missed []string
	opts.OnMissing = func(locale, key string, _ []any, err error) string {
		missed = append(missed, locale+":"+key)
		return "??" + key
	}
	if got := ErrorMessage(form.MinExceeded, opts); got != "??form.error.MIN_EXCEEDED" {
		t.Fatalf("expected handler output, got %q", got)
	}
	if diff := cmp.Diff([]string{"es:form.error.MIN_EXCEEDED"}, missed); diff != "" {
		t.Fatalf("missing handler calls mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogReportsMissingKeys(t *testing.T) {
	_, err := DefaultCatalog.Translate("en", "unknown.key")
	if !errors.Is(err, ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
}

func TestMapErrors(t *testing.T) {
	f := form.New("knock")
	dest, err := form.Add[*form.Text](f, form.TypeText, "destination", "Server")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	dest.SetNotNull(true)
	port, err := form.Add[*form.Integer](f, form.TypeInteger, "serverPort", "Port")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	port.SetMaximum(10)
	if _, err := f.AddElement(form.TypeText, "comment"); err != nil {
		t.Fatalf("add: %v", err)
	}

	f.Fetch(form.Input{Request: form.MapSource{"serverPort": "11x"}})
	f.Validate()

	got := MapErrors(f, RenderOptions{}, " tmp not writable ", "tmp not writable")
	want := ErrorMapping{
		Fields: map[string][]string{
			"destination": {"Please enter a value."},
			"serverPort":  {"Invalid format.", "Value is above the maximum."},
		},
		Form: []string{"tmp not writable"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}

	if !MapErrors(form.New("empty"), RenderOptions{}).Empty() {
		t.Fatal("expected empty mapping")
	}
}

func TestMergeFormErrors(t *testing.T) {
	got := MergeFormErrors([]string{"a", " b"}, "b", "", "c")
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}
