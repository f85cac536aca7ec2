package render

import (
	"context"
	"testing"

	"github.com/goliatone/go-knock/pkg/form"
)

type stubRenderer struct {
	name        string
	contentType string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return s.contentType }
func (s stubRenderer) Render(context.Context, *form.Form, RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"})

	if err := registry.Register(stubRenderer{name: "vanilla"}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatal("expected error for unnamed renderer")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatal("expected error for nil renderer")
	}
	if !registry.Has("vanilla") || registry.Has("json") {
		t.Fatal("unexpected Has results")
	}
	if _, err := registry.Get("json"); err == nil {
		t.Fatal("expected missing renderer error")
	}
}

func TestRegistryNegotiate(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"})
	registry.MustRegister(stubRenderer{name: "json", contentType: "application/json"})

	cases := map[string]string{
		"":                                  "vanilla",
		"*/*":                               "vanilla",
		"application/json":                  "json",
		"text/html,application/xhtml+xml":   "vanilla",
		"application/xml, application/json": "json",
		"image/png":                         "vanilla",
	}
	for accept, want := range cases {
		renderer, err := registry.Negotiate(accept)
		if err != nil {
			t.Fatalf("negotiate %q: %v", accept, err)
		}
		if renderer.Name() != want {
			t.Fatalf("negotiate %q = %s, want %s", accept, renderer.Name(), want)
		}
	}

	if names := registry.List(); len(names) != 2 || names[0] != "json" {
		t.Fatalf("unexpected list %v", names)
	}
	if _, err := NewRegistry().Negotiate("text/html"); err == nil {
		t.Fatal("expected error from empty registry")
	}
}
