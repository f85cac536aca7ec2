package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"
)

func testManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "knock",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":      "#123456",
			"background": "#ffffff",
		},
		Assets: theme.Assets{
			Prefix: "/knock/static",
			Files: map[string]string{
				"stylesheet": "default.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"background": "#000000"},
				Assets: theme.Assets{
					Files: map[string]string{"stylesheet": "dark.css"},
				},
			},
		},
	}
}

func TestThemeConfigMergesVariant(t *testing.T) {
	cfg, err := ThemeConfig(testManifest(), "dark")
	if err != nil {
		t.Fatalf("theme config: %v", err)
	}
	if cfg.Theme != "knock" || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	wantVars := map[string]string{"--brand": "#123456", "--background": "#000000"}
	if diff := cmp.Diff(wantVars, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/knock/static/dark.css" {
		t.Fatalf("unexpected asset url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}
	if got := CSSVarsStyle(cfg.CSSVars); got != "--background: #000000; --brand: #123456;" {
		t.Fatalf("unexpected style %q", got)
	}
}

func TestThemeConfigErrors(t *testing.T) {
	if cfg, err := ThemeConfig(nil, ""); cfg != nil || err != nil {
		t.Fatalf("nil manifest should resolve to nil, got %v %v", cfg, err)
	}
	if _, err := ThemeConfig(testManifest(), "neon"); err == nil {
		t.Fatal("expected unknown variant error")
	}
	if _, err := ThemeConfig(&theme.Manifest{}, ""); err == nil {
		t.Fatal("expected missing name error")
	}
}

func TestButtonBarAdd(t *testing.T) {
	var bar ButtonBar
	if !bar.Empty() {
		t.Fatal("expected empty bar")
	}
	bar.Add("knock", "knock knock", "start knocking")
	bar.Add(" ", "ignored", "")
	bar.Add("reset", "Reset", "")
	bar.Add("knock", "Knock", "send")
	want := []Button{
		{Name: "knock", Value: "Knock", Title: "send"},
		{Name: "reset", Value: "Reset"},
	}
	if diff := cmp.Diff(want, bar.Buttons); diff != "" {
		t.Fatalf("buttons mismatch (-want +got):\n%s", diff)
	}
}
