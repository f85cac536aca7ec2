package vanilla_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-knock/pkg/form"
	"github.com/goliatone/go-knock/pkg/message"
	"github.com/goliatone/go-knock/pkg/render"
	gotemplate "github.com/goliatone/go-knock/pkg/render/template/gotemplate"
	"github.com/goliatone/go-knock/pkg/renderers/vanilla"
	"github.com/goliatone/go-knock/pkg/testsupport"
	theme "github.com/goliatone/go-theme"
)

func knockForm(t *testing.T) *form.Form {
	t.Helper()

	f := form.New("knock", form.WithAction("/knock"))
	dest, err := form.Add[*form.Dropdown](f, form.TypeDropdown, "destination", "Destination", []string{"alpha", "beta", "gamma"})
	if err != nil {
		t.Fatalf("add destination: %v", err)
	}
	dest.SetMaximumSize(20)
	dest.SetIsMultiple(true)
	dest.SetNotNull(true)

	port, err := form.Add[*form.Integer](f, form.TypeInteger, "serverPort", "Server port")
	if err != nil {
		t.Fatalf("add serverPort: %v", err)
	}
	port.SetMinimum(1)
	port.SetMaximum(65535)

	if _, err := f.AddElement(form.TypePassword, "encryptionKey", "Encryption key"); err != nil {
		t.Fatalf("add encryptionKey: %v", err)
	}
	knock := form.NewHidden("doKnock")
	knock.SetDefaultValue("1")
	if err := f.Register(knock); err != nil {
		t.Fatalf("register doKnock: %v", err)
	}
	return f
}

func renderPage(t *testing.T, f *form.Form, opts render.RenderOptions) string {
	t.Helper()

	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), f, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRendererMetadata(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "vanilla" {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	if !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
}

func TestRenderEmitsHiddenInputsBeforeTable(t *testing.T) {
	html := renderPage(t, knockForm(t), render.RenderOptions{Product: "Knock", Version: "1.2.0"})

	hidden := strings.Index(html, `name="data[doKnock]" value="1"`)
	table := strings.Index(html, `<table class="form"`)
	if hidden < 0 || table < 0 || hidden > table {
		t.Fatalf("expected hidden input before table (hidden=%d table=%d)\n%s", hidden, table, html)
	}
	testsupport.AssertContains(t, html,
		`action="/knock"`,
		`method="post"`,
		`name="knock"`,
		`<title>Knock</title>`,
		`Knock v1.2.0`,
	)
}

func TestRenderDropdownSelection(t *testing.T) {
	f := knockForm(t)
	f.Fetch(form.Input{Request: form.MapSource{"destination": []string{"0", "2"}}})

	html := renderPage(t, f, render.RenderOptions{})
	testsupport.AssertContains(t, html,
		`name="data[destination][]" multiple="multiple" size="3"`,
		`<option value="0" selected="selected">alpha</option>`,
		`<option value="1">beta</option>`,
		`<option value="2" selected="selected">gamma</option>`,
	)
}

func TestRenderNeverEchoesPassword(t *testing.T) {
	f := knockForm(t)
	f.Fetch(form.Input{Request: form.MapSource{"encryptionKey": "s3cret"}})

	html := renderPage(t, f, render.RenderOptions{})
	testsupport.AssertNotContains(t, html, "s3cret")
	testsupport.AssertContains(t, html, `type="password" id="knock-encryptionKey" name="data[encryptionKey]" value=""`)
}

func TestRenderLocalisedFieldErrors(t *testing.T) {
	f := knockForm(t)
	f.Fetch(form.Input{Request: form.MapSource{"serverPort": "70000"}})
	if f.Validate() {
		t.Fatalf("expected validation to fail")
	}

	html := renderPage(t, f, render.RenderOptions{Locale: "de"})
	testsupport.AssertContains(t, html,
		`<tr class="row invalid">`,
		`<div class="error">`+render.ErrorMessage(form.MaxExceeded, render.RenderOptions{Locale: "de"})+`</div>`,
	)
}

func TestRenderSanitisesMessages(t *testing.T) {
	msgs := message.New()
	msgs.AddError(`Unable to execute fwknop.<br />bad<script>alert(1)</script>`)
	msgs.AddInfo("Knock sent")

	html := renderPage(t, knockForm(t), render.RenderOptions{Messages: msgs.Get(message.All, true)})
	testsupport.AssertNotContains(t, html, "<script>", "alert(1)")
	testsupport.AssertContains(t, html,
		`<div class="failed">Unable to execute fwknop.<br/>bad</div>`,
		`<div class="success">Knock sent</div>`,
	)
}

func TestRenderButtonsAndLegend(t *testing.T) {
	var buttons render.ButtonBar
	buttons.Add("knock", "Knock", "Send knock")

	html := renderPage(t, knockForm(t), render.RenderOptions{Buttons: buttons, Legend: true})
	testsupport.AssertContains(t, html,
		`<input type="submit" name="knock" value="Knock" title="Send knock" />`,
		`<h1 class="legend">Legend</h1>`,
		`https://cipherdyne.org/fwknop/`,
	)
}

func TestRenderThemeStyle(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"color-accent": "#ff0000"},
		Assets: theme.Assets{
			Prefix: "/static",
			Files:  map[string]string{"stylesheet": "knock.css"},
		},
	}
	cfg, err := render.ThemeConfig(manifest, "")
	if err != nil {
		t.Fatalf("theme config: %v", err)
	}

	html := renderPage(t, knockForm(t), render.RenderOptions{Theme: cfg})
	testsupport.AssertContains(t, html,
		`data-theme="acme"`,
		`--color-accent: #ff0000;`,
		`<link rel="stylesheet" href="/static/knock.css" />`,
	)
}

func TestAssetsFSServesStylesheet(t *testing.T) {
	data, err := fsReadFile(vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !strings.Contains(string(data), ".groupBox") {
		t.Fatalf("unexpected stylesheet contents")
	}
}

func TestRenderFromAlternateBundle(t *testing.T) {
	bundle := fstest.MapFS{
		"templates/page.tmpl": {Data: []byte("{{ title }}|{{ product }}")},
	}
	renderer, err := vanilla.New(vanilla.WithTemplatesFS(bundle))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), knockForm(t), render.RenderOptions{Title: "Gate", Product: "go-knock"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertEqual(t, "Gate|go-knock", string(out))
}

func TestRenderFromTemplatesDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "templates", "page.tmpl"), []byte("dir:{{ title }}"), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}

	fromDir, err := vanilla.New(vanilla.WithTemplatesDir(dir))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := fromDir.Render(context.Background(), knockForm(t), render.RenderOptions{Title: "Gate"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertEqual(t, "dir:Gate", string(out))

	engine, err := gotemplate.New(gotemplate.WithBaseDir(dir), gotemplate.WithExtension("tmpl"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	injected, err := vanilla.New(vanilla.WithTemplateRenderer(engine))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err = injected.Render(context.Background(), knockForm(t), render.RenderOptions{Title: "Injected"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertEqual(t, "dir:Injected", string(out))
}
