package openapi_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-knock/pkg/form"
	"github.com/goliatone/go-knock/pkg/openapi"
)

func knockForm(t *testing.T) *form.Form {
	t.Helper()

	f := form.New("knock")
	dest, err := form.Add[*form.Dropdown](f, form.TypeDropdown, "destination", "Destination", []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("add destination: %v", err)
	}
	dest.SetIsMultiple(true)
	dest.SetNotNull(true)

	port, err := form.Add[*form.Integer](f, form.TypeInteger, "serverPort", "Server port")
	if err != nil {
		t.Fatalf("add serverPort: %v", err)
	}
	port.SetMinimum(1)
	port.SetMaximum(65535)
	port.SetDefaultValue("62201")

	ip, err := form.Add[*form.Text](f, form.TypeText, "allowIp", "Allow IP")
	if err != nil {
		t.Fatalf("add allowIp: %v", err)
	}
	if err := ip.SetPattern(`^[0-9.]+$`); err != nil {
		t.Fatalf("pattern: %v", err)
	}
	ip.SetHint("IPv4 address to open the port for")

	key, err := f.AddElement(form.TypePassword, "encryptionKey", "Encryption key")
	if err != nil {
		t.Fatalf("add encryptionKey: %v", err)
	}
	key.SetNotNull(true)
	key.SetDefaultValue("never-exposed")

	knock := form.NewHidden("doKnock")
	knock.SetDefaultValue("1")
	if err := f.Register(knock); err != nil {
		t.Fatalf("register doKnock: %v", err)
	}
	return f
}

func TestDescribeProducesValidDocument(t *testing.T) {
	doc, err := openapi.Describe(knockForm(t),
		openapi.WithTitle("Knock"),
		openapi.WithVersion("1.0.0"),
		openapi.WithPath("knock"),
		openapi.WithServer("https://knock.example.com"),
	)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if err := openapi.Validate(context.Background(), doc); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if doc.Info.Title != "Knock" || doc.Info.Version != "1.0.0" {
		t.Fatalf("unexpected info %+v", doc.Info)
	}
	item := doc.Paths.Find("/knock")
	if item == nil || item.Get == nil || item.Post == nil {
		t.Fatalf("expected GET and POST on /knock")
	}
	if len(doc.Servers) != 1 || doc.Servers[0].URL != "https://knock.example.com" {
		t.Fatalf("unexpected servers %+v", doc.Servers)
	}
}

func TestBodySchemaMirrorsElements(t *testing.T) {
	schema, err := openapi.BodySchema(knockForm(t))
	if err != nil {
		t.Fatalf("body schema: %v", err)
	}

	wantRequired := []string{"data[destination][]", "data[encryptionKey]"}
	if diff := cmp.Diff(wantRequired, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	dest := schema.Properties["data[destination][]"].Value
	if !dest.Type.Is(openapi3.TypeArray) {
		t.Fatalf("expected array destination, got %v", dest.Type)
	}
	if diff := cmp.Diff([]any{"0", "1"}, dest.Items.Value.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}

	port := schema.Properties["data[serverPort]"].Value
	if !port.Type.Is(openapi3.TypeInteger) {
		t.Fatalf("expected integer port, got %v", port.Type)
	}
	if port.Min == nil || *port.Min != 1 || port.Max == nil || *port.Max != 65535 {
		t.Fatalf("unexpected bounds min=%v max=%v", port.Min, port.Max)
	}
	if port.Default != float64(62201) {
		t.Fatalf("unexpected port default %v", port.Default)
	}

	ip := schema.Properties["data[allowIp]"].Value
	if ip.Pattern != `^[0-9.]+$` || ip.Description != "IPv4 address to open the port for" {
		t.Fatalf("unexpected allowIp schema pattern=%q description=%q", ip.Pattern, ip.Description)
	}

	key := schema.Properties["data[encryptionKey]"].Value
	if key.Format != "password" || !key.WriteOnly || key.Default != nil {
		t.Fatalf("unexpected password schema %+v", key)
	}

	if got := schema.Properties["data[doKnock]"].Value.Default; got != "1" {
		t.Fatalf("unexpected doKnock default %v", got)
	}
}

func TestMarshalJSONRoundTrip(t *testing.T) {
	payload, err := openapi.MarshalJSON(knockForm(t), openapi.WithTitle("Knock"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	doc, err := openapi3.NewLoader().LoadFromData(payload)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if doc.Paths.Find("/") == nil {
		t.Fatalf("expected default path")
	}
}

func TestDescribeRejectsNilForm(t *testing.T) {
	if _, err := openapi.Describe(nil); err == nil {
		t.Fatalf("expected error for nil form")
	}
}
