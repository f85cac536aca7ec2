package knock

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), "knock.css")
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("stylesheet is empty")
	}
}

func TestNewServerLabelsFooter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UseHTTPSOnly = false
	cfg.EncryptionKey = "s3cret"
	cfg.Destination = "gate.example.com"
	cfg.TmpDir = t.TempDir()

	srv, err := NewServer(&cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, cfg.PathApplication, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if want := Product + " v" + Version; !strings.Contains(rec.Body.String(), want) {
		t.Fatalf("expected footer %q in\n%s", want, rec.Body.String())
	}
}

func TestNewFormSeedsSourceIP(t *testing.T) {
	cfg := DefaultConfig()
	f, err := NewForm(&cfg, "203.0.113.9:4000")
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	el := f.Element("allowIp")
	if el == nil || el.DisplayValue() != "203.0.113.9" {
		t.Fatalf("allowIp default not seeded: %+v", el)
	}
}

