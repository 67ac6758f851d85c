package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistry_Embedded(t *testing.T) {
	t.Setenv("INGEST_SOURCES_PATH", "")
	t.Setenv("DATA_DIR", "/srv/leads")

	reg, err := LoadRegistry()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(reg.Sources) == 0 {
		t.Fatal("embedded registry must declare sources")
	}

	src, ok := reg.Find("tenders")
	if !ok {
		t.Fatal("missing tenders source")
	}
	if src.Kind != KindTender {
		t.Fatalf("tenders kind = %q", src.Kind)
	}
	if src.Path != "/srv/leads/tender_leads.json" {
		t.Fatalf("env expansion failed, path = %q", src.Path)
	}
}

func TestLoadRegistry_RejectsUnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	body := "sources:\n  - id: bad\n    kind: spreadsheet\n    path: /tmp/x.json\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INGEST_SOURCES_PATH", path)

	if _, err := LoadRegistry(); err == nil {
		t.Fatal("expected kind validation error")
	}
}

func TestRegistryFind_Missing(t *testing.T) {
	reg := &Registry{}
	if _, ok := reg.Find("nope"); ok {
		t.Fatal("found nonexistent source")
	}
}
