package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
name: demo
version: 0.1.0
entry: main.json
executor: serial
capabilities:
  - name: net
    type: http
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if manifest.Name != "demo" || manifest.Version != "0.1.0" {
		t.Fatalf("unexpected manifest %#v", manifest)
	}
	if manifest.Executor != ExecutorSerial {
		t.Fatalf("unexpected executor %q", manifest.Executor)
	}
	if len(manifest.Capabilities) != 1 || manifest.Capabilities[0].Name != "net" {
		t.Fatalf("unexpected capabilities %#v", manifest.Capabilities)
	}
	if got := manifest.EntryPath(); got != filepath.Join(filepath.Dir(path), "main.json") {
		t.Fatalf("unexpected entry path %q", got)
	}
}

func TestLoadManifestDefaultsExecutor(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "name: demo\nentry: main.json\n")
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if manifest.Executor != ExecutorGoroutine {
		t.Fatalf("expected goroutine default, got %q", manifest.Executor)
	}
}

func TestLoadManifestAggregatesValidationIssues(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
executor: quantum
capabilities:
  - type: http
`)
	_, err := LoadManifest(path)
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if len(verr.Issues) != 4 {
		t.Fatalf("expected 4 issues, got %d: %v", len(verr.Issues), verr.Issues)
	}
	msg := verr.Error()
	for _, want := range []string{"name must be provided", "entry must point", "executor", "capabilities[0]"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("missing %q in %q", want, msg)
		}
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "name: demo\nentry: main.json\nmystery: true\n")
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected unknown field to fail")
	}
}

func TestLoadManifestEmptyFile(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "")
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected empty manifest to fail")
	}
}

func TestDiscoverManifestWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "name: demo\nentry: main.json\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := DiscoverManifest(nested)
	if err != nil {
		t.Fatalf("discovery failed: %v", err)
	}
	if found != filepath.Join(root, ManifestFileName) {
		t.Fatalf("unexpected manifest path %q", found)
	}
}
