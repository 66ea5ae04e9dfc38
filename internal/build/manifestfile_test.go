package build

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifestParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pint.yaml")
	content := "name: app\nkind: contract\nentry_point: app.pnt\ndeps:\n  math: math-lib\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest fixture: %v", err)
	}

	node, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if node.Manifest.Name != "app" || node.Manifest.Kind != Contract || node.Manifest.EntryPoint != "app.pnt" {
		t.Fatalf("LoadManifest produced unexpected manifest: %+v", node.Manifest)
	}
	if len(node.Deps) != 1 || node.Deps[0].Name != "math" || node.Deps[0].To != "math-lib" {
		t.Fatalf("LoadManifest produced unexpected deps: %+v", node.Deps)
	}
}
