package layout_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/frontsea320/Reinf-t2i/internal/layout"
)

func TestResolve(t *testing.T) {
	root := t.TempDir()
	l, err := layout.Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if l.Examples != filepath.Join(root, "examples") {
		t.Errorf("examples: got %q, want %q", l.Examples, filepath.Join(root, "examples"))
	}
	if l.DepthSamples != filepath.Join(root, "examples", "labels", "depth", "samples") {
		t.Errorf("depth samples: got %q", l.DepthSamples)
	}
	if l.Summary != filepath.Join(root, "final_eval_results.json") {
		t.Errorf("summary: got %q", l.Summary)
	}
	if got := l.StageDir("UniDet_eval"); got != filepath.Join(root, "UniDet_eval") {
		t.Errorf("stage dir: got %q", got)
	}
}

func TestResolveRelative(t *testing.T) {
	l, err := layout.Resolve(".")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !filepath.IsAbs(l.Root) {
		t.Errorf("root not absolute: %q", l.Root)
	}
}

func TestEnsureDepthDirsIdempotent(t *testing.T) {
	l, err := layout.Resolve(t.TempDir())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := l.EnsureDepthDirs(); err != nil {
			t.Fatalf("EnsureDepthDirs (call %d): %v", i+1, err)
		}
	}
	info, err := os.Stat(l.DepthSamples)
	if err != nil {
		t.Fatalf("stat depth samples: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", l.DepthSamples)
	}
}

func TestFixDepthStructure(t *testing.T) {
	l, err := layout.Resolve(t.TempDir())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	misplaced := filepath.Join(l.Depth, "examples", "samples")
	if err := os.MkdirAll(misplaced, 0o755); err != nil {
		t.Fatalf("creating misplaced dir: %v", err)
	}
	for _, name := range []string{"a.png", "b.png"} {
		if err := os.WriteFile(filepath.Join(misplaced, name), []byte(name), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	if err := l.FixDepthStructure(); err != nil {
		t.Fatalf("FixDepthStructure: %v", err)
	}

	for _, name := range []string{"a.png", "b.png"} {
		if _, err := os.Stat(filepath.Join(l.DepthSamples, name)); err != nil {
			t.Errorf("%s not relocated: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(l.Depth, "examples")); !os.IsNotExist(err) {
		t.Errorf("stray examples dir still present")
	}

	// Second pass must be a no-op.
	if err := l.FixDepthStructure(); err != nil {
		t.Fatalf("FixDepthStructure (second call): %v", err)
	}
	if _, err := os.Stat(filepath.Join(l.DepthSamples, "a.png")); err != nil {
		t.Errorf("a.png lost on second call: %v", err)
	}
}

func TestFixDepthStructureNothingMisplaced(t *testing.T) {
	l, err := layout.Resolve(t.TempDir())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := l.FixDepthStructure(); err != nil {
		t.Errorf("FixDepthStructure on empty root: %v", err)
	}
}

func TestFixDepthStructureKeepsExistingFiles(t *testing.T) {
	l, err := layout.Resolve(t.TempDir())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := l.EnsureDepthDirs(); err != nil {
		t.Fatalf("EnsureDepthDirs: %v", err)
	}
	existing := filepath.Join(l.DepthSamples, "keep.png")
	if err := os.WriteFile(existing, []byte("keep"), 0o644); err != nil {
		t.Fatalf("writing keep.png: %v", err)
	}
	misplaced := filepath.Join(l.Depth, "examples", "samples")
	if err := os.MkdirAll(misplaced, 0o755); err != nil {
		t.Fatalf("creating misplaced dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(misplaced, "new.png"), []byte("new"), 0o644); err != nil {
		t.Fatalf("writing new.png: %v", err)
	}

	if err := l.FixDepthStructure(); err != nil {
		t.Fatalf("FixDepthStructure: %v", err)
	}
	data, err := os.ReadFile(existing)
	if err != nil || string(data) != "keep" {
		t.Errorf("keep.png lost or changed: %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(l.DepthSamples, "new.png")); err != nil {
		t.Errorf("new.png not relocated: %v", err)
	}
}
