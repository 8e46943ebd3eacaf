// Package layout resolves the directory tree a benchmark run reads and
// writes: the shared examples/ tree, each scorer's working directory, and
// the final summary location.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout holds the absolute paths under one benchmark root. Scorers run in
// directories next to examples/ and address it as ../examples, so every
// path here must stay inside the same root.
type Layout struct {
	Root         string
	Examples     string
	Samples      string
	Labels       string
	Dataset      string
	Depth        string
	DepthSamples string
	GPT4V        string
	Summary      string
}

// Resolve builds the layout for a benchmark root. It only computes paths;
// nothing is created or checked on disk.
func Resolve(root string) (*Layout, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", root, err)
	}
	examples := filepath.Join(abs, "examples")
	labels := filepath.Join(examples, "labels")
	return &Layout{
		Root:         abs,
		Examples:     examples,
		Samples:      filepath.Join(examples, "samples"),
		Labels:       labels,
		Dataset:      filepath.Join(examples, "dataset"),
		Depth:        filepath.Join(labels, "depth"),
		DepthSamples: filepath.Join(labels, "depth", "samples"),
		GPT4V:        filepath.Join(examples, "gpt4v"),
		Summary:      filepath.Join(abs, "final_eval_results.json"),
	}, nil
}

// StageDir returns the working directory for the scorer living in name
// under the root.
func (l *Layout) StageDir(name string) string {
	return filepath.Join(l.Root, name)
}

// EnsureDepthDirs creates the depth-map output directories the 3D scorer
// expects to exist before it starts. Safe to call repeatedly.
func (l *Layout) EnsureDepthDirs() error {
	if err := os.MkdirAll(l.DepthSamples, 0o755); err != nil {
		return fmt.Errorf("creating depth dirs: %w", err)
	}
	return nil
}

// FixDepthStructure relocates depth maps the 3D scorer leaves under
// labels/depth/examples/samples into labels/depth/samples, then removes the
// stray examples tree. A second call finds nothing to move and does nothing.
func (l *Layout) FixDepthStructure() error {
	stray := filepath.Join(l.Depth, "examples")
	misplaced := filepath.Join(stray, "samples")
	entries, err := os.ReadDir(misplaced)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", misplaced, err)
	}
	if err := os.MkdirAll(l.DepthSamples, 0o755); err != nil {
		return fmt.Errorf("creating depth dirs: %w", err)
	}
	for _, e := range entries {
		src := filepath.Join(misplaced, e.Name())
		dst := filepath.Join(l.DepthSamples, e.Name())
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("moving %s: %w", e.Name(), err)
		}
	}
	if err := os.RemoveAll(stray); err != nil {
		return fmt.Errorf("removing %s: %w", stray, err)
	}
	return nil
}
