package result_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/frontsea320/Reinf-t2i/internal/result"
)

func TestWriteAndReadSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "final_eval_results.json")
	m := result.Mapping{
		"VQA":        map[string]any{"score": 0.71},
		"2D_Spatial": result.NoResults,
		"Numeracy":   result.Failed(errors.New("boom")),
	}
	if err := result.WriteSummary(path, m); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	got, err := result.ReadSummary(path)
	if err != nil {
		t.Fatalf("ReadSummary: %v", err)
	}
	if len(got) != len(m) {
		t.Fatalf("got %d keys, want %d", len(got), len(m))
	}
	if got["2D_Spatial"] != result.NoResults {
		t.Errorf("2D_Spatial: got %v", got["2D_Spatial"])
	}
	if got["Numeracy"] != "Failed: boom" {
		t.Errorf("Numeracy: got %v", got["Numeracy"])
	}
	vqa, ok := got["VQA"].(map[string]any)
	if !ok {
		t.Fatalf("VQA: got %T", got["VQA"])
	}
	if vqa["score"] != 0.71 {
		t.Errorf("VQA score: got %v", vqa["score"])
	}
}

func TestSummaryIsIndented(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := result.WriteSummary(path, result.Mapping{"VQA": result.NoResults}); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading summary: %v", err)
	}
	want := "{\n    \"VQA\": \"No results.\"\n}"
	if string(data) != want {
		t.Errorf("summary bytes:\ngot  %q\nwant %q", data, want)
	}
}

func TestReadResultFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vqa_result.json")
	if err := os.WriteFile(path, []byte(`[{"answer": "yes"}]`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	v, err := result.ReadResultFile(path)
	if err != nil {
		t.Fatalf("ReadResultFile: %v", err)
	}
	arr, ok := v.([]any)
	if !ok || len(arr) != 1 {
		t.Fatalf("got %#v", v)
	}
}

func TestReadResultFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vqa_result.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := result.ReadResultFile(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestReadResultFileMissing(t *testing.T) {
	if _, err := result.ReadResultFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPlaceholderClassification(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		failure bool
		absent  bool
	}{
		{"failure placeholder", result.Failed(errors.New("x")), true, false},
		{"no results", result.NoResults, false, true},
		{"no result produced", result.NoResultVQA, false, true},
		{"scored object", map[string]any{"score": 1.0}, false, false},
		{"scored array", []any{1.0}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := result.IsFailure(tt.value); got != tt.failure {
				t.Errorf("IsFailure = %v, want %v", got, tt.failure)
			}
			if got := result.IsAbsent(tt.value); got != tt.absent {
				t.Errorf("IsAbsent = %v, want %v", got, tt.absent)
			}
		})
	}
}
