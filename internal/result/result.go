// Package result holds the evaluation summary: one entry per metric, either
// the scorer's parsed JSON or a placeholder string saying why there is none.
package result

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Mapping accumulates metric results over one run. Values are whatever the
// scorer wrote (decoded JSON) or one of the placeholder strings below.
type Mapping map[string]any

const (
	// NoResultVQA is recorded when the BLIP-VQA scorer exits clean without
	// writing its result file.
	NoResultVQA = "No result produced."
	// NoResults is the equivalent placeholder for every other metric.
	NoResults = "No results."

	failedPrefix = "Failed: "
)

// Failed renders the placeholder recorded for a metric whose scorer crashed
// or left an unreadable result behind.
func Failed(err error) string {
	return failedPrefix + err.Error()
}

// IsFailure reports whether a mapping value is a failure placeholder.
func IsFailure(v any) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, failedPrefix)
}

// IsAbsent reports whether a mapping value records that a scorer produced
// no output.
func IsAbsent(v any) bool {
	s, ok := v.(string)
	return ok && !strings.HasPrefix(s, failedPrefix)
}

// ReadResultFile decodes a scorer's JSON output. Unreadable or malformed
// files are errors; callers treat them the same as a crashed scorer.
func ReadResultFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result %s: %w", path, err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing result %s: %w", path, err)
	}
	return v, nil
}

// WriteSummary serializes the mapping to path as indented JSON.
func WriteSummary(path string, m Mapping) error {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSummary loads a summary file written by WriteSummary.
func ReadSummary(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading summary: %w", err)
	}
	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing summary %s: %w", path, err)
	}
	return m, nil
}
