package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/frontsea320/Reinf-t2i/internal/mllm"
	"github.com/frontsea320/Reinf-t2i/internal/result"
)

// Row is one metric's line in the rendered report.
type Row struct {
	Metric string `json:"metric"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

const (
	statusScored   = "scored"
	statusNoOutput = "no output"
	statusFailed   = "failed"
)

// Generate reads a summary file and renders it in the requested format.
func Generate(summaryPath, format string, w io.Writer) error {
	m, err := result.ReadSummary(summaryPath)
	if err != nil {
		return err
	}
	rows := Build(m)

	switch format {
	case "markdown":
		return writeMarkdown(rows, w)
	case "json":
		return writeJSON(rows, w)
	default:
		return writeTable(rows, w)
	}
}

// Build classifies each summary entry from its value alone: failure
// placeholders, absence placeholders, or scorer output. Metric order follows
// the pipeline, with anything unrecognized sorted at the end.
func Build(m result.Mapping) []Row {
	rows := make([]Row, 0, len(m))
	for _, key := range orderedKeys(m) {
		rows = append(rows, classify(key, m[key]))
	}
	return rows
}

func classify(key string, v any) Row {
	switch {
	case result.IsFailure(v):
		return Row{Metric: key, Status: statusFailed, Detail: v.(string)}
	case result.IsAbsent(v):
		return Row{Metric: key, Status: statusNoOutput, Detail: v.(string)}
	case key == mllm.Key:
		return Row{Metric: key, Status: statusScored, Detail: judgeDetail(v)}
	default:
		return Row{Metric: key, Status: statusScored, Detail: valueDetail(v)}
	}
}

func judgeDetail(v any) string {
	cats, ok := v.(map[string]any)
	if !ok {
		return valueDetail(v)
	}
	failed := 0
	for _, cv := range cats {
		if result.IsFailure(cv) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Sprintf("%d categories (%d failed)", len(cats), failed)
	}
	return fmt.Sprintf("%d categories", len(cats))
}

func valueDetail(v any) string {
	switch t := v.(type) {
	case map[string]any:
		return fmt.Sprintf("%d fields", len(t))
	case []any:
		return fmt.Sprintf("%d entries", len(t))
	case float64:
		return fmt.Sprintf("%.4f", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// pipelineOrder mirrors stage execution order so reports read the same way
// runs print.
var pipelineOrder = []string{
	"VQA", "2D_Spatial", "Numeracy", "3D_Spatial", "CLIP_Similarity", "3_in_1", mllm.Key,
}

func orderedKeys(m result.Mapping) []string {
	var keys []string
	for _, k := range pipelineOrder {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []string
	known := make(map[string]bool, len(pipelineOrder))
	for _, k := range pipelineOrder {
		known[k] = true
	}
	for k := range m {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func writeTable(rows []Row, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tSTATUS\tDETAIL")
	fmt.Fprintln(tw, strings.Repeat("-", 60))
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Metric, r.Status, r.Detail)
	}
	return tw.Flush()
}

func writeMarkdown(rows []Row, w io.Writer) error {
	fmt.Fprintln(w, "| Metric | Status | Detail |")
	fmt.Fprintln(w, "|---|---|---|")
	for _, r := range rows {
		fmt.Fprintf(w, "| %s | %s | %s |\n", r.Metric, r.Status, r.Detail)
	}
	return nil
}

func writeJSON(rows []Row, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
