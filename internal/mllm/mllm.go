// Package mllm drives the GPT-4V judge over the configured prompt
// categories and collects its per-category verdicts.
package mllm

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/frontsea320/Reinf-t2i/internal/layout"
	"github.com/frontsea320/Reinf-t2i/internal/proc"
	"github.com/frontsea320/Reinf-t2i/internal/result"
)

// Key is the summary entry the judge's results are recorded under.
const Key = "MLLM_GPT4V"

// DirName is the judge's working directory under the benchmark root.
const DirName = "MLLM_eval"

// Opts configures one judge pass. Start and Step shard the sample set the
// same way the judge script does, and select which result file it writes.
type Opts struct {
	Categories []string
	Start      int
	Step       int
	// FailFast aborts the whole stage on the first category failure
	// instead of recording a placeholder and moving on.
	FailFast bool
}

// Run evaluates each category in order and returns category name → parsed
// verdicts, with the usual placeholders for categories that produced
// nothing or failed.
func Run(ctx context.Context, ex proc.Executor, l *layout.Layout, opts *Opts) (map[string]any, error) {
	out := make(map[string]any, len(opts.Categories))
	resultFile := filepath.Join(l.GPT4V, fmt.Sprintf("gpt4v_result_%d_%d.json", opts.Start, opts.Step))
	for _, cat := range opts.Categories {
		v, err := runCategory(ctx, ex, l, opts, cat, resultFile)
		if err != nil {
			if opts.FailFast {
				return nil, fmt.Errorf("category %s: %w", cat, err)
			}
			log.Printf("warning: gpt4v category %q failed: %v", cat, err)
			out[cat] = result.Failed(err)
			continue
		}
		out[cat] = v
	}
	return out, nil
}

func runCategory(ctx context.Context, ex proc.Executor, l *layout.Layout, opts *Opts, cat, resultFile string) (any, error) {
	argv := []string{
		"python", "gpt4v_eval.py",
		"--category", cat,
		"--start", strconv.Itoa(opts.Start),
		"--step", strconv.Itoa(opts.Step),
	}
	if err := ex.Run(ctx, argv, l.StageDir(DirName)); err != nil {
		return nil, err
	}
	if _, err := os.Stat(resultFile); err != nil {
		if os.IsNotExist(err) {
			return result.NoResults, nil
		}
		return nil, fmt.Errorf("checking result %s: %w", resultFile, err)
	}
	return result.ReadResultFile(resultFile)
}
