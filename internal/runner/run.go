// Package runner sequences the benchmark: every metric stage in its fixed
// order, then the optional judge, then the summary file. One scorer blowing
// up never takes the rest of the run with it.
package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/frontsea320/Reinf-t2i/internal/console"
	"github.com/frontsea320/Reinf-t2i/internal/docker"
	"github.com/frontsea320/Reinf-t2i/internal/layout"
	"github.com/frontsea320/Reinf-t2i/internal/mllm"
	"github.com/frontsea320/Reinf-t2i/internal/pricing"
	"github.com/frontsea320/Reinf-t2i/internal/proc"
	"github.com/frontsea320/Reinf-t2i/internal/result"
	"github.com/frontsea320/Reinf-t2i/internal/secrets"
	"github.com/frontsea320/Reinf-t2i/internal/stage"
)

const lockFile = ".reinf-t2i.lock"

type Opts struct {
	Layout *layout.Layout
	Stages []stage.Stage
	// Local runs stages that have no container image configured.
	Local  proc.Executor
	Images map[string]string
	// Judge gates the MLLM stage; the run command sets it from the
	// credential, so a keyless environment skips the judge entirely.
	Judge   bool
	MLLM    mllm.Opts
	Model   string
	Pricing *pricing.Table
}

// Run executes the whole evaluation and writes the summary. The returned
// mapping reflects everything that ran even when err is non-nil; err is
// reserved for harness faults (lock contention, unwritable summary,
// cancellation), never for scorer failures.
func Run(ctx context.Context, opts *Opts) (result.Mapping, error) {
	lockPath := filepath.Join(opts.Layout.Root, lockFile)
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another evaluation is already running against %s", opts.Layout.Root)
	}
	defer lock.Unlock()

	res := make(result.Mapping)
	for _, st := range opts.Stages {
		if ctx.Err() != nil {
			break
		}
		console.Stepf("===== %s: %s =====", st.Key, displayCommand(st))
		start := time.Now()
		if runStage(ctx, opts.executorFor(st.Key), st, res) {
			console.Stepf("  %s done in %s", st.Key, time.Since(start).Round(time.Second))
		}
	}

	if ctx.Err() == nil {
		runJudge(ctx, opts, res)
	}

	if err := result.WriteSummary(opts.Layout.Summary, res); err != nil {
		return res, err
	}
	console.Successf("Evaluation complete. Results saved to %s", opts.Layout.Summary)
	return res, ctx.Err()
}

// runStage records either the stage's value or its failure placeholder;
// nothing escapes to the caller.
func runStage(ctx context.Context, ex proc.Executor, st stage.Stage, res result.Mapping) bool {
	v, err := stage.Run(ctx, ex, st)
	if err != nil {
		console.Warnf("%s failed: %v", st.Key, err)
		res[st.Key] = result.Failed(err)
		return false
	}
	res[st.Key] = v
	return true
}

func runJudge(ctx context.Context, opts *Opts, res result.Mapping) {
	if !opts.Judge {
		console.Noticef("skipping %s (%s not set)", mllm.Key, secrets.CredentialVar)
		return
	}
	if opts.Pricing != nil {
		if estimate := opts.Pricing.Estimate(opts.Model, len(opts.MLLM.Categories)); estimate > 0 {
			console.Noticef("estimated judge spend: $%.2f (%d categories, %s)",
				estimate, len(opts.MLLM.Categories), opts.Model)
		}
	}
	console.Stepf("===== %s =====", mllm.Key)
	out, err := mllm.Run(ctx, opts.executorFor(mllm.Key), opts.Layout, &opts.MLLM)
	if err != nil {
		console.Warnf("%s failed: %v", mllm.Key, err)
		res[mllm.Key] = result.Failed(err)
		return
	}
	res[mllm.Key] = out
}

func (o *Opts) executorFor(key string) proc.Executor {
	if img := o.Images[key]; img != "" {
		return &docker.Executor{Image: img, Root: o.Layout.Root}
	}
	if o.Local == nil {
		return proc.Local{}
	}
	return o.Local
}

func displayCommand(st stage.Stage) string {
	out := st.Argv[0]
	for _, a := range st.Argv[1:] {
		out += " " + a
	}
	return out
}
