// Package preflight inspects a benchmark root before an expensive run and
// reports what is missing. Nothing here blocks evaluation; a run against an
// empty tree just produces a summary full of placeholders.
package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/frontsea320/Reinf-t2i/internal/layout"
	"github.com/frontsea320/Reinf-t2i/internal/mllm"
	"github.com/frontsea320/Reinf-t2i/internal/secrets"
	"github.com/frontsea320/Reinf-t2i/internal/stage"
)

type Status string

const (
	OK   Status = "ok"
	Warn Status = "warn"
	Fail Status = "fail"
)

type Check struct {
	Name   string
	Status Status
	Detail string
}

// HasFailure reports whether any check failed hard.
func HasFailure(checks []Check) bool {
	for _, c := range checks {
		if c.Status == Fail {
			return true
		}
	}
	return false
}

// Run performs all checks against the layout. Fail is reserved for
// conditions that make a run pointless (unusable root); everything the run
// would survive is at most a warning.
func Run(l *layout.Layout, python string, stages []stage.Stage) []Check {
	checks := []Check{
		checkRoot(l),
		checkWritable(l),
		checkDir("examples tree", l.Examples, "scorers will find no inputs"),
		checkSamples(l),
		checkDir("dataset", l.Dataset, "the 3-in-1 scorer reads prompts from here"),
		checkInterpreter(python),
	}
	seen := map[string]bool{}
	for _, st := range stages {
		if seen[st.Dir] {
			continue
		}
		seen[st.Dir] = true
		checks = append(checks, checkDir("scorer dir "+filepath.Base(st.Dir), st.Dir, "its stages will fail"))
	}
	checks = append(checks, checkJudge(l))
	checks = append(checks, checkSummary(l))
	return checks
}

func checkRoot(l *layout.Layout) Check {
	info, err := os.Stat(l.Root)
	if err != nil || !info.IsDir() {
		return Check{Name: "root", Status: Fail, Detail: fmt.Sprintf("%s is not a directory", l.Root)}
	}
	return Check{Name: "root", Status: OK, Detail: l.Root}
}

func checkWritable(l *layout.Layout) Check {
	f, err := os.CreateTemp(l.Root, ".preflight-*")
	if err != nil {
		return Check{Name: "root writable", Status: Fail, Detail: err.Error()}
	}
	f.Close()
	os.Remove(f.Name())
	return Check{Name: "root writable", Status: OK}
}

func checkDir(name, path, consequence string) Check {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return Check{Name: name, Status: Warn, Detail: fmt.Sprintf("%s missing; %s", path, consequence)}
	}
	return Check{Name: name, Status: OK}
}

func checkSamples(l *layout.Layout) Check {
	entries, err := os.ReadDir(l.Samples)
	if err != nil {
		return Check{Name: "samples", Status: Warn, Detail: l.Samples + " missing; nothing to score"}
	}
	if len(entries) == 0 {
		return Check{Name: "samples", Status: Warn, Detail: "no generated images in " + l.Samples}
	}
	return Check{Name: "samples", Status: OK, Detail: fmt.Sprintf("%d entries", len(entries))}
}

func checkInterpreter(python string) Check {
	path, err := exec.LookPath(python)
	if err != nil {
		return Check{Name: "interpreter", Status: Warn, Detail: fmt.Sprintf("%s not on PATH; local stages will fail", python)}
	}
	return Check{Name: "interpreter", Status: OK, Detail: path}
}

func checkJudge(l *layout.Layout) Check {
	if !secrets.HasCredential() {
		return Check{Name: "judge", Status: Warn, Detail: secrets.CredentialVar + " not set; MLLM stage will be skipped"}
	}
	if _, err := os.Stat(l.StageDir(mllm.DirName)); err != nil {
		return Check{Name: "judge", Status: Warn, Detail: l.StageDir(mllm.DirName) + " missing; the MLLM stage will fail"}
	}
	return Check{Name: "judge", Status: OK, Detail: "credential present"}
}

func checkSummary(l *layout.Layout) Check {
	if _, err := os.Stat(l.Summary); err == nil {
		return Check{Name: "previous summary", Status: Warn, Detail: l.Summary + " exists and will be overwritten"}
	}
	return Check{Name: "previous summary", Status: OK, Detail: "none"}
}
