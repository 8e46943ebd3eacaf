// Command stubscorer stands in for the benchmark's Python scorers on
// machines that do not carry their model environments. Point the harness at
// it as the interpreter (config `python: stubscorer` or T2I_PYTHON) and it
// recognizes the scorer script it was asked to run, honors that scorer's
// file contract, and writes a plausible result file at the documented
// output path — including the 3D scorer's misplaced depth directory, so the
// repair step gets exercised too.
//
// Environment knobs for failure-path testing:
//
//	STUBSCORER_FAIL   comma list of script names that exit 1 without output
//	STUBSCORER_QUIET  comma list of script names that exit 0 without output
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// contract is one scorer's file contract: where its result lands relative
// to the --outpath/--out_dir directory and what a healthy score looks like.
type contract struct {
	resultRel string
	score     float64
	// misplacedDepth emulates the depth-estimation tool writing its maps
	// one directory level too deep.
	misplacedDepth bool
}

var contracts = map[string]contract{
	"BLIP_vqa.py":        {resultRel: "annotation_blip/vqa_result.json", score: 0.7312},
	"2D_spatial_eval.py": {resultRel: "labels/annotation_obj_detection_2d/vqa_result.json", score: 0.6128},
	"numeracy_eval.py":   {resultRel: "annotation_num/vqa_result.json", score: 0.5519},
	"3D_spatial_eval.py": {resultRel: "labels/annotation_obj_detection_3d/vqa_result.json", score: 0.4406, misplacedDepth: true},
	"CLIP_similarity.py": {resultRel: "annotation_clip/vqa_result.json", score: 0.3177},
	"3_in_1.py":          {resultRel: "annotation_3_in_1/vqa_result.json", score: 0.6840},
}

const judgeScript = "gpt4v_eval.py"

func main() {
	log.SetFlags(0)
	log.SetPrefix("stubscorer: ")
	if err := run(os.Args[1:], "."); err != nil {
		log.Fatal(err)
	}
}

// run emulates one scorer invocation. args is the scorer argv without the
// interpreter; cwd is where relative --outpath values resolve from (the
// harness sets the process working directory to the stage dir).
func run(args []string, cwd string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: stubscorer <scorer-script.py> [flags]")
	}
	script := filepath.Base(args[0])

	fs := flag.NewFlagSet(script, flag.ContinueOnError)
	outDir := fs.String("out_dir", "", "output root (BLIP flag spelling)")
	outPath := fs.String("outpath", "", "output root")
	category := fs.String("category", "", "judge prompt category")
	start := fs.Int("start", 0, "judge pagination offset")
	step := fs.Int("step", 1, "judge pagination step")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	if listed(os.Getenv("STUBSCORER_FAIL"), script) {
		return fmt.Errorf("%s: simulated scorer crash", script)
	}
	if listed(os.Getenv("STUBSCORER_QUIET"), script) {
		log.Printf("%s: exiting without output", script)
		return nil
	}

	root := *outPath
	if root == "" {
		root = *outDir
	}
	if root == "" {
		return fmt.Errorf("%s: no --outpath or --out_dir given", script)
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(cwd, root)
	}

	if script == judgeScript {
		return emitJudge(root, *category, *start, *step)
	}
	c, ok := contracts[script]
	if !ok {
		return fmt.Errorf("unknown scorer script %q", script)
	}
	return emitMetric(root, c)
}

func listed(env, script string) bool {
	return slices.Contains(strings.Split(env, ","), script)
}

func emitMetric(root string, c contract) error {
	if c.misplacedDepth {
		stray := filepath.Join(root, "labels", "depth", "examples", "samples")
		if err := os.MkdirAll(stray, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(stray, "sample_0_depth.png"), []byte("stub depth map"), 0o644); err != nil {
			return err
		}
	}
	return writeJSON(filepath.Join(root, filepath.FromSlash(c.resultRel)), map[string]any{
		"score":       c.score,
		"num_samples": 300,
	})
}

func emitJudge(root, category string, start, step int) error {
	if category == "" {
		return fmt.Errorf("judge invoked without --category")
	}
	path := filepath.Join(root, "gpt4v", fmt.Sprintf("gpt4v_result_%d_%d.json", start, step))
	return writeJSON(path, map[string]any{
		"category": category,
		"start":    start,
		"step":     step,
		"score":    0.77,
	})
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	log.Printf("writing %s", path)
	return os.WriteFile(path, data, 0o644)
}
