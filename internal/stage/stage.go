// Package stage describes the metric evaluations of the benchmark: which
// scorer to launch, where it runs, and where it leaves its result.
package stage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/frontsea320/Reinf-t2i/internal/layout"
	"github.com/frontsea320/Reinf-t2i/internal/proc"
	"github.com/frontsea320/Reinf-t2i/internal/result"
)

// Stage is one metric evaluation. Before and After, when set, bracket the
// scorer invocation with filesystem preparation and cleanup.
type Stage struct {
	Key        string
	Dir        string
	Argv       []string
	ResultFile string
	AbsentNote string
	Before     func() error
	After      func() error
}

// Table returns the metric stages in their fixed execution order. The
// scorers are addressed relative to the benchmark root and all write into
// the shared examples tree.
func Table(l *layout.Layout) []Stage {
	return []Stage{
		{
			Key:        "VQA",
			Dir:        l.StageDir("BLIPvqa_eval"),
			Argv:       []string{"python", "BLIP_vqa.py", "--out_dir=../examples"},
			ResultFile: filepath.Join(l.Examples, "annotation_blip", "vqa_result.json"),
			AbsentNote: result.NoResultVQA,
		},
		{
			Key:        "2D_Spatial",
			Dir:        l.StageDir("UniDet_eval"),
			Argv:       []string{"python", "2D_spatial_eval.py", "--outpath=../examples"},
			ResultFile: filepath.Join(l.Labels, "annotation_obj_detection_2d", "vqa_result.json"),
			AbsentNote: result.NoResults,
		},
		{
			Key:        "Numeracy",
			Dir:        l.StageDir("UniDet_eval"),
			Argv:       []string{"python", "numeracy_eval.py", "--outpath=../examples"},
			ResultFile: filepath.Join(l.Examples, "annotation_num", "vqa_result.json"),
			AbsentNote: result.NoResults,
		},
		{
			Key:        "3D_Spatial",
			Dir:        l.StageDir("UniDet_eval"),
			Argv:       []string{"python", "3D_spatial_eval.py", "--outpath=../examples"},
			ResultFile: filepath.Join(l.Labels, "annotation_obj_detection_3d", "vqa_result.json"),
			AbsentNote: result.NoResults,
			// The 3D scorer needs its depth output dirs up front and tends to
			// nest them one level too deep.
			Before: l.EnsureDepthDirs,
			After:  l.FixDepthStructure,
		},
		{
			Key:        "CLIP_Similarity",
			Dir:        l.StageDir("CLIPScore_eval"),
			Argv:       []string{"python", "CLIP_similarity.py", "--outpath=../examples"},
			ResultFile: filepath.Join(l.Examples, "annotation_clip", "vqa_result.json"),
			AbsentNote: result.NoResults,
		},
		{
			Key:        "3_in_1",
			Dir:        l.StageDir("3_in_1_eval"),
			Argv:       []string{"python", "3_in_1.py", "--outpath=../examples"},
			ResultFile: filepath.Join(l.Examples, "annotation_3_in_1", "vqa_result.json"),
			AbsentNote: result.NoResults,
		},
	}
}

// Filter returns the stages whose keys appear in keys, preserving table
// order regardless of how keys is ordered. Unknown keys are an error.
func Filter(stages []Stage, keys []string) ([]Stage, error) {
	if len(keys) == 0 {
		return stages, nil
	}
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	var filtered []Stage
	for _, st := range stages {
		if want[st.Key] {
			filtered = append(filtered, st)
			delete(want, st.Key)
		}
	}
	if len(want) > 0 {
		var unknown []string
		for k := range want {
			unknown = append(unknown, k)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown stage %s (valid: %s)",
			strings.Join(unknown, ", "), strings.Join(Keys(stages), ", "))
	}
	return filtered, nil
}

// Keys lists the stage keys in table order.
func Keys(stages []Stage) []string {
	keys := make([]string, len(stages))
	for i, st := range stages {
		keys[i] = st.Key
	}
	return keys
}

// Run invokes one stage: preparation hook, scorer, cleanup hook, then the
// result file. A scorer that exits clean without writing its file yields the
// stage's absent note; a file that cannot be parsed is an error just like a
// crashed scorer.
func Run(ctx context.Context, ex proc.Executor, st Stage) (any, error) {
	if st.Before != nil {
		if err := st.Before(); err != nil {
			return nil, err
		}
	}
	if err := ex.Run(ctx, st.Argv, st.Dir); err != nil {
		return nil, err
	}
	if st.After != nil {
		if err := st.After(); err != nil {
			return nil, err
		}
	}
	if _, err := os.Stat(st.ResultFile); err != nil {
		if os.IsNotExist(err) {
			return st.AbsentNote, nil
		}
		return nil, fmt.Errorf("checking result %s: %w", st.ResultFile, err)
	}
	return result.ReadResultFile(st.ResultFile)
}
