// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render implements batch rendering of Graphviz sources to SVG.
//
// A run scans one input directory, selects every entry ending in .gv, and
// hands each one to a Tool together with an output path in the output
// directory. Failures of individual renders are recorded and the batch
// moves on; only failure to read the input directory stops a run.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/genpics/pkg/types"
)

const (
	// SourceExt is the suffix of Graphviz source files.
	SourceExt = ".gv"
	// TargetExt is the suffix of rendered images.
	TargetExt = ".svg"
)

// Tool renders one graph source into an image file. The Graphviz adapter
// and test fakes implement it.
type Tool interface {
	Render(inputPath, outputPath string) error
}

// BatchResult holds the outcome of a batch render run, one entry per
// source in the order they were processed.
type BatchResult struct {
	Results []types.RenderResult
}

// Rendered returns the number of successful renders.
func (r BatchResult) Rendered() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed renders.
func (r BatchResult) Failed() int {
	return r.Total() - r.Rendered()
}

// Total returns the number of sources processed.
func (r BatchResult) Total() int {
	return len(r.Results)
}

// HasFailures reports whether any render failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed() > 0
}

// OutputName derives the image name for a source name by replacing the
// trailing .gv with .svg. Interior dots are preserved. It returns false if
// name does not end in .gv.
func OutputName(name string) (string, bool) {
	if !strings.HasSuffix(name, SourceExt) {
		return "", false
	}
	return strings.TrimSuffix(name, SourceExt) + TargetExt, true
}

// Discover lists the immediate entries of inputDir whose names end in .gv.
// Directories are skipped even if their name matches; nothing is recursed
// into.
func Discover(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", inputDir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := OutputName(entry.Name()); ok {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// RenderFile renders the source called name from cfg.InputDir into
// cfg.OutputDir, writing one status line to w.
func RenderFile(t Tool, cfg types.RenderConfig, name string, w io.Writer) types.RenderResult {
	outName, _ := OutputName(name)
	res := types.RenderResult{
		Input:  filepath.Join(cfg.InputDir, name),
		Output: filepath.Join(cfg.OutputDir, outName),
		Status: types.RenderOK,
	}

	if err := t.Render(res.Input, res.Output); err != nil {
		res.Status = types.RenderFailed
		res.Reason = err.Error()
		fmt.Fprintf(w, "failed:   %s (%v)\n", name, err)
		return res
	}

	fmt.Fprintf(w, "rendered: %s -> %s\n", name, outName)
	return res
}

// RenderBatch renders every .gv source in cfg.InputDir, one at a time,
// printing per-file status and a summary to w. The returned error is
// non-nil only when the input directory cannot be read.
func RenderBatch(t Tool, cfg types.RenderConfig, w io.Writer) (BatchResult, error) {
	names, err := Discover(cfg.InputDir)
	if err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{Results: make([]types.RenderResult, 0, len(names))}
	for _, name := range names {
		result.Results = append(result.Results, RenderFile(t, cfg, name, w))
	}

	fmt.Fprintf(w, "\nBatch summary: %d rendered, %d failed (total: %d)\n",
		result.Rendered(), result.Failed(), result.Total())
	return result, nil
}
