// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/genpics/pkg/types"
)

// invocation is one recorded Tool.Render call.
type invocation struct {
	input, output string
}

// recordingTool implements Tool for testing. It records every call and
// fails for inputs listed in errs.
type recordingTool struct {
	calls []invocation
	errs  map[string]error
}

func (r *recordingTool) Render(inputPath, outputPath string) error {
	r.calls = append(r.calls, invocation{input: inputPath, output: outputPath})
	if err, ok := r.errs[filepath.Base(inputPath)]; ok {
		return err
	}
	return nil
}

// writingTool writes a placeholder image, so it fails when the output
// directory is missing, like the real tool would.
type writingTool struct{}

func (writingTool) Render(inputPath, outputPath string) error {
	return os.WriteFile(outputPath, []byte("<svg/>"), 0o644)
}

// setupDirs creates input and output directories with the given files in
// the input directory.
func setupDirs(t *testing.T, files ...string) types.RenderConfig {
	t.Helper()
	tmp := t.TempDir()
	cfg := types.RenderConfig{
		InputDir:  filepath.Join(tmp, "graphs"),
		OutputDir: filepath.Join(tmp, "pics"),
		Tool:      "dot",
	}
	require.NoError(t, os.MkdirAll(cfg.InputDir, 0o755))
	require.NoError(t, os.MkdirAll(cfg.OutputDir, 0o755))
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(cfg.InputDir, f), []byte("digraph { a -> b }"), 0o644))
	}
	return cfg
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{name: "diagram.gv", want: "diagram.svg", wantOK: true},
		{name: "a.b.gv", want: "a.b.svg", wantOK: true},
		{name: "x.gv.gv", want: "x.gv.svg", wantOK: true},
		{name: ".gv", want: ".svg", wantOK: true},
		{name: "notes.txt"},
		{name: "graph.gvx"},
		{name: "graph.GV"},
		{name: "gv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := OutputName(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscover(t *testing.T) {
	cfg := setupDirs(t, "alpha.gv", "beta.gv", "notes.txt", "a.b.gv")
	require.NoError(t, os.Mkdir(filepath.Join(cfg.InputDir, "nested.gv"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.InputDir, "nested.gv", "inner.gv"), []byte("graph{}"), 0o644))

	names, err := Discover(cfg.InputDir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha.gv", "beta.gv", "a.b.gv"}, names)
}

func TestDiscoverMissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading input directory")
}

func TestRenderBatch(t *testing.T) {
	cfg := setupDirs(t, "alpha.gv", "beta.gv", "notes.txt")
	tool := &recordingTool{}
	var log bytes.Buffer

	result, err := RenderBatch(tool, cfg, &log)
	require.NoError(t, err)

	assert.ElementsMatch(t, []invocation{
		{input: filepath.Join(cfg.InputDir, "alpha.gv"), output: filepath.Join(cfg.OutputDir, "alpha.svg")},
		{input: filepath.Join(cfg.InputDir, "beta.gv"), output: filepath.Join(cfg.OutputDir, "beta.svg")},
	}, tool.calls)
	assert.Equal(t, 2, result.Total())
	assert.Equal(t, 2, result.Rendered())
	assert.False(t, result.HasFailures())
	assert.Contains(t, log.String(), "rendered: alpha.gv -> alpha.svg")
	assert.Contains(t, log.String(), "Batch summary: 2 rendered, 0 failed (total: 2)")
	assert.NotContains(t, log.String(), "notes.txt")
}

func TestRenderBatchNoMatches(t *testing.T) {
	tests := []struct {
		name  string
		files []string
	}{
		{name: "empty directory"},
		{name: "only non-gv files", files: []string{"notes.txt", "graph.dot", "README"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := setupDirs(t, tt.files...)
			tool := &recordingTool{}
			var log bytes.Buffer

			result, err := RenderBatch(tool, cfg, &log)
			require.NoError(t, err)
			assert.Empty(t, tool.calls)
			assert.Equal(t, 0, result.Total())
			assert.Contains(t, log.String(), "(total: 0)")
		})
	}
}

func TestRenderBatchIdempotent(t *testing.T) {
	cfg := setupDirs(t, "alpha.gv", "beta.gv")

	first := &recordingTool{}
	_, err := RenderBatch(first, cfg, &bytes.Buffer{})
	require.NoError(t, err)

	second := &recordingTool{}
	_, err = RenderBatch(second, cfg, &bytes.Buffer{})
	require.NoError(t, err)

	assert.ElementsMatch(t, first.calls, second.calls)
	assert.Len(t, second.calls, 2)
}

func TestRenderBatchContinuesPastFailures(t *testing.T) {
	cfg := setupDirs(t, "a.gv", "b.gv", "c.gv")
	tool := &recordingTool{errs: map[string]error{
		"b.gv": errors.New("running dot: exit status 1: syntax error"),
	}}
	var log bytes.Buffer

	result, err := RenderBatch(tool, cfg, &log)
	require.NoError(t, err)

	assert.Len(t, tool.calls, 3)
	assert.Equal(t, 2, result.Rendered())
	assert.Equal(t, 1, result.Failed())
	assert.True(t, result.HasFailures())

	var failed types.RenderResult
	for _, r := range result.Results {
		if !r.OK() {
			failed = r
		}
	}
	assert.Equal(t, filepath.Join(cfg.InputDir, "b.gv"), failed.Input)
	assert.Equal(t, types.RenderFailed, failed.Status)
	assert.Contains(t, failed.Reason, "syntax error")
	assert.Contains(t, log.String(), "failed:   b.gv")
}

func TestRenderBatchMissingOutputDir(t *testing.T) {
	cfg := setupDirs(t, "alpha.gv", "beta.gv")
	require.NoError(t, os.Remove(cfg.OutputDir))

	result, err := RenderBatch(writingTool{}, cfg, &bytes.Buffer{})
	require.NoError(t, err, "a missing output directory is not fatal")
	assert.Equal(t, 2, result.Failed())

	_, statErr := os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(statErr), "output directory must not be created")
}

func TestRenderBatchWritesOutputs(t *testing.T) {
	cfg := setupDirs(t, "alpha.gv")
	require.NoError(t, os.WriteFile(filepath.Join(cfg.OutputDir, "alpha.svg"), []byte("stale"), 0o644))

	result, err := RenderBatch(writingTool{}, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Rendered())

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "alpha.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data), "existing output is overwritten")
}

func TestRenderBatchMissingInputDir(t *testing.T) {
	cfg := types.RenderConfig{
		InputDir:  filepath.Join(t.TempDir(), "missing"),
		OutputDir: t.TempDir(),
	}
	tool := &recordingTool{}

	_, err := RenderBatch(tool, cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.Empty(t, tool.calls)
}
