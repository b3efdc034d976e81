// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RenderStatus indicates the outcome of rendering a single graph source.
type RenderStatus string

const (
	RenderOK     RenderStatus = "ok"
	RenderFailed RenderStatus = "failed"
)

// RenderResult records one invocation of the rendering tool.
type RenderResult struct {
	// Input is the full path of the .gv source.
	Input string `json:"input" yaml:"input"`

	// Output is the full path of the .svg target.
	Output string `json:"output" yaml:"output"`

	// Status is ok when the tool exited cleanly, failed otherwise.
	Status RenderStatus `json:"status" yaml:"status"`

	// Reason describes the failure (exit status and captured stderr).
	// Empty for successful renders.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// OK reports whether the render succeeded.
func (r RenderResult) OK() bool {
	return r.Status == RenderOK
}

// RunSummary is one recorded batch run.
type RunSummary struct {
	ID        int64     `json:"id" yaml:"id"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
	InputDir  string    `json:"input_dir" yaml:"input_dir"`
	OutputDir string    `json:"output_dir" yaml:"output_dir"`
	Tool      string    `json:"tool" yaml:"tool"`
	Rendered  int       `json:"rendered" yaml:"rendered"`
	Failed    int       `json:"failed" yaml:"failed"`
}
