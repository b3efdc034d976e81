// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/genpics/pkg/types"
)

// Report is the on-disk YAML representation of a batch run.
type Report struct {
	Config  ReportConfig         `yaml:"config"`
	Results []types.RenderResult `yaml:"results"`
	Summary ReportSummary        `yaml:"summary"`
}

// ReportConfig stores the settings that produced the run.
type ReportConfig struct {
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`
	Tool      string `yaml:"tool"`
	DryRun    bool   `yaml:"dry_run,omitempty"`
}

// ReportSummary stores result counts and a timestamp.
type ReportSummary struct {
	Total     int       `yaml:"total"`
	Rendered  int       `yaml:"rendered"`
	Failed    int       `yaml:"failed"`
	Timestamp time.Time `yaml:"timestamp"`
}

// NewReport builds a Report for result, stamped with now.
func NewReport(cfg types.RenderConfig, result BatchResult, now time.Time) Report {
	results := result.Results
	if results == nil {
		results = []types.RenderResult{}
	}
	return Report{
		Config: ReportConfig{
			InputDir:  cfg.InputDir,
			OutputDir: cfg.OutputDir,
			Tool:      cfg.Tool,
			DryRun:    cfg.DryRun,
		},
		Results: results,
		Summary: ReportSummary{
			Total:     result.Total(),
			Rendered:  result.Rendered(),
			Failed:    result.Failed(),
			Timestamp: now.UTC(),
		},
	}
}

// WriteReport saves a YAML report of result to path.
func WriteReport(path string, cfg types.RenderConfig, result BatchResult) error {
	rep := NewReport(cfg, result, time.Now())

	data, err := yaml.Marshal(&rep)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// ReadReport loads a report previously written by WriteReport.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", path, err)
	}
	var rep Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &rep, nil
}
