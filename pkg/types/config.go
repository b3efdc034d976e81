package types

const (
	// DefaultInputDir is the directory scanned for .gv sources.
	DefaultInputDir = "graphs"

	// DefaultOutputDir receives the rendered .svg files. It must already exist.
	DefaultOutputDir = "pics"

	// DefaultTool is the Graphviz layout program invoked per file.
	DefaultTool = "dot"
)

// RenderConfig holds settings for a batch render run.
type RenderConfig struct {
	// InputDir is scanned (non-recursively) for .gv files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives one .svg per rendered source.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Tool is the rendering binary name or path (default "dot").
	Tool string `json:"tool" yaml:"tool"`

	// DryRun prints the commands instead of running them.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// Strict turns per-file failures into a non-zero exit.
	Strict bool `json:"strict" yaml:"strict"`

	// ReportPath, when set, receives a YAML report of the run.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`

	// HistoryPath, when set, is the SQLite database the run is recorded in.
	HistoryPath string `json:"history_path,omitempty" yaml:"history_path,omitempty"`
}

// WithDefaults returns a copy of c with empty directory and tool fields
// replaced by their defaults.
func (c RenderConfig) WithDefaults() RenderConfig {
	if c.InputDir == "" {
		c.InputDir = DefaultInputDir
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Tool == "" {
		c.Tool = DefaultTool
	}
	return c
}
