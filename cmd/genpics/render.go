package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/genpics/internal/graphviz"
	"github.com/pdiddy/genpics/internal/history"
	"github.com/pdiddy/genpics/internal/render"
	"github.com/pdiddy/genpics/pkg/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render every .gv file in the input directory to SVG",
	Long: `Render scans the input directory (not recursively) for files ending in .gv
and runs "<tool> -Tsvg <input> -o <output>" for each, writing <name>.svg into
the output directory. The output directory must already exist.

Every file is re-rendered on every run. A failed render is reported and the
batch continues; the command exits non-zero only when the input directory
cannot be read, or with --strict when any render failed.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.String("input-dir", types.DefaultInputDir, "directory containing .gv sources")
	f.String("output-dir", types.DefaultOutputDir, "directory receiving .svg images (must exist)")
	f.String("tool", types.DefaultTool, "Graphviz program to invoke")
	f.Bool("dry-run", false, "print the commands instead of running them")
	f.Bool("strict", false, "exit non-zero if any file fails to render")
	f.String("report", "", "write a YAML report of the run to this file")

	_ = viper.BindPFlag("render.input_dir", f.Lookup("input-dir"))
	_ = viper.BindPFlag("render.output_dir", f.Lookup("output-dir"))
	_ = viper.BindPFlag("render.tool", f.Lookup("tool"))
	_ = viper.BindPFlag("render.strict", f.Lookup("strict"))
	_ = viper.BindPFlag("render.report", f.Lookup("report"))

	rootCmd.AddCommand(renderCmd)
}

// renderConfig assembles the run settings from flags, config file, and
// environment.
func renderConfig(cmd *cobra.Command) types.RenderConfig {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	return types.RenderConfig{
		InputDir:    viper.GetString("render.input_dir"),
		OutputDir:   viper.GetString("render.output_dir"),
		Tool:        viper.GetString("render.tool"),
		DryRun:      dryRun,
		Strict:      viper.GetBool("render.strict"),
		ReportPath:  viper.GetString("render.report"),
		HistoryPath: viper.GetString("history.path"),
	}.WithDefaults()
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := renderConfig(cmd)
	out := cmd.OutOrStdout()

	dot := graphviz.NewDot(cfg.Tool)
	var tool render.Tool = dot
	if cfg.DryRun {
		tool = graphviz.NewDryRun(dot, out)
	} else if !dot.Available() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s not found on PATH; every render will fail\n", cfg.Tool)
	}

	startedAt := time.Now()
	result, err := render.RenderBatch(tool, cfg, out)
	if err != nil {
		return err
	}

	if cfg.ReportPath != "" {
		if err := render.WriteReport(cfg.ReportPath, cfg, result); err != nil {
			return err
		}
		fmt.Fprintf(out, "Report written to %s\n", cfg.ReportPath)
	}

	if cfg.HistoryPath != "" && !cfg.DryRun {
		if err := recordRun(cfg, startedAt, result); err != nil {
			return err
		}
	}

	if cfg.Strict && result.HasFailures() {
		return fmt.Errorf("%d of %d files failed to render", result.Failed(), result.Total())
	}
	return nil
}

func recordRun(cfg types.RenderConfig, startedAt time.Time, result render.BatchResult) error {
	store, err := history.NewStore(cfg.HistoryPath)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	if _, err := store.Record(startedAt, cfg, result.Results); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}
