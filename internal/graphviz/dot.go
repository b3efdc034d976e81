// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graphviz runs the Graphviz command-line tools.
//
// Commands are always built as argument vectors and executed directly, never
// through a shell, so file names are passed to the tool verbatim.
package graphviz

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const formatSVG = "svg"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args []string, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args []string, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec = &osExecutor{}

// Dot renders graph sources to SVG with a Graphviz layout program
// (dot, neato, fdp, ...). All layout programs share the same flags.
type Dot struct {
	bin  string
	exec executor
}

// NewDot returns a renderer that invokes bin. bin may be a bare program
// name resolved on PATH or an explicit path.
func NewDot(bin string) *Dot {
	return newDot(bin, defaultExec)
}

func newDot(bin string, exec executor) *Dot {
	return &Dot{bin: bin, exec: exec}
}

// Name returns the configured binary.
func (d *Dot) Name() string { return d.bin }

// Available reports whether the binary resolves on PATH.
func (d *Dot) Available() bool {
	_, err := d.exec.LookPath(d.bin)
	return err == nil
}

// Args returns the argument vector used to render inputPath into outputPath.
// Paths that would otherwise be parsed as flags are prefixed with "./".
func (d *Dot) Args(inputPath, outputPath string) []string {
	return []string{"-T" + formatSVG, pathArg(inputPath), "-o", pathArg(outputPath)}
}

// pathArg keeps a relative path starting with "-" from being read as an
// option.
func pathArg(p string) string {
	if strings.HasPrefix(p, "-") {
		return "./" + p
	}
	return p
}

// Render runs the tool once. A non-zero exit (or failure to start the
// process) is returned as an error that includes whatever the tool wrote
// to stderr.
func (d *Dot) Render(inputPath, outputPath string) error {
	var stderr bytes.Buffer
	if err := d.exec.Run(d.bin, d.Args(inputPath, outputPath), &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("running %s: %w: %s", d.bin, err, msg)
		}
		return fmt.Errorf("running %s: %w", d.bin, err)
	}
	return nil
}

// DryRun prints the command each render would run and reports success
// without executing anything.
type DryRun struct {
	dot *Dot
	w   io.Writer
}

// NewDryRun returns a DryRun that describes invocations of dot on w.
func NewDryRun(dot *Dot, w io.Writer) *DryRun {
	return &DryRun{dot: dot, w: w}
}

// Render writes the command line for inputPath to the dry-run writer.
func (r *DryRun) Render(inputPath, outputPath string) error {
	args := r.dot.Args(inputPath, outputPath)
	quoted := make([]string, 0, len(args)+1)
	quoted = append(quoted, r.dot.bin)
	for _, a := range args {
		quoted = append(quoted, quoteArg(a))
	}
	fmt.Fprintf(r.w, "would run: %s\n", strings.Join(quoted, " "))
	return nil
}

// quoteArg single-quotes an argument for display if it contains anything
// other than characters that are safe in a POSIX shell word.
func quoteArg(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' ||
			strings.ContainsRune("-_./=:+,@%", r)) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
